package service

import (
	"net/http"
	"time"
)

// Movie is the wire shape of a movie. It doubles as the payload accepted when
// movies are added to a collection.
type Movie struct {
	ID          int     `json:"id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required"`
	PosterPath  *string `json:"poster_path"`
	PosterURL   string  `json:"poster_url,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Budget      int64   `json:"budget,omitempty"`
	Revenue     int64   `json:"revenue,omitempty"`
	VoteCount   int     `json:"vote_count,omitempty"`
}

type SearchMoviesRequest struct {
	Query string `json:"query" validate:"required,min=3,alphanumspace"`
	Page  int    `json:"page" validate:"gte=0"`
}

type SearchMoviesReply struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Pages        []int   `json:"pages"`
	Results      []Movie `json:"results"`
}

type GetMovieRequest struct {
	ID int `json:"id" validate:"gt=0"`
}

type SpokenLanguage struct {
	ISO639_1    string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

type GetMovieReply struct {
	Movie
	SpokenLanguages []SpokenLanguage `json:"spoken_languages"`
	Languages       string           `json:"languages"`
	BudgetDisplay   string           `json:"budget_display"`
	RevenueDisplay  string           `json:"revenue_display"`
}

type RateMovieRequest struct {
	ID    int     `json:"id" validate:"gt=0"`
	Value float64 `json:"value" validate:"gte=0.5,lte=10"`
}

type RateMovieReply struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

type ClearSessionRequest struct{}

type PaginationRequest struct {
	Current int `json:"current" validate:"gte=0"`
	Total   int `json:"total" validate:"gte=0"`
	Target  int `json:"target"`
}

type PaginationReply struct {
	Pages       []int `json:"pages"`
	Ellipsis    int   `json:"ellipsis"`
	TargetValid bool  `json:"target_valid"`
}

type HealthCheckRequest struct{}

type HealthCheckReply struct {
	Status string `json:"status"`
}

// EmptyReply is returned by operations without a payload
type EmptyReply struct{}

type Collection struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Movies      []Movie   `json:"movies"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListCollectionsRequest struct{}

type ListCollectionsReply struct {
	Collections []*Collection `json:"collections"`
}

type CreateCollectionRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"max=200"`
}

// CreateCollectionReply is answered with 201 Created
type CreateCollectionReply struct {
	*Collection
}

func (CreateCollectionReply) HTTPStatus() int {
	return http.StatusCreated
}

type GetCollectionRequest struct {
	ID string `json:"id" validate:"required"`
}

type UpdateCollectionRequest struct {
	ID          string  `json:"id" validate:"required"`
	Title       *string `json:"title" validate:"omitnil,min=3,max=50"`
	Description *string `json:"description" validate:"omitnil,max=200"`
}

type DeleteCollectionRequest struct {
	ID string `json:"id" validate:"required"`
}

type AddMoviesRequest struct {
	ID     string  `json:"id" validate:"required"`
	Movies []Movie `json:"movies" validate:"required,min=1,dive"`
}

type AddMoviesReply struct {
	Collection *Collection `json:"collection"`
	Added      int         `json:"added"`
}

type CollectionMovieRequest struct {
	ID      string `json:"id" validate:"required"`
	MovieID int    `json:"movie_id" validate:"gt=0"`
}

type MembershipReply struct {
	InCollection bool `json:"in_collection"`
}
