package biz

import (
	"context"
	"time"
)

// Movie domain model. Snapshots taken from the metadata API are never mutated.
type Movie struct {
	ID          int
	Title       string
	PosterPath  *string
	VoteAverage float64
	Overview    string
	ReleaseDate string
	Budget      int64
	Revenue     int64
	VoteCount   int
}

// SpokenLanguage domain model
type SpokenLanguage struct {
	ISO639_1    string
	Name        string
	EnglishName string
}

// MovieDetails domain model
type MovieDetails struct {
	Movie
	SpokenLanguages []SpokenLanguage
}

// SearchResult is one page of search results
type SearchResult struct {
	Page         int
	Results      []Movie
	TotalPages   int
	TotalResults int
}

// GuestSession is a session issued by the metadata API
type GuestSession struct {
	Success   bool
	ID        string
	ExpiresAt string
}

// RatingResult is the metadata API's answer to a rating submission
type RatingResult struct {
	Success       bool
	StatusCode    int
	StatusMessage string
}

// MovieCollection domain model
type MovieCollection struct {
	ID          string
	Title       string
	Description string
	Movies      []Movie
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CollectionUpdate carries the fields to merge into a collection; nil fields are left as-is.
type CollectionUpdate struct {
	Title       *string
	Description *string
}

// MovieClient defines the interface for the movie metadata API client
type MovieClient interface {
	SearchMovies(ctx context.Context, query string, page int) (*SearchResult, error)
	GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error)
	CreateGuestSession(ctx context.Context) (*GuestSession, error)
	RateMovie(ctx context.Context, movieID int, sessionID string, rating float64) (*RatingResult, error)
	ImageURL(path, size string) string
}

// MovieSearcher is the slice of MovieClient the search controller needs
type MovieSearcher interface {
	SearchMovies(ctx context.Context, query string, page int) (*SearchResult, error)
}

// KeyValueStore is string-keyed persistent storage holding serialized values
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// CollectionRepo defines the repository interface for collections.
// The whole list is read and written at once.
type CollectionRepo interface {
	Load(ctx context.Context) ([]*MovieCollection, error)
	Save(ctx context.Context, collections []*MovieCollection) error
}

// GuestSessionRepo defines the repository interface for the persisted guest session
type GuestSessionRepo interface {
	Load(ctx context.Context) (sessionID, expiresAt string, err error)
	Save(ctx context.Context, sessionID, expiresAt string) error
	Clear(ctx context.Context) error
}
