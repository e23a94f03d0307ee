package data

import (
	"time"

	"cinelist/internal/biz"
)

const kvTable = "kv_entries"

// Storage keys, shared with the browser client's local storage layout
const (
	collectionsKey   = "noviMov_collections"
	guestSessionKey  = "tmdb_guest_session"
	sessionExpiryKey = "tmdb_guest_session_expiry"
)

// KVEntry represents the kv_entries table
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"not null;type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (KVEntry) TableName() string {
	return kvTable
}

// Movie is the metadata API's movie shape, also used for persisted snapshots
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Budget      int64   `json:"budget"`
	Revenue     int64   `json:"revenue"`
	VoteCount   int     `json:"vote_count"`
}

type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO639_1    string `json:"iso_639_1"`
	Name        string `json:"name"`
}

type MovieDetails struct {
	Movie
	SpokenLanguages []SpokenLanguage `json:"spoken_languages"`
}

type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type GuestSessionResponse struct {
	Success        bool   `json:"success"`
	GuestSessionID string `json:"guest_session_id"`
	ExpiresAt      string `json:"expires_at"`
}

// StatusResponse is both the rating reply and the error body of the metadata API
type StatusResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// MovieCollection is the persisted collection shape
type MovieCollection struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Movies      []Movie   `json:"movies"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func movieToBiz(m Movie) biz.Movie {
	return biz.Movie{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Budget:      m.Budget,
		Revenue:     m.Revenue,
		VoteCount:   m.VoteCount,
	}
}

func movieToModel(m biz.Movie) Movie {
	return Movie{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Budget:      m.Budget,
		Revenue:     m.Revenue,
		VoteCount:   m.VoteCount,
	}
}

func collectionToBiz(c *MovieCollection) *biz.MovieCollection {
	movies := make([]biz.Movie, 0, len(c.Movies))
	for _, m := range c.Movies {
		movies = append(movies, movieToBiz(m))
	}
	return &biz.MovieCollection{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Movies:      movies,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func collectionToModel(c *biz.MovieCollection) *MovieCollection {
	movies := make([]Movie, 0, len(c.Movies))
	for _, m := range c.Movies {
		movies = append(movies, movieToModel(m))
	}
	return &MovieCollection{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Movies:      movies,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
