package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// Poster sizes understood by the image CDN
const (
	PosterSizeList   = "w500"
	PosterSizeDetail = "w780"
)

// MovieUseCase handles movie lookups against the metadata API
type MovieUseCase struct {
	client MovieClient
	log    *log.Helper
}

// NewMovieUseCase creates a new MovieUseCase instance
func NewMovieUseCase(client MovieClient, logger log.Logger) *MovieUseCase {
	return &MovieUseCase{
		client: client,
		log:    log.NewHelper(logger),
	}
}

// SearchMovies retrieves one page of movies matching query
func (uc *MovieUseCase) SearchMovies(ctx context.Context, query string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}

	result, err := uc.client.SearchMovies(ctx, query, page)
	if err != nil {
		uc.log.Warnf("search for %q (page %d) failed: %v", query, page, err)
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return result, nil
}

// GetMovieDetails retrieves a movie with its spoken languages
func (uc *MovieUseCase) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	details, err := uc.client.GetMovieDetails(ctx, movieID)
	if err != nil {
		uc.log.Warnf("details for movie %d failed: %v", movieID, err)
		return nil, fmt.Errorf("failed to get movie details: %w", err)
	}
	return details, nil
}

// ImageURL resolves a poster path, falling back to the placeholder asset
func (uc *MovieUseCase) ImageURL(path *string, size string) string {
	if path == nil {
		return uc.client.ImageURL("", size)
	}
	return uc.client.ImageURL(*path, size)
}
