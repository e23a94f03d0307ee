package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

const (
	MinRating = 0.5
	MaxRating = 10.0
)

// RatingUseCase submits ratings through a guest session
type RatingUseCase struct {
	client   MovieClient
	sessions *GuestSessionManager
	log      *log.Helper
}

// NewRatingUseCase creates a new RatingUseCase instance
func NewRatingUseCase(client MovieClient, sessions *GuestSessionManager, logger log.Logger) *RatingUseCase {
	return &RatingUseCase{
		client:   client,
		sessions: sessions,
		log:      log.NewHelper(logger),
	}
}

// RateMovie validates the value, obtains a guest session and submits the rating
func (uc *RatingUseCase) RateMovie(ctx context.Context, movieID int, value float64) (*RatingResult, error) {
	if value < MinRating || value > MaxRating {
		return nil, fmt.Errorf("%w: got %.1f", ErrInvalidRating, value)
	}

	sessionID := uc.sessions.GetOrCreateSession(ctx)
	if sessionID == "" {
		return nil, ErrGuestSessionUnavailable
	}

	result, err := uc.client.RateMovie(ctx, movieID, sessionID, value)
	if err != nil {
		uc.log.Warnf("rating movie %d failed: %v", movieID, err)
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	return result, nil
}

// ClearSession drops the cached guest session
func (uc *RatingUseCase) ClearSession(ctx context.Context) {
	uc.sessions.ClearSession(ctx)
}
