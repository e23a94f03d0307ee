package biz

import (
	"errors"

	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewMovieUseCase,
	NewRatingUseCase,
	NewGuestSessionManager,
	NewCollectionStore,
)

// Custom errors
var (
	ErrMovieNotFound           = errors.New("movie not found")
	ErrCollectionNotFound      = errors.New("collection not found")
	ErrInvalidRating           = errors.New("rating must be between 0.5 and 10")
	ErrGuestSessionUnavailable = errors.New("failed to create guest session")
	ErrUpstream                = errors.New("movie api unavailable")
	ErrCorruptCollections      = errors.New("stored collections are unreadable")
)
