package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRateMovieRejectsOutOfRange(t *testing.T) {
	client := new(MockMovieClient)
	sessions := newGuestSessionManager(&memSessionRepo{}, client, fixedNow, testLogger)
	uc := NewRatingUseCase(client, sessions, testLogger)

	for _, v := range []float64{0, 0.4, 10.5, -1} {
		_, err := uc.RateMovie(context.Background(), 550, v)
		assert.ErrorIs(t, err, ErrInvalidRating, "value %v", v)
	}
	client.AssertNotCalled(t, "CreateGuestSession", mock.Anything)
	client.AssertNotCalled(t, "RateMovie", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRateMovieSubmitsWithSession(t *testing.T) {
	client := new(MockMovieClient)
	client.On("CreateGuestSession", mock.Anything).
		Return(&GuestSession{Success: true, ID: "guest-1", ExpiresAt: "2026-03-02 12:00:00 UTC"}, nil).Once()
	client.On("RateMovie", mock.Anything, 550, "guest-1", 8.5).
		Return(&RatingResult{Success: true, StatusCode: 1, StatusMessage: "Success."}, nil)

	sessions := newGuestSessionManager(&memSessionRepo{}, client, fixedNow, testLogger)
	uc := NewRatingUseCase(client, sessions, testLogger)

	for _, v := range []float64{8.5, 8.5} {
		res, err := uc.RateMovie(context.Background(), 550, v)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "Success.", res.StatusMessage)
	}
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "CreateGuestSession", 1)
}

func TestRateMovieBoundaries(t *testing.T) {
	client := new(MockMovieClient)
	client.On("RateMovie", mock.Anything, 1, "abc", mock.AnythingOfType("float64")).
		Return(&RatingResult{Success: true}, nil)

	repo := &memSessionRepo{id: "abc", expiresAt: "2026-03-02 12:00:00 UTC"}
	uc := NewRatingUseCase(client, newGuestSessionManager(repo, client, fixedNow, testLogger), testLogger)

	for _, v := range []float64{MinRating, MaxRating} {
		_, err := uc.RateMovie(context.Background(), 1, v)
		assert.NoError(t, err)
	}
}

func TestRateMovieWithoutSession(t *testing.T) {
	client := new(MockMovieClient)
	client.On("CreateGuestSession", mock.Anything).Return(nil, errors.New("boom"))

	uc := NewRatingUseCase(client, newGuestSessionManager(&memSessionRepo{}, client, fixedNow, testLogger), testLogger)

	_, err := uc.RateMovie(context.Background(), 550, 5)
	assert.ErrorIs(t, err, ErrGuestSessionUnavailable)
}

func TestRateMovieUpstreamFailure(t *testing.T) {
	client := new(MockMovieClient)
	client.On("RateMovie", mock.Anything, 550, "abc", 5.0).Return(nil, ErrUpstream)

	repo := &memSessionRepo{id: "abc", expiresAt: "2026-03-02 12:00:00 UTC"}
	uc := NewRatingUseCase(client, newGuestSessionManager(repo, client, fixedNow, testLogger), testLogger)

	_, err := uc.RateMovie(context.Background(), 550, 5)
	assert.ErrorIs(t, err, ErrUpstream)
}
