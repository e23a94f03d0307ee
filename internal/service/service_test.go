package service

import (
	"context"
	"testing"

	"cinelist/internal/biz"
	"cinelist/internal/data"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = log.NewFilter(log.DefaultLogger, log.FilterLevel(log.LevelFatal))

type MockMovieClient struct {
	mock.Mock
}

func (m *MockMovieClient) SearchMovies(ctx context.Context, query string, page int) (*biz.SearchResult, error) {
	args := m.Called(ctx, query, page)
	res, _ := args.Get(0).(*biz.SearchResult)
	return res, args.Error(1)
}

func (m *MockMovieClient) GetMovieDetails(ctx context.Context, movieID int) (*biz.MovieDetails, error) {
	args := m.Called(ctx, movieID)
	res, _ := args.Get(0).(*biz.MovieDetails)
	return res, args.Error(1)
}

func (m *MockMovieClient) CreateGuestSession(ctx context.Context) (*biz.GuestSession, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*biz.GuestSession)
	return res, args.Error(1)
}

func (m *MockMovieClient) RateMovie(ctx context.Context, movieID int, sessionID string, rating float64) (*biz.RatingResult, error) {
	args := m.Called(ctx, movieID, sessionID, rating)
	res, _ := args.Get(0).(*biz.RatingResult)
	return res, args.Error(1)
}

func (m *MockMovieClient) ImageURL(path, size string) string {
	if path == "" {
		return data.PlaceholderPoster
	}
	return "https://img.test/" + size + path
}

type fixture struct {
	client      *MockMovieClient
	movies      *MovieService
	collections *CollectionService
	store       *biz.CollectionStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	kv := data.NewMemoryStore()
	client := &MockMovieClient{}
	movieUC := biz.NewMovieUseCase(client, testLogger)
	sessions := biz.NewGuestSessionManager(data.NewGuestSessionRepo(kv, testLogger), client, testLogger)
	ratingUC := biz.NewRatingUseCase(client, sessions, testLogger)
	store, err := biz.NewCollectionStore(data.NewCollectionRepo(kv, testLogger), testLogger)
	require.NoError(t, err)

	return &fixture{
		client:      client,
		movies:      NewMovieService(movieUC, ratingUC, testLogger),
		collections: NewCollectionService(store, movieUC, testLogger),
		store:       store,
	}
}

func strPtr(s string) *string { return &s }

func assertStatus(t *testing.T, err error, code int, reason string) {
	t.Helper()
	require.Error(t, err)
	se := errors.FromError(err)
	assert.Equal(t, int32(code), se.Code)
	assert.Equal(t, reason, se.Reason)
}

func TestFromBiz(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		reason string
	}{
		{"movie", biz.ErrMovieNotFound, 404, reasonNotFound},
		{"collection", biz.ErrCollectionNotFound, 404, reasonNotFound},
		{"rating", biz.ErrInvalidRating, 422, reasonInvalid},
		{"session", biz.ErrGuestSessionUnavailable, 502, reasonSessionFailed},
		{"upstream", biz.ErrUpstream, 502, reasonUpstream},
		{"other", assert.AnError, 500, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStatus(t, fromBiz(tt.err), tt.code, tt.reason)
		})
	}
	assert.NoError(t, fromBiz(nil))
}

func TestValidateRequestMessages(t *testing.T) {
	err := validateRequest(&SearchMoviesRequest{Query: "ab"})
	assertStatus(t, err, 422, reasonInvalid)
	assert.Equal(t, "query must be at least 3 characters", errors.FromError(err).Message)

	err = validateRequest(&SearchMoviesRequest{Query: "star-wars"})
	assert.Equal(t, "query may only contain letters, numbers and spaces", errors.FromError(err).Message)

	err = validateRequest(&CreateCollectionRequest{})
	assert.Equal(t, "title is required", errors.FromError(err).Message)

	err = validateRequest(&AddMoviesRequest{ID: "x", Movies: []Movie{{ID: 1}}})
	assert.Equal(t, "movies[0].title is required", errors.FromError(err).Message)

	assert.NoError(t, validateRequest(&SearchMoviesRequest{Query: "Star Wars 4"}))
}

func TestCheckBearer(t *testing.T) {
	assert.NoError(t, CheckBearer("", ""))
	assert.NoError(t, CheckBearer("Bearer s3cret", "s3cret"))

	for _, header := range []string{"", "s3cret", "Basic s3cret", "Bearer nope"} {
		err := CheckBearer(header, "s3cret")
		assertStatus(t, err, 401, "UNAUTHORIZED")
	}
}
