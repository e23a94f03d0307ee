package biz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/mock"
)

var testLogger = log.NewFilter(log.DefaultLogger, log.FilterLevel(log.LevelFatal))

// MockMovieClient is a testify mock of MovieClient
type MockMovieClient struct {
	mock.Mock
}

func (m *MockMovieClient) SearchMovies(ctx context.Context, query string, page int) (*SearchResult, error) {
	args := m.Called(ctx, query, page)
	res, _ := args.Get(0).(*SearchResult)
	return res, args.Error(1)
}

func (m *MockMovieClient) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	args := m.Called(ctx, movieID)
	res, _ := args.Get(0).(*MovieDetails)
	return res, args.Error(1)
}

func (m *MockMovieClient) CreateGuestSession(ctx context.Context) (*GuestSession, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*GuestSession)
	return res, args.Error(1)
}

func (m *MockMovieClient) RateMovie(ctx context.Context, movieID int, sessionID string, rating float64) (*RatingResult, error) {
	args := m.Called(ctx, movieID, sessionID, rating)
	res, _ := args.Get(0).(*RatingResult)
	return res, args.Error(1)
}

func (m *MockMovieClient) ImageURL(path, size string) string {
	args := m.Called(path, size)
	return args.String(0)
}

// memCollectionRepo keeps the serialized list the way a key-value backend would
type memCollectionRepo struct {
	mu      sync.Mutex
	raw     []byte
	saves   int
	failing bool
	loadErr error
}

func (r *memCollectionRepo) Load(ctx context.Context) ([]*MovieCollection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.raw == nil {
		return nil, nil
	}
	var out []*MovieCollection
	if err := json.Unmarshal(r.raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCollections, err)
	}
	return out, nil
}

func (r *memCollectionRepo) Save(ctx context.Context, collections []*MovieCollection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("disk full")
	}
	raw, err := json.Marshal(collections)
	if err != nil {
		return err
	}
	r.raw = raw
	r.saves++
	return nil
}

// memSessionRepo stores the two guest session keys
type memSessionRepo struct {
	mu        sync.Mutex
	id        string
	expiresAt string
	cleared   int
}

func (r *memSessionRepo) Load(ctx context.Context) (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id, r.expiresAt, nil
}

func (r *memSessionRepo) Save(ctx context.Context, id, expiresAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id, r.expiresAt = id, expiresAt
	return nil
}

func (r *memSessionRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id, r.expiresAt = "", ""
	r.cleared++
	return nil
}

func strPtr(s string) *string { return &s }
