package biz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var sessionNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return sessionNow }

func TestGuestSessionRestoredWhenUnexpired(t *testing.T) {
	repo := &memSessionRepo{id: "abc", expiresAt: "2026-03-02 12:00:00 UTC"}
	client := new(MockMovieClient)

	m := newGuestSessionManager(repo, client, fixedNow, testLogger)

	assert.True(t, m.IsActive())
	assert.Equal(t, "abc", m.SessionID())
	assert.Equal(t, "abc", m.GetOrCreateSession(context.Background()))
	client.AssertNotCalled(t, "CreateGuestSession", mock.Anything)
}

func TestGuestSessionExpiredIsCleared(t *testing.T) {
	repo := &memSessionRepo{id: "old", expiresAt: "2026-02-28 12:00:00 UTC"}
	client := new(MockMovieClient)
	client.On("CreateGuestSession", mock.Anything).
		Return(&GuestSession{Success: true, ID: "fresh", ExpiresAt: "2026-03-02 12:00:00 UTC"}, nil).Once()

	m := newGuestSessionManager(repo, client, fixedNow, testLogger)

	assert.False(t, m.IsActive())
	assert.Equal(t, 1, repo.cleared)
	assert.Empty(t, repo.id)

	assert.Equal(t, "fresh", m.GetOrCreateSession(context.Background()))
	assert.Equal(t, "fresh", repo.id)
	assert.Equal(t, "2026-03-02 12:00:00 UTC", repo.expiresAt)
	client.AssertExpectations(t)
}

func TestGuestSessionUnreadableExpiryIsCleared(t *testing.T) {
	repo := &memSessionRepo{id: "abc", expiresAt: "tomorrow"}
	m := newGuestSessionManager(repo, new(MockMovieClient), fixedNow, testLogger)

	assert.False(t, m.IsActive())
	assert.Equal(t, 1, repo.cleared)
}

func TestGetOrCreateSessionCachesNewSession(t *testing.T) {
	repo := &memSessionRepo{}
	client := new(MockMovieClient)
	client.On("CreateGuestSession", mock.Anything).
		Return(&GuestSession{Success: true, ID: "s1", ExpiresAt: "2026-03-01T13:00:00Z"}, nil).Once()

	m := newGuestSessionManager(repo, client, fixedNow, testLogger)
	ctx := context.Background()

	assert.Equal(t, "s1", m.GetOrCreateSession(ctx))
	assert.Equal(t, "s1", m.GetOrCreateSession(ctx))
	client.AssertNumberOfCalls(t, "CreateGuestSession", 1)
}

func TestGetOrCreateSessionSwallowsFailures(t *testing.T) {
	tests := []struct {
		name    string
		session *GuestSession
		err     error
	}{
		{"transport error", nil, errors.New("connection refused")},
		{"unsuccessful", &GuestSession{Success: false}, nil},
		{"bad expiry", &GuestSession{Success: true, ID: "x", ExpiresAt: "never"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memSessionRepo{}
			client := new(MockMovieClient)
			client.On("CreateGuestSession", mock.Anything).Return(tt.session, tt.err)

			m := newGuestSessionManager(repo, client, fixedNow, testLogger)

			assert.Empty(t, m.GetOrCreateSession(context.Background()))
			assert.False(t, m.IsActive())
			assert.Empty(t, repo.id)
		})
	}
}

func TestClearSession(t *testing.T) {
	repo := &memSessionRepo{id: "abc", expiresAt: "2026-03-02 12:00:00 UTC"}
	m := newGuestSessionManager(repo, new(MockMovieClient), fixedNow, testLogger)

	m.ClearSession(context.Background())

	assert.False(t, m.IsActive())
	assert.Empty(t, m.SessionID())
	assert.Empty(t, repo.id)
	assert.Empty(t, repo.expiresAt)
}
