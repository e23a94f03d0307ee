package biz

import (
	"context"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// expiryLayouts are the accepted formats of a guest session expiry.
var expiryLayouts = []string{
	"2006-01-02 15:04:05 MST",
	time.RFC3339,
}

// GuestSessionManager caches the guest session used for rating submissions
type GuestSessionManager struct {
	mu        sync.Mutex
	repo      GuestSessionRepo
	client    MovieClient
	sessionID string
	expiresAt time.Time
	active    bool
	now       func() time.Time
	log       *log.Helper
}

// NewGuestSessionManager creates a GuestSessionManager and restores the
// persisted session. An expired or unreadable session is cleared.
func NewGuestSessionManager(repo GuestSessionRepo, client MovieClient, logger log.Logger) *GuestSessionManager {
	return newGuestSessionManager(repo, client, time.Now, logger)
}

func newGuestSessionManager(repo GuestSessionRepo, client MovieClient, now func() time.Time, logger log.Logger) *GuestSessionManager {
	m := &GuestSessionManager{
		repo:   repo,
		client: client,
		now:    now,
		log:    log.NewHelper(logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.load(ctx)

	return m
}

func (m *GuestSessionManager) load(ctx context.Context) {
	sessionID, expiresAt, err := m.repo.Load(ctx)
	if err != nil {
		m.log.Errorf("failed to load guest session: %v", err)
		return
	}
	if sessionID == "" || expiresAt == "" {
		return
	}

	expiry, ok := parseExpiry(expiresAt)
	if !ok || !expiry.After(m.now()) {
		m.log.Infof("guest session expired at %q, clearing", expiresAt)
		m.clear(ctx)
		return
	}

	m.sessionID = sessionID
	m.expiresAt = expiry
	m.active = true
}

// GetOrCreateSession returns the cached session ID or requests a new one.
// Failures are logged and reported as an empty ID.
func (m *GuestSessionManager) GetOrCreateSession(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active && m.sessionID != "" && m.expiresAt.After(m.now()) {
		return m.sessionID
	}

	session, err := m.client.CreateGuestSession(ctx)
	if err != nil {
		m.log.Warnf("failed to create guest session: %v", err)
		return ""
	}
	if !session.Success || session.ID == "" {
		m.log.Warn("guest session request was not successful")
		return ""
	}

	expiry, ok := parseExpiry(session.ExpiresAt)
	if !ok {
		m.log.Warnf("guest session has unreadable expiry %q", session.ExpiresAt)
		return ""
	}

	if err := m.repo.Save(ctx, session.ID, session.ExpiresAt); err != nil {
		m.log.Warnf("failed to persist guest session: %v", err)
	}

	m.sessionID = session.ID
	m.expiresAt = expiry
	m.active = true
	return m.sessionID
}

// ClearSession forgets the session in memory and in storage
func (m *GuestSessionManager) ClearSession(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clear(ctx)
}

func (m *GuestSessionManager) clear(ctx context.Context) {
	m.sessionID = ""
	m.expiresAt = time.Time{}
	m.active = false
	if err := m.repo.Clear(ctx); err != nil {
		m.log.Warnf("failed to clear guest session: %v", err)
	}
}

// SessionID returns the cached session ID, empty when there is none
func (m *GuestSessionManager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// IsActive reports whether a session is cached
func (m *GuestSessionManager) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func parseExpiry(s string) (time.Time, bool) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
