package data

import (
	"context"
	"encoding/json"
	"fmt"

	"cinelist/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

type guestSessionRepo struct {
	kv  biz.KeyValueStore
	log *log.Helper
}

// NewGuestSessionRepo creates a repository keeping the session ID and expiry under two keys
func NewGuestSessionRepo(kv biz.KeyValueStore, logger log.Logger) biz.GuestSessionRepo {
	return &guestSessionRepo{
		kv:  kv,
		log: log.NewHelper(logger),
	}
}

func (r *guestSessionRepo) Load(ctx context.Context) (string, string, error) {
	id, err := r.get(ctx, guestSessionKey)
	if err != nil {
		return "", "", err
	}
	expiresAt, err := r.get(ctx, sessionExpiryKey)
	if err != nil {
		return "", "", err
	}
	return id, expiresAt, nil
}

func (r *guestSessionRepo) Save(ctx context.Context, sessionID, expiresAt string) error {
	if err := r.set(ctx, guestSessionKey, sessionID); err != nil {
		return err
	}
	return r.set(ctx, sessionExpiryKey, expiresAt)
}

func (r *guestSessionRepo) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, guestSessionKey, sessionExpiryKey)
}

// Values are stored JSON-encoded, like every other entry.
func (r *guestSessionRepo) get(ctx context.Context, key string) (string, error) {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}

	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// tolerate values written without JSON quoting
		r.log.Debugf("%s is not JSON encoded, using raw value", key)
		return raw, nil
	}
	return v, nil
}

func (r *guestSessionRepo) set(ctx context.Context, key, value string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, string(raw))
}
