// Package session stores per-visitor wizard state. A session id from the browser cookie scopes
// every key, so one visitor never sees another visitor's form.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSession is returned for an empty session id.
var ErrInvalidSession = errors.New("session id is empty")

// Cache is the session-scoped key/value store behind the wizard.
type Cache interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, sessionID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, sessionID, key, value string) error
	// SetNX stores value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, sessionID, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, sessionID string, keys ...string) error
}

// NewID returns a fresh opaque session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID accepts only ids NewID could have produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
