// Package session persists per-session conversation state. Two backends
// exist: an in-memory map for single-instance deployments and Redis for
// shared ones.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-mentor/internal/models"
)

// ErrNotFound reports that no state exists for a session id.
var ErrNotFound = errors.New("session not found")

// ErrExpired reports that state existed but sat idle past its TTL. It wraps
// ErrNotFound, so callers that only care about absence keep working; the
// Redis store cannot distinguish the two and always reports ErrNotFound.
var ErrExpired = fmt.Errorf("session expired: %w", ErrNotFound)

// Store reads and writes session state. Get returns a copy the caller owns;
// mutations only take effect through Put.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	Put(ctx context.Context, state *models.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// clampTTL guards against zero or negative configuration values.
func clampTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
