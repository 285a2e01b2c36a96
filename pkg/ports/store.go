package ports

import (
	"context"

	"github.com/inkforge/inkforge/pkg/domain"
)

// StateStore defines the interface for persisting play-session state.
// One state slot per session key; gameplay is sequential per player, so
// last-write-wins under the session lock is acceptable.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of the active sessions.
	List(ctx context.Context) ([]string, error)
}
