package ports

import (
	"context"

	"github.com/olifog/musejump/backend/internal/core/domain"
)

// JumpRepository persists user-owned jump records. Every operation is scoped
// by an owner equality filter in addition to any primary key; that filter is
// the sole authorization mechanism in the system. Mutations that match zero
// rows fail with domain.ErrNotFound rather than succeeding silently.
type JumpRepository interface {
	// ListJumps returns all jumps owned by ownerID for trackID, in creation
	// order. An empty slice, not an error, when none exist.
	ListJumps(ctx context.Context, ownerID, trackID string) ([]domain.Jump, error)

	// AddJump assigns a fresh unique id, persists the record, and returns it
	// with id and creation time populated.
	AddJump(ctx context.Context, jump domain.Jump) (domain.Jump, error)

	// UpdateJump mutates trigger, target and description of the jump
	// identified by (ownerID, id). Identity fields are immutable.
	UpdateJump(ctx context.Context, ownerID, id string, triggerMs, targetMs int, description string) error

	// DeleteJump removes the jump identified by (ownerID, id).
	DeleteJump(ctx context.Context, ownerID, id string) error
}
