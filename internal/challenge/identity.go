package challenge

import (
	"context"
)

// IdentityResolver decides which user a completion is recorded against.
// The policy is isolated here so per-visitor tracking can replace the
// shared identity without touching the tracker.
type IdentityResolver interface {
	Resolve(ctx context.Context) string
}

// SharedIdentity records all progress against one shared pseudo-user:
// every visitor sees and advances the same challenge state.
type SharedIdentity struct{}

// Resolve returns the shared user id
func (SharedIdentity) Resolve(ctx context.Context) string {
	return "global"
}
