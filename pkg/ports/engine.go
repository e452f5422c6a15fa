package ports

import (
	"context"

	"github.com/aretw0/toyrobot/pkg/domain"
)

// StatelessEngine defines the interface for state machine cores that do not maintain internal state.
// The caller owns the robot state and passes it in on every call.
type StatelessEngine interface {
	// Apply interprets one raw command line against state and returns the resulting event.
	Apply(ctx context.Context, state *domain.State, raw string) domain.Event

	// Execute runs an already parsed command against state.
	Execute(ctx context.Context, state *domain.State, cmd domain.Command) domain.Event

	// Table returns the bounds enforced by the engine.
	Table() domain.Table
}
