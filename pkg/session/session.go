package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/toyrobot/internal/logging"
	"github.com/aretw0/toyrobot/pkg/domain"
	"github.com/aretw0/toyrobot/pkg/runner"
)

// Session guards one robot so that concurrent transports (HTTP, MCP) still
// apply commands one at a time, in the order they acquire the lock.
type Session struct {
	mu     sync.Mutex
	runner *runner.Runner
	logger *slog.Logger
}

// Option configures the Session.
type Option func(*Session)

// WithLogger configures a logger for the Session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New wraps r. The Session becomes the only caller of r.
func New(r *runner.Runner, opts ...Option) *Session {
	s := &Session{
		runner: r,
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Batch is the outcome of one SubmitBatch call.
type Batch struct {
	Events []runner.RichResponse
	// State is the robot state right after the last applied command, nil if not placed.
	State *domain.State
}

// Submit applies commands in order under a single lock acquisition, so a batch
// is never interleaved with another caller's commands.
func (s *Session) Submit(ctx context.Context, commands ...string) []runner.RichResponse {
	return s.SubmitBatch(ctx, nil, commands...).Events
}

// SubmitBatch is Submit plus an observe callback, invoked for each event while
// the lock is still held. Callbacks from concurrent batches therefore run in
// application order. observe must not call back into the Session.
func (s *Session) SubmitBatch(ctx context.Context, observe func(runner.RichResponse), commands ...string) Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	responses := make([]runner.RichResponse, 0, len(commands))
	for _, raw := range commands {
		if ctx.Err() != nil {
			s.logger.Warn("batch interrupted", "err", ctx.Err(), "applied", len(responses), "total", len(commands))
			break
		}
		resp := runner.NewRichResponse(raw, s.runner.Step(ctx, raw))
		if observe != nil {
			observe(resp)
		}
		responses = append(responses, resp)
	}
	return Batch{Events: responses, State: s.runner.State()}
}

// Snapshot returns a copy of the current robot state, nil if not placed.
func (s *Session) Snapshot() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.State()
}

// Table returns the bounds of the guarded robot.
func (s *Session) Table() domain.Table {
	return s.runner.Table()
}
