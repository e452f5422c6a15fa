package toyrobot

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/toyrobot/internal/runtime"
	"github.com/aretw0/toyrobot/pkg/domain"
)

// Engine is the high-level entry point for the toyrobot library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	table   domain.Table
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithTable sets the tabletop bounds (default 0..4 on both axes).
func WithTable(t domain.Table) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithLifecycleHooks registers observability hooks. Calling it more than once chains the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		table: domain.DefaultTable(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if err := eng.table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("table", eng.table.String())

	eng.runtime = runtime.NewEngine(
		runtime.WithTable(eng.table),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

// Apply interprets one raw command line against state.
// It never fails: rejected commands come back as an Event carrying Error.
func (e *Engine) Apply(ctx context.Context, state *domain.State, raw string) domain.Event {
	return e.runtime.Apply(ctx, state, raw)
}

// Execute runs an already parsed command against state.
func (e *Engine) Execute(ctx context.Context, state *domain.State, cmd domain.Command) domain.Event {
	return e.runtime.Execute(ctx, state, cmd)
}

// Table returns the bounds enforced by the engine.
func (e *Engine) Table() domain.Table {
	return e.table
}
