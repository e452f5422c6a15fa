package runner

import (
	"log/slog"

	"github.com/aretw0/toyrobot/pkg/domain"
	"github.com/aretw0/toyrobot/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine commands are applied with.
// If not provided, the Runner uses an engine on the default table.
func WithEngine(engine ports.StatelessEngine) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures the IOHandler used when Run is given none.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithInitialState seeds the carried state. The state is copied.
func WithInitialState(state *domain.State) Option {
	return func(r *Runner) {
		if state != nil {
			s := *state
			r.state = &s
		}
	}
}

// WithMaxInputSize overrides the sanitizer limit (bytes).
// Zero keeps the default resolution (env TOYROBOT_MAX_INPUT_SIZE, then DefaultMaxInputSize).
func WithMaxInputSize(limit int) Option {
	return func(r *Runner) {
		r.maxInputSize = limit
	}
}
