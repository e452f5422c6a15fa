package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/toyrobot/internal/compiler"
	"github.com/aretw0/toyrobot/pkg/domain"
)

// Engine is the core state machine. It is stateless: every call receives the
// current robot state and returns the next one inside a domain.Event.
type Engine struct {
	parser *compiler.Parser
	table  domain.Table
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithTable sets the bounds used by PLACE validation and MOVE clamping.
func WithTable(t domain.Table) EngineOption {
	return func(e *Engine) {
		e.table = t
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default no-op one.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine on the default 5x5 table.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		parser: compiler.NewParser(),
		table:  domain.DefaultTable(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the bounds the engine enforces.
func (e *Engine) Table() domain.Table {
	return e.table
}

// Apply parses raw and executes the resulting command against state.
func (e *Engine) Apply(ctx context.Context, state *domain.State, raw string) domain.Event {
	cmd := e.parser.Parse(raw)
	event := e.dispatch(state, cmd)
	e.observe(ctx, cmd, raw, event)
	return event
}

// Execute runs an already parsed command against state.
func (e *Engine) Execute(ctx context.Context, state *domain.State, cmd domain.Command) domain.Event {
	raw := ""
	if inv, ok := cmd.(domain.Invalid); ok {
		raw = inv.Raw
	}
	event := e.dispatch(state, cmd)
	e.observe(ctx, cmd, raw, event)
	return event
}

func (e *Engine) dispatch(state *domain.State, cmd domain.Command) domain.Event {
	switch c := cmd.(type) {
	case domain.Place:
		return e.place(state, c.X, c.Y, c.Direction)
	case domain.Report:
		return report(state)
	case domain.Move:
		return e.move(state)
	case domain.Left:
		return turnLeft(state)
	case domain.Right:
		return turnRight(state)
	case domain.Invalid:
		return reject(state, c.Raw)
	default:
		// domain.Command is sealed; a nil command is the only way to get here.
		return reject(state, "")
	}
}

func (e *Engine) observe(ctx context.Context, cmd domain.Command, raw string, event domain.Event) {
	kind := domain.KindInvalid
	if cmd != nil {
		kind = cmd.Kind()
	}
	outcome := event.Outcome()

	attrs := []any{"command", kind, "outcome", outcome}
	if event.State != nil {
		attrs = append(attrs, "x", event.State.X, "y", event.State.Y, "direction", event.State.Direction)
	}
	if event.HasError() {
		attrs = append(attrs, "reason", event.Error)
	}
	e.logger.Debug("command applied", attrs...)

	if e.hooks.OnCommand == nil {
		return
	}
	msg := event.Output
	if event.HasError() {
		msg = event.Error
	}
	e.hooks.OnCommand(ctx, &domain.CommandRecord{
		Timestamp: e.now(),
		Command:   kind,
		Raw:       raw,
		Outcome:   outcome,
		Message:   msg,
		State:     event.State,
	})
}
