package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/toyrobot/internal/runtime"
	"github.com/aretw0/toyrobot/pkg/domain"
	"github.com/aretw0/toyrobot/pkg/ports"
)

// Runner folds an ordered stream of command lines through the engine.
// It exclusively owns the carried robot state and splits every resulting event
// into the success channel (Output) and the error channel (Error).
//
// A Runner processes one command at a time and is not safe for concurrent use.
// Hosts receiving commands concurrently should go through session.Session.
type Runner struct {
	// Handler is the strategy for IO used when Run is given a nil handler.
	// If both are nil, a TextHandler over Stdin/Stdout/Stderr is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	engine       ports.StatelessEngine
	state        *domain.State
	maxInputSize int
}

// NewRunner creates a new Runner with no robot on the table.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		r.engine = runtime.NewEngine()
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// State returns a copy of the carried state, or nil if the robot has not been placed.
func (r *Runner) State() *domain.State {
	if r.state == nil {
		return nil
	}
	s := *r.state
	return &s
}

// Table returns the bounds enforced by the underlying engine.
func (r *Runner) Table() domain.Table {
	return r.engine.Table()
}

// Step applies one raw command line against the carried state and returns the event.
// The carried state is replaced when the event carries one and kept otherwise.
// Lines refused by the sanitizer are dispatched as domain.Invalid, never parsed.
func (r *Runner) Step(ctx context.Context, raw string) domain.Event {
	line := strings.TrimSpace(raw)

	var ev domain.Event
	if clean, err := r.sanitize(line); err != nil {
		r.Logger.Warn("input refused", "err", err)
		ev = r.engine.Execute(ctx, r.state, domain.Invalid{Raw: line})
	} else {
		ev = r.engine.Apply(ctx, r.state, clean)
	}

	if ev.State != nil {
		r.state = ev.State
	}
	return ev
}

// Run reads lines from handler until io.EOF or context cancellation and routes
// every event to the handler's Output or Error, in arrival order.
// Every line is stepped, blank ones included.
func (r *Runner) Run(ctx context.Context, handler IOHandler) error {
	handler = r.resolveHandler(handler)

	r.Logger.Debug("runner started")
	defer r.Logger.Debug("runner stopped")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input error: %w", err)
		}

		if err := r.emit(ctx, handler, r.Step(ctx, line)); err != nil {
			return err
		}
	}
}

// Stream runs the fold over a live channel. The returned channels are unbuffered
// and closed when in is closed or ctx ends, so consumers must drain both.
func (r *Runner) Stream(ctx context.Context, in <-chan string) (<-chan string, <-chan string) {
	std := make(chan string)
	errs := make(chan string)

	go func() {
		defer close(std)
		defer close(errs)

		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-in:
				if !ok {
					return
				}
				ev := r.Step(ctx, raw)
				if ev.HasOutput() && !send(ctx, std, ev.Output) {
					return
				}
				if ev.HasError() && !send(ctx, errs, ev.Error) {
					return
				}
			}
		}
	}()

	return std, errs
}

// Collect folds a finite list of lines and returns both channels as slices.
func (r *Runner) Collect(ctx context.Context, lines ...string) (std, errs []string) {
	std, errs = []string{}, []string{}
	for _, line := range lines {
		if ctx.Err() != nil {
			break
		}
		ev := r.Step(ctx, line)
		if ev.HasOutput() {
			std = append(std, ev.Output)
		}
		if ev.HasError() {
			errs = append(errs, ev.Error)
		}
	}
	return std, errs
}

func (r *Runner) emit(ctx context.Context, handler IOHandler, ev domain.Event) error {
	if ev.HasOutput() {
		if err := handler.Output(ctx, ev.Output); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	if ev.HasError() {
		if err := handler.Error(ctx, ev.Error); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}

func (r *Runner) sanitize(line string) (string, error) {
	if r.maxInputSize > 0 {
		return SanitizeInputWithLimit(line, r.maxInputSize)
	}
	return SanitizeInput(line)
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler(h IOHandler) IOHandler {
	if h != nil {
		return h
	}
	if r.Handler != nil {
		return r.Handler
	}
	// Memoize to prevent creating new pumps on subsequent Run() calls
	r.Handler = NewTextHandler(os.Stdin, os.Stdout, WithErrorWriter(os.Stderr))
	return r.Handler
}

func send(ctx context.Context, ch chan<- string, line string) bool {
	select {
	case ch <- line:
		return true
	case <-ctx.Done():
		return false
	}
}
