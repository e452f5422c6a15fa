package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/aretw0/toyrobot/internal/config"
	"github.com/aretw0/toyrobot/internal/logging"
	"github.com/aretw0/toyrobot/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// loadConfig reads the optional .env file first so its variables can override the config file.
func loadConfig(configPath, envFile string) (config.Config, error) {
	if envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return config.Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return config.Load(configPath)
}

// createLogger configures the application logger.
// Quiet commands (run) stay silent unless --debug or a log file is configured,
// since Stderr already carries the error channel.
func createLogger(cfg config.Config, debug, quiet bool) (*slog.Logger, error) {
	if quiet && !debug && cfg.Log.File == "" {
		return logging.NewNop(), nil
	}
	level := cfg.LogLevel()
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithOptions(logging.Options{
		Level:  level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommand: func(ctx context.Context, r *domain.CommandRecord) {
			attrs := []any{"command", r.Command, "outcome", r.Outcome}
			if r.Raw != "" {
				attrs = append(attrs, "raw", r.Raw)
			}
			if r.Message != "" {
				attrs = append(attrs, "message", r.Message)
			}
			logger.Debug("Command", attrs...)
		},
	}
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

func logCompletion(logger *slog.Logger, err error, sig os.Signal) {
	switch {
	case err == nil:
		logger.Debug("Session finished")
	case isInterrupted(err):
		logger.Debug("Session interrupted", "signal", sig)
	default:
		logger.Error("Session failed", "err", err)
	}
}
