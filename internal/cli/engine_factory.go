package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/toyrobot"
	"github.com/aretw0/toyrobot/internal/config"
	"github.com/aretw0/toyrobot/pkg/domain"
)

// createEngine initializes an engine with standard CLI conventions.
func createEngine(cfg config.Config, logger *slog.Logger, debug bool, hooks ...domain.LifecycleHooks) (*toyrobot.Engine, error) {
	engineOpts := []toyrobot.Option{
		toyrobot.WithTable(cfg.TableBounds()),
		toyrobot.WithLogger(logger),
	}

	if debug {
		engineOpts = append(engineOpts, toyrobot.WithLifecycleHooks(createDebugHooks(logger)))
	}
	for _, h := range hooks {
		engineOpts = append(engineOpts, toyrobot.WithLifecycleHooks(h))
	}

	engine, err := toyrobot.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
