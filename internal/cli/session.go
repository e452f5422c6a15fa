package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/toyrobot"
	"github.com/aretw0/toyrobot/internal/presentation/tui"
	"github.com/aretw0/toyrobot/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	ConfigPath string
	EnvFile    string
	InputPath  string // empty or "-" reads Stdin
	Headless   bool
	JSON       bool
	Debug      bool
	NoColor    bool

	// Process streams; tests replace them.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// RunSession feeds commands from a file or Stdin through one robot until the input ends.
func RunSession(opts RunOptions) error {
	opts = opts.withDefaults()

	cfg, err := loadConfig(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg, opts.Debug, true)
	if err != nil {
		return err
	}

	engine, err := createEngine(cfg, logger, opts.Debug)
	if err != nil {
		return err
	}

	in, closeInput, err := openInput(opts)
	if err != nil {
		return err
	}
	defer closeInput()

	interactive := !opts.Headless && !opts.JSON && isTerminal(in)
	if interactive {
		tui.PrintBanner(opts.Stdout, toyrobot.Version)
		if render, err := tui.NewRenderer(""); err == nil {
			fmt.Fprintln(opts.Stdout, tui.RenderGuide(render, engine.Table()))
		} else {
			logger.Debug("guide renderer unavailable", "err", err)
			fmt.Fprintln(opts.Stdout, tui.Guide(engine.Table()))
		}
	}

	r := runner.NewRunner(
		runner.WithEngine(engine),
		runner.WithLogger(logger),
		runner.WithMaxInputSize(cfg.Input.MaxSize),
	)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	handler := createHandler(opts, in, interactive)
	if c, ok := handler.(io.Closer); ok {
		defer c.Close()
	}

	runErr := r.Run(sigCtx, handler)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	logCompletion(logger, runErr, sigCtx.Signal())
	return handleExecutionError(runErr)
}

// createHandler picks the IOHandler for the session.
func createHandler(opts RunOptions, in io.Reader, interactive bool) runner.IOHandler {
	if opts.JSON {
		return runner.NewJSONHandler(in, opts.Stdout)
	}
	color := !opts.NoColor && isTerminal(opts.Stderr)
	return runner.NewTextHandler(in, opts.Stdout,
		runner.WithErrorWriter(opts.Stderr),
		runner.WithErrorStyler(tui.ErrorStyler(color)),
		runner.WithInteractive(interactive),
	)
}

func openInput(opts RunOptions) (io.Reader, func(), error) {
	if opts.InputPath == "" || opts.InputPath == "-" {
		return opts.Stdin, func() {}, nil
	}
	f, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open commands file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
