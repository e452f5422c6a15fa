package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/toyrobot/internal/config"
	httpAdapter "github.com/aretw0/toyrobot/pkg/adapters/http"
	"github.com/aretw0/toyrobot/pkg/adapters/mcp"
	"github.com/aretw0/toyrobot/pkg/observability"
	"github.com/aretw0/toyrobot/pkg/runner"
	"github.com/aretw0/toyrobot/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	ConfigPath string
	EnvFile    string
	Port       int // overrides the configured port when positive
	Debug      bool
}

// MCPOptions contains the configuration for the mcp command.
type MCPOptions struct {
	ConfigPath string
	EnvFile    string
	Transport  string // stdio or sse
	Port       int
	Debug      bool
}

// newSession builds the shared robot plus its metrics.
func newSession(cfg config.Config, logger *slog.Logger, debug bool, metrics *observability.Metrics) (*session.Session, error) {
	engine, err := createEngine(cfg, logger, debug, metrics.Hooks())
	if err != nil {
		return nil, err
	}
	r := runner.NewRunner(
		runner.WithEngine(engine),
		runner.WithLogger(logger),
		runner.WithMaxInputSize(cfg.Input.MaxSize),
	)
	return session.New(r, session.WithLogger(logger)), nil
}

// RunServer starts the HTTP adapter and blocks until SIGINT/SIGTERM.
func RunServer(opts ServeOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return err
	}
	if opts.Port > 0 {
		cfg.Server.Port = opts.Port
	}

	logger, err := createLogger(cfg, opts.Debug, false)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	sess, err := newSession(cfg, logger, opts.Debug, metrics)
	if err != nil {
		return err
	}

	handler, err := httpAdapter.NewHandler(sess,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	return serve(sigCtx, srv, logger)
}

// serve runs srv until ctx ends, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Starting Toy Robot Server", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("Toy Robot Server stopped gracefully")
		return nil
	}
}

// RunMCP exposes the robot as MCP tools. In stdio mode Stdout belongs to JSON-RPC,
// so logs always go to Stderr or the configured file.
func RunMCP(opts MCPOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg, opts.Debug, false)
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, logger, opts.Debug, observability.NewMetrics())
	if err != nil {
		return err
	}
	srv := mcp.NewServer(sess, mcp.WithLogger(logger))

	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting Toy Robot MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		port := opts.Port
		if port <= 0 {
			port = cfg.Server.Port
		}
		sigCtx := NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		if err := srv.ServeSSE(sigCtx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", opts.Transport)
	}
}
