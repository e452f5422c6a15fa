package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/toyrobot"
	"github.com/aretw0/toyrobot/internal/logging"
	"github.com/aretw0/toyrobot/pkg/domain"
	"github.com/aretw0/toyrobot/pkg/runner"
)

// StateURI is the resource exposing the current robot state.
const StateURI = "toyrobot://state"

// CommandResult aligns with the HTTP CommandEvent schema.
type CommandResult struct {
	Command string        `json:"command" jsonschema_description:"The command as received"`
	Output  string        `json:"output,omitempty" jsonschema_description:"Success line, e.g. a REPORT"`
	Error   string        `json:"error,omitempty" jsonschema_description:"Error line when the command was rejected"`
	State   *domain.State `json:"state,omitempty" jsonschema_description:"Robot state after the command, absent if not placed"`
}

// StateResult describes the robot without changing it.
type StateResult struct {
	Placed bool          `json:"placed" jsonschema_description:"Whether the robot is on the table"`
	State  *domain.State `json:"state,omitempty" jsonschema_description:"Position and heading"`
	Table  domain.Table  `json:"table" jsonschema_description:"Inclusive table bounds"`
}

// Session is the part of session.Session the MCP server needs.
type Session interface {
	Submit(ctx context.Context, commands ...string) []runner.RichResponse
	Snapshot() *domain.State
	Table() domain.Table
}

// Server wraps a robot session and exposes it as an MCP Server.
type Server struct {
	session   Session
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger. Logs must never go to Stdout in stdio mode.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sess Session, opts ...Option) *Server {
	s := &Server{
		session: sess,
		logger:  logging.NewNop(),
		mcpServer: server.NewMCPServer("toyrobot-mcp", strings.TrimSpace(toyrobot.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: execute_command
	executeTool := mcp.NewTool("execute_command",
		mcp.WithDescription("Apply one toy robot command: PLACE X,Y,F | MOVE | LEFT | RIGHT | REPORT. "+
			"Rejected commands come back with an error and leave the robot unchanged."),
		mcp.WithString("command", mcp.Required(), mcp.Description("The command line, e.g. 'PLACE 0,0,NORTH'")),
		mcp.WithOutputSchema[CommandResult](),
	)
	s.mcpServer.AddTool(executeTool, mcp.NewStructuredToolHandler(s.handleExecute))

	// TOOL: report_state
	stateTool := mcp.NewTool("report_state",
		mcp.WithDescription("Describe the robot's position and heading without moving it."),
		mcp.WithOutputSchema[StateResult](),
	)
	s.mcpServer.AddTool(stateTool, mcp.NewStructuredToolHandler(s.handleReportState))
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CommandResult, error) {
	command, ok := args["command"].(string)
	if !ok {
		return CommandResult{}, fmt.Errorf("argument 'command' must be a string")
	}

	responses := s.session.Submit(ctx, command)
	if len(responses) == 0 {
		return CommandResult{}, fmt.Errorf("command not applied: %w", ctx.Err())
	}
	r := responses[0]
	if r.Error != "" {
		s.logger.Debug("MCP execute_command rejected", "command", command, "reason", r.Error)
	}
	return CommandResult{Command: r.Command, Output: r.Output, Error: r.Error, State: r.State}, nil
}

func (s *Server) handleReportState(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StateResult, error) {
	return s.describe(), nil
}

func (s *Server) describe() StateResult {
	state := s.session.Snapshot()
	return StateResult{
		Placed: state != nil,
		State:  state,
		Table:  s.session.Table(),
	}
}

func (s *Server) registerResources() {
	// EXPOSE: toyrobot://state
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Current Robot State",
		mcp.WithResourceDescription("Position, heading and table bounds of the robot"),
		mcp.WithMIMEType("application/json"),
	), s.readState)
}

func (s *Server) readState(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.describe())
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StateURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
