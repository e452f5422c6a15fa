package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/aretw0/toyrobot"
	"github.com/aretw0/toyrobot/internal/logging"
	"github.com/aretw0/toyrobot/pkg/domain"
	"github.com/aretw0/toyrobot/pkg/runner"
	"github.com/aretw0/toyrobot/pkg/session"
)

// Session is the part of session.Session the server needs.
type Session interface {
	SubmitBatch(ctx context.Context, observe func(runner.RichResponse), commands ...string) session.Batch
	Snapshot() *domain.State
	Table() domain.Table
}

var _ Session = (*session.Session)(nil)

// CommandRequest is the body of POST /commands. Command and Commands may be combined;
// Command is applied first.
type CommandRequest struct {
	Command  *string  `json:"command,omitempty"`
	Commands []string `json:"commands,omitempty"`
}

// CommandResponse is the reply of POST /commands.
type CommandResponse struct {
	Events []runner.RichResponse `json:"events"`
	State  *domain.State         `json:"state,omitempty"`
}

// StateResponse is the reply of GET /state.
type StateResponse struct {
	Placed bool `json:"placed"`
	*domain.State
	Table domain.Table `json:"table"`
}

// Server exposes one robot over HTTP.
type Server struct {
	Session Session
	Streams *StreamManager

	doc     *openapi3.T
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the HTTP handler.
type Option func(*Server)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the session.
// It fails if the embedded OpenAPI document does not validate.
func NewHandler(sess Session, opts ...Option) (http.Handler, error) {
	server := &Server{
		Session: sess,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams = NewStreamManager(server.logger)

	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	server.doc = doc

	validate, err := requestValidator(doc, server.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Post("/commands", server.SubmitCommands)
		r.Get("/state", server.GetState)
		r.Get("/events", server.SubscribeEvents)
		r.Get("/health", server.GetHealth)
		r.Get("/info", server.GetInfo)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SubmitCommands handles the POST /commands request.
func (s *Server) SubmitCommands(w http.ResponseWriter, r *http.Request) {
	var body CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("SubmitCommands: Invalid request body", "err", err)
		return
	}

	var commands []string
	if body.Command != nil {
		commands = append(commands, *body.Command)
	}
	commands = append(commands, body.Commands...)
	if len(commands) == 0 {
		http.Error(w, "Invalid request body: command or commands is required", http.StatusBadRequest)
		return
	}

	// Broadcasting under the session lock keeps the SSE order equal to the
	// order commands were applied in.
	batch := s.Session.SubmitBatch(r.Context(), func(ev runner.RichResponse) {
		data, err := json.Marshal(ev)
		if err != nil {
			s.logger.Error("SubmitCommands: failed to encode event", "err", err)
			return
		}
		s.Streams.Broadcast(string(data))
	}, commands...)

	writeJSON(w, s.logger, CommandResponse{
		Events: batch.Events,
		State:  batch.State,
	})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	state := s.Session.Snapshot()
	writeJSON(w, s.logger, StateResponse{
		Placed: state != nil,
		State:  state,
		Table:  s.Session.Table(),
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.doc != nil && s.doc.Info != nil {
		apiVersion = s.doc.Info.Version
	}
	writeJSON(w, s.logger, map[string]string{
		"app":         "toyrobot-http",
		"version":     strings.TrimSpace(toyrobot.Version),
		"api_version": apiVersion,
		"table":       s.Session.Table().String(),
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", fmt.Errorf("encode %T: %w", v, err))
	}
}
