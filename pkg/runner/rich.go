package runner

import "github.com/aretw0/toyrobot/pkg/domain"

// RichResponse combines the outcome of one command with the state it left behind,
// for rich clients (Web, MCP, etc).
type RichResponse struct {
	Command string        `json:"command"`
	Output  string        `json:"output,omitempty"`
	Error   string        `json:"error,omitempty"`
	State   *domain.State `json:"state,omitempty"`
}

// NewRichResponse describes the event produced by raw.
func NewRichResponse(raw string, ev domain.Event) RichResponse {
	resp := RichResponse{
		Command: raw,
		Output:  ev.Output,
		Error:   ev.Error,
	}
	if ev.State != nil {
		s := *ev.State
		resp.State = &s
	}
	return resp
}
