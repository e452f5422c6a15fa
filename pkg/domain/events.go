package domain

import (
	"context"
	"time"
)

// CommandRecord describes one applied command for observers.
type CommandRecord struct {
	Timestamp time.Time   `json:"timestamp"`
	Command   CommandKind `json:"command"`
	Raw       string      `json:"raw,omitempty"`
	Outcome   Outcome     `json:"outcome"`
	Message   string      `json:"message,omitempty"` // output or error text
	State     *State      `json:"state,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks observe; they cannot alter the event.
type LifecycleHooks struct {
	OnCommand func(context.Context, *CommandRecord)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	switch {
	case h.OnCommand == nil:
		return other
	case other.OnCommand == nil:
		return h
	}
	first, second := h.OnCommand, other.OnCommand
	return LifecycleHooks{
		OnCommand: func(ctx context.Context, r *CommandRecord) {
			first(ctx, r)
			second(ctx, r)
		},
	}
}
