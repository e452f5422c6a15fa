package domain

// Event is the result of applying one command.
// Output and Error are mutually exclusive; an event may carry neither.
type Event struct {
	// State is the robot state after the command. Nil when the robot is still unplaced.
	State *State `json:"state,omitempty"`

	// Output is a success line destined for the standard channel.
	Output string `json:"output,omitempty"`

	// Error is a failure line destined for the error channel.
	Error string `json:"error,omitempty"`
}

// HasOutput reports whether the event produces a success line.
func (e Event) HasOutput() bool {
	return e.Output != ""
}

// HasError reports whether the event produces an error line.
func (e Event) HasError() bool {
	return e.Error != ""
}

// Outcome classifies the event for observers.
func (e Event) Outcome() Outcome {
	switch {
	case e.HasError():
		return OutcomeError
	case e.HasOutput():
		return OutcomeOutput
	default:
		return OutcomeApplied
	}
}

// Outcome is the coarse classification of an Event.
type Outcome string

const (
	OutcomeApplied Outcome = "applied" // state changed or kept, nothing to print
	OutcomeOutput  Outcome = "output"  // success line emitted
	OutcomeError   Outcome = "error"   // error line emitted
)
