package runner

import "context"

// IOHandler defines the strategy for interacting with the outside world.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next raw command line.
	// It returns io.EOF when the source is exhausted or the user asked to leave.
	Input(ctx context.Context) (string, error)

	// Output publishes one line on the success channel.
	Output(ctx context.Context, line string) error

	// Error publishes one line on the error channel.
	Error(ctx context.Context, line string) error
}
