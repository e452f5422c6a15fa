/*
Package runner implements the fold driver and I/O orchestration for the toy robot engine.

It acts as the bridge between the stateless engine and the outside world.
The runner owns the single carried robot state, applies commands one at a time in
arrival order, and demultiplexes every event onto a success channel and an error channel.

# Key Components

  - Runner: the fold. Step for one line, Run over an IOHandler, Stream over channels,
    Collect over a slice.
  - IOHandler: decouples where lines come from and where both channels go.
  - TextHandler: plain text, errors optionally on their own writer and styled.
  - JSONHandler: JSON-Lines ({"output": ...} / {"error": ...}).
  - SanitizeInput: size, UTF-8 and control-character checks applied to every line.
    A refused line is still dispatched, as an invalid command.

# Usage

	r := runner.NewRunner(
		runner.WithEngine(engine),
		runner.WithLogger(logger),
	)

	handler := runner.NewTextHandler(os.Stdin, os.Stdout, runner.WithErrorWriter(os.Stderr))
	if err := r.Run(ctx, handler); err != nil {
		log.Fatal(err)
	}
*/
package runner
