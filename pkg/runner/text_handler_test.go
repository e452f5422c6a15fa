package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out,
		WithErrorWriter(errOut),
		WithErrorStyler(func(s string) string { return "!! " + s }),
	)

	require.NoError(t, handler.Output(context.Background(), "> 0,1 NORTH"))
	require.NoError(t, handler.Error(context.Background(), "Robot has not been placed"))

	assert.Equal(t, "> 0,1 NORTH\n", out.String())
	assert.Equal(t, "!! Robot has not been placed\n", errOut.String())
}

func TestTextHandler_ErrorsShareWriterByDefault(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out)

	require.NoError(t, handler.Output(context.Background(), "a"))
	require.NoError(t, handler.Error(context.Background(), "b"))
	assert.Equal(t, "a\nb\n", out.String())
}

func TestTextHandler_Input(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("PLACE 0,0,NORTH\r\nexit\nREPORT"), out)
	ctx := context.Background()

	val, err := handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PLACE 0,0,NORTH", val)

	// Not interactive: exit is an ordinary line.
	val, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "exit", val)

	val, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REPORT", val)

	_, err = handler.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, out.String(), "no prompt outside interactive mode")
}

func TestTextHandler_Interactive(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("MOVE\nQuit\nREPORT\n"), out, WithInteractive(true))
	ctx := context.Background()

	val, err := handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MOVE", val)

	_, err = handler.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > ", out.String())
}

func TestTextHandler_Input_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	handler := NewTextHandler(pr, &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// endlessReader never runs dry.
type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = "MOVE\n"[i%5]
	}
	return len(p), nil
}

func TestTextHandler_CloseStopsPump(t *testing.T) {
	handler := NewTextHandler(endlessReader{}, io.Discard)

	line, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MOVE", line)

	require.NoError(t, handler.Close())
	require.NoError(t, handler.Close())

	_, err = handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)

	// The pump closes its channel once it notices the handler is closed.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-handler.inputChan:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("pump goroutine still running after Close")
		}
	}
}

func TestTextHandler_CloseBeforeInput(t *testing.T) {
	handler := NewTextHandler(strings.NewReader("REPORT\n"), io.Discard)
	require.NoError(t, handler.Close())

	_, err := handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}
