package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Every event is written to Writer as {"output": "..."} or {"error": "..."}.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	mu sync.Mutex
}

// JSONLine is one record of the JSON-Lines output.
type JSONLine struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// jsonCommand is the object form accepted on input.
type jsonCommand struct {
	Command string `json:"command"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // reports start with '>'
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: enc,
	}
}

// Input reads one line. Accepted forms: a JSON string ("MOVE"),
// an object ({"command": "MOVE"}), or plain text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	var cmd jsonCommand
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &cmd); err == nil {
			return cmd.Command, nil
		}
	}

	// Fallback: return raw text (e.g. if they just sent plain text)
	return text, nil
}

func (h *JSONHandler) Output(ctx context.Context, line string) error {
	return h.encode(JSONLine{Output: line})
}

func (h *JSONHandler) Error(ctx context.Context, line string) error {
	return h.encode(JSONLine{Error: line})
}

func (h *JSONHandler) encode(v JSONLine) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(v)
}
