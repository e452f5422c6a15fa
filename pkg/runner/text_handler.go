package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// DefaultPrompt is printed before each read in interactive mode.
const DefaultPrompt = "> "

// TextHandler implements the standard text-based interface.
// Success lines go to Writer, error lines to ErrWriter.
type TextHandler struct {
	Reader    *bufio.Reader
	Writer    io.Writer
	ErrWriter io.Writer

	// ErrorStyler decorates error lines (e.g. red on a colour terminal).
	ErrorStyler func(string) string

	// Interactive enables the prompt and the exit/quit keywords.
	Interactive bool
	Prompt      string

	inputChan chan inputResult
	startOnce sync.Once
	mu        sync.Mutex

	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithErrorWriter sends the error channel to w instead of the success writer.
func WithErrorWriter(w io.Writer) TextHandlerOption {
	return func(h *TextHandler) {
		h.ErrWriter = w
	}
}

// WithErrorStyler configures the error line decorator.
func WithErrorStyler(styler func(string) string) TextHandlerOption {
	return func(h *TextHandler) {
		h.ErrorStyler = styler
	}
}

// WithInteractive marks the reader as a terminal typed into by a person.
func WithInteractive(interactive bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Interactive = interactive
	}
}

// WithPrompt overrides DefaultPrompt.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.ErrWriter == nil {
		h.ErrWriter = h.Writer
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) stopped() chan struct{} {
	h.doneOnce.Do(func() {
		h.done = make(chan struct{})
	})
	return h.done
}

// Close stops the background reader. Later Input calls return io.EOF.
// A pump blocked inside Read exits once that Read returns.
func (h *TextHandler) Close() error {
	h.closeOnce.Do(func() {
		close(h.stopped())
	})
	return nil
}

// pump reads lines in the background so Input can honour ctx.
func (h *TextHandler) pump() {
	defer close(h.inputChan)
	done := h.stopped()
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" && !h.send(done, inputResult{text: text}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				h.send(done, inputResult{err: err})
			}
			return
		}
	}
}

// send hands res to Input, giving up once the handler is closed.
func (h *TextHandler) send(done <-chan struct{}, res inputResult) bool {
	select {
	case <-done:
		return false
	default:
	}
	select {
	case h.inputChan <- res:
		return true
	case <-done:
		return false
	}
}

// Input returns the next line with its line terminator removed.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	done := h.stopped()
	select {
	case <-done:
		return "", io.EOF
	default:
	}
	h.initPump()

	if h.Interactive {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			h.write(h.Writer, h.Prompt)
		}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-done:
		return "", io.EOF
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		text := strings.TrimRight(res.text, "\r\n")
		if h.Interactive && isExitKeyword(text) {
			return "", io.EOF
		}
		return text, nil
	}
}

func (h *TextHandler) Output(ctx context.Context, line string) error {
	return h.write(h.Writer, line+"\n")
}

func (h *TextHandler) Error(ctx context.Context, line string) error {
	if h.ErrorStyler != nil {
		line = h.ErrorStyler(line)
	}
	return h.write(h.ErrWriter, line+"\n")
}

func (h *TextHandler) write(w io.Writer, s string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprint(w, s)
	return err
}

func isExitKeyword(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "exit", "quit":
		return true
	}
	return false
}
