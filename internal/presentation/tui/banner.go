package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the toyrobot ASCII art banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _____            ___       _         _   ", "#34d399"},
		{" |_   _|__ _  _   | _ \\___  | |__  ___| |_ ", "#2dd4bf"},
		{"   | |/ _ \\ || |  |   / _ \\ | '_ \\/ _ \\  _|", "#22d3ee"},
		{"   |_|\\___/\\_, |  |_|_\\___/ |_.__/\\___/\\__|", "#38bdf8"},
		{"           |__/                             ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}

// ErrorStyler returns a decorator painting error lines red.
// With color disabled it returns lines unchanged.
func ErrorStyler(color bool) func(string) string {
	if !color || termenv.EnvNoColor() {
		return func(s string) string { return s }
	}
	return func(s string) string {
		return termenv.String(s).Foreground(termenv.ANSIRed).String()
	}
}
