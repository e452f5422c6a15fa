package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/toyrobot/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// An empty style detects a light or dark background automatically.
func NewRenderer(style string) (func(string) (string, error), error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(80))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render, nil
}

// Guide returns the command reference as markdown for table t.
func Guide(t domain.Table) string {
	return fmt.Sprintf(`# Commands

| Command | Effect |
|---|---|
| PLACE X,Y,F | put the robot on the table at X,Y facing F |
| MOVE | move one unit forward, stopping at the edge |
| LEFT / RIGHT | rotate 90 degrees |
| REPORT | print the position and heading |

The table spans **X %d..%d** and **Y %d..%d**. F is one of %s.
Commands are case-insensitive. Type *exit* to leave.
`, t.MinX, t.MaxX, t.MinY, t.MaxY, "NORTH, EAST, SOUTH, WEST")
}

// RenderGuide renders Guide(t) with render, falling back to the raw markdown.
func RenderGuide(render func(string) (string, error), t domain.Table) string {
	md := Guide(t)
	if render == nil {
		return md
	}
	out, err := render(md)
	if err != nil {
		return md
	}
	return out
}
