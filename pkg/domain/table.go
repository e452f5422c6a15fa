package domain

import "fmt"

// DefaultTableSize is the edge length of the standard 5x5 tabletop.
const DefaultTableSize = 5

// Table defines the inclusive coordinate range a robot may occupy.
type Table struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

// DefaultTable returns the 0..4 by 0..4 tabletop.
func DefaultTable() Table {
	return NewSquareTable(DefaultTableSize)
}

// NewSquareTable returns a table spanning 0..size-1 on both axes.
func NewSquareTable(size int) Table {
	return Table{MinX: 0, MaxX: size - 1, MinY: 0, MaxY: size - 1}
}

// Validate ensures the bounds describe at least one cell.
func (t Table) Validate() error {
	if t.MinX > t.MaxX {
		return fmt.Errorf("%w: x range %d..%d", ErrInvalidTable, t.MinX, t.MaxX)
	}
	if t.MinY > t.MaxY {
		return fmt.Errorf("%w: y range %d..%d", ErrInvalidTable, t.MinY, t.MaxY)
	}
	return nil
}

// Contains reports whether (x, y) lies on the table.
func (t Table) Contains(x, y int) bool {
	return x >= t.MinX && x <= t.MaxX && y >= t.MinY && y <= t.MaxY
}

// Clamp pulls (x, y) back onto the nearest edge of the table.
func (t Table) Clamp(x, y int) (int, int) {
	return clamp(x, t.MinX, t.MaxX), clamp(y, t.MinY, t.MaxY)
}

func (t Table) String() string {
	return fmt.Sprintf("X %d..%d, Y %d..%d", t.MinX, t.MaxX, t.MinY, t.MaxY)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
