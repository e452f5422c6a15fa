package domain

import "strings"

// Direction is the compass heading of a placed robot.
type Direction string

const (
	North Direction = "NORTH"
	East  Direction = "EAST"
	South Direction = "SOUTH"
	West  Direction = "WEST"
)

// Compass is the clockwise rotation cycle. RIGHT advances through it, LEFT walks it backwards.
var Compass = [...]Direction{North, East, South, West}

// ParseDirection normalizes token to upper case and reports whether it names a compass heading.
func ParseDirection(token string) (Direction, bool) {
	d := Direction(strings.ToUpper(strings.TrimSpace(token)))
	return d, d.Valid()
}

// Valid reports whether d is one of the four compass headings.
func (d Direction) Valid() bool {
	return d.index() >= 0
}

// Rotate advances d by amount quarter turns (negative is counter-clockwise).
// An invalid direction is returned unchanged.
func (d Direction) Rotate(amount int) Direction {
	i := d.index()
	if i < 0 {
		return d
	}
	n := len(Compass)
	return Compass[((i+amount)%n+n)%n]
}

// Step returns the unit movement along the heading.
// NORTH and EAST are positive, SOUTH and WEST negative.
func (d Direction) Step() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	return string(d)
}

func (d Direction) index() int {
	for i, c := range Compass {
		if c == d {
			return i
		}
	}
	return -1
}

// directionList renders the valid headings for error messages.
func directionList() string {
	names := make([]string, len(Compass))
	for i, d := range Compass {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
