package domain

import "fmt"

// State is the snapshot of a placed robot.
// A nil *State means the robot has not been placed yet.
//
// States are treated as immutable values: transitions build a new State
// instead of editing the one they were given.
type State struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Direction Direction `json:"direction"`
}

// NewState creates a placed state.
func NewState(x, y int, direction Direction) *State {
	return &State{X: x, Y: y, Direction: direction}
}

// Report renders the REPORT line, e.g. "> 0,1 NORTH".
func (s State) Report() string {
	return fmt.Sprintf("> %d,%d %s", s.X, s.Y, s.Direction)
}

func (s State) String() string {
	return fmt.Sprintf("%d,%d %s", s.X, s.Y, s.Direction)
}
