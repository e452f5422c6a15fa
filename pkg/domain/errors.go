package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTable is returned when table bounds describe no cells.
var ErrInvalidTable = errors.New("invalid table bounds")

// MsgNotPlaced is emitted by every command except PLACE while the robot is off the table.
const MsgNotPlaced = "Robot has not been placed"

// InvalidDirectionMessage names the rejected heading and the accepted ones.
func InvalidDirectionMessage(token string) string {
	return fmt.Sprintf("Invalid direction '%s'. Valid directions are %s", token, directionList())
}

// OutOfBoundsMessage names the rejected coordinates and the table ranges.
func OutOfBoundsMessage(x, y int, t Table) string {
	return fmt.Sprintf("Invalid position %d,%d. X must be within %d..%d and Y within %d..%d",
		x, y, t.MinX, t.MaxX, t.MinY, t.MaxY)
}

// UninterpretableMessage reports input that matched no command.
func UninterpretableMessage(raw string) string {
	return fmt.Sprintf("The command ' %s ' could not be interpreted", raw)
}
