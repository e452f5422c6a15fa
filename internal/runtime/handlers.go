package runtime

import "github.com/aretw0/toyrobot/pkg/domain"

// Handlers are pure: they read the state they are given and return the next
// one. A rejected command returns the very same pointer it received.

// place validates the heading first, then the bounds. The first failure wins.
func (e *Engine) place(state *domain.State, x, y int, token string) domain.Event {
	dir, ok := domain.ParseDirection(token)
	if !ok {
		return domain.Event{State: state, Error: domain.InvalidDirectionMessage(token)}
	}
	if !e.table.Contains(x, y) {
		return domain.Event{State: state, Error: domain.OutOfBoundsMessage(x, y, e.table)}
	}
	return domain.Event{State: domain.NewState(x, y, dir)}
}

func report(state *domain.State) domain.Event {
	if state == nil {
		return notPlaced()
	}
	return domain.Event{State: state, Output: state.Report()}
}

// move advances one unit and clamps to the table. Running into an edge is not an error.
func (e *Engine) move(state *domain.State) domain.Event {
	if state == nil {
		return notPlaced()
	}
	dx, dy := state.Direction.Step()
	x, y := e.table.Clamp(state.X+dx, state.Y+dy)
	if x == state.X && y == state.Y {
		return domain.Event{State: state}
	}
	return domain.Event{State: domain.NewState(x, y, state.Direction)}
}

func turn(amount int, state *domain.State) domain.Event {
	if state == nil {
		return notPlaced()
	}
	next := *state
	next.Direction = state.Direction.Rotate(amount)
	return domain.Event{State: &next}
}

func turnLeft(state *domain.State) domain.Event {
	return turn(-1, state)
}

func turnRight(state *domain.State) domain.Event {
	return turn(1, state)
}

func reject(state *domain.State, raw string) domain.Event {
	return domain.Event{State: state, Error: domain.UninterpretableMessage(raw)}
}

func notPlaced() domain.Event {
	return domain.Event{Error: domain.MsgNotPlaced}
}
