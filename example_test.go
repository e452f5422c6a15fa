package toyrobot_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/toyrobot"
	"github.com/aretw0/toyrobot/pkg/domain"
)

// ExampleEngine_Apply drives the engine one line at a time, threading the state by hand.
func ExampleEngine_Apply() {
	engine, err := toyrobot.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	var state *domain.State
	for _, line := range []string{"REPORT", "PLACE 0,0,NORTH", "MOVE", "RIGHT", "REPORT"} {
		ev := engine.Apply(ctx, state, line)
		switch {
		case ev.Output != "":
			fmt.Println("out:", ev.Output)
		case ev.Error != "":
			fmt.Println("err:", ev.Error)
		}
		state = ev.State
	}

	// Output:
	// err: Robot has not been placed
	// out: > 0,1 EAST
}
