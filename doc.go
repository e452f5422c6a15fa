/*
Package toyrobot simulates a robot moving on a bounded square tabletop, driven by textual commands.

It is a deterministic command interpreter: given the current robot state and one command line,
the engine computes the next state and at most one observable line, either a report or an error.
A runner folds an ordered stream of lines through the engine and splits the results into two
ordered channels, one for successful reports and one for errors.

# Commands

	PLACE X,Y,F   put the robot at X,Y facing F (NORTH, EAST, SOUTH or WEST)
	MOVE          move one unit forward; moves off the table are absorbed at the edge
	LEFT, RIGHT   rotate a quarter turn
	REPORT        print "> X,Y F"

Commands are case-insensitive. Anything else is reported as
"The command ' ... ' could not be interpreted" and leaves the robot untouched.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/toyrobot"
		"github.com/aretw0/toyrobot/pkg/runner"
	)

	func main() {
		eng, err := toyrobot.New()
		if err != nil {
			log.Fatal(err)
		}

		r := runner.NewRunner(runner.WithEngine(eng))
		std, errs := r.Collect(context.Background(), "PLACE 0,0,NORTH", "MOVE", "REPORT")
		fmt.Println(std)  // [> 0,1 NORTH]
		fmt.Println(errs) // []
	}
*/
package toyrobot
