/*
Package domain contains the core models of the toy robot simulator.

It defines the robot State, the closed set of Commands, the Event produced by
applying a command, and the Table that bounds every position. The package is
kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - State: a placed robot (x, y, heading). A nil *State means "not placed".
  - Command: Place, Report, Move, Left, Right or Invalid.
  - Event: the next state plus at most one output or error line.
  - Table: the inclusive bounds of the tabletop (0..4 on both axes by default).
*/
package domain
