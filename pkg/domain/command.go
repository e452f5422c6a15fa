package domain

// CommandKind names a command variant for logs and metrics.
type CommandKind string

const (
	KindPlace   CommandKind = "place"
	KindReport  CommandKind = "report"
	KindMove    CommandKind = "move"
	KindLeft    CommandKind = "left"
	KindRight   CommandKind = "right"
	KindInvalid CommandKind = "invalid"
)

// Command is a parsed robot instruction. The set of implementations is closed:
// Place, Report, Move, Left, Right and Invalid.
type Command interface {
	Kind() CommandKind
	command()
}

// Place puts the robot on the table. Direction is the raw token as typed;
// it is validated when the command is applied.
type Place struct {
	X         int
	Y         int
	Direction string
}

// Report asks for the current position.
type Report struct{}

// Move advances one unit in the current heading.
type Move struct{}

// Left rotates a quarter turn counter-clockwise.
type Left struct{}

// Right rotates a quarter turn clockwise.
type Right struct{}

// Invalid carries any input that matched no command pattern.
type Invalid struct {
	Raw string
}

func (Place) Kind() CommandKind   { return KindPlace }
func (Report) Kind() CommandKind  { return KindReport }
func (Move) Kind() CommandKind    { return KindMove }
func (Left) Kind() CommandKind    { return KindLeft }
func (Right) Kind() CommandKind   { return KindRight }
func (Invalid) Kind() CommandKind { return KindInvalid }

func (Place) command()   {}
func (Report) command()  {}
func (Move) command()    {}
func (Left) command()    {}
func (Right) command()   {}
func (Invalid) command() {}
