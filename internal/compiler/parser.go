package compiler

import (
	"errors"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/aretw0/toyrobot/pkg/domain"
)

// commandLexer tokenizes a single command line. Whitespace is significant:
// PLACE needs a separator before its arguments and none inside the comma list.
var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Word", Pattern: `\w+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Space", Pattern: `[ \t]+`},
})

// line is the command grammar. Alternatives are tried in declaration order.
type line struct {
	Place  *placeArgs `parser:"  @@"`
	Report bool       `parser:"| @'REPORT'"`
	Move   bool       `parser:"| @'MOVE'"`
	Left   bool       `parser:"| @'LEFT'"`
	Right  bool       `parser:"| @'RIGHT'"`
}

type placeArgs struct {
	X         string `parser:"'PLACE' Space @Int Comma"`
	Y         string `parser:"@Int Comma"`
	Direction string `parser:"@(Word | Int)"`
}

var grammar = participle.MustBuild[line](
	participle.Lexer(commandLexer),
	participle.CaseInsensitive("Word"),
)

// Parser converts raw command lines into domain commands.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse maps raw to exactly one command. It never fails: anything that does
// not match the grammar becomes domain.Invalid carrying the original text.
func (p *Parser) Parse(raw string) domain.Command {
	ast, err := grammar.ParseString("", raw)
	if err != nil || ast == nil {
		return domain.Invalid{Raw: raw}
	}

	switch {
	case ast.Place != nil:
		x, errX := parseCoordinate(ast.Place.X)
		y, errY := parseCoordinate(ast.Place.Y)
		if errX != nil || errY != nil {
			return domain.Invalid{Raw: raw}
		}
		return domain.Place{X: x, Y: y, Direction: ast.Place.Direction}
	case ast.Report:
		return domain.Report{}
	case ast.Move:
		return domain.Move{}
	case ast.Left:
		return domain.Left{}
	case ast.Right:
		return domain.Right{}
	}
	return domain.Invalid{Raw: raw}
}

// parseCoordinate converts an Int token. Values beyond the int range saturate,
// so the line still reaches PLACE and fails its bounds check.
func parseCoordinate(token string) (int, error) {
	v, err := strconv.ParseInt(token, 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return int(v), nil
}
