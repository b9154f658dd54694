package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	tllex "github.com/vyPal/tlc/lib/lexer"
)

// Kind classifies a diagnostic.
type Kind int

const (
	UnexpectedTopLevel Kind = iota
	MalformedFunction
	MalformedStruct
	MalformedDeclaration
	MalformedStatement
	MalformedExpression
	UnknownDataType
	InvalidToken
)

var kindNames = [...]string{
	UnexpectedTopLevel:   "unexpected top-level token",
	MalformedFunction:    "malformed function",
	MalformedStruct:      "malformed struct",
	MalformedDeclaration: "malformed declaration",
	MalformedStatement:   "malformed statement",
	MalformedExpression:  "malformed expression",
	UnknownDataType:      "unknown data type",
	InvalidToken:         "invalid token",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is one problem found while parsing. Token is the source text of
// the offending token.
type Diagnostic struct {
	Kind    Kind
	Pos     lexer.Position
	Message string
	Token   string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s (near %s)", d.Pos, d.Kind, d.Message, d.Token)
}

// Diagnostics is the ordered list of problems found in one parse.
type Diagnostics []Diagnostic

func (d Diagnostics) Error() string {
	lines := make([]string, 0, len(d))
	for _, diag := range d {
		lines = append(lines, diag.Error())
	}
	return strings.Join(lines, "\n")
}

// Err returns d as an error, or nil when there are no diagnostics.
func (d Diagnostics) Err() error {
	if len(d) == 0 {
		return nil
	}
	return d
}

// Count returns how many diagnostics are of kind k.
func (d Diagnostics) Count(k Kind) int {
	n := 0
	for _, diag := range d {
		if diag.Kind == k {
			n++
		}
	}
	return n
}

func (p *Parser) errorf(kind Kind, tok tllex.Token, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if tok.Is(tllex.Invalid) {
		kind = InvalidToken
		msg = "unrecognized input; " + msg
	}
	p.diags = append(p.diags, Diagnostic{
		Kind:    kind,
		Pos:     tok.Pos,
		Message: msg,
		Token:   tok.String(),
	})
}
