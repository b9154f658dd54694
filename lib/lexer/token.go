package tllex

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind identifies a TL token.
type Kind int

const (
	Invalid Kind = iota
	EOF

	// Keywords
	Func
	Struct
	Const
	Import
	Is
	End
	Return
	Var
	While
	Do
	If
	Then
	Elif
	Else
	Break
	Continue
	True
	False

	// Data types
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	String
	Char
	Bool

	// Symbols
	LParen
	RParen
	LBracket
	RBracket
	Dot
	Comma
	SemiColon
	Colon
	Arrow

	// Operators
	Assign
	Add
	Sub
	Mul
	Div
	Mod
	And
	Or
	Xor
	Eq
	Ne
	Gt
	Ge
	Lt
	Le
	LGAnd
	LGOr

	// Literals
	Id
	IntL
	StringL
	CharL
)

var kindNames = map[Kind]string{
	Invalid:   "invalid",
	EOF:       "EOF",
	Func:      "func",
	Struct:    "struct",
	Const:     "const",
	Import:    "import",
	Is:        "is",
	End:       "end",
	Return:    "return",
	Var:       "var",
	While:     "while",
	Do:        "do",
	If:        "if",
	Then:      "then",
	Elif:      "elif",
	Else:      "else",
	Break:     "break",
	Continue:  "continue",
	True:      "true",
	False:     "false",
	I8:        "i8",
	U8:        "u8",
	I16:       "i16",
	U16:       "u16",
	I32:       "i32",
	U32:       "u32",
	I64:       "i64",
	U64:       "u64",
	String:    "string",
	Char:      "char",
	Bool:      "bool",
	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	Dot:       ".",
	Comma:     ",",
	SemiColon: ";",
	Colon:     ":",
	Arrow:     "->",
	Assign:    ":=",
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
	Mod:       "%",
	And:       "&",
	Or:        "|",
	Xor:       "^",
	Eq:        "=",
	Ne:        "!=",
	Gt:        ">",
	Ge:        ">=",
	Lt:        "<",
	Le:        "<=",
	LGAnd:     "&&",
	LGOr:      "||",
	Id:        "identifier",
	IntL:      "integer literal",
	StringL:   "string literal",
	CharL:     "character literal",
}

// keywords maps reserved words to their kind. Everything else scanned as an
// identifier is an Id.
var keywords = map[string]Kind{}

// symbols maps punctuation lexemes to their kind.
var symbols = map[string]Kind{}

func init() {
	for k := Func; k <= Bool; k++ {
		keywords[kindNames[k]] = k
	}
	for k := LParen; k <= LGOr; k++ {
		symbols[kindNames[k]] = k
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical unit. Value holds the text of identifiers,
// string literals and invalid input; Int and Char hold the decoded payload of
// integer and character literals.
type Token struct {
	Kind  Kind
	Value string
	Int   uint64
	Char  rune
	Pos   lexer.Position
}

// Is reports whether the token is of kind k.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// EOF reports whether the token marks the end of the stream.
func (t Token) EOF() bool {
	return t.Kind == EOF
}

// String renders the token the way it would appear in source.
func (t Token) String() string {
	switch t.Kind {
	case Id:
		return t.Value
	case IntL:
		return strconv.FormatUint(t.Int, 10)
	case StringL:
		return `"` + t.Value + `"`
	case CharL:
		return strconv.QuoteRuneToASCII(t.Char)
	case Invalid:
		return strconv.Quote(t.Value)
	}
	return t.Kind.String()
}
