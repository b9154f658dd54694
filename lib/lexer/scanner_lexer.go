package tllex

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Definition is the rule set for TL source text. Rules are tried in order, so
// multi-character operators come before their single-character prefixes.
var Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `:=|->|&&|\|\||!=|>=|<=|[-+*/%&|^=<>()\[\].,;:]`},
	{Name: "Invalid", Pattern: `.`},
})

var (
	symWhitespace = Definition.Symbols()["Whitespace"]
	symComment    = Definition.Symbols()["Comment"]
	symString     = Definition.Symbols()["String"]
	symChar       = Definition.Symbols()["Char"]
	symInt        = Definition.Symbols()["Int"]
	symIdent      = Definition.Symbols()["Ident"]
	symPunct      = Definition.Symbols()["Punct"]
)

// Scanner turns participle tokens into TL tokens, dropping whitespace and
// comments on the way.
type Scanner struct {
	lex      lexer.Lexer
	filename string
	done     bool
}

// Lex an io.Reader containing TL source.
func Lex(filename string, r io.Reader) (*Scanner, error) {
	l, err := Definition.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return &Scanner{lex: l, filename: filename}, nil
}

// LexBytes returns a scanner over bytes.
func LexBytes(filename string, b []byte) (*Scanner, error) {
	return Lex(filename, bytes.NewReader(b))
}

// LexString returns a scanner over a string.
func LexString(filename, s string) (*Scanner, error) {
	return Lex(filename, strings.NewReader(s))
}

// Scan returns the next token. Once the input is exhausted every call returns
// an EOF token. Errors come from the underlying reader only; text that does
// not form a token is returned as an Invalid token.
func (s *Scanner) Scan() (Token, error) {
	for {
		if s.done {
			return Token{Kind: EOF, Pos: lexer.Position{Filename: s.filename}}, nil
		}

		t, err := s.lex.Next()
		if err != nil {
			s.done = true
			return Token{Kind: EOF, Pos: t.Pos}, err
		}

		switch t.Type {
		case lexer.EOF:
			s.done = true
			return Token{Kind: EOF, Pos: t.Pos}, nil
		case symWhitespace, symComment:
			continue
		}

		return convert(t), nil
	}
}

// All scans the remaining input into a slice, EOF excluded.
func (s *Scanner) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.Scan()
		if err != nil {
			return tokens, err
		}
		if tok.EOF() {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func convert(t lexer.Token) Token {
	tok := Token{Kind: Invalid, Value: t.Value, Pos: t.Pos}

	switch t.Type {
	case symIdent:
		if k, ok := keywords[t.Value]; ok {
			tok.Kind = k
		} else {
			tok.Kind = Id
		}
	case symInt:
		val, err := strconv.ParseUint(t.Value, 10, 64)
		if err == nil {
			tok.Kind = IntL
			tok.Int = val
		}
	case symString:
		tok.Kind = StringL
		tok.Value = t.Value[1 : len(t.Value)-1]
	case symChar:
		if c, ok := decodeChar(t.Value[1 : len(t.Value)-1]); ok {
			tok.Kind = CharL
			tok.Char = c
		}
	case symPunct:
		tok.Kind = symbols[t.Value]
	}

	return tok
}

func decodeChar(s string) (rune, bool) {
	c, _, tail, err := strconv.UnquoteChar(s, '\'')
	if err != nil || tail != "" {
		return 0, false
	}
	return c, true
}
