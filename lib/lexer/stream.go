package tllex

import (
	"io"
	"os"
)

// Stream is the token cursor the parser reads from. It holds at most one
// pushed back token, which is enough for the single token of lookahead the
// grammar needs.
type Stream struct {
	scanner *Scanner
	back    *Token
	last    Token
	err     error
}

// NewStream creates a stream over r.
func NewStream(filename string, r io.Reader) (*Stream, error) {
	s, err := Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return &Stream{scanner: s}, nil
}

// NewStringStream creates a stream over source text.
func NewStringStream(filename, src string) (*Stream, error) {
	s, err := LexString(filename, src)
	if err != nil {
		return nil, err
	}
	return &Stream{scanner: s}, nil
}

// OpenStream reads filename and creates a stream over its contents.
func OpenStream(filename string) (*Stream, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s, err := LexBytes(filename, src)
	if err != nil {
		return nil, err
	}
	return &Stream{scanner: s}, nil
}

// Next returns the pushed back token if there is one, otherwise the next
// token from the scanner. A read error ends the stream; it is kept for Err.
func (s *Stream) Next() Token {
	if s.back != nil {
		tok := *s.back
		s.back = nil
		s.last = tok
		return tok
	}

	tok, err := s.scanner.Scan()
	if err != nil && s.err == nil {
		s.err = err
	}
	s.last = tok
	return tok
}

// Unget pushes tok back so that the following Next returns it. Pushing back a
// second token before the first was read again is a programming error.
func (s *Stream) Unget(tok Token) {
	if s.back != nil {
		panic("tllex: Unget called twice without Next")
	}
	s.back = &tok
}

// Last returns the most recently read token.
func (s *Stream) Last() Token {
	return s.last
}

// Err returns the first read error, if any.
func (s *Stream) Err() error {
	return s.err
}
