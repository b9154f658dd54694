package parser

import (
	"github.com/vyPal/tlc/lib/ast"
	tllex "github.com/vyPal/tlc/lib/lexer"
)

// Parser builds the AST of one TL file from a token stream. It never stops at
// a malformed construct: problems are collected as diagnostics and parsing
// continues with the next token.
type Parser struct {
	FileName string

	stream *tllex.Stream
	diags  Diagnostics

	imports   []string
	consts    []ast.Arg
	structs   []*ast.Struct
	functions []*ast.Function
}

func New(filename string, stream *tllex.Stream) *Parser {
	return &Parser{FileName: filename, stream: stream}
}

// ParseFile reads and parses filename. The error is non-nil only when the
// file cannot be read; syntax problems are reported through Diagnostics.
func ParseFile(filename string) (*ast.File, Diagnostics, error) {
	stream, err := tllex.OpenStream(filename)
	if err != nil {
		return nil, nil, err
	}

	p := New(filename, stream)
	file := p.Run()
	return file, p.Diagnostics(), stream.Err()
}

// ParseString parses source text.
func ParseString(filename, code string) (*ast.File, Diagnostics, error) {
	stream, err := tllex.NewStringStream(filename, code)
	if err != nil {
		return nil, nil, err
	}

	p := New(filename, stream)
	file := p.Run()
	return file, p.Diagnostics(), stream.Err()
}

// Run parses top-level declarations until the end of the stream and returns
// the file.
func (p *Parser) Run() *ast.File {
	tok := p.stream.Next()
	for !tok.EOF() {
		switch tok.Kind {
		case tllex.Func:
			p.buildFunction()
		case tllex.Struct:
			p.buildStructDef()
		case tllex.Const:
			p.consts = append(p.consts, p.buildConst())
		case tllex.Import:
			p.buildImport()
		default:
			p.errorf(UnexpectedTopLevel, tok, "unknown token in global scope, expected \"func\"")
		}

		tok = p.stream.Next()
	}

	return p.File()
}

// File returns the declarations parsed so far.
func (p *Parser) File() *ast.File {
	return ast.NewFile(p.FileName, p.imports, p.consts, p.structs, p.functions)
}

// Diagnostics returns the problems found so far, in source order.
func (p *Parser) Diagnostics() Diagnostics {
	return append(Diagnostics(nil), p.diags...)
}

// expect consumes the next token and reports it when it is not of kind k.
// A mismatching token is pushed back so the caller's loop sees it again.
func (p *Parser) expect(k tllex.Kind, kind Kind, what string) bool {
	tok := p.stream.Next()
	if tok.Is(k) {
		return true
	}
	p.errorf(kind, tok, "expected %s", what)
	p.stream.Unget(tok)
	return false
}

// skipStatement drops tokens up to and including the next ';'. It stops in
// front of "end" so a broken statement cannot swallow the enclosing block.
func (p *Parser) skipStatement() {
	for {
		tok := p.stream.Next()
		switch {
		case tok.Is(tllex.SemiColon):
			return
		case tok.Is(tllex.End), tok.EOF():
			p.stream.Unget(tok)
			return
		}
	}
}
