package parser

import (
	"github.com/vyPal/tlc/lib/ast"
	tllex "github.com/vyPal/tlc/lib/lexer"
)

var dataTypes = map[tllex.Kind]ast.DataType{
	tllex.I8:     ast.I8,
	tllex.U8:     ast.U8,
	tllex.I16:    ast.I16,
	tllex.U16:    ast.U16,
	tllex.I32:    ast.I32,
	tllex.U32:    ast.U32,
	tllex.I64:    ast.I64,
	tllex.U64:    ast.U64,
	tllex.String: ast.String,
	tllex.Char:   ast.Char,
	tllex.Bool:   ast.Bool,
}

// buildDataType reads one type name. Anything else is reported and yields
// void.
func (p *Parser) buildDataType() ast.DataType {
	tok := p.stream.Next()
	if dt, ok := dataTypes[tok.Kind]; ok {
		return dt
	}

	p.errorf(UnknownDataType, tok, "unknown data type token")
	return ast.Void
}
