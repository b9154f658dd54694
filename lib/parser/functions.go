package parser

import (
	"strings"

	"github.com/vyPal/tlc/lib/ast"
	tllex "github.com/vyPal/tlc/lib/lexer"
)

// buildFunction builds "func NAME(ARGS) -> TYPE is BLOCK end". The "func"
// keyword is already consumed.
func (p *Parser) buildFunction() {
	tok := p.stream.Next()
	name := ""
	if tok.Is(tllex.Id) {
		name = tok.Value
	} else {
		p.errorf(MalformedFunction, tok, "expected function name")
		p.stream.Unget(tok)
	}

	// Function arguments
	var args []ast.Arg
	tok = p.stream.Next()
	if tok.Is(tllex.LParen) {
		args = p.buildParams()
		tok = p.stream.Next()
	}

	// Check function return
	dataType := ast.Void
	if tok.Is(tllex.Arrow) {
		dataType = p.buildDataType()
		tok = p.stream.Next()
	}

	if !tok.Is(tllex.Is) {
		p.errorf(MalformedFunction, tok, "expected \"is\" in header of function %q", name)
		p.stream.Unget(tok)
		if tok.Is(tllex.Func) || tok.EOF() {
			return
		}
	}

	body := p.buildBlock()
	if body.chained() {
		p.dropClauses(body.chain)
	}

	p.functions = append(p.functions, ast.NewFunction(name, dataType, args, body.consts, body.block))
}

// buildParams builds the parameter list after '('. The closing ')' is
// consumed.
func (p *Parser) buildParams() []ast.Arg {
	var args []ast.Arg

	tok := p.stream.Next()
	if tok.Is(tllex.RParen) {
		return args
	}
	p.stream.Unget(tok)

	for {
		nameTok := p.stream.Next()
		if !nameTok.Is(tllex.Id) {
			p.errorf(MalformedFunction, nameTok, "expected argument name")
			p.skipParams(nameTok)
			return args
		}

		colon := p.stream.Next()
		if !colon.Is(tllex.Colon) {
			p.errorf(MalformedFunction, colon, "expected colon in function argument")
			p.skipParams(colon)
			return args
		}

		args = append(args, ast.NewArg(nameTok.Value, p.buildDataType(), nil))

		tok = p.stream.Next()
		if tok.Is(tllex.RParen) {
			return args
		}
		if !tok.Is(tllex.Comma) {
			p.errorf(MalformedFunction, tok, "expected ',' or ')' after argument")
			p.skipParams(tok)
			return args
		}
	}
}

// skipParams drops the rest of a broken parameter list. tok is the last
// token read. Tokens that start the rest of the header are left in place.
func (p *Parser) skipParams(tok tllex.Token) {
	for !tok.Is(tllex.RParen) {
		if tok.Is(tllex.Is) || tok.Is(tllex.Arrow) || tok.EOF() {
			p.stream.Unget(tok)
			return
		}
		tok = p.stream.Next()
	}
}

// buildStructDef builds a structure definition:
//
//	struct NAME is
//	    ITEM : TYPE := DEFAULT;
//	end
func (p *Parser) buildStructDef() {
	tok := p.stream.Next()
	name := ""
	if tok.Is(tllex.Id) {
		name = tok.Value
	} else {
		p.errorf(MalformedStruct, tok, "expected structure name")
		p.stream.Unget(tok)
	}

	p.expect(tllex.Is, MalformedStruct, "\"is\" after structure name")

	var items []ast.Arg
	tok = p.stream.Next()
	for !tok.Is(tllex.End) && !tok.EOF() {
		if !tok.Is(tllex.Id) {
			p.errorf(MalformedStruct, tok, "expected item name")
			p.skipStatement()
			tok = p.stream.Next()
			continue
		}
		itemName := tok.Value

		if !p.expect(tllex.Colon, MalformedStruct, "':' in structure item") {
			p.skipStatement()
			tok = p.stream.Next()
			continue
		}
		dataType := p.buildDataType()

		rhs := p.buildExpression(tllex.SemiColon)
		var value *ast.Expression
		if rhs.assign {
			value = ast.NewBinary(ast.Assign, ast.NewId(itemName), rhs.expr)
		} else if !rhs.expr.IsNone() {
			p.errorf(MalformedStruct, p.stream.Last(), "expected ':=' before default value of %q", itemName)
		}
		items = append(items, ast.NewArg(itemName, dataType, value))

		tok = p.stream.Next()
	}

	if tok.EOF() {
		p.errorf(MalformedStruct, tok, "unexpected end of input in structure %q", name)
	}

	p.structs = append(p.structs, ast.NewStruct(name, items))
}

// buildConst builds "const NAME : TYPE := EXPR;". The value is stored
// without an assignment node.
func (p *Parser) buildConst() ast.Arg {
	tok := p.stream.Next()
	name := ""
	if tok.Is(tllex.Id) {
		name = tok.Value
	} else {
		p.errorf(MalformedDeclaration, tok, "expected name in constant declaration")
		p.stream.Unget(tok)
	}

	p.expect(tllex.Colon, MalformedDeclaration, "':' after constant name")
	dataType := p.buildDataType()
	p.expect(tllex.Assign, MalformedDeclaration, "assignment operator in constant declaration")

	return ast.NewArg(name, dataType, p.expression(tllex.SemiColon))
}

// buildImport builds "import a.b.c;", recorded as the path "a/b/c".
func (p *Parser) buildImport() {
	var path strings.Builder

	tok := p.stream.Next()
	for !tok.Is(tllex.SemiColon) && !tok.EOF() {
		switch tok.Kind {
		case tllex.Id:
			path.WriteString(tok.Value)
		case tllex.Dot:
			path.WriteByte('/')
		default:
			p.errorf(UnexpectedTopLevel, tok, "invalid token in import path")
		}
		tok = p.stream.Next()
	}

	if path.Len() == 0 {
		p.errorf(UnexpectedTopLevel, tok, "empty import path")
		return
	}
	p.imports = append(p.imports, path.String())
}
