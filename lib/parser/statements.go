package parser

import (
	"github.com/vyPal/tlc/lib/ast"
	tllex "github.com/vyPal/tlc/lib/lexer"
)

// blockResult is what buildBlock hands back to its caller. chain is the
// "elif" or "else" keyword that ended the block, or the "end"/EOF token that
// closed it. consts holds the constants declared anywhere inside the block.
type blockResult struct {
	block  *ast.Statement
	consts []ast.Arg
	chain  tllex.Token
}

func (r blockResult) chained() bool {
	return r.chain.Is(tllex.Elif) || r.chain.Is(tllex.Else)
}

// buildBlock reads statements until "end", EOF, or an "elif"/"else" clause
// that belongs to the enclosing if statement.
func (p *Parser) buildBlock() blockResult {
	var stmts []*ast.Statement
	var consts []ast.Arg

	tok := p.stream.Next()
	for !tok.Is(tllex.End) && !tok.EOF() {
		switch tok.Kind {
		case tllex.Return:
			stmts = append(stmts, ast.NewReturn(p.expression(tllex.SemiColon)))

		case tllex.Var:
			stmts = append(stmts, p.buildVariableDec())

		case tllex.Const:
			consts = append(consts, p.buildConst())

		case tllex.Struct:
			stmts = append(stmts, p.buildStructDec())

		case tllex.Id:
			stmts = append(stmts, p.buildIdStatement(tok))

		case tllex.While:
			stmt, c := p.buildWhile()
			stmts = append(stmts, stmt)
			consts = append(consts, c...)

		case tllex.If:
			stmt, c := p.buildIf()
			stmts = append(stmts, stmt)
			consts = append(consts, c...)

		case tllex.Elif, tllex.Else:
			return blockResult{block: ast.NewBlock(stmts), consts: consts, chain: tok}

		case tllex.Break, tllex.Continue:
			p.expect(tllex.SemiColon, MalformedStatement, "terminator ';'")
			if tok.Is(tllex.Break) {
				stmts = append(stmts, ast.NewBreak())
			} else {
				stmts = append(stmts, ast.NewContinue())
			}

		default:
			p.errorf(MalformedStatement, tok, "invalid token statement")
		}

		tok = p.stream.Next()
	}

	if tok.EOF() {
		p.errorf(MalformedStatement, tok, "unexpected end of input, expected \"end\"")
	}

	return blockResult{block: ast.NewBlock(stmts), consts: consts, chain: tok}
}

// buildIdStatement builds an assignment or a call statement led by name. The
// lvalue is known before the rest of the statement is read; it is attached
// only if the statement turns out to be an assignment.
func (p *Parser) buildIdStatement(name tllex.Token) *ast.Statement {
	var lval *ast.Expression

	tok := p.stream.Next()
	switch tok.Kind {
	case tllex.LBracket:
		lval = ast.NewArrayAcc(name.Value, p.expression(tllex.RBracket))
	case tllex.Dot:
		lval = ast.NewStructAcc(name.Value, p.memberName())
	default:
		p.stream.Unget(tok)
		lval = ast.NewId(name.Value)
	}

	rhs := p.buildExpression(tllex.SemiColon)
	if rhs.assign {
		return ast.NewExprStmt(ast.NewBinary(ast.Assign, lval, rhs.expr))
	}
	return ast.NewCallStmt(name.Value, rhs.expr)
}

// buildVariableDec builds "var NAME : TYPE := EXPR;" and
// "var NAME : TYPE [SIZE];". The "var" keyword is already consumed.
func (p *Parser) buildVariableDec() *ast.Statement {
	tok := p.stream.Next()
	if !tok.Is(tllex.Id) {
		p.errorf(MalformedDeclaration, tok, "expected name in variable declaration")
		p.stream.Unget(tok)
		p.skipStatement()
		return ast.NewPlaceholder()
	}
	name := tok.Value

	tok = p.stream.Next()
	if !tok.Is(tllex.Colon) {
		p.errorf(MalformedDeclaration, tok, "expected ':' after variable name")
		p.stream.Unget(tok)
		p.skipStatement()
		return ast.NewPlaceholder()
	}

	dataType := p.buildDataType()

	tok = p.stream.Next()
	if tok.Is(tllex.LBracket) {
		size := p.expression(tllex.RBracket)
		p.expect(tllex.SemiColon, MalformedDeclaration, "terminator ';' after array size")
		return ast.NewArrayDec(name, dataType, size)
	}
	p.stream.Unget(tok)

	rhs := p.buildExpression(tllex.SemiColon)
	switch {
	case rhs.assign:
		return ast.NewVarDec(name, dataType, ast.NewBinary(ast.Assign, ast.NewId(name), rhs.expr))
	case rhs.expr.IsNone():
		return ast.NewVarDec(name, dataType, nil)
	}

	p.errorf(MalformedDeclaration, tok, "expected ':=' before initial value of %q", name)
	return ast.NewVarDec(name, dataType, ast.NewBinary(ast.Assign, ast.NewId(name), rhs.expr))
}

// buildStructDec builds "struct NAME : STRUCTNAME;" inside a block.
func (p *Parser) buildStructDec() *ast.Statement {
	tok := p.stream.Next()
	name := ""
	if tok.Is(tllex.Id) {
		name = tok.Value
	} else {
		p.errorf(MalformedDeclaration, tok, "expected variable name in structure declaration")
		p.stream.Unget(tok)
	}

	p.expect(tllex.Colon, MalformedDeclaration, "':' between structure variable name and structure name")

	structID := p.expression(tllex.SemiColon)
	if structID.Type() != ast.Id {
		p.errorf(MalformedDeclaration, p.stream.Last(), "structure type of %q must be a name", name)
	}
	return ast.NewStructDec(name, structID)
}

// buildWhile builds "while COND do BLOCK end".
func (p *Parser) buildWhile() (*ast.Statement, []ast.Arg) {
	cond := p.expression(tllex.Do)
	body := p.buildBlock()
	if body.chained() {
		p.dropClauses(body.chain)
	}
	return ast.NewWhile(cond, body.block), body.consts
}

// buildIf builds an if statement with all of its elif and else clauses. Each
// clause body ends either at the next clause keyword, which is then built
// here, or at the single "end" that closes the whole chain.
func (p *Parser) buildIf() (*ast.Statement, []ast.Arg) {
	cond := p.expression(tllex.Then)
	body := p.buildBlock()
	consts := body.consts

	var branches []*ast.Statement
	chain := body.chain
	for chain.Is(tllex.Elif) || chain.Is(tllex.Else) {
		afterElse := len(branches) > 0 && branches[len(branches)-1].Type() == ast.Else
		if afterElse {
			p.errorf(MalformedStatement, chain, "%q clause after \"else\"", chain)
		}

		clause, res := p.buildClause(chain)
		if !afterElse {
			branches = append(branches, clause)
			consts = append(consts, res.consts...)
		}
		chain = res.chain
	}

	return ast.NewIf(cond, body.block, branches), consts
}

// buildClause builds one elif or else clause; kw is its keyword.
func (p *Parser) buildClause(kw tllex.Token) (*ast.Statement, blockResult) {
	if kw.Is(tllex.Elif) {
		cond := p.expression(tllex.Then)
		body := p.buildBlock()
		return ast.NewElif(cond, body.block), body
	}

	body := p.buildBlock()
	return ast.NewElse(body.block), body
}

// dropClauses reports and skips elif/else clauses that are not attached to
// an if statement.
func (p *Parser) dropClauses(chain tllex.Token) {
	for chain.Is(tllex.Elif) || chain.Is(tllex.Else) {
		p.errorf(MalformedStatement, chain, "%q without a matching \"if\"", chain)
		_, res := p.buildClause(chain)
		chain = res.chain
	}
}
