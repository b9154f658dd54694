package parser

import (
	"github.com/vyPal/tlc/lib/ast"
	tllex "github.com/vyPal/tlc/lib/lexer"
)

// binaryOps maps operator tokens to the node type they build.
var binaryOps = map[tllex.Kind]ast.AstType{
	tllex.Assign: ast.Assign,
	tllex.Add:    ast.Add,
	tllex.Sub:    ast.Sub,
	tllex.Mul:    ast.Mul,
	tllex.Div:    ast.Div,
	tllex.Mod:    ast.Mod,
	tllex.And:    ast.And,
	tllex.Or:     ast.Or,
	tllex.Xor:    ast.Xor,
	tllex.Eq:     ast.Eq,
	tllex.Ne:     ast.Ne,
	tllex.Gt:     ast.Gt,
	tllex.Ge:     ast.Ge,
	tllex.Lt:     ast.Lt,
	tllex.Le:     ast.Le,
	tllex.LGAnd:  ast.LGAnd,
	tllex.LGOr:   ast.LGOr,
}

// operand is an entry of the operand stack. When assign is set, expr is the
// value of an assignment whose target has not been attached yet.
type operand struct {
	expr   *ast.Expression
	assign bool
}

// materialize returns the operand as a finished node. A pending assignment
// becomes an assignment to None.
func (o operand) materialize() *ast.Expression {
	if o.assign {
		return ast.NewBinary(ast.Assign, ast.NewNone(), o.expr)
	}
	return o.expr
}

type pendingOp struct {
	astType ast.AstType
	tok     tllex.Token
}

type exprStack struct {
	operands  []operand
	operators []pendingOp
}

func (s *exprStack) push(o operand) {
	s.operands = append(s.operands, o)
}

func (s *exprStack) pop() operand {
	o := s.operands[len(s.operands)-1]
	s.operands = s.operands[:len(s.operands)-1]
	return o
}

// expression builds an expression up to stop and returns it as a finished
// node.
func (p *Parser) expression(stop tllex.Kind) *ast.Expression {
	return p.buildExpression(stop).materialize()
}

// buildExpression consumes tokens up to and including stop. Operators have
// no precedence: they are applied at reduction points, most recent first, so
// "a - b - c" builds (a - (b - c)).
func (p *Parser) buildExpression(stop tllex.Kind) operand {
	var st exprStack
	var list []*ast.Expression
	isList := false

	tok := p.stream.Next()
	for !tok.Is(stop) && !tok.EOF() {
		switch tok.Kind {
		case tllex.LParen:
			st.push(p.buildExpression(tllex.RParen))

		case tllex.Comma:
			isList = true
			p.reduce(&st)
			if len(st.operands) == 0 {
				p.errorf(MalformedExpression, tok, "expected expression before ','")
				break
			}
			list = append(list, st.pop().materialize())

		//
		// Literals
		//
		case tllex.Id:
			st.push(operand{expr: p.buildIdentifier(tok)})
		case tllex.IntL:
			st.push(operand{expr: ast.NewIntLiteral(tok.Int)})
		case tllex.StringL:
			st.push(operand{expr: ast.NewStringLiteral(tok.Value)})
		case tllex.CharL:
			st.push(operand{expr: ast.NewCharLiteral(tok.Char)})
		case tllex.True:
			st.push(operand{expr: ast.NewBoolLiteral(true)})
		case tllex.False:
			st.push(operand{expr: ast.NewBoolLiteral(false)})

		default:
			if op, ok := binaryOps[tok.Kind]; ok {
				st.operators = append(st.operators, pendingOp{astType: op, tok: tok})
			} else {
				p.errorf(MalformedExpression, tok, "invalid token in expression")
			}
		}

		tok = p.stream.Next()
	}

	if tok.EOF() && stop != tllex.EOF {
		p.errorf(MalformedExpression, tok, "unexpected end of input, expected %q", stop)
	}

	p.reduce(&st)

	if isList {
		if len(st.operands) > 0 {
			list = append(list, st.pop().materialize())
		}
		if len(st.operands) > 0 {
			p.errorf(MalformedExpression, tok, "missing operator or ',' between list items")
		}
		return operand{expr: ast.NewList(list)}
	}

	if len(st.operands) == 0 {
		return operand{expr: ast.NewNone()}
	}
	if len(st.operands) > 1 {
		p.errorf(MalformedExpression, tok, "missing operator between operands")
	}
	return st.pop()
}

// reduce empties the operator stack. An assignment takes only its value; the
// target is attached by the statement that owns the expression.
func (p *Parser) reduce(st *exprStack) {
	for len(st.operators) > 0 {
		op := st.operators[len(st.operators)-1]
		st.operators = st.operators[:len(st.operators)-1]

		if op.astType == ast.Assign {
			if len(st.operands) < 1 {
				p.errorf(MalformedExpression, op.tok, "assignment without a value")
				continue
			}
			rval := st.pop()
			st.push(operand{expr: rval.materialize(), assign: true})
			continue
		}

		if len(st.operands) < 2 {
			p.errorf(MalformedExpression, op.tok, "operator %q needs two operands", op.tok)
			continue
		}
		rval := st.pop()
		lval := st.pop()
		st.push(operand{expr: ast.NewBinary(op.astType, lval.materialize(), rval.materialize())})
	}
}

// buildIdentifier builds what an identifier denotes, using one token of
// lookahead: a call, an array access, a struct access or the bare name.
func (p *Parser) buildIdentifier(name tllex.Token) *ast.Expression {
	tok := p.stream.Next()
	switch tok.Kind {
	case tllex.LParen:
		return ast.NewCall(name.Value, p.expression(tllex.RParen))
	case tllex.LBracket:
		return ast.NewArrayAcc(name.Value, p.expression(tllex.RBracket))
	case tllex.Dot:
		return ast.NewStructAcc(name.Value, p.memberName())
	}

	p.stream.Unget(tok)
	return ast.NewId(name.Value)
}

// memberName reads the item name following a '.'.
func (p *Parser) memberName() string {
	tok := p.stream.Next()
	if tok.Is(tllex.Id) {
		return tok.Value
	}

	p.errorf(MalformedExpression, tok, "expected item name in structure access")
	p.stream.Unget(tok)
	return ""
}
