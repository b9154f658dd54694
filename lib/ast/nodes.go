// Package ast holds the syntax tree produced by the TL parser.
//
// Nodes are created through the New* constructors and are read-only
// afterwards: every field is reachable through an accessor only.
package ast

// Expression is a tagged expression node. Binary operators own exactly two
// operands, left first. Calls, array accesses and struct accesses carry a
// name and one sub-argument.
type Expression struct {
	astType     AstType
	name        string
	intValue    uint64
	stringValue string
	charValue   rune
	boolValue   bool
	arg         *Expression
	list        []*Expression
	args        []*Expression
}

func NewNone() *Expression {
	return &Expression{astType: None}
}

func NewId(name string) *Expression {
	return &Expression{astType: Id, name: name}
}

func NewIntLiteral(v uint64) *Expression {
	return &Expression{astType: IntLiteral, intValue: v}
}

func NewStringLiteral(s string) *Expression {
	return &Expression{astType: StringLiteral, stringValue: s}
}

func NewCharLiteral(c rune) *Expression {
	return &Expression{astType: CharLiteral, charValue: c}
}

func NewBoolLiteral(b bool) *Expression {
	return &Expression{astType: BoolLiteral, boolValue: b}
}

// NewCall creates a call of name with arg as its argument expression. arg is
// None for an empty argument list, an ExprList for several arguments.
func NewCall(name string, arg *Expression) *Expression {
	return &Expression{astType: Call, name: name, arg: orNone(arg)}
}

// NewArrayAcc creates the access name[index].
func NewArrayAcc(name string, index *Expression) *Expression {
	return &Expression{astType: ArrayAcc, name: name, arg: orNone(index)}
}

// NewStructAcc creates the access name.member.
func NewStructAcc(name, member string) *Expression {
	return &Expression{astType: StructAcc, name: name, arg: NewId(member)}
}

// NewList creates an expression list holding items in order.
func NewList(items []*Expression) *Expression {
	return &Expression{astType: ExprList, list: append([]*Expression(nil), items...)}
}

// NewBinary creates an operator node. t must be a binary operator type.
func NewBinary(t AstType, lval, rval *Expression) *Expression {
	if !t.IsBinary() {
		panic("ast: NewBinary called with non-operator type " + t.String())
	}
	return &Expression{astType: t, args: []*Expression{orNone(lval), orNone(rval)}}
}

func (e *Expression) Type() AstType       { return e.astType }
func (e *Expression) Name() string        { return e.name }
func (e *Expression) IntValue() uint64    { return e.intValue }
func (e *Expression) StringValue() string { return e.stringValue }
func (e *Expression) CharValue() rune     { return e.charValue }
func (e *Expression) BoolValue() bool     { return e.boolValue }

// Arg returns the sub-argument of a call, array access or struct access, and
// nil for every other node.
func (e *Expression) Arg() *Expression { return e.arg }

// List returns the items of an ExprList.
func (e *Expression) List() []*Expression {
	return append([]*Expression(nil), e.list...)
}

// Operands returns the number of populated operands.
func (e *Expression) Operands() int { return len(e.args) }

// LVal returns the left operand. It panics if the node has no operands.
func (e *Expression) LVal() *Expression { return e.args[0] }

// RVal returns the right operand. It panics if the node has fewer than two
// operands.
func (e *Expression) RVal() *Expression { return e.args[1] }

// IsNone reports whether e is absent or the None placeholder.
func (e *Expression) IsNone() bool {
	return e == nil || e.astType == None
}

func orNone(e *Expression) *Expression {
	if e == nil {
		return NewNone()
	}
	return e
}

// Statement is a tagged statement node. Loop and conditional statements own
// their body as the single entry of Statements; If owns its elif/else clauses
// as Branches.
type Statement struct {
	astType    AstType
	name       string
	dataType   DataType
	expr       *Expression
	statements []*Statement
	branches   []*Statement
}

// NewPlaceholder creates the None statement left behind by a malformed
// statement.
func NewPlaceholder() *Statement {
	return &Statement{astType: None, expr: NewNone()}
}

func NewBlock(stmts []*Statement) *Statement {
	return &Statement{astType: Block, expr: NewNone(), statements: append([]*Statement(nil), stmts...)}
}

// NewVarDec creates a variable declaration. init is the assignment of the
// initial value, or nil when the variable is declared without one.
func NewVarDec(name string, dt DataType, init *Expression) *Statement {
	return &Statement{astType: VarDec, name: name, dataType: dt, expr: orNone(init)}
}

func NewArrayDec(name string, dt DataType, size *Expression) *Statement {
	return &Statement{astType: ArrayDec, name: name, dataType: dt, expr: orNone(size)}
}

// NewStructDec declares variable name of the struct type named by typ.
func NewStructDec(name string, typ *Expression) *Statement {
	return &Statement{astType: StructDec, name: name, expr: orNone(typ)}
}

func NewExprStmt(expr *Expression) *Statement {
	return &Statement{astType: ExprStmt, expr: orNone(expr)}
}

func NewCallStmt(name string, args *Expression) *Statement {
	return &Statement{astType: CallStmt, name: name, expr: orNone(args)}
}

func NewReturn(expr *Expression) *Statement {
	return &Statement{astType: Return, expr: orNone(expr)}
}

func NewBreak() *Statement {
	return &Statement{astType: Break, expr: NewNone()}
}

func NewContinue() *Statement {
	return &Statement{astType: Continue, expr: NewNone()}
}

func NewWhile(cond *Expression, body *Statement) *Statement {
	return &Statement{astType: While, expr: orNone(cond), statements: []*Statement{body}}
}

// NewIf creates an if statement with its elif/else clauses in source order.
func NewIf(cond *Expression, body *Statement, branches []*Statement) *Statement {
	return &Statement{
		astType:    If,
		expr:       orNone(cond),
		statements: []*Statement{body},
		branches:   append([]*Statement(nil), branches...),
	}
}

func NewElif(cond *Expression, body *Statement) *Statement {
	return &Statement{astType: Elif, expr: orNone(cond), statements: []*Statement{body}}
}

func NewElse(body *Statement) *Statement {
	return &Statement{astType: Else, expr: NewNone(), statements: []*Statement{body}}
}

func (s *Statement) Type() AstType           { return s.astType }
func (s *Statement) Name() string            { return s.name }
func (s *Statement) DataType() DataType      { return s.dataType }
func (s *Statement) Expression() *Expression { return s.expr }

func (s *Statement) Statements() []*Statement {
	return append([]*Statement(nil), s.statements...)
}

func (s *Statement) Branches() []*Statement {
	return append([]*Statement(nil), s.branches...)
}

// Body returns the block owned by a While, If, Elif or Else statement, and
// nil for every other statement.
func (s *Statement) Body() *Statement {
	switch s.astType {
	case While, If, Elif, Else:
		return s.statements[0]
	}
	return nil
}

// Arg is a named, typed slot: a function parameter, a struct member or a
// constant. Expression holds the default or constant value, if any.
type Arg struct {
	name     string
	dataType DataType
	expr     *Expression
}

func NewArg(name string, dt DataType, expr *Expression) Arg {
	return Arg{name: name, dataType: dt, expr: orNone(expr)}
}

func (a Arg) Name() string            { return a.name }
func (a Arg) DataType() DataType      { return a.dataType }
func (a Arg) Expression() *Expression { return a.expr }

// Struct is a structure definition.
type Struct struct {
	name  string
	items []Arg
}

func NewStruct(name string, items []Arg) *Struct {
	return &Struct{name: name, items: append([]Arg(nil), items...)}
}

func (s *Struct) Name() string { return s.name }
func (s *Struct) Items() []Arg { return append([]Arg(nil), s.items...) }

// Function is a function definition with its body block.
type Function struct {
	name     string
	dataType DataType
	args     []Arg
	consts   []Arg
	block    *Statement
}

func NewFunction(name string, ret DataType, args, consts []Arg, block *Statement) *Function {
	if block == nil {
		block = NewBlock(nil)
	}
	return &Function{
		name:     name,
		dataType: ret,
		args:     append([]Arg(nil), args...),
		consts:   append([]Arg(nil), consts...),
		block:    block,
	}
}

func (f *Function) Name() string       { return f.name }
func (f *Function) DataType() DataType { return f.dataType }
func (f *Function) Args() []Arg        { return append([]Arg(nil), f.args...) }
func (f *Function) Consts() []Arg      { return append([]Arg(nil), f.consts...) }
func (f *Function) Block() *Statement  { return f.block }

// File is one translation unit. Every list is in declaration order.
type File struct {
	name      string
	imports   []string
	consts    []Arg
	structs   []*Struct
	functions []*Function
}

func NewFile(name string, imports []string, consts []Arg, structs []*Struct, functions []*Function) *File {
	return &File{
		name:      name,
		imports:   append([]string(nil), imports...),
		consts:    append([]Arg(nil), consts...),
		structs:   append([]*Struct(nil), structs...),
		functions: append([]*Function(nil), functions...),
	}
}

func (f *File) Name() string           { return f.name }
func (f *File) Imports() []string      { return append([]string(nil), f.imports...) }
func (f *File) Consts() []Arg          { return append([]Arg(nil), f.consts...) }
func (f *File) Structs() []*Struct     { return append([]*Struct(nil), f.structs...) }
func (f *File) Functions() []*Function { return append([]*Function(nil), f.functions...) }
