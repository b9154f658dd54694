// Package unwriter re-emits a TL syntax tree as normalized source text.
package unwriter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vyPal/tlc/lib/ast"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

type Options struct {
	Indent int
}

type writer struct {
	w      *bufio.Writer
	indent string
	err    error
}

// Unwrite writes file to w in canonical form.
func Unwrite(w io.Writer, file *ast.File, opts Options) error {
	if opts.Indent <= 0 {
		opts.Indent = DefaultIndent
	}
	uw := &writer{w: bufio.NewWriter(w), indent: strings.Repeat(" ", opts.Indent)}

	uw.file(file)

	if uw.err != nil {
		return uw.err
	}
	return uw.w.Flush()
}

// String returns the canonical source of file.
func String(file *ast.File, opts Options) string {
	var sb strings.Builder
	Unwrite(&sb, file, opts)
	return sb.String()
}

func (uw *writer) line(depth int, format string, args ...interface{}) {
	if uw.err != nil {
		return
	}
	_, uw.err = fmt.Fprintf(uw.w, strings.Repeat(uw.indent, depth)+format+"\n", args...)
}

func (uw *writer) file(file *ast.File) {
	sections := 0

	if imports := file.Imports(); len(imports) > 0 {
		for _, imp := range imports {
			uw.line(0, "import %s;", strings.ReplaceAll(imp, "/", "."))
		}
		sections++
	}

	if consts := file.Consts(); len(consts) > 0 {
		if sections > 0 {
			uw.line(0, "")
		}
		for _, c := range consts {
			uw.line(0, "const %s;", constant(c))
		}
		sections++
	}

	for _, s := range file.Structs() {
		if sections > 0 {
			uw.line(0, "")
		}
		uw.line(0, "struct %s is", s.Name())
		for _, item := range s.Items() {
			if item.Expression().Type() == ast.Assign {
				uw.line(1, "%s : %s := %s;", item.Name(), item.DataType(), value(item.Expression().RVal()))
			} else {
				uw.line(1, "%s : %s;", item.Name(), item.DataType())
			}
		}
		uw.line(0, "end")
		sections++
	}

	for _, f := range file.Functions() {
		if sections > 0 {
			uw.line(0, "")
		}
		uw.function(f)
		sections++
	}
}

func (uw *writer) function(f *ast.Function) {
	header := "func " + f.Name()

	if args := f.Args(); len(args) > 0 {
		params := make([]string, 0, len(args))
		for _, a := range args {
			params = append(params, a.Name()+" : "+a.DataType().String())
		}
		header += "(" + strings.Join(params, ", ") + ")"
	}
	if f.DataType() != ast.Void {
		header += " -> " + f.DataType().String()
	}
	uw.line(0, "%s is", header)

	for _, c := range f.Consts() {
		uw.line(1, "const %s;", constant(c))
	}
	uw.block(f.Block(), 1)
	uw.line(0, "end")
}

func (uw *writer) block(block *ast.Statement, depth int) {
	for _, stmt := range block.Statements() {
		uw.statement(stmt, depth)
	}
}

func (uw *writer) statement(stmt *ast.Statement, depth int) {
	expr := stmt.Expression()

	switch stmt.Type() {
	case ast.VarDec:
		if expr.Type() == ast.Assign {
			uw.line(depth, "var %s : %s := %s;", stmt.Name(), stmt.DataType(), value(expr.RVal()))
		} else {
			uw.line(depth, "var %s : %s;", stmt.Name(), stmt.DataType())
		}

	case ast.ArrayDec:
		uw.line(depth, "var %s : %s[%s];", stmt.Name(), stmt.DataType(), Expression(expr))

	case ast.StructDec:
		uw.line(depth, "struct %s : %s;", stmt.Name(), Expression(expr))

	case ast.ExprStmt:
		uw.line(depth, "%s;", Expression(expr))

	case ast.CallStmt:
		uw.line(depth, "%s(%s);", stmt.Name(), arguments(expr))

	case ast.Return:
		if expr.IsNone() {
			uw.line(depth, "return;")
		} else {
			uw.line(depth, "return %s;", Expression(expr))
		}

	case ast.Break:
		uw.line(depth, "break;")

	case ast.Continue:
		uw.line(depth, "continue;")

	case ast.While:
		uw.line(depth, "while %s do", Expression(expr))
		uw.block(stmt.Body(), depth+1)
		uw.line(depth, "end")

	case ast.If:
		uw.line(depth, "if %s then", Expression(expr))
		uw.block(stmt.Body(), depth+1)
		for _, br := range stmt.Branches() {
			if br.Type() == ast.Elif {
				uw.line(depth, "elif %s then", Expression(br.Expression()))
			} else {
				uw.line(depth, "else")
			}
			uw.block(br.Body(), depth+1)
		}
		uw.line(depth, "end")

	case ast.Block:
		uw.block(stmt, depth)
	}
}

func constant(c ast.Arg) string {
	return fmt.Sprintf("%s : %s := %s", c.Name(), c.DataType(), value(c.Expression()))
}

// arguments renders the inside of a call's parentheses.
func arguments(expr *ast.Expression) string {
	switch expr.Type() {
	case ast.None:
		return ""
	case ast.ExprList:
		return list(expr)
	}
	return Expression(expr)
}

func list(expr *ast.Expression) string {
	items := expr.List()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type() == ast.ExprList {
			parts = append(parts, "("+list(item)+")")
		} else {
			parts = append(parts, Expression(item))
		}
	}
	return strings.Join(parts, ", ")
}

// Expression renders expr as source text. Operands that are themselves
// operators or lists are parenthesized, so the text parses back to the same
// tree.
func Expression(expr *ast.Expression) string {
	switch expr.Type() {
	case ast.None:
		return ""
	case ast.Id:
		return expr.Name()
	case ast.IntLiteral:
		return strconv.FormatUint(expr.IntValue(), 10)
	case ast.StringLiteral:
		return `"` + expr.StringValue() + `"`
	case ast.CharLiteral:
		return strconv.QuoteRuneToASCII(expr.CharValue())
	case ast.BoolLiteral:
		return strconv.FormatBool(expr.BoolValue())
	case ast.ExprList:
		return list(expr)
	case ast.Call:
		return expr.Name() + "(" + arguments(expr.Arg()) + ")"
	case ast.ArrayAcc:
		return expr.Name() + "[" + Expression(expr.Arg()) + "]"
	case ast.StructAcc:
		return expr.Name() + "." + expr.Arg().Name()
	}

	if expr.Type().IsBinary() {
		lval := operand(expr.LVal())
		rval := operand(expr.RVal())
		if expr.Type() == ast.Assign {
			rval = value(expr.RVal())
		}
		if lval == "" {
			return expr.Type().Operator() + " " + rval
		}
		return lval + " " + expr.Type().Operator() + " " + rval
	}
	return ""
}

func operand(expr *ast.Expression) string {
	if expr.Type().IsBinary() || expr.Type() == ast.ExprList {
		return "(" + Expression(expr) + ")"
	}
	return Expression(expr)
}

// value renders the right-hand side of an assignment. Only lists and nested
// assignments need parentheses there.
func value(expr *ast.Expression) string {
	if expr.Type() == ast.Assign || expr.Type() == ast.ExprList {
		return "(" + Expression(expr) + ")"
	}
	return Expression(expr)
}
