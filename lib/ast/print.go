package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented debug dump of file to w.
func Fprint(w io.Writer, file *File) {
	fmt.Fprintf(w, "FILE %s\n\n", file.name)

	for _, imp := range file.imports {
		fmt.Fprintf(w, "IMPORT %s\n", imp)
	}
	for _, c := range file.consts {
		fmt.Fprintf(w, "CONST %s\n", c.dump())
	}
	for _, s := range file.structs {
		fmt.Fprintf(w, "STRUCT %s\n", s.name)
		for _, item := range s.items {
			fmt.Fprintf(w, "  %s\n", item.dump())
		}
	}
	for _, f := range file.functions {
		fprintFunction(w, f)
	}
}

func fprintFunction(w io.Writer, f *Function) {
	args := make([]string, 0, len(f.args))
	for _, a := range f.args {
		args = append(args, a.dump())
	}
	fmt.Fprintf(w, "FUNC %s(%s) -> %s\n", f.name, strings.Join(args, ", "), f.dataType)
	for _, c := range f.consts {
		fmt.Fprintf(w, "  CONST %s\n", c.dump())
	}
	for _, stmt := range f.block.statements {
		fprintStatement(w, stmt, 2)
	}
	fmt.Fprintln(w, "END")
}

func fprintStatement(w io.Writer, s *Statement, indent int) {
	pad := strings.Repeat(" ", indent)

	line := pad + s.astType.String()
	if s.name != "" {
		line += " " + s.name
	}
	if s.astType == VarDec || s.astType == ArrayDec {
		line += " : " + s.dataType.String()
	}
	if !s.expr.IsNone() {
		line += " " + s.expr.Dump()
	}
	fmt.Fprintln(w, line)

	if body := s.Body(); body != nil {
		for _, child := range body.statements {
			fprintStatement(w, child, indent+2)
		}
	} else if s.astType == Block {
		for _, child := range s.statements {
			fprintStatement(w, child, indent+2)
		}
	}

	for _, br := range s.branches {
		fprintStatement(w, br, indent)
	}
}

func (a Arg) dump() string {
	str := a.name + " : " + a.dataType.String()
	if !a.expr.IsNone() {
		str += " " + a.expr.Dump()
	}
	return str
}

// Dump renders e as a fully parenthesized prefix form, e.g.
// (Assign x (Add 1 2)).
func (e *Expression) Dump() string {
	if e == nil {
		return "<nil>"
	}

	switch e.astType {
	case None:
		return "None"
	case Id:
		return e.name
	case IntLiteral:
		return strconv.FormatUint(e.intValue, 10)
	case StringLiteral:
		return strconv.Quote(e.stringValue)
	case CharLiteral:
		return strconv.QuoteRune(e.charValue)
	case BoolLiteral:
		return strconv.FormatBool(e.boolValue)
	case ExprList:
		items := make([]string, 0, len(e.list))
		for _, item := range e.list {
			items = append(items, item.Dump())
		}
		return "[" + strings.Join(items, ", ") + "]"
	case Call, ArrayAcc, StructAcc:
		return "(" + e.astType.String() + " " + e.name + " " + e.arg.Dump() + ")"
	}

	if e.astType.IsBinary() {
		parts := []string{e.astType.String()}
		for _, operand := range e.args {
			parts = append(parts, operand.Dump())
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return "??"
}
