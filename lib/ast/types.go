package ast

import "fmt"

// AstType tags statement and expression nodes.
type AstType int

const (
	None AstType = iota

	// Statements
	Block
	VarDec
	ArrayDec
	StructDec
	ExprStmt
	CallStmt
	Return
	Break
	Continue
	While
	If
	Elif
	Else

	// Expressions
	ExprList
	Id
	Call
	ArrayAcc
	StructAcc

	// Expressions - operators
	Assign
	Add
	Sub
	Mul
	Div
	Mod
	And
	Or
	Xor
	Eq
	Ne
	Gt
	Ge
	Lt
	Le
	LGAnd
	LGOr

	// Expressions - literals
	IntLiteral
	StringLiteral
	CharLiteral
	BoolLiteral
)

var astTypeNames = [...]string{
	None:          "None",
	Block:         "Block",
	VarDec:        "VarDec",
	ArrayDec:      "ArrayDec",
	StructDec:     "StructDec",
	ExprStmt:      "ExprStmt",
	CallStmt:      "CallStmt",
	Return:        "Return",
	Break:         "Break",
	Continue:      "Continue",
	While:         "While",
	If:            "If",
	Elif:          "Elif",
	Else:          "Else",
	ExprList:      "ExprList",
	Id:            "Id",
	Call:          "Call",
	ArrayAcc:      "ArrayAcc",
	StructAcc:     "StructAcc",
	Assign:        "Assign",
	Add:           "Add",
	Sub:           "Sub",
	Mul:           "Mul",
	Div:           "Div",
	Mod:           "Mod",
	And:           "And",
	Or:            "Or",
	Xor:           "Xor",
	Eq:            "Eq",
	Ne:            "Ne",
	Gt:            "Gt",
	Ge:            "Ge",
	Lt:            "Lt",
	Le:            "Le",
	LGAnd:         "LGAnd",
	LGOr:          "LGOr",
	IntLiteral:    "IntLiteral",
	StringLiteral: "StringLiteral",
	CharLiteral:   "CharLiteral",
	BoolLiteral:   "BoolLiteral",
}

func (t AstType) String() string {
	if t >= 0 && int(t) < len(astTypeNames) {
		return astTypeNames[t]
	}
	return fmt.Sprintf("AstType(%d)", int(t))
}

// IsBinary reports whether nodes of this type own a left and right operand.
func (t AstType) IsBinary() bool {
	return t >= Assign && t <= LGOr
}

// Operator returns the source spelling of a binary operator type.
func (t AstType) Operator() string {
	switch t {
	case Assign:
		return ":="
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case And:
		return "&"
	case Or:
		return "|"
	case Xor:
		return "^"
	case Eq:
		return "="
	case Ne:
		return "!="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case LGAnd:
		return "&&"
	case LGOr:
		return "||"
	}
	return ""
}

// DataType is a primitive TL type.
type DataType int

const (
	Void DataType = iota
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	String
	Char
	Bool
)

var dataTypeNames = [...]string{
	Void:   "void",
	I8:     "i8",
	U8:     "u8",
	I16:    "i16",
	U16:    "u16",
	I32:    "i32",
	U32:    "u32",
	I64:    "i64",
	U64:    "u64",
	String: "string",
	Char:   "char",
	Bool:   "bool",
}

// String returns the type as written in source.
func (d DataType) String() string {
	if d >= 0 && int(d) < len(dataTypeNames) {
		return dataTypeNames[d]
	}
	return fmt.Sprintf("DataType(%d)", int(d))
}
