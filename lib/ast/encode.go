package ast

import "encoding/json"

// The view types mirror the tree with exported fields so that dumps can go
// through encoding/json and yaml.v3 without opening the nodes to mutation.

type expressionView struct {
	Type     string            `json:"type" yaml:"type"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Value    interface{}       `json:"value,omitempty" yaml:"value,omitempty"`
	Arg      *expressionView   `json:"arg,omitempty" yaml:"arg,omitempty"`
	List     []*expressionView `json:"list,omitempty" yaml:"list,omitempty"`
	Operands []*expressionView `json:"operands,omitempty" yaml:"operands,omitempty"`
}

type statementView struct {
	Type       string           `json:"type" yaml:"type"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	DataType   string           `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Expression *expressionView  `json:"expression,omitempty" yaml:"expression,omitempty"`
	Statements []*statementView `json:"statements,omitempty" yaml:"statements,omitempty"`
	Branches   []*statementView `json:"branches,omitempty" yaml:"branches,omitempty"`
}

type argView struct {
	Name       string          `json:"name" yaml:"name"`
	DataType   string          `json:"dataType" yaml:"dataType"`
	Expression *expressionView `json:"expression,omitempty" yaml:"expression,omitempty"`
}

type structView struct {
	Name  string    `json:"name" yaml:"name"`
	Items []argView `json:"items" yaml:"items"`
}

type functionView struct {
	Name       string         `json:"name" yaml:"name"`
	ReturnType string         `json:"returnType" yaml:"returnType"`
	Args       []argView      `json:"args,omitempty" yaml:"args,omitempty"`
	Consts     []argView      `json:"consts,omitempty" yaml:"consts,omitempty"`
	Body       *statementView `json:"body" yaml:"body"`
}

type fileView struct {
	Name      string         `json:"name" yaml:"name"`
	Imports   []string       `json:"imports,omitempty" yaml:"imports,omitempty"`
	Consts    []argView      `json:"consts,omitempty" yaml:"consts,omitempty"`
	Structs   []structView   `json:"structs,omitempty" yaml:"structs,omitempty"`
	Functions []functionView `json:"functions" yaml:"functions"`
}

func (e *Expression) view() *expressionView {
	if e.IsNone() {
		return nil
	}

	v := &expressionView{Type: e.astType.String(), Name: e.name}
	switch e.astType {
	case IntLiteral:
		v.Value = e.intValue
	case StringLiteral:
		v.Value = e.stringValue
	case CharLiteral:
		v.Value = string(e.charValue)
	case BoolLiteral:
		v.Value = e.boolValue
	}
	if e.arg != nil {
		v.Arg = e.arg.view()
	}
	for _, item := range e.list {
		v.List = append(v.List, item.view())
	}
	for _, operand := range e.args {
		v.Operands = append(v.Operands, operand.view())
	}
	return v
}

func (s *Statement) view() *statementView {
	v := &statementView{
		Type:       s.astType.String(),
		Name:       s.name,
		Expression: s.expr.view(),
	}
	if s.astType == VarDec || s.astType == ArrayDec {
		v.DataType = s.dataType.String()
	}
	for _, child := range s.statements {
		v.Statements = append(v.Statements, child.view())
	}
	for _, br := range s.branches {
		v.Branches = append(v.Branches, br.view())
	}
	return v
}

func argViews(args []Arg) []argView {
	var views []argView
	for _, a := range args {
		views = append(views, argView{Name: a.name, DataType: a.dataType.String(), Expression: a.expr.view()})
	}
	return views
}

func (f *File) view() fileView {
	v := fileView{
		Name:      f.name,
		Imports:   f.imports,
		Consts:    argViews(f.consts),
		Functions: []functionView{},
	}
	for _, s := range f.structs {
		v.Structs = append(v.Structs, structView{Name: s.name, Items: argViews(s.items)})
	}
	for _, fn := range f.functions {
		v.Functions = append(v.Functions, functionView{
			Name:       fn.name,
			ReturnType: fn.dataType.String(),
			Args:       argViews(fn.args),
			Consts:     argViews(fn.consts),
			Body:       fn.block.view(),
		})
	}
	return v
}

func (e *Expression) MarshalJSON() ([]byte, error) { return json.Marshal(e.view()) }
func (s *Statement) MarshalJSON() ([]byte, error)  { return json.Marshal(s.view()) }
func (f *File) MarshalJSON() ([]byte, error)       { return json.Marshal(f.view()) }

func (e *Expression) MarshalYAML() (interface{}, error) { return e.view(), nil }
func (s *Statement) MarshalYAML() (interface{}, error)  { return s.view(), nil }
func (f *File) MarshalYAML() (interface{}, error)       { return f.view(), nil }
