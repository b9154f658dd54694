package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vyPal/tlc/lib/ast"
)

func parse(t *testing.T, src string) (*ast.File, Diagnostics) {
	t.Helper()
	file, diags, err := ParseString("test.tl", src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return file, diags
}

// body parses src as the body of a function and returns its statements.
func body(t *testing.T, src string) []*ast.Statement {
	t.Helper()
	file, diags := parse(t, "func f is "+src+" end")
	if len(diags) > 0 {
		t.Fatalf("%q: unexpected diagnostics:\n%s", src, diags.Error())
	}
	if n := len(file.Functions()); n != 1 {
		t.Fatalf("%q: got %d functions, want 1", src, n)
	}
	return file.Functions()[0].Block().Statements()
}

func TestStatements(t *testing.T) {
	tests := []struct {
		src      string
		wantType ast.AstType
		wantName string
		wantExpr string
	}{
		{"var x : i32 := 5;", ast.VarDec, "x", "(Assign x 5)"},
		{"var x : bool;", ast.VarDec, "x", "None"},
		{"var s : string := \"hi\";", ast.VarDec, "s", `(Assign s "hi")`},
		{"var c : char := 'z';", ast.VarDec, "c", "(Assign c 'z')"},
		{"var a : u8[10];", ast.ArrayDec, "a", "10"},
		{"struct p : point;", ast.StructDec, "p", "point"},
		{"x := a - b;", ast.ExprStmt, "", "(Assign x (Sub a b))"},
		{"x := a - b - c;", ast.ExprStmt, "", "(Assign x (Sub a (Sub b c)))"},
		{"x := (a - b) - c;", ast.ExprStmt, "", "(Assign x (Sub (Sub a b) c))"},
		{"x := a = b && c;", ast.ExprStmt, "", "(Assign x (Eq a (LGAnd b c)))"},
		{"x := true;", ast.ExprStmt, "", "(Assign x true)"},
		{"x := f();", ast.ExprStmt, "", "(Assign x (Call f None))"},
		{"x := f(a, b);", ast.ExprStmt, "", "(Assign x (Call f [a, b]))"},
		{"x := arr[i + 1];", ast.ExprStmt, "", "(Assign x (ArrayAcc arr (Add i 1)))"},
		{"x := p.y;", ast.ExprStmt, "", "(Assign x (StructAcc p y))"},
		{"arr[1] := 2;", ast.ExprStmt, "", "(Assign (ArrayAcc arr 1) 2)"},
		{"p.x := 3;", ast.ExprStmt, "", "(Assign (StructAcc p x) 3)"},
		{"f();", ast.CallStmt, "f", "None"},
		{"f(a);", ast.CallStmt, "f", "a"},
		{"f(a, b, c);", ast.CallStmt, "f", "[a, b, c]"},
		{"f(g(1), 2);", ast.CallStmt, "f", "[(Call g 1), 2]"},
		{"return;", ast.Return, "", "None"},
		{"return x % 2;", ast.Return, "", "(Mod x 2)"},
		{"break;", ast.Break, "", "None"},
		{"continue;", ast.Continue, "", "None"},
	}

	for _, test := range tests {
		stmts := body(t, test.src)
		if len(stmts) != 1 {
			t.Errorf("%q: got %d statements, want 1", test.src, len(stmts))
			continue
		}
		stmt := stmts[0]
		if stmt.Type() != test.wantType {
			t.Errorf("%q: type %s, want %s", test.src, stmt.Type(), test.wantType)
		}
		if stmt.Name() != test.wantName {
			t.Errorf("%q: name %q, want %q", test.src, stmt.Name(), test.wantName)
		}
		if got := stmt.Expression().Dump(); got != test.wantExpr {
			t.Errorf("%q: expression %s, want %s", test.src, got, test.wantExpr)
		}
	}
}

func TestVarDecShape(t *testing.T) {
	stmt := body(t, "var x : i32 := 5;")[0]

	if stmt.DataType() != ast.I32 {
		t.Errorf("data type %s, want i32", stmt.DataType())
	}
	init := stmt.Expression()
	if init.Type() != ast.Assign {
		t.Fatalf("initializer is %s, want Assign", init.Type())
	}
	if lval := init.LVal(); lval.Type() != ast.Id || lval.Name() != "x" {
		t.Errorf("initializer target is %s, want Id x", lval.Dump())
	}
	if rval := init.RVal(); rval.Type() != ast.IntLiteral || rval.IntValue() != 5 {
		t.Errorf("initializer value is %s, want 5", rval.Dump())
	}
}

func TestBinaryOperands(t *testing.T) {
	ops := map[string]ast.AstType{
		"+": ast.Add, "-": ast.Sub, "*": ast.Mul, "/": ast.Div, "%": ast.Mod,
		"&": ast.And, "|": ast.Or, "^": ast.Xor,
		"=": ast.Eq, "!=": ast.Ne, ">": ast.Gt, ">=": ast.Ge, "<": ast.Lt, "<=": ast.Le,
		"&&": ast.LGAnd, "||": ast.LGOr,
	}

	for op, want := range ops {
		stmt := body(t, "return left "+op+" right;")[0]
		expr := stmt.Expression()
		if expr.Type() != want {
			t.Errorf("%s: type %s, want %s", op, expr.Type(), want)
			continue
		}
		if expr.Operands() != 2 {
			t.Errorf("%s: %d operands, want 2", op, expr.Operands())
			continue
		}
		if expr.LVal().Name() != "left" || expr.RVal().Name() != "right" {
			t.Errorf("%s: operands %s", op, expr.Dump())
		}
	}
}

func TestParenthesesAreTransparent(t *testing.T) {
	tests := []struct{ plain, wrapped string }{
		{"x := a;", "x := (a);"},
		{"x := a + b;", "x := ((a + b));"},
		{"return f(a);", "return (f(a));"},
		{"f(a);", "f((a));"},
	}

	for _, test := range tests {
		plain := body(t, test.plain)[0].Expression().Dump()
		wrapped := body(t, test.wrapped)[0].Expression().Dump()
		if plain != wrapped {
			t.Errorf("%q gives %s but %q gives %s", test.plain, plain, test.wrapped, wrapped)
		}
	}
}

func TestIfChain(t *testing.T) {
	stmts := body(t, `
		if a then
			x := 1;
		elif b then
			x := 2;
		else
			x := 3;
		end
		y := 4;`)

	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	stmt := stmts[0]
	if stmt.Type() != ast.If {
		t.Fatalf("statement is %s, want If", stmt.Type())
	}
	if got := stmt.Expression().Dump(); got != "a" {
		t.Errorf("condition %s, want a", got)
	}
	if n := len(stmt.Body().Statements()); n != 1 {
		t.Errorf("if body has %d statements, want 1", n)
	}

	branches := stmt.Branches()
	if len(branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(branches))
	}
	if branches[0].Type() != ast.Elif || branches[0].Expression().Dump() != "b" {
		t.Errorf("first branch is %s %s, want Elif b", branches[0].Type(), branches[0].Expression().Dump())
	}
	if branches[1].Type() != ast.Else {
		t.Errorf("second branch is %s, want Else", branches[1].Type())
	}
	if got := branches[1].Body().Statements()[0].Expression().Dump(); got != "(Assign x 3)" {
		t.Errorf("else body %s, want (Assign x 3)", got)
	}
	if got := stmts[1].Expression().Dump(); got != "(Assign y 4)" {
		t.Errorf("statement after if is %s", got)
	}
}

func TestWhile(t *testing.T) {
	stmt := body(t, "while i < 10 do i := i + 1; continue; end")[0]

	if stmt.Type() != ast.While {
		t.Fatalf("statement is %s, want While", stmt.Type())
	}
	if got := stmt.Expression().Dump(); got != "(Lt i 10)" {
		t.Errorf("condition %s", got)
	}
	inner := stmt.Body().Statements()
	if len(inner) != 2 || inner[1].Type() != ast.Continue {
		t.Errorf("unexpected loop body %v", inner)
	}
}

func TestFunctionHeader(t *testing.T) {
	file, diags := parse(t, "func add(a : i32, b : u64) -> bool is return a + b; end")
	if len(diags) > 0 {
		t.Fatal(diags.Error())
	}

	f := file.Functions()[0]
	if f.Name() != "add" || f.DataType() != ast.Bool {
		t.Errorf("header is %s -> %s", f.Name(), f.DataType())
	}
	args := f.Args()
	if len(args) != 2 {
		t.Fatalf("got %d args, want 2", len(args))
	}
	if args[0].Name() != "a" || args[0].DataType() != ast.I32 || args[1].Name() != "b" || args[1].DataType() != ast.U64 {
		t.Errorf("args are %s:%s, %s:%s", args[0].Name(), args[0].DataType(), args[1].Name(), args[1].DataType())
	}

	file, _ = parse(t, "func main is end")
	if f := file.Functions()[0]; f.DataType() != ast.Void || len(f.Args()) != 0 {
		t.Errorf("bare header gave %s with %d args", f.DataType(), len(f.Args()))
	}
}

func TestTopLevel(t *testing.T) {
	file, diags := parse(t, `
		import std.io;
		const max : u8 := 255;
		struct point is
			x : i32 := 0;
			y : i32;
		end
		func f is
			const k : i32 := 3;
			while true do
				const inner : bool := false;
			end
		end`)
	if len(diags) > 0 {
		t.Fatal(diags.Error())
	}

	if imports := file.Imports(); len(imports) != 1 || imports[0] != "std/io" {
		t.Errorf("imports %v, want [std/io]", imports)
	}

	consts := file.Consts()
	if len(consts) != 1 || consts[0].Name() != "max" || consts[0].Expression().Dump() != "255" {
		t.Errorf("unexpected global constants")
	}

	structs := file.Structs()
	if len(structs) != 1 || structs[0].Name() != "point" {
		t.Fatalf("unexpected structs")
	}
	items := structs[0].Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if got := items[0].Expression().Dump(); got != "(Assign x 0)" {
		t.Errorf("default of x is %s", got)
	}
	if !items[1].Expression().IsNone() {
		t.Errorf("y has a default: %s", items[1].Expression().Dump())
	}

	local := file.Functions()[0].Consts()
	if len(local) != 2 || local[0].Name() != "k" || local[1].Name() != "inner" {
		t.Errorf("function constants are %v, want k and inner", local)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		kind      Kind
		count     int
		functions int
	}{
		{"missing function name", "func is end func g is end", MalformedFunction, 1, 2},
		{"stray top-level token", "42 func f is end", UnexpectedTopLevel, 1, 1},
		{"unknown data type", "func f is var x : foo; end", UnknownDataType, 1, 1},
		{"invalid character", "func f is x := @; end", InvalidToken, 1, 1},
		{"missing is", "func f x := 1; end", MalformedFunction, 1, 1},
		{"bad parameter", "func f(1) is end", MalformedFunction, 1, 1},
		{"unterminated block", "func f is x := 1;", MalformedStatement, 1, 1},
		{"elif without if", "func f is elif a then end", MalformedStatement, 1, 1},
		{"clause after else", "func f is if a then else else end end", MalformedStatement, 1, 1},
		{"bad declaration", "func f is var 1; x := 2; end", MalformedDeclaration, 1, 1},
		{"bad struct item", "struct s is 1; x : i8; end", MalformedStruct, 1, 0},
		{"missing operand", "func f is return 1 +; end", MalformedExpression, 1, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			file, diags := parse(t, test.src)
			if got := diags.Count(test.kind); got != test.count {
				t.Errorf("got %d %s diagnostics, want %d:\n%s", got, test.kind, test.count, diags.Error())
			}
			if got := len(file.Functions()); got != test.functions {
				t.Errorf("got %d functions, want %d", got, test.functions)
			}
			if diags.Err() == nil {
				t.Error("Err() is nil with diagnostics present")
			}
		})
	}
}

func TestMissingFunctionName(t *testing.T) {
	file, diags := parse(t, "func is end")

	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Pos.Line != 1 || d.Pos.Column != 6 {
		t.Errorf("diagnostic at %s, want 1:6", d.Pos)
	}
	if d.Token != "is" {
		t.Errorf("diagnostic token %q, want \"is\"", d.Token)
	}
	if f := file.Functions(); len(f) != 1 || f[0].Name() != "" {
		t.Errorf("expected one unnamed function")
	}
}

func TestCleanSourceHasNoDiagnostics(t *testing.T) {
	_, diags := parse(t, "# comment\nfunc main -> i32 is\n    return 0;\nend\n")
	if err := diags.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestParseFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "main.tl")
	if err := os.WriteFile(name, []byte("func main is print(\"hi\"); end"), 0644); err != nil {
		t.Fatal(err)
	}

	file, diags, err := ParseFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) > 0 {
		t.Fatal(diags.Error())
	}
	if file.Name() != name {
		t.Errorf("file name %q, want %q", file.Name(), name)
	}
	stmt := file.Functions()[0].Block().Statements()[0]
	if stmt.Type() != ast.CallStmt || stmt.Name() != "print" {
		t.Errorf("statement is %s %s, want CallStmt print", stmt.Type(), stmt.Name())
	}

	if _, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.tl")); err == nil {
		t.Error("ParseFile on a missing file returned no error")
	}
}
