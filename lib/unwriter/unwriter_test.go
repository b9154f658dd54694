package unwriter

import (
	"bytes"
	"testing"

	"github.com/vyPal/tlc/lib/ast"
	"github.com/vyPal/tlc/lib/parser"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, diags, err := parser.ParseString("test.tl", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics for %q:\n%s", src, diags.Error())
	}
	return file
}

func dump(file *ast.File) string {
	var buf bytes.Buffer
	ast.Fprint(&buf, file)
	return buf.String()
}

func TestUnwriteSimpleFunction(t *testing.T) {
	file := mustParse(t, "func f is var x : i32 := 5; end")

	want := "func f is\n    var x : i32 := 5;\nend\n"
	if got := String(file, Options{}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

const program = `import std.io;
const max : u8 := 255;
struct point is x : i32 := 0; y : i32; end
func add(a : i32, b : i32) -> i32 is return a + b; end
func main is
  const k : i32 := 3;
  struct p : point;
  var arr : u8[10];
  var s : string := "hi";
  arr[0] := 'a';
  p.x := add(1, 2);
  while i < 10 do i := i + 1; if i = 5 then break; elif i = 6 then continue; else print(i); end end
  return;
end`

const canonical = `import std.io;

const max : u8 := 255;

struct point is
    x : i32 := 0;
    y : i32;
end

func add(a : i32, b : i32) -> i32 is
    return a + b;
end

func main is
    const k : i32 := 3;
    struct p : point;
    var arr : u8[10];
    var s : string := "hi";
    arr[0] := 'a';
    p.x := add(1, 2);
    while i < 10 do
        i := i + 1;
        if i = 5 then
            break;
        elif i = 6 then
            continue;
        else
            print(i);
        end
    end
    return;
end
`

func TestUnwriteProgram(t *testing.T) {
	file := mustParse(t, program)

	var buf bytes.Buffer
	if err := Unwrite(&buf, file, Options{Indent: DefaultIndent}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != canonical {
		t.Errorf("got:\n%s\nwant:\n%s", got, canonical)
	}
}

func TestUnwriteIndent(t *testing.T) {
	file := mustParse(t, "func f is while a do b(); end end")

	want := "func f is\n  while a do\n    b();\n  end\nend\n"
	if got := String(file, Options{Indent: 2}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"func f is var x : i32 := 5; end",
		program,
		"func f is x := a - b - c; end",
		"func f is x := (a - b) - c; end",
		"func f is x := (a + b) * (c + d); end",
		"func f is x := a && (b || c) = d; end",
		"func f is f((a, b), c); end",
		"func f is x := g((1, 2)); end",
		"func f is x := y[(i + 1) * 2]; end",
		"func f(c : char) -> bool is return c = '\\n'; end",
		"func f is var b : bool := true; var c : bool := false; end",
		"func f is if a then elif b then elif c then else end end",
	}

	for _, src := range tests {
		first := mustParse(t, src)
		text := String(first, Options{})
		second := mustParse(t, text)

		if dump(first) != dump(second) {
			t.Errorf("%q did not survive a round trip:\nfirst:\n%s\nsecond:\n%s", src, dump(first), dump(second))
		}
		if again := String(second, Options{}); again != text {
			t.Errorf("%q: output is not stable:\n%s\n---\n%s", src, text, again)
		}
	}
}

func TestExpression(t *testing.T) {
	tests := []struct {
		expr *ast.Expression
		want string
	}{
		{ast.NewNone(), ""},
		{ast.NewIntLiteral(42), "42"},
		{ast.NewStringLiteral("s"), `"s"`},
		{ast.NewCharLiteral('\t'), `'\t'`},
		{ast.NewBoolLiteral(false), "false"},
		{ast.NewCall("f", nil), "f()"},
		{ast.NewCall("f", ast.NewList([]*ast.Expression{ast.NewId("a"), ast.NewId("b")})), "f(a, b)"},
		{ast.NewStructAcc("p", "x"), "p.x"},
		{ast.NewBinary(ast.Sub, ast.NewBinary(ast.Sub, ast.NewId("a"), ast.NewId("b")), ast.NewId("c")), "(a - b) - c"},
		{ast.NewBinary(ast.Assign, ast.NewNone(), ast.NewIntLiteral(1)), ":= 1"},
		{ast.NewBinary(ast.Assign, ast.NewId("x"), ast.NewBinary(ast.Add, ast.NewId("y"), ast.NewIntLiteral(1))), "x := y + 1"},
	}

	for _, test := range tests {
		if got := Expression(test.expr); got != test.want {
			t.Errorf("Expression(%s) = %q, want %q", test.expr.Dump(), got, test.want)
		}
	}
}
