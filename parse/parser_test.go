package parse

import (
	"strings"
	"testing"

	"github.com/mwijesinghe/rpali/scanner"
	"github.com/mwijesinghe/rpali/syntree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parseString(t *testing.T, input string) *syntree.Node {
	t.Helper()
	toks, err := scanner.Tokenize(input)
	if err != nil {
		t.Fatalf("tokenizing %q failed: %v", input, err)
	}
	ast, err := Parse(toks)
	if err != nil {
		t.Fatalf("parsing %q failed: %v", input, err)
	}
	return ast
}

func expectAST(t *testing.T, input string, lines ...string) {
	t.Helper()
	ast := parseString(t, input)
	expected := strings.Join(lines, "\n") + "\n"
	if ast.DotString() != expected {
		t.Errorf("unexpected AST for %q:\n%sexpected:\n%s", input, ast.DotString(), expected)
	}
}

func TestLet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.parse")
	defer teardown()
	//
	expectAST(t, "let x = 5 in x + 3",
		"let",
		".=",
		"..<ID:x>",
		"..<INT:5>",
		".+",
		"..<ID:x>",
		"..<INT:3>")
}

func TestLambda(t *testing.T) {
	expectAST(t, "fn x y . x",
		"lambda",
		".<ID:x>",
		".<ID:y>",
		".<ID:x>")
}

func TestWhere(t *testing.T) {
	expectAST(t, "x where x = 5",
		"where",
		".<ID:x>",
		".=",
		"..<ID:x>",
		"..<INT:5>")
}

func TestTuple(t *testing.T) {
	expectAST(t, "1, 2, 3",
		"tau",
		".<INT:1>",
		".<INT:2>",
		".<INT:3>")
}

func TestConditional(t *testing.T) {
	expectAST(t, "true -> 1 | 2",
		"->",
		".true",
		".<INT:1>",
		".<INT:2>")
}

func TestApplicationIsLeftAssociative(t *testing.T) {
	expectAST(t, "f 1 2",
		"gamma",
		".gamma",
		"..<ID:f>",
		"..<INT:1>",
		".<INT:2>")
}

func TestInfixAt(t *testing.T) {
	expectAST(t, "a @ f b",
		"@",
		".<ID:a>",
		".<ID:f>",
		".<ID:b>")
}

func TestPrecedence(t *testing.T) {
	expectAST(t, "1 + 2 * 3",
		"+",
		".<INT:1>",
		".*",
		"..<INT:2>",
		"..<INT:3>")
	expectAST(t, "2 ** 3 ** 2",
		"**",
		".<INT:2>",
		".**",
		"..<INT:3>",
		"..<INT:2>")
	expectAST(t, "-1 + 2",
		"+",
		".neg",
		"..<INT:1>",
		".<INT:2>")
}

func TestComparisonsAndBooleans(t *testing.T) {
	expectAST(t, "not a & b or c gr 1",
		"or",
		".&",
		"..not",
		"...<ID:a>",
		"..<ID:b>",
		".gr",
		"..<ID:c>",
		"..<INT:1>")
}

func TestFunctionForm(t *testing.T) {
	expectAST(t, "let f x y = x in f",
		"let",
		".function_form",
		"..<ID:f>",
		"..<ID:x>",
		"..<ID:y>",
		"..<ID:x>",
		".<ID:f>")
}

func TestTuplePattern(t *testing.T) {
	expectAST(t, "let P (a,b) = a + b in P",
		"let",
		".function_form",
		"..<ID:P>",
		"..,",
		"...<ID:a>",
		"...<ID:b>",
		"..+",
		"...<ID:a>",
		"...<ID:b>",
		".<ID:P>")
}

func TestSimultaneousDefs(t *testing.T) {
	expectAST(t, "let x = 1 and y = 2 in x",
		"let",
		".and",
		"..=",
		"...<ID:x>",
		"...<INT:1>",
		"..=",
		"...<ID:y>",
		"...<INT:2>",
		".<ID:x>")
}

func TestRec(t *testing.T) {
	expectAST(t, "let rec f n = n in f",
		"let",
		".rec",
		"..function_form",
		"...<ID:f>",
		"...<ID:n>",
		"...<ID:n>",
		".<ID:f>")
}

func TestWithin(t *testing.T) {
	expectAST(t, "let x = 1 within y = x in y",
		"let",
		".within",
		"..=",
		"...<ID:x>",
		"...<INT:1>",
		"..=",
		"...<ID:y>",
		"...<ID:x>",
		".<ID:y>")
}

func TestEmptyParams(t *testing.T) {
	expectAST(t, "fn () . 1",
		"lambda",
		".()",
		".<INT:1>")
}

func TestSyntaxErrorPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.parse")
	defer teardown()
	//
	toks, err := scanner.Tokenize("let x = in x")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Parse(toks)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	synErr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected a *SyntaxError, got %T", err)
	}
	if synErr.Line != 1 || synErr.Col != 9 {
		t.Errorf("expected error at line 1, column 9, got line %d, column %d",
			synErr.Line, synErr.Col)
	}
}

func TestTrailingInput(t *testing.T) {
	toks, err := scanner.Tokenize("1 + 2 )")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Parse(toks); err == nil {
		t.Error("expected an error for trailing input")
	}
}
