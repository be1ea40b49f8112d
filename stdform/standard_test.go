package stdform

import (
	"strings"
	"testing"

	"github.com/mwijesinghe/rpali/parse"
	"github.com/mwijesinghe/rpali/scanner"
	"github.com/mwijesinghe/rpali/syntree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func standardizeString(t *testing.T, input string) (*syntree.Node, []error) {
	t.Helper()
	toks, err := scanner.Tokenize(input)
	if err != nil {
		t.Fatalf("tokenizing %q failed: %v", input, err)
	}
	ast, err := parse.Parse(toks)
	if err != nil {
		t.Fatalf("parsing %q failed: %v", input, err)
	}
	return Standardize(ast)
}

func expectST(t *testing.T, input string, lines ...string) {
	t.Helper()
	st, diags := standardizeString(t, input)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, diags)
	}
	expected := strings.Join(lines, "\n") + "\n"
	if st.DotString() != expected {
		t.Errorf("unexpected ST for %q:\n%sexpected:\n%s", input, st.DotString(), expected)
	}
}

func TestLet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.stdform")
	defer teardown()
	//
	expectST(t, "let x = 5 in x + 3",
		"gamma",
		".lambda",
		"..<ID:x>",
		"..+",
		"...<ID:x>",
		"...<INT:3>",
		".<INT:5>")
}

func TestWhere(t *testing.T) {
	expectST(t, "x + 1 where x = 5",
		"gamma",
		".lambda",
		"..<ID:x>",
		"..+",
		"...<ID:x>",
		"...<INT:1>",
		".<INT:5>")
}

func TestMultiParamLambda(t *testing.T) {
	expectST(t, "fn x y . x",
		"lambda",
		".<ID:x>",
		".lambda",
		"..<ID:y>",
		"..<ID:x>")
}

func TestFunctionForm(t *testing.T) {
	expectST(t, "let f x y = x in f",
		"gamma",
		".lambda",
		"..<ID:f>",
		"..<ID:f>",
		".lambda",
		"..<ID:x>",
		"..lambda",
		"...<ID:y>",
		"...<ID:x>")
}

func TestWithin(t *testing.T) {
	expectST(t, "let x = 1 within y = x in y",
		"gamma",
		".lambda",
		"..<ID:y>",
		"..<ID:y>",
		".gamma",
		"..lambda",
		"...<ID:x>",
		"...<ID:x>",
		"..<INT:1>")
}

func TestInfixAt(t *testing.T) {
	expectST(t, "a @ f b",
		"gamma",
		".gamma",
		"..<ID:f>",
		"..<ID:a>",
		".<ID:b>")
}

func TestSimultaneousDefs(t *testing.T) {
	expectST(t, "let x = 1 and y = 2 in x + y",
		"gamma",
		".lambda",
		"..,",
		"...<ID:x>",
		"...<ID:y>",
		"..+",
		"...<ID:x>",
		"...<ID:y>",
		".tau",
		"..<INT:1>",
		"..<INT:2>")
}

func TestRec(t *testing.T) {
	expectST(t, "let rec f n = n in f",
		"gamma",
		".lambda",
		"..<ID:f>",
		"..<ID:f>",
		".gamma",
		"..Y",
		"..lambda",
		"...<ID:f>",
		"...lambda",
		"....<ID:n>",
		"....<ID:n>")
}

func TestRecCopiesTheBoundName(t *testing.T) {
	st, diags := standardizeString(t, "let rec f n = n in f")
	if len(diags) > 0 {
		t.Fatal(diags)
	}
	// outer '=' has been consumed by 'let'; the copied name is the lambda's
	// bound name of the outer gamma's operator
	outer := st.Kid(0).Kid(0)             // <ID:f> bound by the let-lambda
	inner := st.Kid(1).Kid(1).Kid(0)      // <ID:f> bound inside the Y lambda
	if outer == inner {
		t.Errorf("expected the recursive name to be a fresh leaf, both point to %p", outer)
	}
	if outer.Text != "f" || inner.Text != "f" {
		t.Errorf("expected both names to read 'f', got %s and %s", outer.Text, inner.Text)
	}
}

// surfaceTags must not survive standardization.
var surfaceTags = map[string]bool{
	"let": true, "where": true, "within": true, "rec": true,
	"and": true, "function_form": true, "@": true,
}

func checkWellFormed(t *testing.T, st *syntree.Node) {
	t.Helper()
	st.Walk(func(n *syntree.Node) {
		if n.Type != syntree.OpType {
			return
		}
		if surfaceTags[n.Text] {
			t.Errorf("surface tag '%s' survived standardization", n.Text)
		}
		switch n.Text {
		case "gamma":
			if n.Arity() != 2 {
				t.Errorf("expected gamma to have 2 children, has %d", n.Arity())
			}
		case "lambda":
			if n.Arity() != 2 {
				t.Errorf("expected lambda to have 2 children, has %d", n.Arity())
			}
			lhs := n.Kid(0)
			if lhs.Type != syntree.IdentType && !lhs.IsOp(",") && !lhs.IsOp("()") {
				t.Errorf("lambda bound name is %s", lhs.Label())
			}
		case "Y":
			if n.Sibling == nil || !n.Sibling.IsOp("lambda") {
				t.Errorf("expected Y to be applied to a lambda")
			}
		}
	})
}

func TestWellFormedness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.stdform")
	defer teardown()
	//
	programs := []string{
		"let rec fact n = n eq 0 -> 1 | n * fact (n - 1) in fact 5",
		"let x = 1 and y = 2 within z = x + y in z",
		"let P (a,b) = a + b in P (3,4)",
		"(fn x y . x ** y) 2 @ add 3 where add u v = u + v",
		"Print (nil aug 'end')",
	}
	for _, prog := range programs {
		st, diags := standardizeString(t, prog)
		if len(diags) > 0 {
			t.Errorf("unexpected diagnostics for %q: %v", prog, diags)
		}
		checkWellFormed(t, st)
	}
}

func TestMalformedShapePassesThrough(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.stdform")
	defer teardown()
	//
	s := New()
	n := syntree.NewOp("let", syntree.NewIdent("x")) // one child only
	out := s.Standardize(n)
	if out != n {
		t.Errorf("expected the malformed node to pass through unchanged")
	}
	if len(s.Diagnostics()) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(s.Diagnostics()))
	}
}

func TestDuplicateSimultaneousNames(t *testing.T) {
	_, diags := standardizeString(t, "let x = 1 and x = 2 in x")
	if len(diags) != 1 {
		t.Errorf("expected a duplicate-name diagnostic, got %v", diags)
	}
}
