package syntree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestKid(t *testing.T) {
	n := NewOp("tau", NewInt("1"), NewInt("2"), NewInt("3"))
	if n.Arity() != 3 {
		t.Errorf("expected arity 3, got %d", n.Arity())
	}
	if k := n.Kid(1); k == nil || k.Text != "2" {
		t.Errorf("expected kid #1 to be 2, got %v", k)
	}
	if k := n.Kid(3); k != nil {
		t.Errorf("expected kid #3 to be nil, got %v", k)
	}
}

func TestLabels(t *testing.T) {
	if l := NewIdent("x").Label(); l != "<ID:x>" {
		t.Errorf("expected <ID:x>, got %s", l)
	}
	if l := NewInt("42").Label(); l != "<INT:42>" {
		t.Errorf("expected <INT:42>, got %s", l)
	}
	if l := NewString("abc").Label(); l != "<STR:'abc'>" {
		t.Errorf("expected <STR:'abc'>, got %s", l)
	}
	if l := NewOp("gamma").Label(); l != "gamma" {
		t.Errorf("expected gamma, got %s", l)
	}
}

func TestNewOpRelinksSiblings(t *testing.T) {
	a, b := NewIdent("a"), NewIdent("b")
	first := NewOp("+", a, b)
	if first.Kid(0) != a || first.Kid(1) != b {
		t.Errorf("expected children a, b")
	}
	// reuse a in another node: its old sibling link must not leak
	second := NewOp("neg", a)
	if second.Kid(0).Sibling != nil {
		t.Errorf("expected sibling link to be cleared on reuse")
	}
}

func TestDotString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.syntree")
	defer teardown()
	//
	n := NewOp("let",
		NewOp("=", NewIdent("x"), NewInt("5")),
		NewOp("+", NewIdent("x"), NewInt("3")))
	expected := "let\n.=\n..<ID:x>\n..<INT:5>\n.+\n..<ID:x>\n..<INT:3>\n"
	if n.DotString() != expected {
		t.Errorf("unexpected dump:\n%s", n.DotString())
	}
}

func TestCopyLeaf(t *testing.T) {
	x := NewIdent("x")
	x.Sibling = NewIdent("y")
	c := x.CopyLeaf()
	if c == x || c.Text != "x" || c.Sibling != nil || c.Child != nil {
		t.Errorf("expected a fresh unlinked leaf, got %v", c)
	}
}

func TestWalkPostOrder(t *testing.T) {
	n := NewOp("+", NewInt("1"), NewOp("*", NewInt("2"), NewInt("3")))
	var visited []string
	n.Walk(func(node *Node) {
		visited = append(visited, node.Label())
	})
	expected := []string{"<INT:1>", "<INT:2>", "<INT:3>", "*", "+"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %d nodes, visited %d", len(expected), len(visited))
	}
	for i, l := range expected {
		if visited[i] != l {
			t.Errorf("expected visit #%d to be %s, got %s", i, l, visited[i])
		}
	}
}
