package cse

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func deltaItems(t *testing.T, prog *Program, id int) string {
	t.Helper()
	d := prog.Delta(id)
	if d == nil {
		t.Fatalf("no control structure %d", id)
	}
	var parts []string
	it := d.Body.Iterator()
	for it.Next() {
		parts = append(parts, ItemString(it.Value()))
	}
	return strings.Join(parts, ", ")
}

func TestFlattenLambda(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.cse")
	defer teardown()
	//
	prog := flattenString(t, "(fn x . x + 1) 2")
	if prog.Size() != 2 {
		t.Fatalf("expected 2 control structures, got %d", prog.Size())
	}
	// the closure template renders with a '-' environment while unbound
	if got := deltaItems(t, prog, 0); got != "gamma, <- lambda 1 [x]>, <INT:2>" {
		t.Errorf("unexpected delta 0: %s", got)
	}
	if got := deltaItems(t, prog, 1); got != "+, <ID:x>, <INT:1>" {
		t.Errorf("unexpected delta 1: %s", got)
	}
}

func TestFlattenConditional(t *testing.T) {
	prog := flattenString(t, "true -> 1 | 2")
	if got := deltaItems(t, prog, 0); got != "delta_1_t, delta_2_f, beta, true" {
		t.Errorf("unexpected delta 0: %s", got)
	}
	if got := deltaItems(t, prog, 1); got != "<INT:1>" {
		t.Errorf("unexpected then-branch: %s", got)
	}
	if got := deltaItems(t, prog, 2); got != "<INT:2>" {
		t.Errorf("unexpected else-branch: %s", got)
	}
}

func TestFlattenTau(t *testing.T) {
	prog := flattenString(t, "1, 2, 3")
	if got := deltaItems(t, prog, 0); got != "tau_3, <INT:1>, <INT:2>, <INT:3>" {
		t.Errorf("unexpected delta 0: %s", got)
	}
}

func TestFlattenY(t *testing.T) {
	prog := flattenString(t, "let rec f n = n in f 0")
	// delta 0 applies the let-lambda to (Y lambda)
	if got := deltaItems(t, prog, 0); !strings.Contains(got, "Y_star") {
		t.Errorf("expected Y_star in delta 0, got: %s", got)
	}
}

// Operators are emitted before their operands; since delta bodies splice
// with the last item on top, operands still evaluate first.
func TestOperatorEmitOrder(t *testing.T) {
	prog := flattenString(t, "10 - 3")
	if got := deltaItems(t, prog, 0); got != "-, <INT:10>, <INT:3>" {
		t.Errorf("unexpected delta 0: %s", got)
	}
}

func TestMonotonicDeltaIDs(t *testing.T) {
	prog := flattenString(t, "fn a . fn b . (true -> a | b)")
	if prog.Size() != 5 {
		t.Errorf("expected 5 control structures, got %d", prog.Size())
	}
	for id := 0; id < prog.Size(); id++ {
		if prog.Delta(id) == nil {
			t.Errorf("expected a dense id range, %d is missing", id)
		}
	}
}
