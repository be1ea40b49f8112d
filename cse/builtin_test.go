package cse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTypePredicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.cse")
	defer teardown()
	//
	expectResult(t, "Isinteger 3", "true")
	expectResult(t, "Isinteger true", "false") // truthvalues are not integers
	expectResult(t, "Isinteger 'x'", "false")
	expectResult(t, "Istruthvalue false", "true")
	expectResult(t, "Istruthvalue 0", "false")
	expectResult(t, "Isstring 'x'", "true")
	expectResult(t, "Isstring 1", "false")
	expectResult(t, "Istuple (1, 2)", "true")
	expectResult(t, "Istuple nil", "false")
	expectResult(t, "Isdummy dummy", "true")
	expectResult(t, "Isdummy nil", "false")
	expectResult(t, "Isfunction (fn x . x)", "true")
	expectResult(t, "Isfunction Print", "true")
	expectResult(t, "Isfunction 1", "false")
}

func TestStringBuiltins(t *testing.T) {
	expectResult(t, "Stem 'xyz'", "x")
	expectResult(t, "Stern 'xyz'", "yz")
	expectResult(t, "Stern 'x'", "")
	expectResult(t, "Conc 'ab' 'cd'", "abcd")
	expectResult(t, "ItoS 42", "42")
	expectResult(t, "Isstring (ItoS 7)", "true")
}

func TestCurriedConcIsAValue(t *testing.T) {
	expectResult(t, "let C = Conc 'ab' in C 'cd'", "abcd")
	expectResult(t, "Isfunction (Conc 'ab')", "true")
}

func TestOrderAndNull(t *testing.T) {
	expectResult(t, "Order (1, 2, 3)", "3")
	expectResult(t, "Order nil", "0")
	expectResult(t, "Order 5", "0")
	expectResult(t, "Null nil", "true")
	expectResult(t, "Null (nil aug 1)", "false")
	expectResult(t, "Null 0", "false")
}

func TestBuiltinTypeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rpali.cse")
	defer teardown()
	//
	expectError(t, "Stem ''", TypeMismatch)
	expectError(t, "Stem 5", TypeMismatch)
	expectError(t, "Conc 'a' 1", TypeMismatch)
	expectError(t, "ItoS 'a'", TypeMismatch)
}
