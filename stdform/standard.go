package stdform

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/mwijesinghe/rpali/syntree"
)

// StandardizationError describes a subtree whose shape does not match the
// pattern expected for its tag. It is a diagnostic, not a fatal error: the
// offending subtree is left alone. A name bound twice in an 'and' is also
// reported this way, but that subtree is still rewritten.
type StandardizationError struct {
	Tag    string
	Reason string
}

func (e *StandardizationError) Error() string {
	return fmt.Sprintf("cannot standardize '%s': %s", e.Tag, e.Reason)
}

// Standardizer transforms an AST to standard form, collecting diagnostics
// for subtrees it had to pass through unchanged.
type Standardizer struct {
	diags []error
}

// New creates a Standardizer.
func New() *Standardizer {
	return &Standardizer{}
}

// Standardize is a convenience for a one-shot transformation. It returns the
// standardized tree together with any diagnostics.
func Standardize(root *syntree.Node) (*syntree.Node, []error) {
	s := New()
	st := s.Standardize(root)
	return st, s.Diagnostics()
}

// Diagnostics returns the diagnostics recorded so far.
func (s *Standardizer) Diagnostics() []error {
	return s.diags
}

// Standardize walks the tree in post-order and rewrites every node whose
// tag names a surface construct. The input tree is consumed; the returned
// node is the new root.
func (s *Standardizer) Standardize(root *syntree.Node) *syntree.Node {
	if root == nil {
		return nil
	}
	st := s.walk(root)
	tracer().Debugf("ST =\n%s", st.DotString())
	return st
}

// walk standardizes the children of n, then n itself. It does not touch
// n's sibling chain; that is the caller's business.
func (s *Standardizer) walk(n *syntree.Node) *syntree.Node {
	if n == nil {
		return nil
	}
	var head, last *syntree.Node
	for c := n.Child; c != nil; {
		next := c.Sibling
		nc := s.walk(c)
		nc.Sibling = nil
		if last == nil {
			head = nc
		} else {
			last.Sibling = nc
		}
		last = nc
		c = next
	}
	n.Child = head
	return s.rewrite(n)
}

func (s *Standardizer) rewrite(n *syntree.Node) *syntree.Node {
	if n.Type != syntree.OpType {
		return n
	}
	switch n.Text {
	case "let":
		return s.rewriteLet(n)
	case "where":
		return s.rewriteWhere(n)
	case "function_form":
		return s.rewriteFunctionForm(n)
	case "lambda":
		return s.rewriteLambda(n)
	case "within":
		return s.rewriteWithin(n)
	case "@":
		return s.rewriteAt(n)
	case "and":
		return s.rewriteAnd(n)
	case "rec":
		return s.rewriteRec(n)
	}
	return n
}

func (s *Standardizer) diag(n *syntree.Node, reason string) *syntree.Node {
	err := &StandardizationError{Tag: n.Text, Reason: reason}
	tracer().Errorf(err.Error())
	s.diags = append(s.diags, err)
	return n
}

// isBinding checks for an '=' node with a bindable left side: an identifier,
// a ','-list of identifiers, or '()'.
func isBinding(n *syntree.Node) bool {
	if !n.IsOp("=") || n.Arity() != 2 {
		return false
	}
	lhs := n.Kid(0)
	return lhs.Type == syntree.IdentType || lhs.IsOp(",") || lhs.IsOp("()")
}

//    let               gamma
//    / \               /   \
//   =   P    =>    lambda   E
//  / \             /   \
// x   E           x     P
func (s *Standardizer) rewriteLet(n *syntree.Node) *syntree.Node {
	if n.Arity() != 2 || !isBinding(n.Kid(0)) {
		return s.diag(n, "expected a binding and a body")
	}
	eq, body := n.Kid(0), n.Kid(1)
	x, e := eq.Kid(0), eq.Kid(1)
	return syntree.NewOp("gamma", syntree.NewOp("lambda", x, body), e)
}

//   where              gamma
//   /  \               /   \
//  P    =     =>   lambda   E
//      / \         /   \
//     x   E       x     P
func (s *Standardizer) rewriteWhere(n *syntree.Node) *syntree.Node {
	if n.Arity() != 2 || !isBinding(n.Kid(1)) {
		return s.diag(n, "expected a body and a binding")
	}
	body, eq := n.Kid(0), n.Kid(1)
	x, e := eq.Kid(0), eq.Kid(1)
	return syntree.NewOp("gamma", syntree.NewOp("lambda", x, body), e)
}

//  function_form            =
//  /    |     \            / \
// P     V+     E   =>     P   +lambda
//                              /  \
//                             V    .E
func (s *Standardizer) rewriteFunctionForm(n *syntree.Node) *syntree.Node {
	kids := n.Children()
	if len(kids) < 3 {
		return s.diag(n, "expected a name, parameters and a body")
	}
	name := kids[0]
	body := kids[len(kids)-1]
	params := kids[1 : len(kids)-1]
	return syntree.NewOp("=", name, nestLambdas(params, body))
}

//  lambda          ++lambda
//  /    \          /      \
// V++    E   =>   V        .E
func (s *Standardizer) rewriteLambda(n *syntree.Node) *syntree.Node {
	kids := n.Children()
	if len(kids) < 2 {
		return s.diag(n, "expected parameters and a body")
	}
	if len(kids) == 2 {
		return n // single parameter, already canonical
	}
	body := kids[len(kids)-1]
	params := kids[:len(kids)-1]
	return nestLambdas(params, body)
}

// nestLambdas builds right-nested single-parameter lambdas over body.
func nestLambdas(params []*syntree.Node, body *syntree.Node) *syntree.Node {
	for i := len(params) - 1; i >= 0; i-- {
		body = syntree.NewOp("lambda", params[i], body)
	}
	return body
}

//   within                 =
//  /      \               / \
// =        =      =>     x2  gamma
// / \      / \              /     \
// x1  E1  x2  E2         lambda    E1
//                        /    \
//                       x1    E2
func (s *Standardizer) rewriteWithin(n *syntree.Node) *syntree.Node {
	if n.Arity() != 2 || !isBinding(n.Kid(0)) || !isBinding(n.Kid(1)) {
		return s.diag(n, "expected two bindings")
	}
	eq1, eq2 := n.Kid(0), n.Kid(1)
	x1, e1 := eq1.Kid(0), eq1.Kid(1)
	x2, e2 := eq2.Kid(0), eq2.Kid(1)
	inner := syntree.NewOp("gamma", syntree.NewOp("lambda", x1, e2), e1)
	return syntree.NewOp("=", x2, inner)
}

//    @                  gamma
//  / | \                /   \
// E1 N  E2    =>    gamma    E2
//                   /   \
//                  N     E1
func (s *Standardizer) rewriteAt(n *syntree.Node) *syntree.Node {
	if n.Arity() != 3 {
		return s.diag(n, "expected two operands and an infix name")
	}
	e1, nm, e2 := n.Kid(0), n.Kid(1), n.Kid(2)
	return syntree.NewOp("gamma", syntree.NewOp("gamma", nm, e1), e2)
}

//  and               =
//   |               / \
//   =++    =>      ,   tau
//  / \             |    |
// x   E           x++  E++
func (s *Standardizer) rewriteAnd(n *syntree.Node) *syntree.Node {
	kids := n.Children()
	if len(kids) < 2 {
		return s.diag(n, "expected at least two bindings")
	}
	names := treeset.NewWith(utils.StringComparator)
	xs := make([]*syntree.Node, len(kids))
	es := make([]*syntree.Node, len(kids))
	for i, eq := range kids {
		if !isBinding(eq) {
			return s.diag(n, "expected every definition to be a binding")
		}
		xs[i] = eq.Kid(0)
		es[i] = eq.Kid(1)
		if xs[i].Type == syntree.IdentType {
			if names.Contains(xs[i].Text) {
				s.diag(n, fmt.Sprintf("name '%s' bound twice", xs[i].Text))
			}
			names.Add(xs[i].Text)
		}
	}
	return syntree.NewOp("=",
		syntree.NewOp(",", xs...),
		syntree.NewOp("tau", es...))
}

//  rec            =
//   |            / \
//   =     =>    x   gamma
//  / \              /   \
// x   E            Y     lambda
//                        /    \
//                       x      E
func (s *Standardizer) rewriteRec(n *syntree.Node) *syntree.Node {
	if n.Arity() != 1 || !isBinding(n.Kid(0)) {
		return s.diag(n, "expected a single binding")
	}
	eq := n.Kid(0)
	x, e := eq.Kid(0), eq.Kid(1)
	if x.Type != syntree.IdentType {
		return s.diag(n, "recursive binding needs a plain name")
	}
	fix := syntree.NewOp("gamma",
		syntree.NewOp("Y"),
		syntree.NewOp("lambda", x, e))
	return syntree.NewOp("=", x.CopyLeaf(), fix)
}
