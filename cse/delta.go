package cse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/mwijesinghe/rpali/syntree"
)

// Delta is a numbered control structure: an immutable list of control
// items. Item order is the emission order; the machine splices a body onto
// the control stack so that the last emitted item ends up on top.
type Delta struct {
	ID   int
	Body *arraylist.List
}

func (d *Delta) String() string {
	parts := make([]string, 0, d.Body.Size())
	it := d.Body.Iterator()
	for it.Next() {
		parts = append(parts, ItemString(it.Value()))
	}
	return fmt.Sprintf("delta_%d(%s)", d.ID, strings.Join(parts, ", "))
}

// Program is the flattened form of a standardized tree: a table of deltas,
// with delta 0 holding the program body.
type Program struct {
	deltas map[int]*Delta
}

// Delta returns the control structure with the given id, or nil.
func (p *Program) Delta(id int) *Delta {
	return p.deltas[id]
}

// Size returns the number of control structures.
func (p *Program) Size() int {
	return len(p.deltas)
}

// Flatten walks a standardized tree in pre-order and produces its control
// structures. Lambdas allocate a fresh delta for their body; conditional
// arms allocate one delta each.
func Flatten(st *syntree.Node) (*Program, error) {
	if st == nil {
		return nil, errStuckf("empty program")
	}
	f := &flattener{prog: &Program{deltas: make(map[int]*Delta)}}
	body := arraylist.New()
	if err := f.emit(st, body); err != nil {
		return nil, err
	}
	f.register(0, body)
	tracer().Debugf("flattened into %d control structures", f.prog.Size())
	return f.prog, nil
}

type flattener struct {
	prog *Program
	next int // last issued delta id; ids are issued monotonically
}

func (f *flattener) alloc() int {
	f.next++
	return f.next
}

func (f *flattener) register(id int, body *arraylist.List) {
	f.prog.deltas[id] = &Delta{ID: id, Body: body}
}

// walk emits every node of a sibling chain into body.
func (f *flattener) walk(n *syntree.Node, body *arraylist.List) error {
	for ; n != nil; n = n.Sibling {
		if err := f.emit(n, body); err != nil {
			return err
		}
	}
	return nil
}

// emit flattens a single node (not its siblings) into body.
func (f *flattener) emit(n *syntree.Node, body *arraylist.List) error {
	switch n.Type {
	case syntree.IdentType:
		body.Add(NameRef(n.Text))
		return nil
	case syntree.IntType:
		v, err := strconv.Atoi(n.Text)
		if err != nil {
			return errTypef("malformed integer literal '%s'", n.Text)
		}
		body.Add(IntConst(v))
		return nil
	case syntree.StringType:
		body.Add(StrConst(n.Text))
		return nil
	}
	switch n.Text {
	case "lambda":
		return f.emitLambda(n, body)
	case "->":
		return f.emitConditional(n, body)
	case "tau":
		body.Add(TauOp(n.Arity()))
		return f.walk(n.Child, body)
	case "true":
		body.Add(BoolConst(true))
	case "false":
		body.Add(BoolConst(false))
	case "nil":
		body.Add(Nil{})
	case "dummy":
		body.Add(Dummy{})
	case "Y":
		body.Add(YStar{})
	default:
		body.Add(Op(n.Text))
		return f.walk(n.Child, body)
	}
	return nil
}

func (f *flattener) emitLambda(n *syntree.Node, body *arraylist.List) error {
	if n.Arity() != 2 {
		return errStuckf("lambda with %d children", n.Arity())
	}
	params, err := boundNames(n.Kid(0))
	if err != nil {
		return err
	}
	id := f.alloc()
	body.Add(&Closure{Delta: id, Params: params, Kind: LambdaClosure})
	inner := arraylist.New()
	if err := f.emit(n.Kid(1), inner); err != nil {
		return err
	}
	f.register(id, inner)
	return nil
}

// emitConditional encodes '->' as: delta_t_t, delta_f_f, beta, condition.
// The condition evaluates first; 'beta' then selects an arm and discards the
// other reference.
func (f *flattener) emitConditional(n *syntree.Node, body *arraylist.List) error {
	if n.Arity() != 3 {
		return errStuckf("conditional with %d children", n.Arity())
	}
	thenID := f.alloc()
	elseID := f.alloc()
	body.Add(DeltaRef{ID: thenID, Arm: true})
	body.Add(DeltaRef{ID: elseID, Arm: false})
	body.Add(Op("beta"))
	if err := f.emit(n.Kid(0), body); err != nil {
		return err
	}
	thenBody := arraylist.New()
	if err := f.emit(n.Kid(1), thenBody); err != nil {
		return err
	}
	f.register(thenID, thenBody)
	elseBody := arraylist.New()
	if err := f.emit(n.Kid(2), elseBody); err != nil {
		return err
	}
	f.register(elseID, elseBody)
	return nil
}

// boundNames extracts the parameter list from a lambda's bound-name child:
// a single identifier, a ','-list of identifiers, or '()' for none.
func boundNames(n *syntree.Node) ([]string, error) {
	if n == nil {
		return nil, errStuckf("lambda without a bound name")
	}
	if n.Type == syntree.IdentType {
		return []string{n.Text}, nil
	}
	if n.IsOp("()") {
		return []string{}, nil
	}
	if n.IsOp(",") {
		kids := n.Children()
		names := make([]string, len(kids))
		for i, kid := range kids {
			if kid.Type != syntree.IdentType {
				return nil, errStuckf("lambda parameter %s is not an identifier", kid.Label())
			}
			names[i] = kid.Text
		}
		return names, nil
	}
	return nil, errStuckf("malformed lambda parameters %s", n.Label())
}
