package cse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/

import (
	"io"
	"os"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"

	"github.com/mwijesinghe/rpali/syntree"
)

// Machine is the CSE evaluator: a control stack, a value stack and an
// environment stack, driven by a table of control structures. A machine is
// good for one evaluation.
type Machine struct {
	prog    *Program
	control *arraystack.Stack // control items and environment markers
	values  *arraystack.Stack // values and environment markers
	envs    *arraystack.Stack // active environments, innermost on top
	nextEnv int
	steps   int

	// Out is where the Print builtin writes. Defaults to stdout.
	Out io.Writer
}

// New creates a machine for a flattened program.
func New(prog *Program) *Machine {
	return &Machine{
		prog:    prog,
		control: arraystack.New(),
		values:  arraystack.New(),
		envs:    arraystack.New(),
		Out:     os.Stdout,
	}
}

// Evaluate is a convenience: flatten a standardized tree and run it.
func Evaluate(st *syntree.Node) (Value, error) {
	prog, err := Flatten(st)
	if err != nil {
		return nil, err
	}
	return New(prog).Eval()
}

// Steps returns the number of rule applications so far. Evaluation is
// deterministic: the same program takes the same number of steps.
func (m *Machine) Steps() int {
	return m.steps
}

// Eval runs the machine until the control stack drains and returns the
// single surviving value.
func (m *Machine) Eval() (Value, error) {
	env0 := PrimitiveEnvironment()
	m.nextEnv = 1
	m.envs.Push(env0)
	m.control.Push(env0)
	if err := m.spliceDelta(0); err != nil {
		return nil, err
	}
	m.values.Push(env0)

	for !m.control.Empty() {
		if err := m.step(); err != nil {
			return nil, err
		}
		m.steps++
		m.traceState()
	}
	if m.values.Size() != 1 {
		return nil, errStuckf("evaluation left %d values on the stack", m.values.Size())
	}
	result, _ := m.values.Pop()
	return result, nil
}

// env returns the active environment, i.e. the top of the environment
// stack.
func (m *Machine) env() *Environment {
	top, ok := m.envs.Peek()
	if !ok {
		return nil
	}
	return top.(*Environment)
}

// spliceDelta appends a delta's body onto the control stack, last emitted
// item on top.
func (m *Machine) spliceDelta(id int) error {
	d := m.prog.Delta(id)
	if d == nil {
		return errStuckf("no control structure %d", id)
	}
	it := d.Body.Iterator()
	for it.Next() {
		m.control.Push(it.Value())
	}
	return nil
}

// step applies the single matching rule for the current state.
func (m *Machine) step() error {
	top, ok := m.control.Peek()
	if !ok {
		return errStuckf("empty control stack")
	}
	switch item := top.(type) {

	// Rule 1: stack a leaf
	case NameRef:
		env := m.env()
		if env == nil {
			return errStuckf("no active environment")
		}
		v, err := env.Lookup(string(item))
		if err != nil {
			return err
		}
		m.control.Pop()
		m.values.Push(v)

	case IntConst:
		m.control.Pop()
		m.values.Push(int(item))

	case StrConst:
		m.control.Pop()
		m.values.Push(string(item))

	case BoolConst:
		m.control.Pop()
		m.values.Push(bool(item))

	case Nil:
		m.control.Pop()
		m.values.Push(Nil{})

	case Dummy:
		m.control.Pop()
		m.values.Push(Dummy{})

	case YStar:
		m.control.Pop()
		m.values.Push(YStar{})

	// Rule 2: stack a lambda. Delta bodies hold closure templates; the
	// value is a clone capturing the active environment.
	case *Closure:
		m.control.Pop()
		m.values.Push(&Closure{
			Delta:  item.Delta,
			Params: item.Params,
			Kind:   item.Kind,
			Env:    m.env(),
		})

	// Rule 5: exit environment
	case *Environment:
		return m.exitEnvironment(item)

	// Rule 9: tuple formation
	case TauOp:
		m.control.Pop()
		n := int(item)
		elems := make([]Value, n)
		for i := 0; i < n; i++ {
			v, ok := m.values.Pop()
			if !ok {
				return errStuckf("tau_%d with %d values on the stack", n, i)
			}
			elems[i] = v
		}
		m.values.Push(&Tuple{Values: elems})

	case DeltaRef:
		return errStuckf("dangling branch reference %s", ItemString(item))

	case Op:
		return m.applyOp(item)

	default:
		return errStuckf("unrecognized control item %s", ItemString(top))
	}
	return nil
}

// exitEnvironment implements Rule 5: the marker under the value computed on
// top of it is removed from the value stack, the value stays, and the
// environment is left.
func (m *Machine) exitEnvironment(marker *Environment) error {
	m.control.Pop()
	result, ok := m.values.Pop()
	if !ok {
		return errStuckf("no value to carry out of %s", marker)
	}
	below, ok := m.values.Pop()
	if !ok {
		return errStuckf("no marker for %s on the value stack", marker)
	}
	if env, is := below.(*Environment); !is || env != marker {
		return errStuckf("expected marker %s on the value stack, found %s", marker, FormatValue(below))
	}
	m.values.Push(result)
	m.envs.Pop()
	return nil
}

func (m *Machine) applyOp(op Op) error {
	switch op {
	case "gamma":
		return m.applyGamma()
	case "beta":
		return m.applyBeta()
	case "not", "neg":
		return m.applyUnary(op)
	}
	if _, ok := binaryOps[op]; ok {
		return m.applyBinary(op)
	}
	return errStuckf("no rule for '%s'", string(op))
}

// applyGamma dispatches Rules 3, 4, 10, 12 and 13 on the top of the value
// stack.
func (m *Machine) applyGamma() error {
	rator, ok := m.values.Peek()
	if !ok {
		return errStuckf("gamma with an empty value stack")
	}
	switch f := rator.(type) {

	// Rule 3: apply a builtin
	case *Builtin:
		m.control.Pop()
		m.values.Pop()
		return m.applyBuiltin(f)

	case *Closure:
		if f.Kind == EtaClosure {
			// Rule 13: unfold eta. The pending gamma stays; a second one
			// joins it, and a lambda twin of the eta goes on top.
			m.control.Push(Op("gamma"))
			m.values.Push(&Closure{Delta: f.Delta, Params: f.Params, Kind: LambdaClosure, Env: f.Env})
			return nil
		}
		// Rule 4 (with Rule 11 folded in): apply a lambda closure
		m.control.Pop()
		m.values.Pop()
		return m.applyClosure(f)

	// Rule 12: apply Y
	case YStar:
		m.control.Pop()
		m.values.Pop()
		next, ok := m.values.Pop()
		if !ok {
			return errStuckf("Y with nothing to fix")
		}
		c, is := next.(*Closure)
		if !is || c.Kind != LambdaClosure {
			return errTypef("Y expects a lambda, got %s", FormatValue(next))
		}
		m.values.Push(&Closure{Delta: c.Delta, Params: c.Params, Kind: EtaClosure, Env: c.Env})
		return nil

	// Rule 10: tuple indexing
	case *Tuple:
		m.control.Pop()
		m.values.Pop()
		idx, ok := m.values.Pop()
		if !ok {
			return errStuckf("tuple selection without an index")
		}
		i, is := idx.(int)
		if !is {
			return errTypef("tuple index must be an integer, got %s", FormatValue(idx))
		}
		if i < 1 || i > f.Len() {
			return errIndexf("tuple index %d out of range for a tuple of order %d", i, f.Len())
		}
		m.values.Push(f.Values[i-1])
		return nil
	}
	return errTypef("%s is not a function", FormatValue(rator))
}

// applyClosure implements Rule 4: allocate an environment on top of the
// closure's captured one, bind the parameters, and enter the body.
func (m *Machine) applyClosure(c *Closure) error {
	env := NewEnvironment(m.nextEnv, c.Env)
	m.nextEnv++

	switch {
	case len(c.Params) == 0:
		// '()' parameter: the operand is consumed and dropped
		if _, ok := m.values.Pop(); !ok {
			return errStuckf("apply with an empty value stack")
		}
	case len(c.Params) == 1:
		arg, ok := m.values.Pop()
		if !ok {
			return errStuckf("apply with an empty value stack")
		}
		if err := env.Bind(c.Params[0], arg); err != nil {
			return err
		}
	default:
		arg, ok := m.values.Pop()
		if !ok {
			return errStuckf("apply with an empty value stack")
		}
		if t, is := arg.(*Tuple); is {
			// n-ary parameter list and a tuple operand: unpack
			if t.Len() != len(c.Params) {
				return errArityf("cannot unpack a tuple of order %d into %d parameters",
					t.Len(), len(c.Params))
			}
			for i, p := range c.Params {
				if err := env.Bind(p, t.Values[i]); err != nil {
					return err
				}
			}
		} else {
			if err := env.Bind(c.Params[0], arg); err != nil {
				return err
			}
			for _, p := range c.Params[1:] {
				next, ok := m.values.Pop()
				if !ok {
					return errArityf("missing argument for parameter '%s'", p)
				}
				if err := env.Bind(p, next); err != nil {
					return err
				}
			}
		}
	}

	m.envs.Push(env)
	m.control.Push(env)
	if err := m.spliceDelta(c.Delta); err != nil {
		return err
	}
	m.values.Push(env)
	return nil
}

// applyBuiltin implements Rule 3. Fixed-arity builtins are curried: one
// argument per gamma, firing once saturated. The variadic Print peels
// plain values.
func (m *Machine) applyBuiltin(b *Builtin) error {
	if b.Arity < 0 {
		var args []Value
		for {
			top, ok := m.values.Peek()
			if !ok || !isPlainValue(top) {
				break
			}
			m.values.Pop()
			args = append(args, top)
		}
		if len(args) == 0 {
			return errArityf("%s expects at least one argument", b.Name)
		}
		result, err := b.fn(m, args)
		if err != nil {
			return err
		}
		m.values.Push(result)
		return nil
	}

	arg, ok := m.values.Pop()
	if !ok {
		return errArityf("%s applied to nothing", b.Name)
	}
	args := make([]Value, 0, len(b.Args)+1)
	args = append(args, b.Args...)
	args = append(args, arg)
	if len(args) < b.Arity {
		m.values.Push(&Builtin{Name: b.Name, Arity: b.Arity, Args: args, fn: b.fn})
		return nil
	}
	result, err := b.fn(m, args)
	if err != nil {
		return err
	}
	m.values.Push(result)
	return nil
}

// applyBeta implements Rule 8: a truthvalue selects one of the two branch
// references sitting under the beta token; the other is discarded.
func (m *Machine) applyBeta() error {
	m.control.Pop()
	cond, ok := m.values.Pop()
	if !ok {
		return errStuckf("beta with an empty value stack")
	}
	b, is := cond.(bool)
	if !is {
		return errTypef("condition must be a truthvalue, got %s", FormatValue(cond))
	}
	elseItem, ok1 := m.control.Pop()
	thenItem, ok2 := m.control.Pop()
	if !ok1 || !ok2 {
		return errStuckf("beta without branch references")
	}
	elseRef, is1 := elseItem.(DeltaRef)
	thenRef, is2 := thenItem.(DeltaRef)
	if !is1 || !is2 || elseRef.Arm || !thenRef.Arm {
		return errStuckf("beta with malformed branch references")
	}
	if b {
		return m.spliceDelta(thenRef.ID)
	}
	return m.spliceDelta(elseRef.ID)
}

var binaryOps = map[Op]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "**": {},
	"gr": {}, "ge": {}, "ls": {}, "le": {}, "eq": {}, "ne": {},
	">": {}, ">=": {}, "<": {}, "<=": {},
	"&": {}, "or": {}, "aug": {},
}

// applyBinary implements Rule 6. The first value popped is the LEFT
// operand; '10 - 3' evaluates to 7.
func (m *Machine) applyBinary(op Op) error {
	m.control.Pop()
	left, ok1 := m.values.Pop()
	right, ok2 := m.values.Pop()
	if !ok1 || !ok2 {
		return errStuckf("'%s' with fewer than two values", string(op))
	}
	result, err := binary(op, left, right)
	if err != nil {
		return err
	}
	m.values.Push(result)
	return nil
}

func binary(op Op, left, right Value) (Value, error) {
	switch op {
	case "+", "-", "*", "/", "**":
		l, lok := left.(int)
		r, rok := right.(int)
		if !lok || !rok {
			return nil, errTypef("'%s' expects two integers, got %s and %s",
				string(op), FormatValue(left), FormatValue(right))
		}
		return arith(op, l, r)
	case "gr", ">", "ge", ">=", "ls", "<", "le", "<=":
		l, lok := left.(int)
		r, rok := right.(int)
		if !lok || !rok {
			return nil, errTypef("'%s' expects two integers, got %s and %s",
				string(op), FormatValue(left), FormatValue(right))
		}
		switch op {
		case "gr", ">":
			return l > r, nil
		case "ge", ">=":
			return l >= r, nil
		case "ls", "<":
			return l < r, nil
		default:
			return l <= r, nil
		}
	case "eq", "ne":
		equal, err := structEqual(left, right)
		if err != nil {
			return nil, err
		}
		if op == "ne" {
			return !equal, nil
		}
		return equal, nil
	case "&", "or":
		l, lok := left.(bool)
		r, rok := right.(bool)
		if !lok || !rok {
			return nil, errTypef("'%s' expects two truthvalues, got %s and %s",
				string(op), FormatValue(left), FormatValue(right))
		}
		if op == "&" {
			return l && r, nil
		}
		return l || r, nil
	case "aug":
		return augment(left, right)
	}
	return nil, errStuckf("unknown binary operator '%s'", string(op))
}

func arith(op Op, l, r int) (Value, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, errTypef("division by zero")
		}
		return l / r, nil
	}
	// '**'
	if r < 0 {
		return nil, errTypef("negative exponent %d", r)
	}
	result := 1
	for ; r > 0; r-- {
		result *= l
	}
	return result, nil
}

// augment appends a value to a tuple (or to nil, yielding a one-element
// tuple). The input tuple is not mutated; shared references stay valid.
func augment(left, right Value) (Value, error) {
	switch l := left.(type) {
	case Nil:
		return &Tuple{Values: []Value{right}}, nil
	case *Tuple:
		elems := make([]Value, 0, l.Len()+1)
		elems = append(elems, l.Values...)
		elems = append(elems, right)
		return &Tuple{Values: elems}, nil
	}
	return nil, errTypef("'aug' expects a tuple or nil on the left, got %s", FormatValue(left))
}

// structEqual is the 'eq' predicate: same-kind values compare structurally,
// mixed kinds are a type error.
func structEqual(a, b Value) (bool, error) {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return x == y, nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			return x == y, nil
		}
	case string:
		if y, ok := b.(string); ok {
			return x == y, nil
		}
	case Nil:
		if _, ok := b.(Nil); ok {
			return true, nil
		}
	case Dummy:
		if _, ok := b.(Dummy); ok {
			return true, nil
		}
	case *Tuple:
		if y, ok := b.(*Tuple); ok {
			if x.Len() != y.Len() {
				return false, nil
			}
			for i := range x.Values {
				equal, err := structEqual(x.Values[i], y.Values[i])
				if err != nil {
					return false, err
				}
				if !equal {
					return false, nil
				}
			}
			return true, nil
		}
	default:
		return false, errTypef("'eq' is not defined for %s", FormatValue(a))
	}
	return false, errTypef("'eq' on values of different kinds: %s and %s",
		FormatValue(a), FormatValue(b))
}

// applyUnary implements Rule 7.
func (m *Machine) applyUnary(op Op) error {
	m.control.Pop()
	v, ok := m.values.Pop()
	if !ok {
		return errStuckf("'%s' with an empty value stack", string(op))
	}
	if op == "not" {
		b, is := v.(bool)
		if !is {
			return errTypef("'not' expects a truthvalue, got %s", FormatValue(v))
		}
		m.values.Push(!b)
		return nil
	}
	n, is := v.(int)
	if !is {
		return errTypef("'neg' expects an integer, got %s", FormatValue(v))
	}
	m.values.Push(-n)
	return nil
}

// traceState dumps both stacks, top rightmost, at debug level.
func (m *Machine) traceState() {
	if tracer().GetTraceLevel() != tracing.LevelDebug {
		return
	}
	tracer().Debugf("C: %s", stackString(m.control))
	tracer().Debugf("V: %s", stackString(m.values))
}

func stackString(s *arraystack.Stack) string {
	items := s.Values() // top first
	parts := make([]string, len(items))
	for i, item := range items {
		parts[len(items)-1-i] = ItemString(item)
	}
	return strings.Join(parts, ", ")
}
