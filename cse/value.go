package cse

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value of the machine: one of int, bool, string, Nil,
// Dummy, YStar, *Tuple, *Closure, *Builtin or *Environment (as a marker on
// the stacks). The type is deliberately open; the machine dispatches on the
// dynamic type.
type Value interface{}

// Nil is the 'nil' sentinel value.
type Nil struct{}

func (Nil) String() string { return "nil" }

// Dummy is the 'dummy' sentinel value.
type Dummy struct{}

func (Dummy) String() string { return "dummy" }

// YStar is the fixed-point combinator marker. It appears both as a control
// item and, transiently, as a value on the value stack.
type YStar struct{}

func (YStar) String() string { return "Y_star" }

// Tuple is an ordered collection of values.
type Tuple struct {
	Values []Value
}

func (t *Tuple) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Values)
}

func (t *Tuple) String() string {
	return FormatValue(t)
}

// ClosureKind distinguishes ordinary lambda closures from the eta closures
// the Y rule creates.
type ClosureKind int8

const (
	LambdaClosure ClosureKind = iota
	EtaClosure
)

func (k ClosureKind) String() string {
	if k == EtaClosure {
		return "eta"
	}
	return "lambda"
}

// Closure packages a control structure id, a parameter list, a kind and a
// captured environment. Closures in delta bodies are templates with a nil
// environment; the machine clones them with the active environment when it
// stacks them (Rule 2).
type Closure struct {
	Delta  int
	Params []string
	Kind   ClosureKind
	Env    *Environment
}

func (c *Closure) String() string {
	env := "-"
	if c.Env != nil {
		env = c.Env.String()
	}
	return fmt.Sprintf("<%s %s %d [%s]>", env, c.Kind, c.Delta, strings.Join(c.Params, " "))
}

// FormatValue renders a value in the canonical output form: integers in
// decimal, booleans as true/false, strings raw without quotes, tuples as
// parenthesized comma-separated values.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	case Nil:
		return "nil"
	case Dummy:
		return "dummy"
	case YStar:
		return "Y_star"
	case *Tuple:
		parts := make([]string, len(val.Values))
		for i, elem := range val.Values {
			parts[i] = FormatValue(elem)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *Closure:
		return val.String()
	case *Builtin:
		return val.String()
	case *Environment:
		return val.String()
	}
	return fmt.Sprintf("%v", v)
}

// isPlainValue reports whether v is a first-order value, i.e. not a
// function, not an environment marker. The variadic Print rule peels
// arguments as long as it sees plain values.
func isPlainValue(v Value) bool {
	switch v.(type) {
	case int, bool, string, Nil, Dummy, *Tuple:
		return true
	}
	return false
}
