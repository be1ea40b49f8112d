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
	"unicode/utf8"
)

// BuiltinFn is the implementation signature of a primitive function.
// Arguments arrive in the order they were popped off the value stack.
type BuiltinFn func(m *Machine, args []Value) (Value, error)

// Builtin is a primitive function value. Builtins taking more than one
// argument are curried: every application supplies one argument, and the
// implementation fires once all of them have arrived. A partially applied
// builtin is itself a value. Arity -1 means variadic.
type Builtin struct {
	Name  string
	Arity int
	Args  []Value // already supplied arguments
	fn    BuiltinFn
}

func (b *Builtin) String() string {
	return "F_" + b.Name
}

// PrimitiveEnvironment creates environment 0, populated with the built-in
// functions.
func PrimitiveEnvironment() *Environment {
	env := NewEnvironment(0, nil)
	builtins := []*Builtin{
		{Name: "Print", Arity: -1, fn: builtinPrint},
		{Name: "Isinteger", Arity: 1, fn: builtinIsInteger},
		{Name: "Istruthvalue", Arity: 1, fn: builtinIsTruthvalue},
		{Name: "Isstring", Arity: 1, fn: builtinIsString},
		{Name: "Istuple", Arity: 1, fn: builtinIsTuple},
		{Name: "Isfunction", Arity: 1, fn: builtinIsFunction},
		{Name: "Isdummy", Arity: 1, fn: builtinIsDummy},
		{Name: "Stem", Arity: 1, fn: builtinStem},
		{Name: "Stern", Arity: 1, fn: builtinStern},
		{Name: "Conc", Arity: 2, fn: builtinConc},
		{Name: "ItoS", Arity: 1, fn: builtinItoS},
		{Name: "Order", Arity: 1, fn: builtinOrder},
		{Name: "Null", Arity: 1, fn: builtinNull},
	}
	for _, b := range builtins {
		if err := env.Bind(b.Name, b); err != nil {
			panic(fmt.Sprintf("duplicate builtin %s", b.Name))
		}
	}
	return env
}

// builtinPrint writes its argument(s) to the machine's output in canonical
// form, separated by blanks, and returns the first argument.
func builtinPrint(m *Machine, args []Value) (Value, error) {
	for i, arg := range args {
		if i > 0 {
			fmt.Fprint(m.Out, " ")
		}
		fmt.Fprint(m.Out, FormatValue(arg))
	}
	fmt.Fprintln(m.Out)
	return args[0], nil
}

func builtinIsInteger(m *Machine, args []Value) (Value, error) {
	_, ok := args[0].(int)
	return ok, nil
}

func builtinIsTruthvalue(m *Machine, args []Value) (Value, error) {
	_, ok := args[0].(bool)
	return ok, nil
}

func builtinIsString(m *Machine, args []Value) (Value, error) {
	_, ok := args[0].(string)
	return ok, nil
}

func builtinIsTuple(m *Machine, args []Value) (Value, error) {
	_, ok := args[0].(*Tuple)
	return ok, nil
}

func builtinIsFunction(m *Machine, args []Value) (Value, error) {
	switch args[0].(type) {
	case *Closure, *Builtin:
		return true, nil
	}
	return false, nil
}

func builtinIsDummy(m *Machine, args []Value) (Value, error) {
	_, ok := args[0].(Dummy)
	return ok, nil
}

func builtinStem(m *Machine, args []Value) (Value, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, errTypef("Stem expects a string, got %s", FormatValue(args[0]))
	}
	if s == "" {
		return nil, errTypef("Stem of an empty string")
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size], nil
}

func builtinStern(m *Machine, args []Value) (Value, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, errTypef("Stern expects a string, got %s", FormatValue(args[0]))
	}
	if utf8.RuneCountInString(s) <= 1 {
		return "", nil
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[size:], nil
}

func builtinConc(m *Machine, args []Value) (Value, error) {
	s, ok1 := args[0].(string)
	t, ok2 := args[1].(string)
	if !ok1 || !ok2 {
		return nil, errTypef("Conc expects two strings, got %s and %s",
			FormatValue(args[0]), FormatValue(args[1]))
	}
	return s + t, nil
}

func builtinItoS(m *Machine, args []Value) (Value, error) {
	n, ok := args[0].(int)
	if !ok {
		return nil, errTypef("ItoS expects an integer, got %s", FormatValue(args[0]))
	}
	return strconv.Itoa(n), nil
}

func builtinOrder(m *Machine, args []Value) (Value, error) {
	if t, ok := args[0].(*Tuple); ok {
		return t.Len(), nil
	}
	return 0, nil
}

func builtinNull(m *Machine, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *Tuple:
		return v.Len() == 0, nil
	case Nil:
		return true, nil
	}
	return false, nil
}
