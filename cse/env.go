package cse

import "fmt"

// Environment maps identifiers to values. Environments form a tree rooted
// at the primitive environment (id 0); lookups walk the parent chain.
// Environments are never mutated after their initial bindings.
type Environment struct {
	ID       int
	Parent   *Environment
	bindings map[string]Value
}

// NewEnvironment creates an environment with the given id and parent.
func NewEnvironment(id int, parent *Environment) *Environment {
	return &Environment{
		ID:       id,
		Parent:   parent,
		bindings: make(map[string]Value),
	}
}

// Bind binds a name in this environment. Binding a name twice in the same
// environment is an error.
func (e *Environment) Bind(name string, v Value) error {
	if _, dup := e.bindings[name]; dup {
		return errTypef("name '%s' is already bound in %s", name, e)
	}
	e.bindings[name] = v
	return nil
}

// Lookup resolves a name in this environment or its ancestors.
func (e *Environment) Lookup(name string) (Value, error) {
	for env := e; env != nil; env = env.Parent {
		if v, ok := env.bindings[name]; ok {
			return v, nil
		}
	}
	return nil, errUnbound(name)
}

func (e *Environment) String() string {
	return fmt.Sprintf("e_%d", e.ID)
}
