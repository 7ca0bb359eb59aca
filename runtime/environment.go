package runtime

import "sort"

// Environment is a scope of named bindings.
type Environment struct {
	store map[string]*Binding
	outer *Environment
}

type Binding struct {
	Value   *Value
	Mutable bool   // false for const
	Kind    string // "let", "const"
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: make(map[string]*Binding),
		outer: outer,
	}
}

// Declare adds a binding to the current scope. Redeclaring a name in the
// same scope is an error.
func (e *Environment) Declare(name string, kind string, value *Value) error {
	if _, exists := e.store[name]; exists {
		return NewSyntaxError("already_declared", NewString(name))
	}
	e.store[name] = &Binding{
		Value:   value,
		Mutable: kind != "const",
		Kind:    kind,
	}
	return nil
}

// Get retrieves a binding's value, walking up the scope chain.
func (e *Environment) Get(name string) (*Value, error) {
	for env := e; env != nil; env = env.outer {
		if binding, ok := env.store[name]; ok {
			if binding.Value == nil {
				return nil, NewReferenceError("uninitialized", NewString(name))
			}
			return binding.Value, nil
		}
	}
	return nil, NewReferenceError("not_defined", NewString(name))
}

// Set updates a binding in the scope where it was declared.
func (e *Environment) Set(name string, value *Value) error {
	for env := e; env != nil; env = env.outer {
		if binding, ok := env.store[name]; ok {
			if !binding.Mutable {
				return NewTypeError("const_assign", NewString(name))
			}
			binding.Value = value
			return nil
		}
	}
	return NewReferenceError("not_defined", NewString(name))
}

// Has reports whether name is bound in this scope or an outer one.
func (e *Environment) Has(name string) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			return true
		}
	}
	return false
}

// Names lists the bindings visible from this scope, sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
