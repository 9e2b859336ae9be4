package di

import (
	"reflect"
	"sort"
	"strconv"
)

// Table is the binding table: interface type -> Binding.
//
// A Table is:
// - built once (NewTable)
// - read-only afterwards
// - safe for concurrent use without locking
type Table struct {
	bindings map[reflect.Type]Binding
	ifaces   []reflect.Type
}

// NewTable builds a Table and rejects bindings that can never work:
//   - the key is not an interface type
//   - the constructor is nil
//   - the concrete type does not implement the key
//   - the interface is bound twice (ErrDuplicateBinding)
//   - a dependency has an empty or repeated name, a nil setter, a non-interface
//     type, or a setter written for another concrete type
//   - dependencies are declared on a non-pointer concrete type
//   - a concrete type bound to several interfaces with different dependency
//     lists (the cache holds one instance per concrete type, wired once)
//
// Unbound dependency types and concrete types without the component marker
// are accepted here; Resolve reports them (and Validate reports them early).
func NewTable(bindings ...Binding) (*Table, error) {
	t := &Table{bindings: make(map[reflect.Type]Binding, len(bindings))}
	byConcrete := make(map[reflect.Type]Binding, len(bindings))
	for _, b := range bindings {
		if err := checkBinding(b); err != nil {
			return nil, err
		}
		if _, exists := t.bindings[b.iface]; exists {
			return nil, &BindingError{Interface: b.iface, Kind: ErrDuplicateBinding, Reason: "already bound"}
		}
		if prev, ok := byConcrete[b.concrete]; ok && !sameDependencies(prev.deps, b.deps) {
			return nil, &BindingError{
				Interface: b.iface,
				Kind:      ErrInvalidBinding,
				Reason:    typeName(b.concrete) + " is already bound to " + typeName(prev.iface) + " with different dependencies",
			}
		}
		byConcrete[b.concrete] = b
		t.bindings[b.iface] = b
		t.ifaces = append(t.ifaces, b.iface)
	}
	sort.Slice(t.ifaces, func(i, j int) bool { return t.ifaces[i].String() < t.ifaces[j].String() })
	return t, nil
}

// MustTable is NewTable that panics on error.
// Useful for package-level tables where a broken binding should fail fast.
func MustTable(bindings ...Binding) *Table {
	t, err := NewTable(bindings...)
	if err != nil {
		panic(err)
	}
	return t
}

func checkBinding(b Binding) error {
	invalid := func(reason string) error {
		return &BindingError{Interface: b.iface, Kind: ErrInvalidBinding, Reason: reason}
	}

	if b.iface == nil || b.iface.Kind() != reflect.Interface {
		return invalid("key must be an interface type")
	}
	if b.ctor == nil {
		return invalid("nil constructor")
	}
	if !b.concrete.Implements(b.iface) {
		return invalid(typeName(b.concrete) + " does not implement it")
	}
	if len(b.deps) > 0 && b.concrete.Kind() != reflect.Pointer {
		return invalid("dependencies need a pointer concrete type, got " + typeName(b.concrete))
	}

	seen := make(map[string]bool, len(b.deps))
	for _, d := range b.deps {
		switch {
		case d.name == "":
			return invalid("dependency with empty name")
		case seen[d.name]:
			return invalid("dependency " + strconv.Quote(d.name) + " declared twice")
		case d.set == nil:
			return invalid("nil setter for " + strconv.Quote(d.name))
		case d.typ.Kind() != reflect.Interface:
			return invalid("dependency " + strconv.Quote(d.name) + " must be an interface type, got " + typeName(d.typ))
		case d.target != b.concrete:
			return invalid("setter " + strconv.Quote(d.name) + " targets " + typeName(d.target) + ", not " + typeName(b.concrete))
		}
		seen[d.name] = true
	}
	return nil
}

// sameDependencies reports whether a and b declare the same names and types
// in the same order.
func sameDependencies(a, b []Dependency) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].name != b[i].name || a[i].typ != b[i].typ {
			return false
		}
	}
	return true
}

// Lookup returns the binding for iface.
func (t *Table) Lookup(iface reflect.Type) (Binding, bool) {
	if t == nil {
		return Binding{}, false
	}
	b, ok := t.bindings[iface]
	return b, ok
}

// Has reports whether iface is bound.
func (t *Table) Has(iface reflect.Type) bool {
	_, ok := t.Lookup(iface)
	return ok
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bindings)
}

// Interfaces returns the bound interfaces sorted by type name.
func (t *Table) Interfaces() []reflect.Type {
	if t == nil {
		return nil
	}
	out := make([]reflect.Type, len(t.ifaces))
	copy(out, t.ifaces)
	return out
}
