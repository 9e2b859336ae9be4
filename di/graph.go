package di

import (
	"errors"
	"reflect"
)

// Validate checks the whole table ahead of resolution and returns every
// problem found, joined:
//   - a bound concrete type without the component marker (NotRegisteredError)
//   - a dependency whose type has no binding (DependencyError wrapping
//     UnboundInterfaceError)
//   - a dependency cycle (CycleError)
//
// Resolve never runs these checks itself.
func (t *Table) Validate() error {
	var errs []error
	for _, iface := range t.Interfaces() {
		b := t.bindings[iface]
		if !IsComponent(b.concrete) {
			errs = append(errs, &NotRegisteredError{Interface: iface, Concrete: b.concrete})
		}
		for _, d := range b.deps {
			if !t.Has(d.typ) {
				errs = append(errs, &DependencyError{
					Concrete: b.concrete,
					Field:    d.name,
					Err:      &UnboundInterfaceError{Type: d.typ},
				})
			}
		}
	}
	if _, err := t.Order(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Order returns the bound interfaces with every interface placed after the
// interfaces it depends on. Interfaces without an ordering constraint keep
// the Interfaces() order. Unbound dependencies are skipped.
func (t *Table) Order() ([]reflect.Type, error) {
	w := walker{
		t:       t,
		visited: make(map[reflect.Type]bool, t.Len()),
		onPath:  make(map[reflect.Type]bool),
		result:  make([]reflect.Type, 0, t.Len()),
	}
	for _, iface := range t.Interfaces() {
		if err := w.visit(iface); err != nil {
			return nil, err
		}
	}
	return w.result, nil
}

// walker performs the DFS behind Order.
type walker struct {
	t       *Table
	visited map[reflect.Type]bool
	onPath  map[reflect.Type]bool
	path    []reflect.Type
	result  []reflect.Type
}

func (w *walker) visit(iface reflect.Type) error {
	if w.visited[iface] {
		return nil
	}
	if w.onPath[iface] {
		return &CycleError{Path: w.cycle(iface)}
	}

	b, ok := w.t.Lookup(iface)
	if !ok {
		return nil
	}

	w.onPath[iface] = true
	w.path = append(w.path, iface)

	for _, d := range b.deps {
		if err := w.visit(d.typ); err != nil {
			return err
		}
	}

	w.path = w.path[:len(w.path)-1]
	w.onPath[iface] = false
	w.visited[iface] = true
	w.result = append(w.result, iface)
	return nil
}

// cycle returns the current path from the first occurrence of iface, closed
// with iface again.
func (w *walker) cycle(iface reflect.Type) []reflect.Type {
	for i, p := range w.path {
		if p == iface {
			out := make([]reflect.Type, 0, len(w.path)-i+1)
			out = append(out, w.path[i:]...)
			return append(out, iface)
		}
	}
	return []reflect.Type{iface, iface}
}
