package di

import (
	"errors"
	"reflect"
)

var (
	errNilInstance  = errors.New("constructor returned nil")
	errTypeMismatch = errors.New("value has unexpected type")

	componentType = TypeOf[Component]()
)

// Component is implemented by every concrete type the container may
// instantiate. Types opt in by embedding Managed.
type Component interface{ component() }

// Managed marks a struct as a container-managed component.
//
//	type ParserImpl struct {
//		di.Managed
//		reader FileReader
//	}
type Managed struct{}

func (Managed) component() {}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Dependency declares one injectable dependency of a concrete type: the
// interface to resolve and the setter that assigns it.
type Dependency struct {
	name   string
	target reflect.Type
	typ    reflect.Type
	set    func(target, dep any) error
}

// Name returns the dependency name used in errors.
func (d Dependency) Name() string { return d.name }

// Type returns the interface type resolved for this dependency.
func (d Dependency) Type() reflect.Type { return d.typ }

// Setter declares a dependency of C on interface D, assigned through set.
// A method expression is the usual argument:
//
//	di.Setter("Reader", (*ParserImpl).SetReader)
func Setter[C, D any](name string, set func(C, D)) Dependency {
	if set == nil {
		return SetterE[C, D](name, nil)
	}
	return SetterE(name, func(c C, d D) error {
		set(c, d)
		return nil
	})
}

// SetterE is Setter for setters that can refuse the assignment. A returned
// error surfaces as a FieldAccessError.
func SetterE[C, D any](name string, set func(C, D) error) Dependency {
	d := Dependency{name: name, target: TypeOf[C](), typ: TypeOf[D]()}
	if set == nil {
		return d
	}
	d.set = func(target, dep any) error {
		c, ok := target.(C)
		if !ok {
			return errTypeMismatch
		}
		v, ok := dep.(D)
		if !ok {
			return errTypeMismatch
		}
		return set(c, v)
	}
	return d
}

// apply runs the setter, converting panics into FieldAccessError.
func (d Dependency) apply(concrete reflect.Type, target, dep any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FieldAccessError{Concrete: concrete, Field: d.name, Err: panicError{r}}
		}
	}()
	if err := d.set(target, dep); err != nil {
		return &FieldAccessError{Concrete: concrete, Field: d.name, Err: err}
	}
	return nil
}

// Provider describes how to build a concrete type: its zero-argument
// constructor and the dependencies wired after construction.
type Provider struct {
	concrete reflect.Type
	ctor     func() (any, error)
	deps     []Dependency
}

// Provide builds a Provider from a constructor that cannot fail.
func Provide[C any](ctor func() C, deps ...Dependency) Provider {
	if ctor == nil {
		return ProvideE[C](nil, deps...)
	}
	return ProvideE(func() (C, error) { return ctor(), nil }, deps...)
}

// ProvideE builds a Provider from a constructor that can fail. A returned
// error surfaces as a ConstructionError.
func ProvideE[C any](ctor func() (C, error), deps ...Dependency) Provider {
	p := Provider{concrete: TypeOf[C](), deps: deps}
	if ctor == nil {
		return p
	}
	p.ctor = func() (any, error) {
		v, err := ctor()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return p
}

// construct invokes the constructor once, converting errors, panics and nil
// results into ConstructionError.
func (p Provider) construct() (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, &ConstructionError{Concrete: p.concrete, Err: panicError{r}}
		}
	}()
	v, err = p.ctor()
	if err != nil {
		return nil, &ConstructionError{Concrete: p.concrete, Err: err}
	}
	if isNil(v) {
		return nil, &ConstructionError{Concrete: p.concrete, Err: errNilInstance}
	}
	return v, nil
}

// Binding associates an interface with the Provider of its implementation.
type Binding struct {
	iface reflect.Type
	Provider
}

// Bind binds interface I to the concrete type built by p.
func Bind[I any](p Provider) Binding {
	return Binding{iface: TypeOf[I](), Provider: p}
}

// Interface returns the bound interface type.
func (b Binding) Interface() reflect.Type { return b.iface }

// Concrete returns the implementation type.
func (b Binding) Concrete() reflect.Type { return b.concrete }

// Dependencies returns a copy of the declared dependencies in wiring order.
func (b Binding) Dependencies() []Dependency {
	out := make([]Dependency, len(b.deps))
	copy(out, b.deps)
	return out
}

// IsComponent reports whether t carries the component marker.
func IsComponent(t reflect.Type) bool {
	return t != nil && t.Implements(componentType)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
