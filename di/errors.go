package di

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	// ErrUnboundInterface is returned when a requested (or transitively
	// required) type has no entry in the binding table.
	ErrUnboundInterface = errors.New("di: unbound interface")

	// ErrNotRegistered is returned when the concrete type bound to an interface
	// does not embed Managed.
	ErrNotRegistered = errors.New("di: concrete type not registered as component")

	// ErrConstructionFailure is returned when a constructor fails, panics or
	// returns a nil instance.
	ErrConstructionFailure = errors.New("di: construction failed")

	// ErrFieldAccessFailure is returned when a resolved dependency cannot be
	// assigned into its target.
	ErrFieldAccessFailure = errors.New("di: dependency assignment failed")

	// ErrInvalidBinding is returned by NewTable for bindings Go's type system
	// could not reject at compile time.
	ErrInvalidBinding = errors.New("di: invalid binding")

	// ErrDuplicateBinding is returned by NewTable when an interface is bound twice.
	ErrDuplicateBinding = errors.New("di: duplicate binding")

	// ErrDependencyCycle is reported by Table.Validate and Table.Order.
	ErrDependencyCycle = errors.New("di: dependency cycle")

	// ErrAlreadyInstalled is returned by Install after the process-wide
	// container has been created.
	ErrAlreadyInstalled = errors.New("di: container already installed")

	// ErrNilTable is returned by New when no table is supplied.
	ErrNilTable = errors.New("di: nil binding table")

	// ErrNilContainer is returned when resolving through a nil *Container,
	// such as Default() before Install.
	ErrNilContainer = errors.New("di: nil container")
)

// UnboundInterfaceError names the type that has no binding.
type UnboundInterfaceError struct{ Type reflect.Type }

// Error implements the error interface.
func (e *UnboundInterfaceError) Error() string {
	// Example: di: no binding for products.FileReader
	return "di: no binding for " + typeName(e.Type)
}

// Is reports ErrUnboundInterface.
func (e *UnboundInterfaceError) Is(target error) bool { return target == ErrUnboundInterface }

// NotRegisteredError is returned when Concrete, bound to Interface, lacks the
// component marker.
type NotRegisteredError struct {
	Interface reflect.Type
	Concrete  reflect.Type
}

// Error implements the error interface.
func (e *NotRegisteredError) Error() string {
	// Example: di: *products.ReaderImpl bound to products.FileReader is not marked as component
	return "di: " + typeName(e.Concrete) + " bound to " + typeName(e.Interface) + " is not marked as component"
}

// Is reports ErrNotRegistered.
func (e *NotRegisteredError) Is(target error) bool { return target == ErrNotRegistered }

// ConstructionError wraps the failure of a concrete type's constructor.
type ConstructionError struct {
	Concrete reflect.Type

	// Err is the constructor error, a recovered panic, or nil when the
	// constructor returned a nil instance.
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	msg := "di: cannot instantiate " + typeName(e.Concrete)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrConstructionFailure.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstructionFailure }

// Unwrap returns the constructor error.
func (e *ConstructionError) Unwrap() error { return e.Err }

// FieldAccessError is returned when a setter fails for dependency Field of
// Concrete.
type FieldAccessError struct {
	Concrete reflect.Type
	Field    string
	Err      error
}

// Error implements the error interface.
func (e *FieldAccessError) Error() string {
	msg := "di: cannot set " + strconv.Quote(e.Field) + " in " + typeName(e.Concrete)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrFieldAccessFailure.
func (e *FieldAccessError) Is(target error) bool { return target == ErrFieldAccessFailure }

// Unwrap returns the setter error.
func (e *FieldAccessError) Unwrap() error { return e.Err }

// DependencyError adds the concrete type and dependency name to a failure
// raised while resolving that dependency. The underlying kind stays reachable
// through errors.Is / errors.As.
type DependencyError struct {
	Concrete reflect.Type
	Field    string
	Err      error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	// Example: di: *products.ServiceImpl.Parser: di: no binding for products.FileReader
	return "di: " + typeName(e.Concrete) + "." + e.Field + ": " + e.Err.Error()
}

// Unwrap returns the underlying resolution error.
func (e *DependencyError) Unwrap() error { return e.Err }

// BindingError describes a structural mistake found by NewTable.
type BindingError struct {
	Interface reflect.Type
	Reason    string

	// Kind is ErrInvalidBinding or ErrDuplicateBinding.
	Kind error
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return e.Kind.Error() + " for " + typeName(e.Interface) + ": " + e.Reason
}

// Unwrap returns the kind sentinel.
func (e *BindingError) Unwrap() error { return e.Kind }

// CycleError lists the interfaces forming a dependency cycle, first element
// repeated at the end.
type CycleError struct{ Path []reflect.Type }

// Error implements the error interface.
func (e *CycleError) Error() string {
	msg := ErrDependencyCycle.Error() + ": "
	for i, t := range e.Path {
		if i > 0 {
			msg += " -> "
		}
		msg += typeName(t)
	}
	return msg
}

// Is reports ErrDependencyCycle.
func (e *CycleError) Is(target error) bool { return target == ErrDependencyCycle }

// panicError carries a value recovered from a constructor or setter.
type panicError struct{ v any }

func (e panicError) Error() string {
	if err, ok := e.v.(error); ok {
		return "panic: " + err.Error()
	}
	return "panic: " + toString(e.v)
}

func (e panicError) Unwrap() error {
	err, _ := e.v.(error)
	return err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
