package di

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// State is the lifecycle of a concrete type inside the instance cache.
type State int32

const (
	// Unconstructed: no instance exists.
	Unconstructed State = iota
	// Constructed: the instance is published in the cache but its
	// dependencies may not be set yet.
	Constructed
	// Wired: every declared dependency has been set.
	Wired
	// Failed: wiring failed. The instance is never handed out again; every
	// later resolution returns the wiring error.
	Failed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unconstructed:
		return "unconstructed"
	case Constructed:
		return "constructed"
	case Wired:
		return "wired"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// entry is one slot of the instance cache.
type entry struct {
	once     sync.Once
	instance any
	err      error // construction
	wireErr  error // set by the wiring owner before state becomes Failed
	state    atomic.Int32
}

// fail records a wiring failure on e and returns err.
func (e *entry) fail(err error) error {
	e.wireErr = err
	e.state.Store(int32(Failed))
	return err
}

// Container resolves interfaces to shared, wired singleton instances.
//
// A Container is safe for concurrent use. Instances are published into the
// cache before their dependencies are wired, so a goroutine racing the first
// resolution of a type may receive it in the Constructed state; see Resolve.
type Container struct {
	table *Table
	cache sync.Map // reflect.Type (concrete) -> *entry
	log   *zap.Logger
}

// New creates a Container over tbl.
func New(tbl *Table, opts ...Option) (*Container, error) {
	if tbl == nil {
		return nil, ErrNilTable
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.validate {
		if err := tbl.Validate(); err != nil {
			return nil, err
		}
	}
	return &Container{table: tbl, log: o.logger}, nil
}

// Table returns the binding table the container resolves against.
func (c *Container) Table() *Table {
	if c == nil {
		return nil
	}
	return c.table
}

// Resolve returns the singleton instance bound to iface with all of its
// declared dependencies resolved and set.
//
// Steps:
//  1. iface must be bound (UnboundInterfaceError).
//  2. The concrete type must embed Managed (NotRegisteredError).
//  3. On a cache hit the cached instance is returned as is. Otherwise the
//     constructor runs exactly once and the instance is cached before wiring.
//  4. Each dependency is resolved through these same steps and passed to its
//     setter. Failures are wrapped in DependencyError.
//
// Known limitation: another goroutine resolving the same type while step 4
// runs gets the instance in the Constructed state, dependencies possibly
// unset. A dependency cycle terminates the same way: the re-entrant lookup
// hits the cache and receives the partially wired instance.
//
// If wiring fails the instance stays cached in the Failed state and every
// later resolution of it, direct or as a dependency, returns the same error.
//
// Resolve on a nil Container returns ErrNilContainer.
func (c *Container) Resolve(iface reflect.Type) (any, error) {
	if c == nil {
		return nil, ErrNilContainer
	}
	log := c.log
	if log.Core().Enabled(zapcore.DebugLevel) {
		log = log.With(zap.String("resolution", uuid.NewString()))
	}
	return c.resolve(iface, log)
}

func (c *Container) resolve(iface reflect.Type, log *zap.Logger) (any, error) {
	b, ok := c.table.Lookup(iface)
	if !ok {
		return nil, &UnboundInterfaceError{Type: iface}
	}
	if !IsComponent(b.concrete) {
		return nil, &NotRegisteredError{Interface: iface, Concrete: b.concrete}
	}

	e, created, err := c.instance(b)
	if err != nil {
		return nil, err
	}
	if !created {
		if State(e.state.Load()) == Failed {
			return nil, e.wireErr
		}
		log.Debug("cache hit",
			zap.Stringer("interface", iface),
			zap.Stringer("state", State(e.state.Load())),
		)
		return e.instance, nil
	}
	log.Debug("constructed", zap.Stringer("interface", iface), zap.Stringer("concrete", b.concrete))

	for _, d := range b.deps {
		dep, err := c.resolve(d.typ, log)
		if err != nil {
			return nil, e.fail(&DependencyError{Concrete: b.concrete, Field: d.name, Err: err})
		}
		if err := d.apply(b.concrete, e.instance, dep); err != nil {
			return nil, e.fail(err)
		}
	}

	e.state.Store(int32(Wired))
	log.Debug("wired", zap.Stringer("concrete", b.concrete), zap.Int("dependencies", len(b.deps)))
	return e.instance, nil
}

// instance returns the cache entry for b's concrete type, constructing it on
// first use. created is true only for the caller that ran the constructor;
// that caller is responsible for wiring.
func (c *Container) instance(b Binding) (e *entry, created bool, err error) {
	v, ok := c.cache.Load(b.concrete)
	if !ok {
		v, _ = c.cache.LoadOrStore(b.concrete, &entry{})
	}
	e = v.(*entry)

	e.once.Do(func() {
		created = true
		e.instance, e.err = b.construct()
		if e.err != nil {
			// never publish a failed slot; the next resolution retries
			c.cache.CompareAndDelete(b.concrete, e)
			return
		}
		e.state.Store(int32(Constructed))
	})
	if e.err != nil {
		return nil, false, e.err
	}
	return e, created, nil
}

// State reports the cache state of the concrete type bound to iface.
// Unbound interfaces report Unconstructed.
func (c *Container) State(iface reflect.Type) State {
	if c == nil {
		return Unconstructed
	}
	b, ok := c.table.Lookup(iface)
	if !ok {
		return Unconstructed
	}
	v, ok := c.cache.Load(b.concrete)
	if !ok {
		return Unconstructed
	}
	return State(v.(*entry).state.Load())
}

// Len returns the number of instances in the cache, failed ones included.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	c.cache.Range(func(_, v any) bool {
		if State(v.(*entry).state.Load()) != Unconstructed {
			n++
		}
		return true
	})
	return n
}

// Get resolves I and returns it typed.
func Get[I any](c *Container) (I, error) {
	var zero I
	iface := TypeOf[I]()
	v, err := c.Resolve(iface)
	if err != nil {
		return zero, err
	}
	out, ok := v.(I)
	if !ok {
		return zero, &BindingError{Interface: iface, Kind: ErrInvalidBinding, Reason: errTypeMismatch.Error()}
	}
	return out, nil
}

// MustGet is Get that panics on error.
// Useful in composition roots and tests where a broken binding should fail fast.
func MustGet[I any](c *Container) I {
	v, err := Get[I](c)
	if err != nil {
		panic(err)
	}
	return v
}
