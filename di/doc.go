// Package di is a minimal singleton dependency-injection container.
//
// Given an interface type, a Container returns the one shared instance of the
// concrete type bound to it, with every declared dependency resolved and set.
//
// There is no reflection-based field injection. Each concrete type declares its
// dependencies as typed setters when it is bound, and the binding table is
// built once at startup (by hand or generated with cmd/injectgen):
//
//	tbl, err := di.NewTable(
//		di.Bind[FileReader](di.Provide(NewFileReader)),
//		di.Bind[ProductParser](di.Provide(NewProductParser)),
//		di.Bind[ProductService](di.Provide(NewProductService,
//			di.Setter("Reader", (*ProductServiceImpl).SetReader),
//			di.Setter("Parser", (*ProductServiceImpl).SetParser),
//		)),
//	)
//
//	c, err := di.New(tbl, di.WithValidation())
//	svc, err := di.Get[ProductService](c)
//
// Concrete types opt into container management by embedding Managed. A bound
// type without it fails with ErrNotRegistered.
//
// Lifecycle
//
// One instance per concrete type, created lazily on first resolution and kept
// for the lifetime of the Container. Nothing is ever torn down.
//
// Failure kinds
//
//   - ErrUnboundInterface: the interface (or a transitive dependency) has no binding
//   - ErrNotRegistered: the bound concrete type does not embed Managed
//   - ErrConstructionFailure: the constructor returned an error, panicked or returned nil
//   - ErrFieldAccessFailure: a setter returned an error or panicked
//
// Failures in a dependency are wrapped in DependencyError with the concrete
// type and dependency name; errors.Is still matches the root kind.
//
// A failed constructor leaves nothing cached and the next resolution retries.
// A failed wiring is final: the instance moves to the Failed state and every
// later resolution returns the same error.
//
// Concurrency
//
// A Container is safe for concurrent use and constructs each concrete type at
// most once. An instance is published before its dependencies are wired, so a
// goroutine racing the first resolution may observe it with dependencies unset.
// A dependency cycle terminates the same way: the re-entrant lookup returns the
// published, partially wired instance.
//
// Import
//
//	"github.com/sghaida/wired/di"
package di
