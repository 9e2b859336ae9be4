// Package wired is a small singleton container that resolves interfaces to
// shared, wired instances from a static binding table.
//
// Bindings are declared as Go code: a constructor per concrete type plus
// the setters that receive its dependencies. No struct tags, no field
// reflection and no package-level registration side effects.
//
// See subpackages:
//   - di: binding table, validation and the concurrent-safe container
//   - cmd/injectgen: generates a binding table from a JSON or YAML spec
//   - cmd/products: demo CLI resolving the example services
//   - examples/products: file reader, parser and service wired by di
package wired
