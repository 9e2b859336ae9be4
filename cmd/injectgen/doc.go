// Command injectgen generates a di binding table from a bindings spec.
//
// The table is the static interface -> implementation registration the
// container resolves against. Writing it by hand is fine for a handful of
// services; injectgen keeps it in a reviewable spec file and makes the
// generated Go code the only wiring code in the package.
//
// Spec (JSON or YAML)
//
//	{
//	  "package": "products",
//	  "func": "Bindings",
//	  "imports": { "di": "github.com/sghaida/wired/di" },
//	  "bindings": [
//	    { "interface": "FileReader", "constructor": "NewFileReader" },
//	    {
//	      "interface": "ProductService",
//	      "constructor": "NewProductService",
//	      "implType": "ProductServiceImpl",
//	      "inject": [
//	        { "name": "Reader", "setter": "SetReader" },
//	        { "name": "Parser", "setter": "SetParser", "fallible": false }
//	      ]
//	    }
//	  ]
//	}
//
//   - func defaults to Bindings
//   - imports.di defaults to the di package of the module containing injectgen
//   - fallible on a binding emits di.ProvideE (constructor returns (T, error))
//   - fallible on an inject emits di.SetterE (setter returns error)
//   - inject order is wiring order and is preserved; bindings are sorted
//
// Output
//
//	func Bindings() (*di.Table, error) {
//		return di.NewTable(
//			di.Bind[FileReader](di.Provide(NewFileReader)),
//			di.Bind[ProductService](di.Provide(NewProductService,
//				di.Setter("Reader", (*ProductServiceImpl).SetReader),
//				di.Setter("Parser", (*ProductServiceImpl).SetParser),
//			)),
//		)
//	}
//
// The header records the spec path and its SHA-256.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/injectgen --spec specs/bindings.json --out bindings.gen.go
//
// In CI, --check fails when the generated file is out of date.
package main
