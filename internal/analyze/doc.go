// Package analyze builds a metadata Universe from Go packages.
//
// It uses golang.org/x/tools/go/packages with go/types to map a Go package
// declaring protocol types onto the type model of internal/metadata:
//
//   - the namespace is the package name with its first letter upper-cased
//   - struct types become definitions; exported fields become properties
//     and the first embedded field becomes the base type
//   - generic types keep an arity suffix ("CPList`1") and instantiations
//     carry their type arguments
//   - named integer types with constants of their own type become enums
//   - a type named Parent_Child is nested in Parent
//   - a constant named Type_X becomes the literal field X of Type
//   - basic types map to core library names, slices and arrays to
//     System.Collections.Generic.List`1, maps to Dictionary`2
//   - named interfaces of the loaded packages a struct implements are listed
//     as its interfaces, unless its base type already implements them
//
// Named types from packages outside the loaded set are resolvable stubs.
package analyze
