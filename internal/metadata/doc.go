// Package metadata describes the read-only type universe of a compiled
// program: type definitions, their fields, properties, constants, base types,
// implemented interfaces, nested types and generic instantiations.
//
// The package does not know how a universe is obtained. Loaders
// (see internal/metadata/dump and internal/analyze) build a Universe which is
// then consumed through the Provider interface.
//
// Key types:
//   - TypeSig: a reference to a type, possibly a generic instantiation
//   - TypeDef: the definition a TypeSig resolves to
//   - Constant: a raw little-endian constant blob with its element type
//   - Universe: in-memory Provider
//   - CachedProvider: Provider wrapper memoizing Resolve in an LRU
package metadata
