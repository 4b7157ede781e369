// Package resolve turns a metadata type universe into a schema document.
//
// The Resolver walks the top-level types of the protocol namespace and
// registers message types and every auxiliary type reachable from them.
// Each property's declared type is classified into a FieldKind by an ordered
// prefix table (Rules), generic arguments are resolved recursively and
// polymorphic extension points are expanded by scanning the whole universe
// for derived types.
//
// Classify, ResolveGenericArgs and ExpandPolymorphic are plain functions.
// They reach the universe and request registrations through a Registrar,
// which the Resolver implements; the Resolver alone owns the document.
//
// Each type moves through Unvisited -> Resolving -> Registered. A type met
// again while it is still resolving counts as registered, so cyclic type
// graphs terminate without a depth limit.
package resolve
