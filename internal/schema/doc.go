// Package schema holds the extracted schema document: two registries keyed by
// fully-qualified type name, one for message types and one for auxiliary
// types, and their JSON/YAML renderings.
//
// Registries keep first-registration order and a name lives in at most one
// of them. Document.Commit is the only way to insert and is a no-op for
// names that are already present.
package schema
