// Package cli implements the rpc-dumper command line.
//
// The root command loads a type universe from a metadata dump or a Go
// package, resolves the protocol schema and writes rpcs.<ext> and
// types.<ext> to the output directory.
//
// Exit codes: 0 on success, 1 when loading or resolution fails, 2 when the
// invocation itself is wrong (no input path, bad flag or config value).
package cli
