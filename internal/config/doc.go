// Package config loads rpc-dumper settings.
//
// Precedence, lowest first: built-in defaults, the config file
// (.rpc-dumper.yaml in the working directory or an explicit path),
// RPCDUMP_* environment variables (a .env file is loaded first), and
// command-line flags bound by the caller.
package config
