// Package diagnostic provides structured warnings and notes collected while
// resolving a type universe into a schema.
//
// Resolution failures are fatal and travel as errors; diagnostics only carry
// anomalies the run can survive:
//   - Enum members whose constant is not an integer
//   - Identity constants of an unexpected kind or range
//   - Polymorphic expansions, as informational notes
package diagnostic
