// Package match provides name normalization, Levenshtein distance calculation
// and ranking of similar type names, used to suggest alternatives for
// unresolved type references.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks the names closest to a missing one
package match
