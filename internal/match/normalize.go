package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes a type name for fuzzy matching: the namespace
// and generic arity suffix are dropped, CamelCase tokens are joined in
// lower case, and separators are removed.
//
//	"Share.CPtcLogin"  -> "cptclogin"
//	"Share.CPList`1"   -> "cplist"
//	"Outer/CArg_Extra" -> "cargextra"
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(simpleName(s)), "")
}

// TokenizeIdent splits an identifier into lowercase CamelCase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// simpleName drops namespace, declaring type and arity suffix.
func simpleName(s string) string {
	if i := strings.LastIndexAny(s, "./"); i >= 0 {
		s = s[i+1:]
	}

	if i := strings.IndexByte(s, '`'); i >= 0 {
		s = s[:i]
	}

	return s
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "CPtcLogin" -> ["CPtc", "Login"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "item_count" -> ["item", "count"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	// lower to upper: "itemID" splits before 'I'
	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// end of acronym: "XMLParser" splits before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && hasNextLower
}
