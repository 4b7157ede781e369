package resolve

import (
	"strings"

	"rpc-dumper/internal/metadata"
)

// Rule maps a type-name prefix to a FieldKind. Arity, when nonzero, is the
// exact number of generic arguments the rule requires. Nested is the label
// of matching instantiations met as generic arguments; when empty they keep
// their simple name.
type Rule struct {
	Prefix string
	Kind   FieldKind
	Arity  int
	Nested string
}

// Rules is an ordered rule table; the first matching rule wins. Some
// prefixes are lexical prefixes of others, so order is significant.
type Rules []Rule

// DefaultRules is the property-module naming convention of the protocol
// runtime. Linked-list markers come before list markers.
var DefaultRules = Rules{
	{Prefix: "CPropertyBasicTypeModule", Kind: KindScalar, Arity: 1},

	{Prefix: "CPropertyLinkedListModule", Kind: KindLinkedList, Nested: "LinkedList"},
	{Prefix: "CPLinkedList", Kind: KindLinkedList, Nested: "LinkedList"},

	{Prefix: "CPropertyListModule", Kind: KindList, Nested: "List"},
	{Prefix: "CPList", Kind: KindList, Nested: "List"},
	{Prefix: "List", Kind: KindList, Nested: "List"},

	{Prefix: "CPropertyDictionaryModule", Kind: KindMap, Nested: "Dictionary"},
	{Prefix: "CPDictionary", Kind: KindMap, Nested: "Dictionary"},
	{Prefix: "Dictionary", Kind: KindMap, Nested: "Dict"},

	{Prefix: "CPropertyHashSetModule", Kind: KindSet, Nested: "HashSet"},
	{Prefix: "CPHashSet", Kind: KindSet, Nested: "HashSet"},
	{Prefix: "HashSet", Kind: KindSet, Nested: "HashSet"},

	{Prefix: "CPropertyDKDictionaryModule", Kind: KindDoubleKeyMap},
	{Prefix: "CPDKDictionary", Kind: KindDoubleKeyMap},
	{Prefix: "CDoubleKeyDictionary", Kind: KindDoubleKeyMap},

	{Prefix: "CPolymorphsim", Kind: KindUnion, Nested: "CPolymorphsim"},
	{Prefix: "CData", Kind: KindRawObject, Nested: "CData"},
	{Prefix: "CPropertyBlob", Kind: KindOpaqueBlob},
}

// Match returns the first rule whose prefix starts name and whose arity, if
// any, equals arity.
func (rs Rules) Match(name string, arity int) (Rule, bool) {
	for _, r := range rs {
		if r.Arity != 0 && r.Arity != arity {
			continue
		}

		if strings.HasPrefix(name, r.Prefix) {
			return r, true
		}
	}

	return Rule{}, false
}

// Classify returns the kind of a generic instantiation, KindReference when
// no rule matches.
func (rs Rules) Classify(sig metadata.TypeSig) FieldKind {
	if r, ok := rs.Match(sig.Name, len(sig.Args)); ok {
		return r.Kind
	}

	return KindReference
}

// NormalizeName returns the label of a generic instantiation met as a
// generic argument: the matching rule's Nested label, or the simple name
// when that is empty. Instantiations no rule matches keep their full name.
func (rs Rules) NormalizeName(sig metadata.TypeSig) string {
	r, ok := rs.Match(sig.Name, len(sig.Args))

	switch {
	case !ok:
		return sig.FullName()
	case r.Nested != "":
		return r.Nested
	default:
		return sig.Name
	}
}

// labelFor returns the label of a property's own declared type: the kind
// label for containers and unions, the single argument's name for scalar
// modules and the full name otherwise.
func labelFor(kind FieldKind, sig metadata.TypeSig) string {
	if l := kind.Label(); l != "" {
		return l
	}

	if kind == KindScalar && len(sig.Args) == 1 {
		return sig.Args[0].FullName()
	}

	return sig.FullName()
}
