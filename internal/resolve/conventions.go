package resolve

import (
	"strings"

	"rpc-dumper/internal/common"
	"rpc-dumper/internal/metadata"
)

// EnumLabelPrefix starts the base-type label of reified enums,
// e.g. "System.Enum::System.Int16".
const EnumLabelPrefix = "System.Enum::"

// MessageFamilies are the simple-name prefixes of message types.
var MessageFamilies = []string{"CPtc", "CRpc"}

// MessagePrefixesFor returns the full-name message prefixes of namespace,
// e.g. "Share.CPtc".
func MessagePrefixesFor(namespace string) []string {
	prefixes := make([]string, 0, len(MessageFamilies))
	for _, f := range MessageFamilies {
		prefixes = append(prefixes, namespace+"."+f)
	}

	return prefixes
}

// Conventions are the naming conventions of the target protocol runtime.
type Conventions struct {
	// Namespace holds the protocol types.
	Namespace string
	// MessagePrefixes are full-name prefixes of request/response message families.
	MessagePrefixes []string
	// PolymorphicMarker is the simple name of the interface marking extension points.
	PolymorphicMarker string
	// ExternalNamespaces are never resolved (core library types).
	ExternalNamespaces []string

	IDField   string
	NameField string

	ArgumentType       string
	ReturnType         string
	ExtendedReturnType string
	// PayloadExcluded are nested-payload properties that carry protocol
	// identity rather than payload.
	PayloadExcluded []string

	Rules Rules
}

// DefaultConventions returns the conventions of the stock protocol runtime.
func DefaultConventions() Conventions {
	const namespace = "Share"

	return Conventions{
		Namespace:          namespace,
		MessagePrefixes:    MessagePrefixesFor(namespace),
		PolymorphicMarker:  "IPolymorphsimObject",
		ExternalNamespaces: []string{"System"},
		IDField:            "ID",
		NameField:          "Name",
		ArgumentType:       "CArg",
		ReturnType:         "CRet",
		ExtendedReturnType: "CRetExt",
		PayloadExcluded:    []string{"ProtocolID", "ProtocolName"},
		Rules:              DefaultRules,
	}
}

// IsProtocol reports whether sig lives in the protocol namespace.
func (c *Conventions) IsProtocol(sig metadata.TypeSig) bool {
	return !sig.GenericParam && common.InNamespace(sig.Namespace, c.Namespace)
}

// IsExternal reports whether sig must not be resolved: generic parameters,
// namespace-less names and core library types.
func (c *Conventions) IsExternal(sig metadata.TypeSig) bool {
	if sig.GenericParam || sig.Namespace == "" {
		return true
	}

	return common.InAnyNamespace(sig.Namespace, c.ExternalNamespaces)
}

// IsMessageName reports whether fullName belongs to a message family.
func (c *Conventions) IsMessageName(fullName string) bool {
	for _, p := range c.MessagePrefixes {
		if strings.HasPrefix(fullName, p) {
			return true
		}
	}

	return false
}

// IsPayload reports whether a nested-payload property carries payload.
func (c *Conventions) IsPayload(property string) bool {
	return !common.Contains(c.PayloadExcluded, property)
}
