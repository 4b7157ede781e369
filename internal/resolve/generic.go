package resolve

import (
	"rpc-dumper/internal/metadata"
	"rpc-dumper/internal/schema"
)

// ResolveGenericArgs returns one sub-field per generic argument, in
// declaration order; position carries meaning (key before value for maps).
//
// Leaf arguments become raw type-name fields. Nested instantiations recurse
// depth first and become sub-fields labelled by Rules.NormalizeName.
// Protocol-namespace arguments are registered, and arguments implementing
// the polymorphic marker are expanded.
func ResolveGenericArgs(h Registrar, args []metadata.TypeSig) ([]schema.Field, error) {
	rules := h.Conventions().Rules
	fields := make([]schema.Field, 0, len(args))

	for _, arg := range args {
		if err := visitArg(h, arg); err != nil {
			return nil, err
		}

		if !arg.IsGenericInst() {
			fields = append(fields, schema.NewField("", arg.FullName(), ""))
			continue
		}

		sub, err := ResolveGenericArgs(h, arg.Args)
		if err != nil {
			return nil, err
		}

		fields = append(fields, schema.NewGenericField("", rules.NormalizeName(arg), rules.Classify(arg).String(), sub))
	}

	return fields, nil
}

// visitArg applies the registration side effects of a single argument.
// Container instantiations are plumbing and are not registered themselves;
// their arguments are visited by the caller's recursion.
func visitArg(h Registrar, arg metadata.TypeSig) error {
	conv := h.Conventions()

	if conv.IsExternal(arg) {
		return nil
	}

	if arg.IsGenericInst() && conv.Rules.Classify(arg) != KindReference {
		return nil
	}

	def, err := h.Provider().Resolve(arg)
	if err != nil {
		return err
	}

	if conv.IsProtocol(arg) {
		if err := h.Register(def); err != nil {
			return err
		}
	}

	if conv.PolymorphicMarker != "" && def.Implements(conv.PolymorphicMarker) {
		return ExpandPolymorphic(h, def)
	}

	return nil
}
