package resolve

import (
	"rpc-dumper/internal/diagnostic"
	"rpc-dumper/internal/metadata"
	"rpc-dumper/internal/schema"
)

// Registrar is the capability handed to Classify, ResolveGenericArgs and
// ExpandPolymorphic. It exposes the universe and accepts registration
// requests; registration is idempotent.
type Registrar interface {
	Conventions() *Conventions
	Provider() metadata.Provider
	Diagnostics() *diagnostic.Diagnostics
	Register(def *metadata.TypeDef) error
}

// Classify turns a declared property into a schema field. Protocol types
// met on the way are registered before the field is returned, so a
// resolution failure anywhere below the property aborts classification.
func Classify(h Registrar, prop metadata.PropertyDef) (schema.Field, error) {
	conv := h.Conventions()
	sig := prop.Type

	if !sig.IsGenericInst() {
		def, err := registerProtocol(h, sig)
		if err != nil {
			return schema.Field{}, err
		}

		return schema.NewField(prop.Name, sig.FullName(), plainKind(sig, def).String()), nil
	}

	kind := conv.Rules.Classify(sig)

	generics, err := ResolveGenericArgs(h, sig.Args)
	if err != nil {
		return schema.Field{}, err
	}

	switch {
	case kind.IsContainer():
		return schema.NewGenericField(prop.Name, kind.Label(), kind.String(), generics), nil

	case kind == KindScalar:
		arg := sig.Args[0]

		def, err := lookupProtocol(h, arg)
		if err != nil {
			return schema.Field{}, err
		}

		if def != nil && def.IsEnum {
			kind = KindEnum
		}

		return schema.NewField(prop.Name, labelFor(KindScalar, sig), kind.String()), nil

	default:
		// Generic protocol types outside the rule table are registered by
		// their definition; the field keeps the instantiated name.
		if _, err := registerProtocol(h, sig); err != nil {
			return schema.Field{}, err
		}

		return schema.NewField(prop.Name, sig.FullName(), KindReference.String()), nil
	}
}

// plainKind classifies a non-generic declared type.
func plainKind(sig metadata.TypeSig, def *metadata.TypeDef) FieldKind {
	if def != nil && def.IsEnum {
		return KindEnum
	}

	if _, ok := metadata.ElementTypeFor(sig); ok {
		return KindScalar
	}

	return KindReference
}

// lookupProtocol resolves sig when it lives in the protocol namespace and
// returns nil otherwise.
func lookupProtocol(h Registrar, sig metadata.TypeSig) (*metadata.TypeDef, error) {
	if !h.Conventions().IsProtocol(sig) {
		return nil, nil
	}

	return h.Provider().Resolve(sig)
}

// registerProtocol resolves and registers sig when it lives in the protocol
// namespace. It returns the resolved definition, or nil for other namespaces.
func registerProtocol(h Registrar, sig metadata.TypeSig) (*metadata.TypeDef, error) {
	def, err := lookupProtocol(h, sig)
	if err != nil || def == nil {
		return nil, err
	}

	if err := h.Register(def); err != nil {
		return nil, err
	}

	return def, nil
}
