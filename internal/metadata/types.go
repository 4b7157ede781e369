package metadata

import "strings"

// ObjectTypeName is the root of every reference type hierarchy. A base type
// with this name is treated as no base at all.
const ObjectTypeName = "System.Object"

// TypeDef is a type definition of the universe.
type TypeDef struct {
	Namespace string
	Name      string // carries the arity suffix for generic definitions, e.g. "CPList`1"
	// DeclaringType is the full name of the enclosing type for nested types.
	DeclaringType string

	BaseType   *TypeSig
	Interfaces []TypeSig

	Fields      []FieldDef
	Properties  []PropertyDef
	NestedTypes []*TypeDef

	IsEnum         bool
	EnumUnderlying ElementType
}

// FieldDef is a declared field, optionally carrying a literal constant.
type FieldDef struct {
	Name     string
	Type     TypeSig
	Constant *Constant
}

// PropertyDef is a declared property with its return type signature.
type PropertyDef struct {
	Name string
	Type TypeSig
}

// FullName returns the fully-qualified name: "Share.CPtcLogin" for top-level
// types, "Share.CPtcLogin/CArg" for nested ones.
func (t *TypeDef) FullName() string {
	if t.DeclaringType != "" {
		return t.DeclaringType + "/" + t.Name
	}

	return t.Sig().DefinitionName()
}

// Sig returns a non-generic reference to the definition.
func (t *TypeDef) Sig() TypeSig {
	return Sig(t.Namespace, t.Name)
}

// HasBase reports whether the type derives from something other than
// System.Object.
func (t *TypeDef) HasBase() bool {
	return t.BaseType != nil && t.BaseType.DefinitionName() != ObjectTypeName
}

// DerivesFrom reports whether the declared base type is the definition named def.
func (t *TypeDef) DerivesFrom(def string) bool {
	return t.BaseType != nil && t.BaseType.DefinitionName() == def
}

// Implements reports whether the type declares an interface whose simple
// name, without arity suffix, equals name.
func (t *TypeDef) Implements(name string) bool {
	for _, iface := range t.Interfaces {
		if simpleName(iface.Name) == name {
			return true
		}
	}

	return false
}

// Field returns the declared field with the given name.
func (t *TypeDef) Field(name string) (FieldDef, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return FieldDef{}, false
}

// Nested returns the nested type with the given simple name, or nil.
func (t *TypeDef) Nested(name string) *TypeDef {
	for _, n := range t.NestedTypes {
		if n.Name == name {
			return n
		}
	}

	return nil
}

// simpleName strips the generic arity suffix: "CPList`1" -> "CPList".
func simpleName(name string) string {
	if i := strings.IndexByte(name, '`'); i >= 0 {
		return name[:i]
	}

	return name
}
