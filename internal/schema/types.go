package schema

// Type describes a message type or an auxiliary type.
type Type struct {
	Name     string            `json:"Name" yaml:"Name"`
	ID       uint16            `json:"ID,omitempty" yaml:"ID,omitempty"`
	BaseType string            `json:"BaseType,omitempty" yaml:"BaseType,omitempty"`
	CArg     *NestedDescriptor `json:"CArg,omitempty" yaml:"CArg,omitempty"`
	CRet     *NestedDescriptor `json:"CRet,omitempty" yaml:"CRet,omitempty"`
	CRetExt  *NestedDescriptor `json:"CRetExt,omitempty" yaml:"CRetExt,omitempty"`
	Fields   []Field           `json:"Fields,omitempty" yaml:"Fields,omitempty"`
}

// NestedDescriptor is the Argument, Return or ExtendedReturn payload of a message.
type NestedDescriptor struct {
	BaseType string  `json:"BaseType,omitempty" yaml:"BaseType,omitempty"`
	Fields   []Field `json:"Fields" yaml:"Fields"`
}

// Field is a classified property, a generic sub-field or the enum pseudo-field.
type Field struct {
	FieldName     string       `json:"FieldName,omitempty" yaml:"FieldName,omitempty"`
	Type          string       `json:"Type" yaml:"Type"`
	Kind          string       `json:"Kind,omitempty" yaml:"Kind,omitempty"`
	IsGeneric     bool         `json:"IsGeneric,omitempty" yaml:"IsGeneric,omitempty"`
	GenericFields []Field      `json:"GenericFields,omitempty" yaml:"GenericFields,omitempty"`
	IsEnum        bool         `json:"IsEnum,omitempty" yaml:"IsEnum,omitempty"`
	EnumFields    []EnumMember `json:"EnumFields,omitempty" yaml:"EnumFields,omitempty"`
}

// EnumMember is one (member name, integer value) pair of an enum.
type EnumMember struct {
	Key   string `json:"Key" yaml:"Key"`
	Value string `json:"Value" yaml:"Value"`
}

// EnumFieldName is the name of the synthesized enum pseudo-field.
const EnumFieldName = "Enum"

// NewField returns a field with a plain type label.
func NewField(name, typ, kind string) Field {
	return Field{FieldName: name, Type: typ, Kind: kind}
}

// NewGenericField returns a container or union field with its generic sub-fields.
func NewGenericField(name, typ, kind string, generics []Field) Field {
	return Field{
		FieldName:     name,
		Type:          typ,
		Kind:          kind,
		IsGeneric:     true,
		GenericFields: generics,
	}
}

// NewEnumField returns the enum pseudo-field listing members in declaration order.
func NewEnumField(label string, members []EnumMember) Field {
	return Field{
		FieldName:  EnumFieldName,
		Type:       label,
		Kind:       EnumFieldName,
		IsEnum:     true,
		EnumFields: members,
	}
}
