package metadata

//go:generate go tool stringer -type=ElementType -trimprefix=Element -output=element_string.go

// ElementType is the primitive kind of a constant or of an enum's underlying
// representation.
type ElementType int

const (
	_ ElementType = iota // zero value is invalid

	ElementBoolean
	ElementChar
	ElementI1
	ElementU1
	ElementI2
	ElementU2
	ElementI4
	ElementU4
	ElementI8
	ElementU8
	ElementR4
	ElementR8
	ElementString

	// ElementTotal is the number of element types defined, including the invalid zero value.
	ElementTotal = int(iota)
)

var corLibNames = map[ElementType]string{
	ElementBoolean: "System.Boolean",
	ElementChar:    "System.Char",
	ElementI1:      "System.SByte",
	ElementU1:      "System.Byte",
	ElementI2:      "System.Int16",
	ElementU2:      "System.UInt16",
	ElementI4:      "System.Int32",
	ElementU4:      "System.UInt32",
	ElementI8:      "System.Int64",
	ElementU8:      "System.UInt64",
	ElementR4:      "System.Single",
	ElementR8:      "System.Double",
	ElementString:  "System.String",
}

// CorLibName returns the fully-qualified core library name of the kind,
// e.g. "System.Int16" for ElementI2.
func (e ElementType) CorLibName() string {
	return corLibNames[e]
}

// Size returns the encoded size in bytes, or 0 for variable-size kinds.
func (e ElementType) Size() int {
	switch e {
	case ElementBoolean, ElementI1, ElementU1:
		return 1
	case ElementChar, ElementI2, ElementU2:
		return 2
	case ElementI4, ElementU4, ElementR4:
		return 4
	case ElementI8, ElementU8, ElementR8:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether the kind is a signed or unsigned integer.
func (e ElementType) IsInteger() bool {
	switch e {
	case ElementI1, ElementU1, ElementI2, ElementU2, ElementI4, ElementU4, ElementI8, ElementU8:
		return true
	default:
		return false
	}
}

// IsValid reports whether e is one of the declared kinds.
func (e ElementType) IsValid() bool {
	return e > 0 && int(e) < ElementTotal
}

// ParseElementType maps a kind name as printed by String ("I2", "U1", "String")
// or a core library name ("System.Int16") back to its ElementType.
func ParseElementType(s string) (ElementType, bool) {
	for e := ElementBoolean; int(e) < ElementTotal; e++ {
		if e.String() == s || e.CorLibName() == s {
			return e, true
		}
	}

	return 0, false
}

// ElementTypeFor returns the kind whose core library name matches sig,
// or false when sig is not a primitive.
func ElementTypeFor(sig TypeSig) (ElementType, bool) {
	if sig.IsGenericInst() || sig.GenericParam {
		return 0, false
	}

	return ParseElementType(sig.DefinitionName())
}
