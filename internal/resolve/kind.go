package resolve

//go:generate go tool stringer -type=FieldKind -trimprefix=Kind -output=kind_string.go

// FieldKind is the semantic classification of a field's declared type.
type FieldKind int

const (
	_ FieldKind = iota // skip zero value, it marks an unclassified field

	KindReference // raw type name, no container semantics
	KindScalar
	KindEnum
	KindList
	KindSet
	KindMap
	KindDoubleKeyMap
	KindLinkedList
	KindUnion
	KindOpaqueBlob
	KindRawObject

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindLabels = map[FieldKind]string{
	KindList:         "List",
	KindSet:          "HashSet",
	KindMap:          "Dict",
	KindDoubleKeyMap: "DoubleDict",
	KindLinkedList:   "LinkedList",
	KindUnion:        "CPolymorphsim",
	KindRawObject:    "CData",
	KindOpaqueBlob:   "CPropertyBlob",
}

// Label returns the fixed type label of container and union kinds. Scalar,
// Enum and Reference fields are labelled with a type name instead, for them
// Label returns "".
func (k FieldKind) Label() string {
	return kindLabels[k]
}

// IsContainer reports whether fields of this kind carry generic sub-fields.
func (k FieldKind) IsContainer() bool {
	return k.Label() != ""
}
