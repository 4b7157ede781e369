package schema

// Document is the output of a resolution run.
type Document struct {
	Messages *Registry
	Types    *Registry
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		Messages: NewRegistry(),
		Types:    NewRegistry(),
	}
}

// Has reports whether name is registered in either registry.
func (d *Document) Has(name string) bool {
	return d.Messages.Has(name) || d.Types.Has(name)
}

// Commit registers t under name, in Messages when message is true and in
// Types otherwise. It returns false and leaves the document unchanged when
// name is already registered in either registry.
func (d *Document) Commit(name string, t *Type, message bool) bool {
	if d.Has(name) {
		return false
	}

	if message {
		return d.Messages.add(name, t)
	}

	return d.Types.add(name, t)
}
