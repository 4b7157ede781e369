package metadata

import (
	"errors"
	"fmt"
	"strings"

	"rpc-dumper/internal/match"
)

// maxSuggestions bounds the alternatives listed for an unresolved reference.
const maxSuggestions = 3

// ErrUnresolved is wrapped by every error caused by a type reference that
// cannot be resolved against the universe.
var ErrUnresolved = errors.New("unresolved type reference")

// ResolutionError reports a reference that could not be resolved.
type ResolutionError struct {
	Ref    string
	Module string
	// Suggestions are known definitions with a similar name.
	Suggestions []string
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrUnresolved, e.Ref)
	if e.Module != "" {
		msg += fmt.Sprintf(" (module %s)", e.Module)
	}

	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}

	return msg
}

func (e *ResolutionError) Unwrap() error {
	return ErrUnresolved
}

// Provider is a read-only view over a type universe.
type Provider interface {
	// TopLevelTypes returns every non-nested type definition in declaration order.
	TopLevelTypes() []*TypeDef
	// Resolve returns the definition a sig refers to. Generic instantiations
	// resolve to their generic definition.
	Resolve(sig TypeSig) (*TypeDef, error)
}

// Universe is an in-memory Provider.
type Universe struct {
	Module string

	topLevel []*TypeDef
	byName   map[string]*TypeDef
	// names lists byName keys in insertion order.
	names []string
}

// NewUniverse creates an empty universe for the named module.
func NewUniverse(module string) *Universe {
	return &Universe{
		Module: module,
		byName: make(map[string]*TypeDef),
	}
}

// Add registers a top-level definition. Its nested types, at any depth,
// become resolvable under their nested full names.
func (u *Universe) Add(def *TypeDef) error {
	name := def.FullName()
	if _, ok := u.byName[name]; ok {
		return fmt.Errorf("duplicate type definition %s", name)
	}

	u.topLevel = append(u.topLevel, def)
	u.index(name, def)
	u.indexNested(def)

	return nil
}

func (u *Universe) indexNested(parent *TypeDef) {
	for _, n := range parent.NestedTypes {
		if n.DeclaringType == "" {
			n.DeclaringType = parent.FullName()
		}

		u.index(n.FullName(), n)
		u.indexNested(n)
	}
}

// AddReference makes def resolvable without enumerating it as a top-level
// type. Used for definitions living in referenced modules. A reference never
// replaces an existing definition.
func (u *Universe) AddReference(def *TypeDef) {
	name := def.FullName()
	if _, ok := u.byName[name]; ok {
		return
	}

	u.index(name, def)
}

func (u *Universe) index(name string, def *TypeDef) {
	if _, ok := u.byName[name]; !ok {
		u.names = append(u.names, name)
	}

	u.byName[name] = def
}

// TopLevelTypes implements Provider.
func (u *Universe) TopLevelTypes() []*TypeDef {
	return u.topLevel
}

// Resolve implements Provider.
func (u *Universe) Resolve(sig TypeSig) (*TypeDef, error) {
	if sig.GenericParam {
		return nil, &ResolutionError{Ref: "generic parameter " + sig.Name, Module: u.Module}
	}

	def, ok := u.byName[sig.DefinitionName()]
	if !ok {
		return nil, &ResolutionError{
			Ref:         sig.FullName(),
			Module:      u.Module,
			Suggestions: match.Suggest(sig.DefinitionName(), u.names, maxSuggestions),
		}
	}

	return def, nil
}

// Len returns the number of top-level types.
func (u *Universe) Len() int {
	return len(u.topLevel)
}
