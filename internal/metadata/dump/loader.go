package dump

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"rpc-dumper/internal/metadata"
)

// SupportedVersions is the semver constraint dump versions must satisfy.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// ErrInvalidDump is wrapped by every error caused by a malformed dump.
var ErrInvalidDump = errors.New("invalid metadata dump")

var supported = mustConstraint(SupportedVersions)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}

	return c
}

// IsDumpPath reports whether path names a file this package loads,
// judging by its extension.
func IsDumpPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// LoadFile loads a dump from the given path. The universe's module name
// defaults to the file's base name.
func LoadFile(path string) (*metadata.Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if f.Module == "" {
		f.Module = filepath.Base(path)
	}

	return f.Universe()
}

// Parse validates YAML or JSON data and decodes it into a File.
func Parse(data []byte) (*File, error) {
	diags, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDump, err)
	}

	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDump, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDump, err)
	}

	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}

	return &f, nil
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return fmt.Errorf("%w: version %q: %w", ErrInvalidDump, v, err)
	}

	if !supported.Check(version) {
		return fmt.Errorf("%w: version %s does not satisfy %s", ErrInvalidDump, version, SupportedVersions)
	}

	return nil
}

// Universe builds the in-memory universe described by the file.
func (f *File) Universe() (*metadata.Universe, error) {
	u := metadata.NewUniverse(f.Module)

	for i := range f.Types {
		def, err := f.Types[i].toMetadata(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDump, err)
		}

		if err := u.Add(def); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDump, err)
		}
	}

	for i := range f.References {
		def, err := f.References[i].toMetadata(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: reference: %w", ErrInvalidDump, err)
		}

		u.AddReference(def)
	}

	return u, nil
}

// toMetadata converts a dump type declared inside parent, or at top level
// when parent is nil. Nested types without a namespace inherit the namespace
// of their declaring type.
func (t *TypeDef) toMetadata(parent *metadata.TypeDef) (*metadata.TypeDef, error) {
	def := &metadata.TypeDef{Namespace: t.Namespace, Name: t.Name}
	if parent != nil {
		def.DeclaringType = parent.FullName()

		if def.Namespace == "" {
			def.Namespace = parent.Namespace
		}
	}

	name := def.FullName()

	if t.Base != nil {
		base := t.Base.TypeSig
		def.BaseType = &base
	}

	for _, iface := range t.Interfaces {
		def.Interfaces = append(def.Interfaces, iface.TypeSig)
	}

	if t.Enum != "" {
		kind, ok := metadata.ParseElementType(t.Enum)
		if !ok || !kind.IsInteger() {
			return nil, fmt.Errorf("%s: enum underlying type %q is not an integer type", name, t.Enum)
		}

		def.IsEnum = true
		def.EnumUnderlying = kind

		if def.BaseType == nil {
			base := metadata.Sig("System", "Enum")
			def.BaseType = &base
		}
	}

	for _, f := range t.Fields {
		fd := metadata.FieldDef{Name: f.Name}

		switch {
		case f.Type != nil:
			fd.Type = f.Type.TypeSig
		case def.IsEnum:
			fd.Type = def.Sig()
		default:
			return nil, fmt.Errorf("%s: field %s has no type", name, f.Name)
		}

		if f.Constant != nil {
			c, err := f.Constant.toMetadata()
			if err != nil {
				return nil, fmt.Errorf("%s: field %s: %w", name, f.Name, err)
			}

			fd.Constant = c
		}

		def.Fields = append(def.Fields, fd)
	}

	for _, p := range t.Properties {
		def.Properties = append(def.Properties, metadata.PropertyDef{Name: p.Name, Type: p.Type.TypeSig})
	}

	for i := range t.Nested {
		n, err := t.Nested[i].toMetadata(def)
		if err != nil {
			return nil, err
		}

		def.NestedTypes = append(def.NestedTypes, n)
	}

	return def, nil
}
