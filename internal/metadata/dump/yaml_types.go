package dump

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"rpc-dumper/internal/metadata"
)

// File is the top-level structure of a dump.
type File struct {
	Version    string    `yaml:"version"`
	Module     string    `yaml:"module,omitempty"`
	Types      []TypeDef `yaml:"types"`
	References []TypeDef `yaml:"references,omitempty"`
}

// TypeDef is a type definition as written in a dump.
type TypeDef struct {
	Namespace  string        `yaml:"namespace,omitempty"`
	Name       string        `yaml:"name"`
	Base       *Sig          `yaml:"base,omitempty"`
	Interfaces []Sig         `yaml:"interfaces,omitempty"`
	Enum       string        `yaml:"enum,omitempty"`
	Fields     []FieldDef    `yaml:"fields,omitempty"`
	Properties []PropertyDef `yaml:"properties,omitempty"`
	Nested     []TypeDef     `yaml:"nested,omitempty"`
}

// FieldDef is a declared field; Type may be omitted for enum members.
type FieldDef struct {
	Name     string    `yaml:"name"`
	Type     *Sig      `yaml:"type,omitempty"`
	Constant *Constant `yaml:"constant,omitempty"`
}

// PropertyDef is a declared property.
type PropertyDef struct {
	Name string `yaml:"name"`
	Type Sig    `yaml:"type"`
}

// Constant is a literal constant: a typed value or a raw hex blob.
type Constant struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value,omitempty"`
	Raw   string `yaml:"raw,omitempty"`
}

// Sig wraps metadata.TypeSig with YAML decoding from either the rendered
// string form or a mapping.
type Sig struct {
	metadata.TypeSig
}

// sigMapping is the mapping form of Sig.
type sigMapping struct {
	Namespace string `yaml:"namespace"`
	Name      string `yaml:"name"`
	Args      []Sig  `yaml:"args"`
	Param     bool   `yaml:"param"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Sig.
// Accepts:
//   - Rendered string: "Share.CPList`1<Share.CItem>"
//   - Mapping: {namespace: Share, name: CPList`1, args: [Share.CItem]}
func (s *Sig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		sig, err := metadata.ParseTypeSig(str)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		s.TypeSig = sig

		return nil

	case yaml.MappingNode:
		var m sigMapping

		if err := node.Decode(&m); err != nil {
			return err
		}

		if m.Name == "" {
			return fmt.Errorf("line %d: type signature without name", node.Line)
		}

		s.TypeSig = metadata.TypeSig{Namespace: m.Namespace, Name: m.Name, GenericParam: m.Param}
		for _, a := range m.Args {
			s.Args = append(s.Args, a.TypeSig)
		}

		return nil

	default:
		return fmt.Errorf("line %d: expected type signature string or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML renders a Sig in its string form.
func (s Sig) MarshalYAML() (any, error) {
	return s.String(), nil
}

// toMetadata converts the constant into its raw blob form.
func (c *Constant) toMetadata() (*metadata.Constant, error) {
	kind, ok := metadata.ParseElementType(c.Type)
	if !ok {
		return nil, fmt.Errorf("unknown constant type %q", c.Type)
	}

	if c.Raw != "" {
		b, err := hex.DecodeString(c.Raw)
		if err != nil {
			return nil, fmt.Errorf("raw constant: %w", err)
		}

		return &metadata.Constant{Type: kind, Value: b}, nil
	}

	v := c.Value
	if s, ok := v.(string); ok && kind == metadata.ElementChar {
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("char constant %q is not a single character", s)
		}

		r, _ := utf8.DecodeRuneInString(s)
		v = int(r)
	}

	return metadata.NewConstant(kind, v)
}
