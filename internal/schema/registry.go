package schema

import (
	"bytes"
	"encoding/json"
	"iter"

	"gopkg.in/yaml.v3"
)

// Registry maps fully-qualified type names to types, in insertion order.
type Registry struct {
	keys    []string
	entries map[string]*Type
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Type)}
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Get returns the type registered under name.
func (r *Registry) Get(name string) (*Type, bool) {
	t, ok := r.entries[name]
	return t, ok
}

// Keys returns the registered names in first-registration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// All iterates over the registry in first-registration order.
func (r *Registry) All() iter.Seq2[string, *Type] {
	return func(yield func(string, *Type) bool) {
		for _, k := range r.keys {
			if !yield(k, r.entries[k]) {
				return
			}
		}
	}
}

func (r *Registry) add(name string, t *Type) bool {
	if r.Has(name) {
		return false
	}

	r.keys = append(r.keys, name)
	r.entries[name] = t

	return true
}

// MarshalJSON renders the registry as a JSON object keeping insertion order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}

		val, err := marshalJSON(r.entries[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML renders the registry as a YAML mapping keeping insertion order.
func (r *Registry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range r.keys {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}

		val := &yaml.Node{}
		if err := val.Encode(r.entries[k]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, key, val)
	}

	return node, nil
}

// marshalJSON is json.Marshal without HTML escaping, so generic type names
// keep their angle brackets.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
