package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rpc-dumper/internal/metadata"
)

type defOption func(*metadata.TypeDef)

func share(name string, opts ...defOption) *metadata.TypeDef {
	def := &metadata.TypeDef{Namespace: "Share", Name: name}
	for _, opt := range opts {
		opt(def)
	}

	return def
}

func mustSig(s string) metadata.TypeSig {
	sig, err := metadata.ParseTypeSig(s)
	if err != nil {
		panic(err)
	}

	return sig
}

func mustConst(kind metadata.ElementType, v any) *metadata.Constant {
	c, err := metadata.NewConstant(kind, v)
	if err != nil {
		panic(err)
	}

	return c
}

func withID(id int) defOption {
	return func(d *metadata.TypeDef) {
		d.Fields = append(d.Fields, metadata.FieldDef{
			Name:     "ID",
			Type:     metadata.Sig("System", "UInt16"),
			Constant: mustConst(metadata.ElementU2, id),
		})
	}
}

func withDisplayName(name string) defOption {
	return func(d *metadata.TypeDef) {
		d.Fields = append(d.Fields, metadata.FieldDef{
			Name:     "Name",
			Type:     metadata.Sig("System", "String"),
			Constant: mustConst(metadata.ElementString, name),
		})
	}
}

func withProp(name, sig string) defOption {
	return func(d *metadata.TypeDef) {
		d.Properties = append(d.Properties, metadata.PropertyDef{Name: name, Type: mustSig(sig)})
	}
}

func withBase(sig string) defOption {
	return func(d *metadata.TypeDef) {
		s := mustSig(sig)
		d.BaseType = &s
	}
}

func withInterface(sig string) defOption {
	return func(d *metadata.TypeDef) {
		d.Interfaces = append(d.Interfaces, mustSig(sig))
	}
}

func withNested(name string, opts ...defOption) defOption {
	return func(d *metadata.TypeDef) {
		d.NestedTypes = append(d.NestedTypes, share(name, opts...))
	}
}

type member struct {
	name  string
	value int
}

func asEnum(kind metadata.ElementType, members ...member) defOption {
	return func(d *metadata.TypeDef) {
		d.IsEnum = true
		d.EnumUnderlying = kind
		base := metadata.Sig("System", "Enum")
		d.BaseType = &base

		d.Fields = append(d.Fields, metadata.FieldDef{Name: "value__", Type: mustSig(kind.CorLibName())})
		for _, m := range members {
			d.Fields = append(d.Fields, metadata.FieldDef{
				Name:     m.name,
				Type:     d.Sig(),
				Constant: mustConst(kind, m.value),
			})
		}
	}
}

func universe(t *testing.T, defs ...*metadata.TypeDef) *metadata.Universe {
	t.Helper()

	u := metadata.NewUniverse("Test.dll")
	for _, d := range defs {
		require.NoError(t, u.Add(d))
	}

	return u
}

// countingProvider counts Resolve calls per definition name.
type countingProvider struct {
	metadata.Provider
	calls map[string]int
}

func (c *countingProvider) Resolve(sig metadata.TypeSig) (*metadata.TypeDef, error) {
	c.calls[sig.DefinitionName()]++
	return c.Provider.Resolve(sig)
}
