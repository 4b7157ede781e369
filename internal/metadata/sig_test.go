package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeSig_FullName(t *testing.T) {
	tests := []struct {
		name     string
		sig      TypeSig
		expected string
	}{
		{"plain", Sig("System", "Int32"), "System.Int32"},
		{"no namespace", TypeSig{Name: "T", GenericParam: true}, "T"},
		{"generic", Generic("Share", "CPList`1", Sig("System", "Int32")), "Share.CPList`1<System.Int32>"},
		{
			"nested generic",
			Generic("Share", "CPDictionary`2",
				Sig("System", "String"),
				Generic("Share", "CPList`1", Sig("Share", "CItem"))),
			"Share.CPDictionary`2<System.String, Share.CPList`1<Share.CItem>>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sig.FullName())
		})
	}
}

func TestParseTypeSig(t *testing.T) {
	inputs := []string{
		"System.Int32",
		"Share.CPList`1<System.Int32>",
		"Share.CPDictionary`2<System.String, Share.CPList`1<Share.CItem>>",
		"System.Byte[]",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			sig, err := ParseTypeSig(in)
			require.NoError(t, err)
			assert.Equal(t, in, sig.FullName())
		})
	}
}

func TestParseTypeSig_Structure(t *testing.T) {
	sig, err := ParseTypeSig("Share.CPolymorphsim`1< Share.CBuff >")
	require.NoError(t, err)

	assert.Equal(t, "Share", sig.Namespace)
	assert.Equal(t, "CPolymorphsim`1", sig.Name)
	require.Len(t, sig.Args, 1)
	assert.Equal(t, Sig("Share", "CBuff"), sig.Args[0])
	assert.Equal(t, "Share.CPolymorphsim`1", sig.DefinitionName())
}

func TestParseTypeSig_GenericParam(t *testing.T) {
	sig, err := ParseTypeSig("Share.CPList`1<!T>")
	require.NoError(t, err)
	require.Len(t, sig.Args, 1)
	assert.True(t, sig.Args[0].GenericParam)
	assert.Equal(t, "T", sig.Args[0].Name)
	assert.Empty(t, sig.Args[0].Namespace)
}

func TestParseTypeSig_Errors(t *testing.T) {
	bad := []string{
		"",
		"Share.CPList`1<System.Int32",
		"Share.CPList`1<>",
		"Share.A>",
		"Share.A<System.Int32>>",
	}

	for _, in := range bad {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTypeSig(in)
			assert.Error(t, err)
		})
	}
}
