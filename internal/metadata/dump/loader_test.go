package dump

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpc-dumper/internal/metadata"
	"rpc-dumper/internal/resolve"
)

func TestLoadFile_YAML(t *testing.T) {
	u, err := LoadFile(filepath.Join("testdata", "share.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Assembly-CSharp.dll", u.Module)
	assert.Equal(t, 6, u.Len())

	login, err := u.Resolve(metadata.Sig("Share", "CPtcLogin"))
	require.NoError(t, err)

	id, ok := login.Field("ID")
	require.True(t, ok)
	v, err := id.Constant.Interpret(metadata.ElementU2)
	require.NoError(t, err)
	assert.Equal(t, uint16(101), v)

	arg := login.Nested("CArg")
	require.NotNil(t, arg)
	assert.Equal(t, "Share", arg.Namespace)
	assert.Equal(t, "Share.CPtcLogin/CArg", arg.FullName())
	require.Len(t, arg.Properties, 3)
	assert.Equal(t, "Share.CPList`1<Share.CItem>", arg.Properties[2].Type.FullName())

	nested, err := u.Resolve(metadata.Sig("", "Share.CPtcLogin/CArg"))
	require.NoError(t, err)
	assert.Same(t, arg, nested)

	ret := login.Nested("CRet")
	require.NotNil(t, ret)
	assert.Equal(t, "Share.CPDictionary`2<System.Int32, Share.CPolymorphsim`1<Share.CBuff>>", ret.Properties[0].Type.FullName())

	item, err := u.Resolve(metadata.Sig("Share", "CItem"))
	require.NoError(t, err)
	assert.False(t, item.HasBase())

	ext, err := u.Resolve(metadata.Sig("Other", "CExternal"))
	require.NoError(t, err)
	assert.Equal(t, "Other.CExternal", ext.FullName())
}

func TestLoadFile_Enum(t *testing.T) {
	u, err := LoadFile(filepath.Join("testdata", "share.yaml"))
	require.NoError(t, err)

	def, err := u.Resolve(metadata.Sig("Share", "EQuality"))
	require.NoError(t, err)

	assert.True(t, def.IsEnum)
	assert.Equal(t, metadata.ElementI2, def.EnumUnderlying)
	assert.Equal(t, "System.Enum", def.BaseType.FullName())

	broken, ok := def.Field("Broken")
	require.True(t, ok)
	assert.Equal(t, "Share.EQuality", broken.Type.FullName(), "member type defaults to the enum")

	text, _, _, err := broken.Constant.Integer()
	require.NoError(t, err)
	assert.Equal(t, "-1", text)
}

func TestLoadFile_JSONDefaultsModule(t *testing.T) {
	u, err := LoadFile(filepath.Join("testdata", "share.json"))
	require.NoError(t, err)

	assert.Equal(t, "share.json", u.Module)
	assert.Equal(t, 1, u.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read dump file")
}

func TestLoadFile_ResolvesEndToEnd(t *testing.T) {
	u, err := LoadFile(filepath.Join("testdata", "share.yaml"))
	require.NoError(t, err)

	doc, err := resolve.New(u).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Share.CPtcLogin", "Share.CRpcHeartbeat"}, doc.Messages.Keys())
	assert.Equal(t, []string{"Share.EQuality", "Share.CItem", "Share.CBuff", "Share.CBuffFire"}, doc.Types.Keys())

	hb, _ := doc.Messages.Get("Share.CRpcHeartbeat")
	assert.Equal(t, uint16(0x0102), hb.ID)
}

func TestUniverse_DeeplyNestedReference(t *testing.T) {
	f, err := Parse([]byte(`
version: 1.0.0
types:
  - namespace: Share
    name: CPtcDeep
    fields:
      - {name: ID, type: System.UInt16, constant: {type: U2, value: 9}}
    nested:
      - name: CArg
        properties:
          - {name: Inner, type: Share.CPtcDeep/CArg/CInner}
        nested:
          - name: CInner
            properties:
              - {name: Depth, type: System.Int32}
`))
	require.NoError(t, err)

	u, err := f.Universe()
	require.NoError(t, err)

	inner, err := u.Resolve(metadata.Sig("", "Share.CPtcDeep/CArg/CInner"))
	require.NoError(t, err)
	assert.Equal(t, "Share.CPtcDeep/CArg", inner.DeclaringType)

	doc, err := resolve.New(u).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Share.CPtcDeep"}, doc.Messages.Keys())
	assert.Equal(t, []string{"Share.CPtcDeep/CArg/CInner"}, doc.Types.Keys())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "not yaml",
			data:    "types: [",
			wantErr: "parsing dump",
		},
		{
			name:    "missing version",
			data:    "types: []",
			wantErr: "version",
		},
		{
			name:    "unsupported version",
			data:    "version: 2.0.0\ntypes: []",
			wantErr: "does not satisfy",
		},
		{
			name:    "unknown key",
			data:    "version: 1.0.0\ntypes: [{name: A, color: red}]",
			wantErr: "/types/0",
		},
		{
			name:    "unknown element type",
			data:    "version: 1.0.0\ntypes: [{name: A, fields: [{name: X, type: System.Int32, constant: {type: Decimal, value: 1}}]}]",
			wantErr: "/types/0/fields/0/constant/type",
		},
		{
			name:    "constant without value",
			data:    "version: 1.0.0\ntypes: [{name: A, fields: [{name: X, type: System.Int32, constant: {type: I4}}]}]",
			wantErr: "/types/0/fields/0/constant",
		},
		{
			name:    "bad signature",
			data:    "version: 1.0.0\ntypes: [{name: A, properties: [{name: P, type: \"Share.CPList`1<\"}]}]",
			wantErr: "line 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDump)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_SchemaIssuesSorted(t *testing.T) {
	data := []byte("version: 1.0.0\ntypes: [{name: B, colour: x}, {name: A, color: red}]")

	diags, err := Validate(data)
	require.NoError(t, err)
	require.Len(t, diags.Errors, 2)
	assert.Equal(t, "/types/0", diags.Errors[0].Member)
	assert.Equal(t, "/types/1", diags.Errors[1].Member)

	_, err = Parse(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDump)

	msg := err.Error()
	assert.Contains(t, msg, "; ")
	assert.Less(t, strings.Index(msg, "/types/0"), strings.Index(msg, "/types/1"))
}

func TestUniverse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "duplicate type",
			data:    "version: 1.0.0\ntypes: [{namespace: S, name: A}, {namespace: S, name: A}]",
			wantErr: "duplicate type definition S.A",
		},
		{
			name:    "field without type",
			data:    "version: 1.0.0\ntypes: [{namespace: S, name: A, fields: [{name: X}]}]",
			wantErr: "field X has no type",
		},
		{
			name:    "non-integer enum",
			data:    "version: 1.0.0\ntypes: [{namespace: S, name: E, enum: String}]",
			wantErr: "not an integer type",
		},
		{
			name:    "mismatched constant",
			data:    "version: 1.0.0\ntypes: [{namespace: S, name: A, fields: [{name: X, type: System.Int32, constant: {type: I4, value: abc}}]}]",
			wantErr: "field X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.data))
			require.NoError(t, err)

			_, err = f.Universe()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDump)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConstant_Char(t *testing.T) {
	c := Constant{Type: "Char", Value: "A"}

	mc, err := c.toMetadata()
	require.NoError(t, err)
	assert.Equal(t, []byte{'A', 0}, mc.Value)

	c.Value = "AB"
	_, err = c.toMetadata()
	assert.Error(t, err)
}

func TestIsDumpPath(t *testing.T) {
	assert.True(t, IsDumpPath("a/b.yaml"))
	assert.True(t, IsDumpPath("b.YML"))
	assert.True(t, IsDumpPath("b.json"))
	assert.False(t, IsDumpPath("./share"))
	assert.False(t, IsDumpPath("Assembly.dll"))
}
