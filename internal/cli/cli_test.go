package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var (
	dumpFixture = filepath.Join("..", "metadata", "dump", "testdata", "share.yaml")
	goFixture   = filepath.Join("..", "analyze", "testdata", "share")
)

var testBuild = BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), testBuild, args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	return m
}

func TestExecute_Dump(t *testing.T) {
	out := t.TempDir()

	code, stdout, stderr := execute(t, dumpFixture, "-o", out)
	require.Equal(t, ExitOK, code, stderr)

	assert.Equal(t, "Found RPCs: 2\nDone!\n", stdout)

	data, err := os.ReadFile(filepath.Join(out, "rpcs.json"))
	require.NoError(t, err)

	text := string(data)
	assert.Less(t, strings.Index(text, `"Share.CPtcLogin"`), strings.Index(text, `"Share.CRpcHeartbeat"`))
	assert.Contains(t, text, `"Name": "PtcLogin"`)
	assert.Contains(t, text, `"Type": "List"`)
	assert.Contains(t, text, `"ID": 101`)

	rpcs := readJSON(t, filepath.Join(out, "rpcs.json"))
	login := rpcs["Share.CPtcLogin"].(map[string]any)
	assert.Contains(t, login, "CArg")
	assert.Contains(t, login, "CRet")
	assert.NotContains(t, login, "CRetExt")

	types := readJSON(t, filepath.Join(out, "types.json"))
	assert.Len(t, types, 4)

	quality := types["Share.EQuality"].(map[string]any)
	assert.Equal(t, "System.Enum::System.Int16", quality["BaseType"])
}

func TestExecute_GoPackage(t *testing.T) {
	out := t.TempDir()

	code, stdout, stderr := execute(t, goFixture, "-o", out, "-f", "yaml")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Found RPCs: 2")

	data, err := os.ReadFile(filepath.Join(out, "types.yaml"))
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &node))
	require.Len(t, node.Content, 1)

	var keys []string
	mapping := node.Content[0]
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}

	assert.Equal(t, []string{"Share.EQuality", "Share.CItem", "Share.CBuff", "Share.CBuffFire"}, keys)
	assert.FileExists(t, filepath.Join(out, "rpcs.yaml"))
	assert.Contains(t, stderr, "unsupported_type", "analyzer warnings are logged")
}

func TestExecute_GoPackageLogsAllDiagnostics(t *testing.T) {
	code, _, stderr := execute(t, goFixture, "-v", "-o", t.TempDir())
	require.Equal(t, ExitOK, code, stderr)

	analyzed := strings.Index(stderr, "code=unsupported_type")
	resolved := strings.Index(stderr, "code=polymorphic_expansion")
	require.NotEqual(t, -1, analyzed, stderr)
	require.NotEqual(t, -1, resolved, stderr)
	assert.Less(t, analyzed, resolved, "analyzer diagnostics come first")
}

func TestExecute_NoInput(t *testing.T) {
	code, stdout, stderr := execute(t)

	assert.Equal(t, ExitUsage, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, ErrNoInput.Error())
	assert.Contains(t, stderr, "Usage:")
}

func TestExecute_BadFlagValue(t *testing.T) {
	code, _, stderr := execute(t, dumpFixture, "-f", "xml", "-o", t.TempDir())

	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "unsupported format")
}

func TestExecute_UnknownFlag(t *testing.T) {
	code, _, _ := execute(t, "--nope", dumpFixture)
	assert.Equal(t, ExitUsage, code)
}

func TestExecute_ResolutionFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`version: 1.0.0
types:
  - namespace: Share
    name: CPtcBroken
    fields:
      - {name: ID, type: System.UInt16, constant: {type: U2, value: 1}}
    properties:
      - {name: Missing, type: Share.CGone}
`), 0o644))

	out := filepath.Join(dir, "out")

	code, stdout, stderr := execute(t, input, "-o", out)

	assert.Equal(t, ExitError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unresolved type reference")
	assert.NoDirExists(t, out)
}

func TestExecute_InvalidDump(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"types": []}`), 0o644))

	code, _, stderr := execute(t, input, "-o", dir)

	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "invalid metadata dump")
}

func TestExecute_ProviderOverride(t *testing.T) {
	code, _, stderr := execute(t, "--provider", "dump", goFixture, "-o", t.TempDir())

	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "failed to read dump file")
}

func TestExecute_NamespaceFlag(t *testing.T) {
	out := t.TempDir()

	code, stdout, stderr := execute(t, dumpFixture, "--namespace", "Other", "-o", out)
	require.Equal(t, ExitOK, code, stderr)

	assert.Contains(t, stdout, "Found RPCs: 0")
	assert.Empty(t, readJSON(t, filepath.Join(out, "types.json")))
}

func TestExecute_NamespaceFlagFindsMessages(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "proto.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`
version: 1.0.0
types:
  - namespace: Proto
    name: CPtcLogin
    fields:
      - {name: ID, type: System.UInt16, constant: {type: U2, value: 5}}
    properties:
      - {name: Account, type: System.String}
`), 0o644))

	out := filepath.Join(dir, "out")
	code, stdout, stderr := execute(t, input, "--namespace", "Proto", "-o", out)
	require.Equal(t, ExitOK, code, stderr)

	assert.Contains(t, stdout, "Found RPCs: 1")
	assert.Contains(t, readJSON(t, filepath.Join(out, "rpcs.json")), "Proto.CPtcLogin")
	assert.Empty(t, readJSON(t, filepath.Join(out, "types.json")))
}

func TestExecute_VerboseAndDebug(t *testing.T) {
	code, _, stderr := execute(t, dumpFixture, "-v", "--debug", "-o", t.TempDir())
	require.Equal(t, ExitOK, code, stderr)

	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "registered type")
	assert.Contains(t, stderr, "polymorphic_expansion")
	assert.Contains(t, stderr, "(*schema.Document)")
	assert.Contains(t, stderr, "Share.CPtcLogin")
}

func TestExecute_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "custom.yaml")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(cfg, []byte("format: yaml\noutput: "+out+"\n"), 0o644))

	code, _, stderr := execute(t, dumpFixture, "--config", cfg)
	require.Equal(t, ExitOK, code, stderr)

	assert.FileExists(t, filepath.Join(out, "rpcs.yaml"))
	assert.FileExists(t, filepath.Join(out, "types.yaml"))
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "rpc-dumper version 1.2.3 (commit: abc, built: today)\n", stdout)

	_, stdout, _ = execute(t, "version", "--short")
	assert.Equal(t, "1.2.3\n", stdout)

	_, stdout, _ = execute(t, "version", "--json")

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "abc", info["commit"])
}

func TestGoPattern(t *testing.T) {
	assert.Equal(t, goFixture, goPattern(goFixture))
	assert.Equal(t, "/abs/share", goPattern("/abs/share"))
	assert.Equal(t, "rpc-dumper/share", goPattern("rpc-dumper/share"))
}
