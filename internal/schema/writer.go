package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Format is a supported output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Output file base names.
const (
	MessagesFile = "rpcs"
	TypesFile    = "types"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (valid: json, yaml)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()

	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// rename is swapped in tests to fail a chosen step.
var rename = os.Rename

// WriteFiles writes the message registry to rpcs.<ext> and the auxiliary
// registry to types.<ext> inside dir, creating dir if needed. Both files are
// rendered to temporary files first and renamed only when both succeed. A
// failed rename puts back the files it replaced.
func WriteFiles(doc *Document, dir string, f Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	outputs := []struct {
		name string
		reg  *Registry
	}{
		{MessagesFile, doc.Messages},
		{TypesFile, doc.Types},
	}

	var temps, paths []string

	cleanup := func() {
		for _, t := range temps {
			_ = os.Remove(t)
		}
	}

	for _, o := range outputs {
		tmp, err := writeTemp(dir, o.reg, f)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("write %s: %w", o.name, err)
		}

		temps = append(temps, tmp)
		paths = append(paths, filepath.Join(dir, o.name+"."+f.Ext()))
	}

	if err := replaceAll(temps, paths); err != nil {
		cleanup()
		return nil, err
	}

	return paths, nil
}

// replaceAll moves every temps[i] to paths[i]. Existing targets are moved
// aside first and restored when a later step fails.
func replaceAll(temps, paths []string) error {
	for _, p := range paths {
		if fi, err := os.Lstat(p); err == nil && !fi.Mode().IsRegular() {
			return fmt.Errorf("output path %s is not a regular file", p)
		}
	}

	var undo []func()

	rollback := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	var backups []string

	for i := range temps {
		path := paths[i]

		backup := ""
		if _, err := os.Lstat(path); err == nil {
			backup = path + ".bak"
			if err := rename(path, backup); err != nil {
				rollback()
				return fmt.Errorf("move aside %s: %w", path, err)
			}

			backups = append(backups, backup)
		}

		if err := rename(temps[i], path); err != nil {
			if backup != "" {
				_ = rename(backup, path)
			}

			rollback()

			return fmt.Errorf("rename output file: %w", err)
		}

		undo = append(undo, func() {
			_ = os.Remove(path)
			if backup != "" {
				_ = rename(backup, path)
			}
		})
	}

	for _, b := range backups {
		_ = os.Remove(b)
	}

	return nil
}

func writeTemp(dir string, reg *Registry, f Format) (string, error) {
	tmp, err := os.CreateTemp(dir, ".rpc-dumper-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if err := Encode(tmp, reg, f); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return "", err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return tmp.Name(), nil
}
