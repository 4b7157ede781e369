package dump

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"rpc-dumper/internal/diagnostic"
)

// CodeSchema is the diagnostic code of schema violations.
const CodeSchema = "dump_schema"

const schemaURL = "universe.schema.json"

//go:embed schema/universe.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}

		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})

	return compiledSchema, compileErr
}

// Validate checks raw YAML or JSON dump data against the embedded schema.
// The error return is for parse or schema compilation failures; schema
// violations are reported as error diagnostics keyed by instance path,
// sorted by their rendering.
func Validate(data []byte) (*diagnostic.Diagnostics, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing dump: %w", err)
	}

	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	res := &diagnostic.Diagnostics{}

	err = schema.Validate(inst)
	if err == nil {
		return res, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	collectIssues(res, ve, map[string]struct{}{})

	if !res.HasErrors() {
		res.AddError(CodeSchema, ve.Error(), "", "")
	}

	sort.SliceStable(res.Errors, func(i, j int) bool {
		return res.Errors[i].String() < res.Errors[j].String()
	})

	return res, nil
}

// collectIssues walks the ValidationError tree and records leaf errors once.
// Combinator keywords only group their branches and are skipped.
func collectIssues(res *diagnostic.Diagnostics, ve *jsonschema.ValidationError, seen map[string]struct{}) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(res, cause, seen)
		}

		return
	}

	if ve.ErrorKind == nil {
		return
	}

	var keyword string
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}

	switch keyword {
	case "", "oneOf", "allOf", "$ref":
		return
	}

	path := "/" + strings.Join(ve.InstanceLocation, "/")
	msg := ve.ErrorKind.LocalizedString(printer)

	key := path + "|" + keyword + "|" + msg
	if _, ok := seen[key]; ok {
		return
	}

	seen[key] = struct{}{}
	res.AddError(CodeSchema, msg, "", path)
}

// normalizeYAML converts YAML-decoded values to JSON-compatible types.
// Mappings with non-string keys get their keys stringified.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}

		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}

		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}

		return a
	default:
		return val
	}
}
