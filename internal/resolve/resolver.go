package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"rpc-dumper/internal/common"
	"rpc-dumper/internal/diagnostic"
	"rpc-dumper/internal/metadata"
	"rpc-dumper/internal/schema"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithConventions overrides DefaultConventions.
func WithConventions(c Conventions) Option {
	return func(r *Resolver) {
		r.conv = c
	}
}

// WithLogger sets the logger used for debug tracing of registrations.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// Resolver walks a type universe and builds the schema document.
// It is single-threaded: all registrations go through one Resolver.
type Resolver struct {
	provider metadata.Provider
	conv     Conventions
	logger   *slog.Logger

	doc   *schema.Document
	diags diagnostic.Diagnostics

	// resolving holds types between entering resolution and being committed.
	resolving  map[string]struct{}
	identities map[string]identity
}

type identity struct {
	id      uint16
	display string
}

// New creates a Resolver over p.
func New(p metadata.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider:   p,
		conv:       DefaultConventions(),
		logger:     slog.New(slog.DiscardHandler),
		doc:        schema.NewDocument(),
		resolving:  make(map[string]struct{}),
		identities: make(map[string]identity),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.conv.Rules == nil {
		r.conv.Rules = DefaultRules
	}

	return r
}

// Conventions implements Registrar.
func (r *Resolver) Conventions() *Conventions {
	return &r.conv
}

// Provider implements Registrar.
func (r *Resolver) Provider() metadata.Provider {
	return r.provider
}

// Diagnostics implements Registrar.
func (r *Resolver) Diagnostics() *diagnostic.Diagnostics {
	return &r.diags
}

// Register implements Registrar. It is a no-op for types that are already
// registered or currently being resolved.
func (r *Resolver) Register(def *metadata.TypeDef) error {
	return r.resolveDef(def, false)
}

// Document returns the document built so far.
func (r *Resolver) Document() *schema.Document {
	return r.doc
}

// Run resolves every protocol-namespace top-level type that declares a
// nonzero id, together with everything reachable from it. On error no
// document is returned: a schema missing a type would look complete.
func (r *Resolver) Run(ctx context.Context) (*schema.Document, error) {
	for _, def := range r.provider.TopLevelTypes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !r.conv.IsProtocol(def.Sig()) {
			continue
		}

		if err := r.resolveDef(def, true); err != nil {
			return nil, err
		}
	}

	r.logger.Debug("resolution finished",
		slog.Int("messages", r.doc.Messages.Len()),
		slog.Int("types", r.doc.Types.Len()))

	return r.doc, nil
}

func (r *Resolver) resolveDef(def *metadata.TypeDef, requireID bool) error {
	name := def.FullName()

	if r.doc.Has(name) {
		return nil
	}

	if _, ok := r.resolving[name]; ok {
		return nil
	}

	ident := r.identity(def)
	if requireID && ident.id == 0 {
		return nil
	}

	r.resolving[name] = struct{}{}
	defer delete(r.resolving, name)

	t := &schema.Type{
		Name: ident.display,
		ID:   ident.id,
	}

	if def.HasBase() {
		t.BaseType = def.BaseType.FullName()
	}

	if ident.id != 0 && def.DeclaringType == "" {
		if err := r.nestedDescriptors(def, t); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	fields, err := r.classifyAll(def.Properties, false)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	t.Fields = fields

	if def.IsEnum {
		f := r.enumField(def)
		t.Fields = append(t.Fields, f)
		t.BaseType = f.Type
	}

	message := ident.id != 0 && r.conv.IsMessageName(name)
	if r.doc.Commit(name, t, message) {
		r.logger.Debug("registered type",
			slog.String("type", name),
			slog.Bool("message", message),
			slog.Int("fields", len(t.Fields)))
	}

	return nil
}

// identity reads the id and display-name constants of def, once per type.
func (r *Resolver) identity(def *metadata.TypeDef) identity {
	name := def.FullName()
	if ident, ok := r.identities[name]; ok {
		return ident
	}

	ident := identity{display: def.Name}
	if def.IsEnum {
		// enum members are literal fields too; none of them is an identity constant
		r.identities[name] = ident
		return ident
	}

	if f, ok := def.Field(r.conv.IDField); ok && f.Constant != nil {
		_, v, nonNegative, err := f.Constant.Integer()

		switch {
		case err != nil:
			r.diags.AddWarning(diagnostic.CodeIdentityKind,
				fmt.Sprintf("id constant of kind %s ignored", f.Constant.Type), name, f.Name)
		case !nonNegative || !common.IsInRange(0, v, math.MaxUint16):
			r.diags.AddWarning(diagnostic.CodeIdentityRange,
				"id constant out of uint16 range ignored", name, f.Name)
		default:
			ident.id = uint16(v)
		}
	}

	if f, ok := def.Field(r.conv.NameField); ok && f.Constant != nil {
		if f.Constant.Type != metadata.ElementString {
			r.diags.AddWarning(diagnostic.CodeIdentityKind,
				fmt.Sprintf("name constant of kind %s ignored", f.Constant.Type), name, f.Name)
		} else if v, err := f.Constant.Interpret(metadata.ElementString); err == nil {
			ident.display = v.(string)
		}
	}

	r.identities[name] = ident

	return ident
}

func (r *Resolver) nestedDescriptors(def *metadata.TypeDef, t *schema.Type) error {
	slots := []struct {
		name string
		dst  **schema.NestedDescriptor
	}{
		{r.conv.ArgumentType, &t.CArg},
		{r.conv.ReturnType, &t.CRet},
		{r.conv.ExtendedReturnType, &t.CRetExt},
	}

	for _, s := range slots {
		nested := def.Nested(s.name)
		if nested == nil {
			continue
		}

		fields, err := r.classifyAll(nested.Properties, true)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}

		if len(fields) == 0 {
			continue
		}

		d := &schema.NestedDescriptor{Fields: fields}
		if nested.HasBase() {
			d.BaseType = nested.BaseType.FullName()
		}

		*s.dst = d
	}

	return nil
}

func (r *Resolver) classifyAll(props []metadata.PropertyDef, payload bool) ([]schema.Field, error) {
	var fields []schema.Field

	for _, p := range props {
		if payload && !r.conv.IsPayload(p.Name) {
			continue
		}

		f, err := Classify(r, p)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}

		fields = append(fields, f)
	}

	return fields, nil
}

// enumField builds the pseudo-field listing the members of an enum.
func (r *Resolver) enumField(def *metadata.TypeDef) schema.Field {
	var members []schema.EnumMember

	for _, f := range def.Fields {
		if f.Constant == nil {
			continue
		}

		text, _, _, err := f.Constant.Integer()
		if err != nil {
			r.diags.AddWarning(diagnostic.CodeEnumConstantKind,
				fmt.Sprintf("member constant of kind %s skipped", f.Constant.Type), def.FullName(), f.Name)

			continue
		}

		members = append(members, schema.EnumMember{Key: f.Name, Value: text})
	}

	return schema.NewEnumField(EnumLabelPrefix+def.EnumUnderlying.CorLibName(), members)
}
