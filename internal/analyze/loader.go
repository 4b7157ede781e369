package analyze

import (
	"cmp"
	"fmt"
	"go/types"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"rpc-dumper/internal/diagnostic"
	"rpc-dumper/internal/metadata"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

const enumValueField = "value__"

// Analyzer loads Go packages and builds a type universe.
type Analyzer struct {
	dir string

	packages map[string]*packageInfo
	// interfaces are the non-empty named interfaces of the loaded packages.
	interfaces []*types.TypeName
	expanding  map[*types.Named]struct{}

	refs     map[string]*metadata.TypeDef
	refOrder []string

	diags diagnostic.Diagnostics
}

// packageInfo holds the declarations of a loaded package, in declaration order.
type packageInfo struct {
	pkg       *packages.Package
	namespace string

	typeNames []*types.TypeName
	consts    []*types.Const

	// nestedNames maps Parent_Child to "Parent/Child".
	nestedNames map[string]string
	// enums maps enum type names to their member constants.
	enums map[string][]*types.Const
}

// NewAnalyzer creates a new Analyzer loading packages relative to dir;
// an empty dir means the working directory.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{
		dir:       dir,
		packages:  make(map[string]*packageInfo),
		expanding: make(map[*types.Named]struct{}),
		refs:      make(map[string]*metadata.TypeDef),
	}
}

// Diagnostics returns the warnings collected while building the universe.
func (a *Analyzer) Diagnostics() *diagnostic.Diagnostics {
	return &a.diags
}

// LoadPackages loads the specified packages and builds the universe.
// Patterns are standard Go package patterns (e.g., "./share", "rpc-dumper/share").
func (a *Analyzer) LoadPackages(patterns ...string) (*metadata.Universe, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}

	slices.SortFunc(pkgs, func(x, y *packages.Package) int {
		return cmp.Compare(x.PkgPath, y.PkgPath)
	})

	for _, pkg := range pkgs {
		a.packages[pkg.PkgPath] = a.scanPackage(pkg)
	}

	u := metadata.NewUniverse(strings.Join(patterns, " "))

	for _, pkg := range pkgs {
		if err := a.processPackage(u, a.packages[pkg.PkgPath]); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	for _, name := range a.refOrder {
		u.AddReference(a.refs[name])
	}

	return u, nil
}

// scanPackage collects the declarations of a package and classifies type
// names as nested or enum before any signature is built.
func (a *Analyzer) scanPackage(pkg *packages.Package) *packageInfo {
	p := &packageInfo{
		pkg:         pkg,
		namespace:   Namespace(pkg.Name),
		nestedNames: make(map[string]string),
		enums:       make(map[string][]*types.Const),
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			if obj.Exported() && !obj.IsAlias() {
				p.typeNames = append(p.typeNames, obj)
			}
		case *types.Const:
			p.consts = append(p.consts, obj)
		}
	}

	// scope names are sorted; declaration order is source order
	slices.SortFunc(p.typeNames, func(x, y *types.TypeName) int { return cmp.Compare(x.Pos(), y.Pos()) })
	slices.SortFunc(p.consts, func(x, y *types.Const) int { return cmp.Compare(x.Pos(), y.Pos()) })

	declared := make(map[string]*types.TypeName, len(p.typeNames))
	for _, tn := range p.typeNames {
		declared[tn.Name()] = tn
	}

	for _, c := range p.consts {
		named, ok := c.Type().(*types.Named)
		if !ok || declared[named.Obj().Name()] != named.Obj() {
			continue
		}

		if _, ok := integerUnderlying(named); ok {
			p.enums[named.Obj().Name()] = append(p.enums[named.Obj().Name()], c)
		}
	}

	for _, tn := range p.typeNames {
		if iface, ok := tn.Type().Underlying().(*types.Interface); ok && !iface.Empty() {
			a.interfaces = append(a.interfaces, tn)
		}

		i := strings.LastIndexByte(tn.Name(), '_')
		if i <= 0 {
			continue
		}

		if parent, ok := declared[tn.Name()[:i]]; ok && p.isDefinition(parent) {
			p.nestedNames[tn.Name()] = tn.Name()[:i] + "/" + tn.Name()[i+1:]
		}
	}

	return p
}

// processPackage converts the type definitions of a package and adds the
// top-level ones to u.
func (a *Analyzer) processPackage(u *metadata.Universe, p *packageInfo) error {
	defs := make(map[string]*metadata.TypeDef, len(p.typeNames))

	for _, tn := range p.typeNames {
		named, ok := tn.Type().(*types.Named)
		if !ok || !a.isDefinition(named) {
			continue
		}

		defs[tn.Name()] = a.analyzeNamedType(p, named)
	}

	a.attachConstants(p, defs)

	// nested types go to their parent in declaration order
	for _, tn := range p.typeNames {
		def, ok := defs[tn.Name()]
		if !ok {
			continue
		}

		nested, ok := p.nestedNames[tn.Name()]
		if !ok {
			continue
		}

		parent := defs[nested[:strings.IndexByte(nested, '/')]]
		def.DeclaringType = parent.FullName()
		parent.NestedTypes = append(parent.NestedTypes, def)
	}

	for _, tn := range p.typeNames {
		def, ok := defs[tn.Name()]
		if !ok || def.DeclaringType != "" {
			continue
		}

		if err := u.Add(def); err != nil {
			return err
		}
	}

	return nil
}

// isDefinition reports whether a type declared in the package becomes a
// type definition of the universe.
func (p *packageInfo) isDefinition(tn *types.TypeName) bool {
	switch tn.Type().Underlying().(type) {
	case *types.Struct, *types.Interface:
		return true
	}

	_, enum := p.enums[tn.Name()]

	return enum
}

// analyzeNamedType converts a struct, interface or enum type.
func (a *Analyzer) analyzeNamedType(p *packageInfo, named *types.Named) *metadata.TypeDef {
	obj := named.Obj()
	def := &metadata.TypeDef{
		Namespace: p.namespace,
		Name:      genericName(obj.Name(), named.TypeParams().Len()),
	}

	if nested, ok := p.nestedNames[obj.Name()]; ok {
		def.Name = nested[strings.IndexByte(nested, '/')+1:]
	}

	path := NewTypePath(obj.Name())

	if members, ok := p.enums[obj.Name()]; ok {
		a.analyzeEnum(def, named, members)
		return def
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return def
	}

	a.analyzeStructFields(st, def, path)

	if named.TypeParams().Len() == 0 {
		def.Interfaces = a.implemented(named)
	}

	return def
}

// analyzeStructFields maps exported fields to properties. The first
// embedded field is the base type; further embedded fields are dropped.
func (a *Analyzer) analyzeStructFields(st *types.Struct, def *metadata.TypeDef, path *TypePath) {
	for i := range st.NumFields() {
		field := st.Field(i)

		if field.Embedded() {
			if def.BaseType != nil {
				a.diags.AddWarning(CodeExtraEmbedded,
					fmt.Sprintf("embedded %s ignored, base type is %s", field.Type(), def.BaseType),
					path.parts[0], field.Name())

				continue
			}

			base := a.typeSig(field.Type(), path.Field(field.Name()))
			def.BaseType = &base

			continue
		}

		// Only exported fields are part of the wire shape
		if !field.Exported() {
			continue
		}

		def.Properties = append(def.Properties, metadata.PropertyDef{
			Name: field.Name(),
			Type: a.typeSig(field.Type(), path.Field(field.Name())),
		})
	}
}

// implemented lists the interfaces of the loaded packages that named
// implements and its embedded base does not.
func (a *Analyzer) implemented(named *types.Named) []metadata.TypeSig {
	var base types.Type

	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			if st.Field(i).Embedded() {
				base = st.Field(i).Type()
				break
			}
		}
	}

	var sigs []metadata.TypeSig

	for _, tn := range a.interfaces {
		iface := tn.Type().Underlying().(*types.Interface)
		if !implements(named, iface) {
			continue
		}

		if base != nil && implements(base, iface) {
			continue
		}

		sigs = append(sigs, a.typeSig(tn.Type(), NewTypePath(tn.Name())))
	}

	return sigs
}

func implements(t types.Type, iface *types.Interface) bool {
	if _, ok := t.(*types.Pointer); !ok {
		if types.Implements(types.NewPointer(t), iface) {
			return true
		}
	}

	return types.Implements(t, iface)
}

// analyzeEnum records the underlying type and member constants of an enum.
func (a *Analyzer) analyzeEnum(def *metadata.TypeDef, named *types.Named, members []*types.Const) {
	kind, _ := integerUnderlying(named)

	base := metadata.Sig(systemNamespace, "Enum")
	def.IsEnum = true
	def.EnumUnderlying = kind
	def.BaseType = &base
	def.Fields = append(def.Fields, metadata.FieldDef{Name: enumValueField, Type: corlibSig(kind)})

	for _, c := range members {
		value, err := constantFor(c)
		if err != nil {
			a.diags.AddWarning(CodeConstant, err.Error(), named.Obj().Name(), c.Name())
			continue
		}

		def.Fields = append(def.Fields, metadata.FieldDef{
			Name:     memberName(named.Obj().Name(), c.Name()),
			Type:     def.Sig(),
			Constant: value,
		})
	}
}

// memberName strips the enum type name from a member constant:
// EQualityRare and EQuality_Rare both become Rare.
func memberName(enum, name string) string {
	rest, ok := strings.CutPrefix(name, enum)
	if !ok {
		return name
	}

	rest = strings.TrimPrefix(rest, "_")
	if rest == "" {
		return name
	}

	return rest
}

// attachConstants turns constants named Type_X into literal fields X of
// Type. Enum members are already attached.
func (a *Analyzer) attachConstants(p *packageInfo, defs map[string]*metadata.TypeDef) {
	for _, c := range p.consts {
		i := strings.LastIndexByte(c.Name(), '_')
		if i <= 0 || i == len(c.Name())-1 {
			continue
		}

		def, ok := defs[c.Name()[:i]]
		if !ok || def.IsEnum {
			continue
		}

		value, err := constantFor(c)
		if err != nil {
			a.diags.AddWarning(CodeConstant, err.Error(), c.Name()[:i], c.Name())
			continue
		}

		def.Fields = append(def.Fields, metadata.FieldDef{
			Name:     c.Name()[i+1:],
			Type:     a.typeSig(types.Default(c.Type()), NewTypePath(c.Name())),
			Constant: value,
		})
	}
}
