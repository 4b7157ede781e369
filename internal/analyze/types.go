package analyze

import (
	"fmt"
	"go/constant"
	"go/types"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"rpc-dumper/internal/metadata"
)

// Diagnostic codes.
const (
	CodeUnsupportedType = "unsupported_type"
	CodeExtraEmbedded   = "extra_embedded"
	CodeConstant        = "constant"
)

const (
	systemNamespace      = "System"
	collectionsNamespace = "System.Collections.Generic"
)

var objectSig = metadata.Sig(systemNamespace, "Object")

// Namespace returns the namespace of a Go package: its name with the first
// letter upper-cased.
func Namespace(pkgName string) string {
	r, size := utf8.DecodeRuneInString(pkgName)
	if r == utf8.RuneError {
		return pkgName
	}

	return string(unicode.ToUpper(r)) + pkgName[size:]
}

// genericName appends the arity suffix to generic definition names.
func genericName(name string, arity int) string {
	if arity == 0 {
		return name
	}

	return name + "`" + strconv.Itoa(arity)
}

// elementFor maps a basic kind to its primitive element type.
func elementFor(kind types.BasicKind) (metadata.ElementType, bool) {
	switch kind {
	case types.Bool, types.UntypedBool:
		return metadata.ElementBoolean, true
	case types.Int8:
		return metadata.ElementI1, true
	case types.Uint8:
		return metadata.ElementU1, true
	case types.Int16:
		return metadata.ElementI2, true
	case types.Uint16:
		return metadata.ElementU2, true
	case types.Int32, types.UntypedRune:
		return metadata.ElementI4, true
	case types.Uint32:
		return metadata.ElementU4, true
	case types.Int, types.Int64, types.UntypedInt:
		return metadata.ElementI8, true
	case types.Uint, types.Uint64, types.Uintptr:
		return metadata.ElementU8, true
	case types.Float32:
		return metadata.ElementR4, true
	case types.Float64, types.UntypedFloat:
		return metadata.ElementR8, true
	case types.String, types.UntypedString:
		return metadata.ElementString, true
	default:
		return 0, false
	}
}

func corlibSig(e metadata.ElementType) metadata.TypeSig {
	return metadata.Sig(systemNamespace, strings.TrimPrefix(e.CorLibName(), systemNamespace+"."))
}

// integerUnderlying returns the element type of a named type whose
// underlying type is an integer.
func integerUnderlying(t types.Type) (metadata.ElementType, bool) {
	b, ok := t.Underlying().(*types.Basic)
	if !ok || b.Info()&types.IsInteger == 0 {
		return 0, false
	}

	e, ok := elementFor(b.Kind())
	if !ok || !e.IsInteger() {
		return 0, false
	}

	return e, true
}

// constantFor converts a Go constant into its element type and blob.
func constantFor(c *types.Const) (*metadata.Constant, error) {
	b, ok := c.Type().Underlying().(*types.Basic)
	if !ok {
		return nil, fmt.Errorf("constant %s of type %s", c.Name(), c.Type())
	}

	kind, ok := elementFor(b.Kind())
	if !ok {
		return nil, fmt.Errorf("constant %s of unsupported kind %s", c.Name(), b)
	}

	v := c.Val()

	switch {
	case kind == metadata.ElementString:
		return metadata.NewConstant(kind, constant.StringVal(v))
	case kind == metadata.ElementBoolean:
		return metadata.NewConstant(kind, constant.BoolVal(v))
	case kind == metadata.ElementR4 || kind == metadata.ElementR8:
		f, _ := constant.Float64Val(v)
		return metadata.NewConstant(kind, f)
	case constant.Sign(v) < 0:
		i, _ := constant.Int64Val(v)
		return metadata.NewConstant(kind, i)
	default:
		u, _ := constant.Uint64Val(v)
		return metadata.NewConstant(kind, u)
	}
}

// typeSig converts a Go type into a metadata signature. path locates the
// type for diagnostics.
func (a *Analyzer) typeSig(t types.Type, path *TypePath) metadata.TypeSig {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		if e, ok := elementFor(tt.Kind()); ok {
			return corlibSig(e)
		}

	case *types.Pointer:
		return a.typeSig(tt.Elem(), path)

	case *types.Slice:
		return a.listSig(tt.Elem(), path)

	case *types.Array:
		return a.listSig(tt.Elem(), path)

	case *types.Map:
		return metadata.Generic(collectionsNamespace, "Dictionary`2",
			a.typeSig(tt.Key(), path.Field("key")),
			a.typeSig(tt.Elem(), path.Elem()))

	case *types.TypeParam:
		return metadata.TypeSig{Name: tt.Obj().Name(), GenericParam: true}

	case *types.Interface:
		if tt.Empty() {
			return objectSig
		}

	case *types.Named:
		return a.namedSig(tt, path)
	}

	a.diags.AddWarning(CodeUnsupportedType,
		fmt.Sprintf("type %s mapped to %s", t, objectSig), path.parts[0], path.String())

	return objectSig
}

func (a *Analyzer) listSig(elem types.Type, path *TypePath) metadata.TypeSig {
	return metadata.Generic(collectionsNamespace, "List`1", a.typeSig(elem, path.Elem()))
}

// namedSig converts a defined type. Types that are neither structs,
// interfaces nor enums are transparent: their underlying type is used.
func (a *Analyzer) namedSig(n *types.Named, path *TypePath) metadata.TypeSig {
	obj := n.Obj()
	pkg := obj.Pkg()

	if pkg == nil {
		// predeclared: error, comparable
		return objectSig
	}

	if !a.isDefinition(n) {
		if _, ok := a.expanding[n]; ok {
			return objectSig
		}

		a.expanding[n] = struct{}{}
		defer delete(a.expanding, n)

		return a.typeSig(n.Underlying(), path)
	}

	sig := metadata.TypeSig{
		Namespace: Namespace(pkg.Name()),
		Name:      genericName(obj.Name(), n.Origin().TypeParams().Len()),
	}

	if p, ok := a.packages[pkg.Path()]; ok {
		if nested, ok := p.nestedNames[obj.Name()]; ok {
			sig.Name = nested
		}
	} else {
		a.reference(sig)
	}

	args := n.TypeArgs()
	for i := range args.Len() {
		sig.Args = append(sig.Args, a.typeSig(args.At(i), path.Field(sig.Name)))
	}

	return sig
}

// isDefinition reports whether a defined type becomes a type definition of
// the universe.
func (a *Analyzer) isDefinition(n *types.Named) bool {
	switch n.Underlying().(type) {
	case *types.Struct, *types.Interface:
		return true
	}

	if p, ok := a.packages[n.Obj().Pkg().Path()]; ok {
		return p.isDefinition(n.Obj())
	}

	return false
}

// reference records a resolvable stub for a type of an unloaded package.
func (a *Analyzer) reference(sig metadata.TypeSig) {
	name := sig.DefinitionName()
	if _, ok := a.refs[name]; ok {
		return
	}

	a.refs[name] = &metadata.TypeDef{Namespace: sig.Namespace, Name: sig.Name}
	a.refOrder = append(a.refOrder, name)
}
