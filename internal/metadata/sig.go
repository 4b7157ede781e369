package metadata

import (
	"fmt"
	"strings"
)

// TypeSig references a type. A sig with Args is a generic instantiation of
// the definition named Namespace.Name (which carries the arity suffix, e.g.
// "CPList`1"). A sig with GenericParam set names an unbound type parameter.
type TypeSig struct {
	Namespace    string
	Name         string
	Args         []TypeSig
	GenericParam bool
}

// Sig is shorthand for a non-generic TypeSig.
func Sig(namespace, name string) TypeSig {
	return TypeSig{Namespace: namespace, Name: name}
}

// Generic returns the instantiation of the definition namespace.name with args.
func Generic(namespace, name string, args ...TypeSig) TypeSig {
	return TypeSig{Namespace: namespace, Name: name, Args: args}
}

// IsGenericInst reports whether the sig is a generic instantiation.
func (s TypeSig) IsGenericInst() bool {
	return len(s.Args) > 0
}

// DefinitionName returns the fully-qualified name of the referenced
// definition, without generic arguments.
func (s TypeSig) DefinitionName() string {
	if s.Namespace == "" {
		return s.Name
	}

	return s.Namespace + "." + s.Name
}

// FullName renders the sig the way it is keyed in the output,
// e.g. "Share.CPList`1<System.Int32>".
func (s TypeSig) FullName() string {
	if !s.IsGenericInst() {
		return s.DefinitionName()
	}

	var b strings.Builder
	b.WriteString(s.DefinitionName())
	b.WriteByte('<')

	for i, a := range s.Args {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(a.FullName())
	}

	b.WriteByte('>')

	return b.String()
}

// String returns FullName.
func (s TypeSig) String() string {
	return s.FullName()
}

// ParseTypeSig parses the FullName form back into a TypeSig. A leading "!"
// marks a generic parameter ("!T").
//
//	System.Int32
//	Share.CPList`1<System.Int32>
//	Share.CPDictionary`2<System.String, Share.CPList`1<Share.CItem>>
func ParseTypeSig(s string) (TypeSig, error) {
	p := sigParser{in: s}

	sig, err := p.parse()
	if err != nil {
		return TypeSig{}, err
	}

	p.skipSpace()

	if p.pos != len(p.in) {
		return TypeSig{}, fmt.Errorf("parse type %q: unexpected %q at offset %d", s, p.in[p.pos:], p.pos)
	}

	return sig, nil
}

type sigParser struct {
	in  string
	pos int
}

func (p *sigParser) skipSpace() {
	for p.pos < len(p.in) && p.in[p.pos] == ' ' {
		p.pos++
	}
}

func (p *sigParser) parse() (TypeSig, error) {
	p.skipSpace()

	var sig TypeSig

	if p.pos < len(p.in) && p.in[p.pos] == '!' {
		sig.GenericParam = true
		p.pos++
	}

	start := p.pos
	for p.pos < len(p.in) && !strings.ContainsRune("<>,", rune(p.in[p.pos])) {
		p.pos++
	}

	qualified := strings.TrimSpace(p.in[start:p.pos])
	if qualified == "" {
		return TypeSig{}, fmt.Errorf("parse type %q: empty name at offset %d", p.in, start)
	}

	if i := strings.LastIndexByte(qualified, '.'); i >= 0 && !sig.GenericParam {
		sig.Namespace, sig.Name = qualified[:i], qualified[i+1:]
	} else {
		sig.Name = qualified
	}

	if p.pos >= len(p.in) || p.in[p.pos] != '<' {
		return sig, nil
	}

	p.pos++

	for {
		arg, err := p.parse()
		if err != nil {
			return TypeSig{}, err
		}

		sig.Args = append(sig.Args, arg)

		p.skipSpace()

		if p.pos >= len(p.in) {
			return TypeSig{}, fmt.Errorf("parse type %q: unterminated argument list", p.in)
		}

		switch p.in[p.pos] {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return sig, nil
		default:
			return TypeSig{}, fmt.Errorf("parse type %q: unexpected %q at offset %d", p.in, p.in[p.pos], p.pos)
		}
	}
}
