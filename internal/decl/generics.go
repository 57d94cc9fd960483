package decl

import (
	"iter"

	"github.com/seitarof/gen-derive/internal/token"
)

// GenericBound is the bound part of a generic parameter or where-clause item:
// the colon and everything after it.
type GenericBound struct {
	Colon  token.Punct
	Tokens token.Stream
}

func newBound(tokens token.Stream) *GenericBound {
	return &GenericBound{Colon: token.NewPunct(':', false), Tokens: tokens}
}

// GenericParam is one generic parameter. The prefix marker determines its
// class: absent means type, a quote punct means lifetime, a const keyword
// means const. The three classes are mutually exclusive.
type GenericParam struct {
	Prefix token.Tree
	Name   token.Ident
	Bound  *GenericBound
}

// Lifetime builds a lifetime parameter from a plain name.
func Lifetime(name string) GenericParam {
	return GenericParam{
		Prefix: token.NewPunct('\'', true),
		Name:   token.NewIdent(name),
	}
}

// BoundedLifetime builds a lifetime parameter with a bound.
func BoundedLifetime(name string, bound token.Stream) GenericParam {
	p := Lifetime(name)
	p.Bound = newBound(bound)
	return p
}

// Ty builds a type parameter from a plain name.
func Ty(name string) GenericParam {
	return GenericParam{Name: token.NewIdent(name)}
}

// BoundedTy builds a type parameter with a bound.
func BoundedTy(name string, bound token.Stream) GenericParam {
	p := Ty(name)
	p.Bound = newBound(bound)
	return p
}

// Const builds a const parameter from a name and its type tokens.
func Const(name string, ty token.Stream) GenericParam {
	return GenericParam{
		Prefix: token.NewIdent("const"),
		Name:   token.NewIdent(name),
		Bound:  newBound(ty),
	}
}

// IsLifetime reports whether the parameter is a lifetime parameter.
func (p GenericParam) IsLifetime() bool {
	punct, ok := p.Prefix.(token.Punct)
	return ok && punct.Ch == '\''
}

// IsTy reports whether the parameter is a type parameter.
func (p GenericParam) IsTy() bool {
	return p.Prefix == nil
}

// IsConst reports whether the parameter is a const parameter.
func (p GenericParam) IsConst() bool {
	ident, ok := p.Prefix.(token.Ident)
	return ok && ident.Name == "const"
}

// Tokens re-emits the parameter with its prefix and bound.
func (p GenericParam) Tokens() token.Stream {
	var out token.Stream
	if p.Prefix != nil {
		out = append(out, p.Prefix)
	}
	out = append(out, p.Name)
	if p.Bound != nil {
		out = append(out, p.Bound.Colon)
		out = append(out, p.Bound.Tokens...)
	}
	return out
}

// GenericParams is an ordered generic parameter list. The builder keeps
// lifetime parameters ahead of all others.
type GenericParams struct {
	Open   token.Punct
	Close  token.Punct
	Params []GenericParam
}

// NewGenericParams builds a parameter list with synthetic angle brackets.
func NewGenericParams(params ...GenericParam) GenericParams {
	return GenericParams{
		Open:   token.NewPunct('<', false),
		Close:  token.NewPunct('>', false),
		Params: params,
	}
}

// WithParam returns a copy with the parameter added: lifetimes are inserted
// at the front, everything else is appended.
func (g GenericParams) WithParam(p GenericParam) GenericParams {
	params := make([]GenericParam, 0, len(g.Params)+1)
	if p.IsLifetime() {
		params = append(params, p)
		params = append(params, g.Params...)
	} else {
		params = append(params, g.Params...)
		params = append(params, p)
	}
	g.Params = params
	return g
}

// Tokens re-emits the full parameter list including bounds.
func (g GenericParams) Tokens() token.Stream {
	out := token.Stream{g.Open}
	for i, p := range g.Params {
		if i > 0 {
			out = append(out, token.NewPunct(',', false))
		}
		out = append(out, p.Tokens()...)
	}
	return append(out, g.Close)
}

func (g GenericParams) String() string {
	return g.Tokens().String()
}

// InlineArgs returns the argument-list view of the parameters.
func (g *GenericParams) InlineArgs() InlineGenericArgs {
	return InlineGenericArgs{Params: g}
}

// InlineGenericArgs re-emits a parameter list as a generic-argument list:
// parameter names keep their lifetime markers but lose bounds and const
// keywords, so <T: Debug, 'a> becomes <T, 'a>.
type InlineGenericArgs struct {
	Params *GenericParams
}

// Tokens renders the argument list.
func (a InlineGenericArgs) Tokens() token.Stream {
	out := token.Stream{a.Params.Open}
	for i, p := range a.Params.Params {
		if i > 0 {
			out = append(out, token.NewPunct(',', false))
		}
		if p.IsLifetime() {
			out = append(out, p.Prefix)
		}
		out = append(out, p.Name)
	}
	return append(out, a.Params.Close)
}

func (a InlineGenericArgs) String() string {
	return a.Tokens().String()
}

// filterParams yields the parameters of g matching keep, in order. A nil g
// yields nothing. The sequence is restartable.
func filterParams(g *GenericParams, keep func(GenericParam) bool) iter.Seq[GenericParam] {
	return func(yield func(GenericParam) bool) {
		if g == nil {
			return
		}
		for _, p := range g.Params {
			if !keep(p) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
