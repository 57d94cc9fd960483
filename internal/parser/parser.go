// Package parser turns token-tree streams into the declaration model. It is
// the recoverable path for arbitrary input: every malformed construct comes
// back as an error with its source position.
package parser

import (
	"fmt"

	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/token"
)

// Parse reads every top-level declaration in the stream.
func Parse(stream token.Stream) ([]decl.Declaration, error) {
	p := &parser{trees: stream}
	var decls []decl.Declaration
	for p.cur() != nil {
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// ParseOne reads a single declaration and rejects trailing tokens.
func ParseOne(stream token.Stream) (decl.Declaration, error) {
	p := &parser{trees: stream}
	d, err := p.parseDeclaration()
	if err != nil {
		return nil, err
	}
	if rest := p.cur(); rest != nil {
		return nil, p.errf(rest.Span(), "unexpected tokens after declaration")
	}
	return d, nil
}

// ParseSource tokenizes src and parses every declaration in it.
func ParseSource(src string) ([]decl.Declaration, error) {
	stream, err := token.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return Parse(stream)
}

type parser struct {
	trees token.Stream
	pos   int
}

func (p *parser) cur() token.Tree {
	if p.pos < len(p.trees) {
		return p.trees[p.pos]
	}
	return nil
}

func (p *parser) peek() token.Tree {
	if p.pos+1 < len(p.trees) {
		return p.trees[p.pos+1]
	}
	return nil
}

func (p *parser) advance() {
	p.pos++
}

func (p *parser) curSpan() token.Span {
	if t := p.cur(); t != nil {
		return t.Span()
	}
	if len(p.trees) > 0 {
		return p.trees[len(p.trees)-1].Span()
	}
	return token.Span{}
}

func (p *parser) curPunct(ch rune) (token.Punct, bool) {
	punct, ok := p.cur().(token.Punct)
	if !ok || punct.Ch != ch {
		return token.Punct{}, false
	}
	return punct, true
}

func (p *parser) curIdent() (token.Ident, bool) {
	ident, ok := p.cur().(token.Ident)
	return ident, ok
}

func (p *parser) curKeyword(name string) bool {
	ident, ok := p.curIdent()
	return ok && ident.Name == name
}

func (p *parser) expectIdent() (token.Ident, error) {
	ident, ok := p.curIdent()
	if !ok {
		return token.Ident{}, p.errf(p.curSpan(), "expected identifier")
	}
	p.advance()
	return ident, nil
}

func (p *parser) expectPunct(ch rune) (token.Punct, error) {
	punct, ok := p.curPunct(ch)
	if !ok {
		return token.Punct{}, p.errf(p.curSpan(), "expected %q", ch)
	}
	p.advance()
	return punct, nil
}

func (p *parser) errf(pos token.Span, format string, args ...any) error {
	return fmt.Errorf("%d:%d: %s", pos.Line, pos.Column, fmt.Sprintf(format, args...))
}

func (p *parser) parseDeclaration() (decl.Declaration, error) {
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	vis := p.parseVisibility()

	ident, ok := p.curIdent()
	if !ok {
		return nil, p.errf(p.curSpan(), "expected declaration keyword")
	}
	switch ident.Name {
	case "struct":
		return p.parseStruct(attrs, vis)
	case "enum":
		return p.parseEnum(attrs, vis)
	case "union":
		return p.parseUnion(attrs, vis)
	default:
		return p.parseFunction(attrs, vis)
	}
}

// parseAttributes reads leading #[...] attributes.
func (p *parser) parseAttributes() ([]decl.Attribute, error) {
	var attrs []decl.Attribute
	for {
		pound, ok := p.curPunct('#')
		if !ok {
			return attrs, nil
		}
		group, ok := p.peek().(token.Group)
		if !ok || group.Delim != token.Bracket {
			return nil, p.errf(pound.Pos, "expected [...] after #")
		}
		p.advance()
		p.advance()
		attrs = append(attrs, decl.Attribute{
			PoundPos: pound.Pos,
			Body:     token.NewGroupSpan(group),
			Tokens:   group.Trees,
		})
	}
}

// parseVisibility reads an optional pub marker, with or without a restriction
// group like pub(crate).
func (p *parser) parseVisibility() decl.VisMarker {
	ident, ok := p.curIdent()
	if !ok || ident.Name != "pub" {
		return decl.VisMarker{}
	}
	p.advance()
	tokens := token.Stream{ident}
	if group, ok := p.cur().(token.Group); ok && group.Delim == token.Paren {
		p.advance()
		tokens = append(tokens, group)
	}
	return decl.VisMarker{Tokens: tokens}
}

func (p *parser) parseStruct(attrs []decl.Attribute, vis decl.VisMarker) (decl.Declaration, error) {
	p.advance() // struct
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseOptionalGenericParams()
	if err != nil {
		return nil, err
	}

	s := &decl.Struct{Attrs: attrs, Vis: vis, Ident: name, Generics: generics}

	if group, ok := p.cur().(token.Group); ok && group.Delim == token.Paren {
		p.advance()
		fields, err := p.parseTupleFields(group)
		if err != nil {
			return nil, err
		}
		s.Fields = decl.Tuple(fields)
		s.Where, err = p.parseOptionalWhereClause()
		if err != nil {
			return nil, err
		}
		semi, err := p.expectPunct(';')
		if err != nil {
			return nil, err
		}
		s.Semi = &semi
		return s, nil
	}

	s.Where, err = p.parseOptionalWhereClause()
	if err != nil {
		return nil, err
	}

	if group, ok := p.cur().(token.Group); ok && group.Delim == token.Brace {
		p.advance()
		fields, err := p.parseNamedFields(group)
		if err != nil {
			return nil, err
		}
		s.Fields = decl.Named(fields)
		return s, nil
	}

	s.Fields = decl.Unit()
	semi, err := p.expectPunct(';')
	if err != nil {
		return nil, err
	}
	s.Semi = &semi
	return s, nil
}

func (p *parser) parseEnum(attrs []decl.Attribute, vis decl.VisMarker) (decl.Declaration, error) {
	p.advance() // enum
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseOptionalGenericParams()
	if err != nil {
		return nil, err
	}
	where, err := p.parseOptionalWhereClause()
	if err != nil {
		return nil, err
	}
	group, ok := p.cur().(token.Group)
	if !ok || group.Delim != token.Brace {
		return nil, p.errf(p.curSpan(), "expected {...} enum body")
	}
	p.advance()

	variants, err := p.parseEnumVariants(group)
	if err != nil {
		return nil, err
	}
	return &decl.Enum{
		Attrs:    attrs,
		Vis:      vis,
		Ident:    name,
		Generics: generics,
		Where:    where,
		Variants: variants,
	}, nil
}

func (p *parser) parseUnion(attrs []decl.Attribute, vis decl.VisMarker) (decl.Declaration, error) {
	p.advance() // union
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseOptionalGenericParams()
	if err != nil {
		return nil, err
	}
	where, err := p.parseOptionalWhereClause()
	if err != nil {
		return nil, err
	}
	group, ok := p.cur().(token.Group)
	if !ok || group.Delim != token.Brace {
		return nil, p.errf(p.curSpan(), "expected {...} union body")
	}
	p.advance()

	fields, err := p.parseNamedFields(group)
	if err != nil {
		return nil, err
	}
	return &decl.Union{
		Attrs:    attrs,
		Vis:      vis,
		Ident:    name,
		Generics: generics,
		Where:    where,
		Fields:   fields,
	}, nil
}
