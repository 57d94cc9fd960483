package parser

import (
	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/token"
)

// parseNamedFields reads the contents of a braced field group.
func (p *parser) parseNamedFields(group token.Group) (decl.NamedFields, error) {
	body := &parser{trees: group.Trees}
	fields := decl.NamedFields{Group: token.NewGroupSpan(group)}

	for body.cur() != nil {
		attrs, err := body.parseAttributes()
		if err != nil {
			return decl.NamedFields{}, err
		}
		vis := body.parseVisibility()
		name, err := body.expectIdent()
		if err != nil {
			return decl.NamedFields{}, err
		}
		if _, err := body.expectPunct(':'); err != nil {
			return decl.NamedFields{}, err
		}
		ty, err := body.collectTypeTokens()
		if err != nil {
			return decl.NamedFields{}, err
		}
		fields.Fields = append(fields.Fields, decl.NamedField{
			Attributes: attrs,
			Vis:        vis,
			Name:       name,
			Ty:         decl.TyExpr{Tokens: ty},
		})
		if _, ok := body.curPunct(','); ok {
			body.advance()
		}
	}
	return fields, nil
}

// parseTupleFields reads the contents of a parenthesized field group.
func (p *parser) parseTupleFields(group token.Group) (decl.TupleFields, error) {
	body := &parser{trees: group.Trees}
	fields := decl.TupleFields{Group: token.NewGroupSpan(group)}

	for body.cur() != nil {
		attrs, err := body.parseAttributes()
		if err != nil {
			return decl.TupleFields{}, err
		}
		vis := body.parseVisibility()
		ty, err := body.collectTypeTokens()
		if err != nil {
			return decl.TupleFields{}, err
		}
		fields.Fields = append(fields.Fields, decl.TupleField{
			Attributes: attrs,
			Vis:        vis,
			Ty:         decl.TyExpr{Tokens: ty},
		})
		if _, ok := body.curPunct(','); ok {
			body.advance()
		}
	}
	return fields, nil
}

// parseEnumVariants reads the contents of a braced enum body.
func (p *parser) parseEnumVariants(group token.Group) ([]decl.EnumVariant, error) {
	body := &parser{trees: group.Trees}
	var variants []decl.EnumVariant

	for body.cur() != nil {
		attrs, err := body.parseAttributes()
		if err != nil {
			return nil, err
		}
		name, err := body.expectIdent()
		if err != nil {
			return nil, err
		}

		variant := decl.EnumVariant{Attrs: attrs, Name: name, Contents: decl.Unit()}

		if inner, ok := body.cur().(token.Group); ok {
			body.advance()
			switch inner.Delim {
			case token.Paren:
				fields, err := body.parseTupleFields(inner)
				if err != nil {
					return nil, err
				}
				variant.Contents = decl.Tuple(fields)
			case token.Brace:
				fields, err := body.parseNamedFields(inner)
				if err != nil {
					return nil, err
				}
				variant.Contents = decl.Named(fields)
			default:
				return nil, body.errf(inner.Pos, "unexpected [...] in enum variant")
			}
		}

		if equal, ok := body.curPunct('='); ok {
			body.advance()
			tokens, err := body.collectTypeTokens()
			if err != nil {
				return nil, err
			}
			variant.Discriminant = &decl.EnumDiscriminant{Equal: equal, Tokens: tokens}
		}

		variants = append(variants, variant)
		if _, ok := body.curPunct(','); ok {
			body.advance()
		}
	}
	return variants, nil
}

// collectTypeTokens gathers a type-expression token run up to a top-level
// comma or the end of the enclosing group.
func (p *parser) collectTypeTokens() (token.Stream, error) {
	var tokens token.Stream
	depth := 0
	for {
		tree := p.cur()
		if tree == nil {
			if len(tokens) == 0 {
				return nil, p.errf(p.curSpan(), "expected type expression")
			}
			return tokens, nil
		}
		if punct, ok := tree.(token.Punct); ok {
			switch punct.Ch {
			case '<':
				depth++
			case '>':
				if !isArrowHead(tokens) {
					depth--
				}
			case ',':
				if depth == 0 {
					if len(tokens) == 0 {
						return nil, p.errf(punct.Pos, "expected type expression")
					}
					return tokens, nil
				}
			}
		}
		tokens = append(tokens, tree)
		p.advance()
	}
}
