package parser

import (
	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/token"
)

// parseOptionalGenericParams reads a <...> parameter list when one is
// present. Each parameter is classified by its prefix marker: a quote punct
// for lifetimes, the const keyword for const parameters, nothing for type
// parameters.
func (p *parser) parseOptionalGenericParams() (*decl.GenericParams, error) {
	open, ok := p.curPunct('<')
	if !ok {
		return nil, nil
	}
	p.advance()

	params := decl.GenericParams{Open: open}
	for {
		if close, ok := p.curPunct('>'); ok {
			p.advance()
			params.Close = close
			return &params, nil
		}

		param, err := p.parseGenericParam()
		if err != nil {
			return nil, err
		}
		params.Params = append(params.Params, param)

		if _, ok := p.curPunct(','); ok {
			p.advance()
			continue
		}
		close, err := p.expectPunct('>')
		if err != nil {
			return nil, err
		}
		params.Close = close
		return &params, nil
	}
}

func (p *parser) parseGenericParam() (decl.GenericParam, error) {
	var param decl.GenericParam

	switch {
	case isQuote(p.cur()):
		param.Prefix = p.cur()
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return decl.GenericParam{}, err
		}
		param.Name = name
	case p.curKeyword("const"):
		param.Prefix = p.cur()
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return decl.GenericParam{}, err
		}
		param.Name = name
		// const parameters always declare a type
		if _, ok := p.curPunct(':'); !ok {
			return decl.GenericParam{}, p.errf(p.curSpan(), "expected ':' and type after const parameter name")
		}
	default:
		name, err := p.expectIdent()
		if err != nil {
			return decl.GenericParam{}, err
		}
		param.Name = name
	}

	if colon, ok := p.curPunct(':'); ok {
		p.advance()
		tokens, err := p.collectBoundTokens()
		if err != nil {
			return decl.GenericParam{}, err
		}
		param.Bound = &decl.GenericBound{Colon: colon, Tokens: tokens}
	}
	return param, nil
}

// collectBoundTokens gathers bound tokens up to a top-level comma or the
// closing angle bracket of the parameter list.
func (p *parser) collectBoundTokens() (token.Stream, error) {
	var tokens token.Stream
	depth := 0
	for {
		tree := p.cur()
		if tree == nil {
			return nil, p.errf(p.curSpan(), "unterminated generic bound")
		}
		if punct, ok := tree.(token.Punct); ok {
			switch punct.Ch {
			case '<':
				depth++
			case '>':
				if isArrowHead(tokens) {
					break
				}
				if depth == 0 {
					return tokens, nil
				}
				depth--
			case ',':
				if depth == 0 {
					return tokens, nil
				}
			}
		}
		tokens = append(tokens, tree)
		p.advance()
	}
}

// isArrowHead reports whether the previous collected token was the dash of a
// -> arrow, so the following '>' is not a closing bracket.
func isArrowHead(tokens token.Stream) bool {
	if len(tokens) == 0 {
		return false
	}
	punct, ok := tokens[len(tokens)-1].(token.Punct)
	return ok && punct.Ch == '-' && punct.Joint
}

func isQuote(tree token.Tree) bool {
	punct, ok := tree.(token.Punct)
	return ok && punct.Ch == '\''
}

// parseOptionalWhereClause reads a where clause when the where keyword is
// present. Items end at a top-level comma; the clause ends at the body group
// or terminating semicolon.
func (p *parser) parseOptionalWhereClause() (*decl.WhereClause, error) {
	keyword, ok := p.curIdent()
	if !ok || keyword.Name != "where" {
		return nil, nil
	}
	p.advance()

	clause := decl.WhereClause{Keyword: keyword}
	for !p.atClauseEnd() {
		left, colon, err := p.collectWhereLeftSide()
		if err != nil {
			return nil, err
		}
		bound, err := p.collectWhereBound()
		if err != nil {
			return nil, err
		}
		clause.Items = append(clause.Items, decl.WhereClauseItem{
			LeftSide: left,
			Bound:    decl.GenericBound{Colon: colon, Tokens: bound},
		})

		if _, ok := p.curPunct(','); ok {
			p.advance()
			continue
		}
		break
	}
	return &clause, nil
}

func (p *parser) atClauseEnd() bool {
	switch tree := p.cur().(type) {
	case nil:
		return true
	case token.Group:
		return tree.Delim == token.Brace
	case token.Punct:
		return tree.Ch == ';'
	default:
		return false
	}
}

// collectWhereLeftSide gathers tokens up to the first top-level colon,
// skipping :: path separators and angle-bracketed regions.
func (p *parser) collectWhereLeftSide() (token.Stream, token.Punct, error) {
	var tokens token.Stream
	depth := 0
	for {
		tree := p.cur()
		if tree == nil {
			return nil, token.Punct{}, p.errf(p.curSpan(), "expected ':' in where-clause item")
		}
		if punct, ok := tree.(token.Punct); ok {
			switch punct.Ch {
			case '<':
				depth++
			case '>':
				if !isArrowHead(tokens) {
					depth--
				}
			case ':':
				if punct.Joint && isPathSeparatorNext(p.peek()) {
					tokens = append(tokens, tree, p.peek())
					p.advance()
					p.advance()
					continue
				}
				if depth == 0 {
					p.advance()
					if len(tokens) == 0 {
						return nil, token.Punct{}, p.errf(punct.Pos, "where-clause item has empty left-hand side")
					}
					return tokens, punct, nil
				}
			}
		}
		tokens = append(tokens, tree)
		p.advance()
	}
}

func isPathSeparatorNext(tree token.Tree) bool {
	punct, ok := tree.(token.Punct)
	return ok && punct.Ch == ':'
}

// collectWhereBound gathers bound tokens up to a top-level comma or the end
// of the clause.
func (p *parser) collectWhereBound() (token.Stream, error) {
	var tokens token.Stream
	depth := 0
	for {
		if p.atClauseEnd() {
			if len(tokens) == 0 {
				return nil, p.errf(p.curSpan(), "where-clause item has empty bound")
			}
			return tokens, nil
		}
		tree := p.cur()
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
						return nil, p.errf(punct.Pos, "where-clause item has empty bound")
					}
					return tokens, nil
				}
			}
		}
		tokens = append(tokens, tree)
		p.advance()
	}
}
