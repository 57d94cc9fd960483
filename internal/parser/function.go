package parser

import (
	"slices"

	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/token"
)

var fnQualifiers = []string{"const", "async", "unsafe", "extern"}

// parseFunction reads a callable declaration: optional qualifiers, the fn
// keyword, signature and body (or trailing semicolon for a bare signature).
func (p *parser) parseFunction(attrs []decl.Attribute, vis decl.VisMarker) (decl.Declaration, error) {
	var qualifiers token.Stream
	for {
		ident, ok := p.curIdent()
		if ok && ident.Name == "fn" {
			break
		}
		if ok && slices.Contains(fnQualifiers, ident.Name) {
			qualifiers = append(qualifiers, ident)
			p.advance()
			// extern may carry an ABI string
			if ident.Name == "extern" {
				if lit, ok := p.cur().(token.Literal); ok {
					qualifiers = append(qualifiers, lit)
					p.advance()
				}
			}
			continue
		}
		return nil, p.errf(p.curSpan(), "expected declaration keyword")
	}
	p.advance() // fn

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseOptionalGenericParams()
	if err != nil {
		return nil, err
	}

	group, ok := p.cur().(token.Group)
	if !ok || group.Delim != token.Paren {
		return nil, p.errf(p.curSpan(), "expected (...) parameter list")
	}
	p.advance()
	params, err := p.parseFnParams(group)
	if err != nil {
		return nil, err
	}

	fn := &decl.Function{
		Attrs:      attrs,
		Vis:        vis,
		Qualifiers: qualifiers,
		Ident:      name,
		Generics:   generics,
		Params:     params,
	}

	if dash, ok := p.curPunct('-'); ok && dash.Joint {
		p.advance()
		if _, err := p.expectPunct('>'); err != nil {
			return nil, err
		}
		tokens, err := p.collectReturnTypeTokens()
		if err != nil {
			return nil, err
		}
		fn.Return = &decl.TyExpr{Tokens: tokens}
	}

	fn.Where, err = p.parseOptionalWhereClause()
	if err != nil {
		return nil, err
	}

	if body, ok := p.cur().(token.Group); ok && body.Delim == token.Brace {
		p.advance()
		fn.Body = &body
		return fn, nil
	}
	if _, err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return fn, nil
}

// parseFnParams splits the parameter group on top-level commas. A run with a
// top-level colon is a named parameter; a run without one is a receiver like
// self or &mut self.
func (p *parser) parseFnParams(group token.Group) ([]decl.FnParam, error) {
	body := &parser{trees: group.Trees}
	var params []decl.FnParam

	for body.cur() != nil {
		attrs, err := body.parseAttributes()
		if err != nil {
			return nil, err
		}

		run, colon := body.collectParamRun()
		if len(run) == 0 {
			return nil, body.errf(body.curSpan(), "expected function parameter")
		}

		param := decl.FnParam{Attrs: attrs}
		if colon >= 0 {
			name, ok := lastIdent(run[:colon])
			if !ok {
				return nil, body.errf(run[0].Span(), "expected parameter name")
			}
			param.Name = name
			param.Ty = decl.TyExpr{Tokens: run[colon+1:]}
		} else {
			name, ok := lastIdent(run)
			if !ok || name.Name != "self" {
				return nil, body.errf(run[0].Span(), "expected ':' and type after parameter name")
			}
			param.Name = name
		}
		params = append(params, param)

		if _, ok := body.curPunct(','); ok {
			body.advance()
		}
	}
	return params, nil
}

// collectParamRun gathers one comma-separated parameter run, reporting the
// index of its top-level colon (-1 when absent).
func (p *parser) collectParamRun() (token.Stream, int) {
	var run token.Stream
	colon := -1
	depth := 0
	for {
		tree := p.cur()
		if tree == nil {
			return run, colon
		}
		if punct, ok := tree.(token.Punct); ok {
			switch punct.Ch {
			case '<':
				depth++
			case '>':
				if !isArrowHead(run) {
					depth--
				}
			case ',':
				if depth == 0 {
					return run, colon
				}
			case ':':
				if punct.Joint && isPathSeparatorNext(p.peek()) {
					run = append(run, tree, p.peek())
					p.advance()
					p.advance()
					continue
				}
				if depth == 0 && colon < 0 {
					colon = len(run)
				}
			}
		}
		run = append(run, tree)
		p.advance()
	}
}

// collectReturnTypeTokens gathers the return type up to the where clause,
// the body group or the terminating semicolon.
func (p *parser) collectReturnTypeTokens() (token.Stream, error) {
	var tokens token.Stream
	for {
		switch tree := p.cur().(type) {
		case nil:
			if len(tokens) == 0 {
				return nil, p.errf(p.curSpan(), "expected return type")
			}
			return tokens, nil
		case token.Group:
			if tree.Delim == token.Brace {
				return tokens, nil
			}
		case token.Punct:
			if tree.Ch == ';' {
				return tokens, nil
			}
		case token.Ident:
			if tree.Name == "where" {
				return tokens, nil
			}
		}
		tokens = append(tokens, p.cur())
		p.advance()
	}
}

func lastIdent(run token.Stream) (token.Ident, bool) {
	for i := len(run) - 1; i >= 0; i-- {
		if ident, ok := run[i].(token.Ident); ok {
			return ident, true
		}
	}
	return token.Ident{}, false
}
