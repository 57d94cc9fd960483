package decl

import (
	"fmt"

	"github.com/seitarof/gen-derive/internal/token"
)

// WhereClauseItem is one constraint: a left-hand token run and its bound.
type WhereClauseItem struct {
	LeftSide token.Stream
	Bound    GenericBound
}

// Tokens re-emits the item.
func (i WhereClauseItem) Tokens() token.Stream {
	out := make(token.Stream, 0, len(i.LeftSide)+1+len(i.Bound.Tokens))
	out = append(out, i.LeftSide...)
	out = append(out, i.Bound.Colon)
	return append(out, i.Bound.Tokens...)
}

func (i WhereClauseItem) String() string {
	return i.Tokens().String()
}

// WhereClause is an ordered constraint list. A nil *WhereClause on a
// declaration means the clause is absent; a non-nil clause with no items is
// present but empty.
type WhereClause struct {
	Keyword token.Ident
	Items   []WhereClauseItem
}

// WhereClauseFromItem builds a clause holding a single item.
func WhereClauseFromItem(item WhereClauseItem) WhereClause {
	return WhereClause{Keyword: token.NewIdent("where")}.WithItem(item)
}

// WithItem returns a copy of the clause with the item appended.
func (w WhereClause) WithItem(item WhereClauseItem) WhereClause {
	items := make([]WhereClauseItem, 0, len(w.Items)+1)
	items = append(items, w.Items...)
	items = append(items, item)
	w.Items = items
	return w
}

// Tokens re-emits the clause including the where keyword. An empty clause
// yields no tokens.
func (w WhereClause) Tokens() token.Stream {
	if len(w.Items) == 0 {
		return nil
	}
	keyword := w.Keyword
	if keyword.Name == "" {
		keyword = token.NewIdent("where")
	}
	out := token.Stream{keyword}
	for i, item := range w.Items {
		if i > 0 {
			out = append(out, token.NewPunct(',', false))
		}
		out = append(out, item.Tokens()...)
	}
	return out
}

func (w WhereClause) String() string {
	return w.Tokens().String()
}

// ParseWhereClauseItem splits a token run at its first top-level colon into a
// left-hand side and a bound. The input is a trusted, hand-written template;
// a run without a top-level colon is a caller bug and panics.
func ParseWhereClauseItem(tokens token.Stream) WhereClauseItem {
	idx := topLevelColon(tokens)
	if idx < 0 {
		panic(fmt.Sprintf("decl: where-clause item %q has no top-level colon", tokens.String()))
	}
	colon, ok := tokens[idx].(token.Punct)
	if !ok || colon.Ch != ':' {
		panic(fmt.Sprintf("decl: malformed where-clause item %q", tokens.String()))
	}
	return WhereClauseItem{
		LeftSide: tokens[:idx],
		Bound:    GenericBound{Colon: colon, Tokens: tokens[idx+1:]},
	}
}

// topLevelColon returns the index of the first colon that is neither inside
// angle brackets nor part of a :: path separator, or -1.
func topLevelColon(tokens token.Stream) int {
	depth := 0
	for i := 0; i < len(tokens); i++ {
		punct, ok := tokens[i].(token.Punct)
		if !ok {
			continue
		}
		switch punct.Ch {
		case '<':
			depth++
		case '>':
			depth--
		case ':':
			if punct.Joint && i+1 < len(tokens) {
				if next, ok := tokens[i+1].(token.Punct); ok && next.Ch == ':' {
					i++ // path separator
					continue
				}
			}
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
