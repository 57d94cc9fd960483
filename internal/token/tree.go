package token

import "strings"

// Tree is one node of a token tree: an identifier, a literal, a single
// punctuation mark, or a delimited group of nested trees. Trees are immutable
// values; copying one never shares mutable state.
type Tree interface {
	Span() Span
	treeNode()
}

// Ident is an identifier or keyword token.
type Ident struct {
	Name string
	Pos  Span
}

// Literal is a number, string or character literal, kept as raw text.
type Literal struct {
	Text string
	Pos  Span
}

// Punct is a single punctuation character. Joint reports that the next token
// in the stream follows without intervening whitespace, so multi-character
// operators like :: and -> survive re-emission.
type Punct struct {
	Ch    rune
	Joint bool
	Pos   Span
}

// Delim identifies the delimiter kind of a Group.
type Delim int

const (
	Paren   Delim = iota // ( )
	Bracket              // [ ]
	Brace                // { }
)

// Group is a delimited token sequence. The span covers the delimiters.
type Group struct {
	Delim Delim
	Trees Stream
	Pos   Span
}

// GroupSpan records where a group sat in the source and which delimiter kind
// it used, without retaining its contents.
type GroupSpan struct {
	Pos   Span
	Delim Delim
}

// NewGroupSpan captures the span and delimiter of a group.
func NewGroupSpan(g Group) GroupSpan {
	return GroupSpan{Pos: g.Pos, Delim: g.Delim}
}

func (t Ident) Span() Span   { return t.Pos }
func (t Literal) Span() Span { return t.Pos }
func (t Punct) Span() Span   { return t.Pos }
func (t Group) Span() Span   { return t.Pos }

func (Ident) treeNode()   {}
func (Literal) treeNode() {}
func (Punct) treeNode()   {}
func (Group) treeNode()   {}

// NewIdent synthesizes an identifier without a source position.
func NewIdent(name string) Ident {
	return Ident{Name: name}
}

// NewPunct synthesizes a punctuation token without a source position.
func NewPunct(ch rune, joint bool) Punct {
	return Punct{Ch: ch, Joint: joint}
}

// IntLiteral synthesizes a position-less integer literal.
func IntLiteral(text string) Literal {
	return Literal{Text: text}
}

// Stream is an ordered token-tree sequence.
type Stream []Tree

// String re-emits the stream as source text. Joint puncts attach to the
// following token; everything else is space-separated.
func (s Stream) String() string {
	var b strings.Builder
	writeStream(&b, s)
	return b.String()
}

func writeStream(b *strings.Builder, s Stream) {
	for i, tree := range s {
		if i > 0 {
			prev := s[i-1]
			if p, ok := prev.(Punct); !ok || !p.Joint {
				b.WriteByte(' ')
			}
		}
		writeTree(b, tree)
	}
}

func writeTree(b *strings.Builder, tree Tree) {
	switch t := tree.(type) {
	case Ident:
		b.WriteString(t.Name)
	case Literal:
		b.WriteString(t.Text)
	case Punct:
		b.WriteRune(t.Ch)
	case Group:
		open, close := delimRunes(t.Delim)
		b.WriteRune(open)
		writeStream(b, t.Trees)
		b.WriteRune(close)
	}
}

func delimRunes(d Delim) (open, close rune) {
	switch d {
	case Paren:
		return '(', ')'
	case Bracket:
		return '[', ']'
	default:
		return '{', '}'
	}
}
