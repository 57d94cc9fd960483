package decl

import "github.com/seitarof/gen-derive/internal/token"

// TyExpr is a type expression kept as its original token run.
type TyExpr struct {
	Tokens token.Stream
}

func (t TyExpr) String() string {
	return t.Tokens.String()
}

// Attribute is one #[...] attribute. Tokens holds the bracket contents;
// the attribute value is not interpreted here.
type Attribute struct {
	PoundPos token.Span
	Body     token.GroupSpan
	Tokens   token.Stream
}

// VisMarker is a visibility marker such as pub or pub(crate), kept as tokens.
type VisMarker struct {
	Tokens token.Stream
}

// IsPublic reports whether any visibility marker is present.
func (v VisMarker) IsPublic() bool {
	return len(v.Tokens) > 0
}

// TupleField is one unnamed, position-indexed field.
type TupleField struct {
	Attributes []Attribute
	Vis        VisMarker
	Ty         TyExpr
}

// NamedField is one named field.
type NamedField struct {
	Attributes []Attribute
	Vis        VisMarker
	Name       token.Ident
	Ty         TyExpr
}

// FieldsKind discriminates the three field shapes of a struct body.
type FieldsKind int

const (
	KindUnit FieldsKind = iota
	KindTuple
	KindNamed
)

// TupleFields is an ordered unnamed field list with the span of its
// parenthesized group.
type TupleFields struct {
	Group  token.GroupSpan
	Fields []TupleField
}

// NamedFields is an ordered named field list with the span of its braced
// group.
type NamedFields struct {
	Group  token.GroupSpan
	Fields []NamedField
}

// StructFields is the field shape of a struct, union or enum variant body.
// Kind determines which payload pointer is set; Unit has neither.
type StructFields struct {
	Kind  FieldsKind
	Tuple *TupleFields
	Named *NamedFields
}

// Unit returns the fieldless shape.
func Unit() StructFields {
	return StructFields{Kind: KindUnit}
}

// Tuple wraps an unnamed field list.
func Tuple(fields TupleFields) StructFields {
	return StructFields{Kind: KindTuple, Tuple: &fields}
}

// Named wraps a named field list.
func Named(fields NamedFields) StructFields {
	return StructFields{Kind: KindNamed, Named: &fields}
}

// Len returns the number of fields; zero for Unit.
func (f StructFields) Len() int {
	switch f.Kind {
	case KindTuple:
		return len(f.Tuple.Fields)
	case KindNamed:
		return len(f.Named.Fields)
	default:
		return 0
	}
}
