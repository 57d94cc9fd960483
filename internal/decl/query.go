package decl

import (
	"strconv"

	"github.com/seitarof/gen-derive/internal/token"
)

// FieldNames returns strings addressing every field of the struct
// exhaustively: field names for named structs, positional indices "0", "1",
// ... for tuple structs, nothing for unit structs. The index-as-string form
// lets one generation template address both shapes uniformly.
func (s *Struct) FieldNames() []string {
	switch s.Fields.Kind {
	case KindTuple:
		names := make([]string, len(s.Fields.Tuple.Fields))
		for i := range s.Fields.Tuple.Fields {
			names[i] = strconv.Itoa(i)
		}
		return names
	case KindNamed:
		names := make([]string, len(s.Fields.Named.Fields))
		for i, f := range s.Fields.Named.Fields {
			names[i] = f.Name.Name
		}
		return names
	default:
		return nil
	}
}

// FieldTokens returns tokens addressing every field of the struct: clones of
// the name token for named structs (original spans kept), span-less integer
// literals for tuple structs.
func (s *Struct) FieldTokens() []token.Tree {
	switch s.Fields.Kind {
	case KindTuple:
		tokens := make([]token.Tree, len(s.Fields.Tuple.Fields))
		for i := range s.Fields.Tuple.Fields {
			tokens[i] = token.IntLiteral(strconv.Itoa(i))
		}
		return tokens
	case KindNamed:
		tokens := make([]token.Tree, len(s.Fields.Named.Fields))
		for i, f := range s.Fields.Named.Fields {
			tokens[i] = f.Name
		}
		return tokens
	default:
		return nil
	}
}

// FieldTypes returns the type expression of every field, index-aligned with
// FieldNames and FieldTokens.
func (s *Struct) FieldTypes() []*TyExpr {
	switch s.Fields.Kind {
	case KindTuple:
		types := make([]*TyExpr, len(s.Fields.Tuple.Fields))
		for i := range s.Fields.Tuple.Fields {
			types[i] = &s.Fields.Tuple.Fields[i].Ty
		}
		return types
	case KindNamed:
		types := make([]*TyExpr, len(s.Fields.Named.Fields))
		for i := range s.Fields.Named.Fields {
			types[i] = &s.Fields.Named.Fields[i].Ty
		}
		return types
	default:
		return nil
	}
}

// IsCEnum reports whether every variant is empty. An enum with no variants
// counts as a C enum.
func (e *Enum) IsCEnum() bool {
	for _, v := range e.Variants {
		if !v.IsEmptyVariant() {
			return false
		}
	}
	return true
}

// IsEmptyVariant reports whether the variant stores no data.
func (v EnumVariant) IsEmptyVariant() bool {
	return v.Contents.Kind == KindUnit
}

// SingleType returns the sole field of a variant that wraps exactly one
// unnamed value, or nil for every other shape.
func (v EnumVariant) SingleType() *TupleField {
	if v.Contents.Kind != KindTuple {
		return nil
	}
	if len(v.Contents.Tuple.Fields) != 1 {
		return nil
	}
	return &v.Contents.Tuple.Fields[0]
}
