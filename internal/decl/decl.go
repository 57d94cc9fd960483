package decl

import (
	"iter"

	"github.com/seitarof/gen-derive/internal/token"
)

// Declaration is one parsed top-level definition. The concrete type is one of
// Struct, Enum, Union or Function; the narrowing accessors return nil on a
// kind mismatch, which is a normal outcome rather than a failure.
type Declaration interface {
	// Name returns the declared identifier.
	Name() token.Ident
	// GenericParams returns the declaration's parameter list, or nil.
	GenericParams() *GenericParams
	// SetGenericParams replaces the parameter list on an owned declaration.
	SetGenericParams(*GenericParams)
	// WhereClause returns the declaration's where clause, or nil.
	WhereClause() *WhereClause
	// Attributes returns the declaration's attributes in source order.
	Attributes() []Attribute

	AsStruct() *Struct
	AsEnum() *Enum
	AsUnion() *Union
	AsFunction() *Function

	declNode()
}

// Struct is a structural aggregate declaration.
type Struct struct {
	Attrs    []Attribute
	Vis      VisMarker
	Ident    token.Ident
	Generics *GenericParams
	Where    *WhereClause
	Fields   StructFields
	Semi     *token.Punct // trailing semicolon of unit and tuple structs
}

// Enum is a tagged-union declaration.
type Enum struct {
	Attrs    []Attribute
	Vis      VisMarker
	Ident    token.Ident
	Generics *GenericParams
	Where    *WhereClause
	Variants []EnumVariant
}

// EnumVariant is one variant of an enum.
type EnumVariant struct {
	Attrs        []Attribute
	Name         token.Ident
	Contents     StructFields
	Discriminant *EnumDiscriminant
}

// EnumDiscriminant is an explicit variant value: the equals sign and the
// expression tokens after it.
type EnumDiscriminant struct {
	Equal  token.Punct
	Tokens token.Stream
}

// Union is an untagged-union declaration; its body is always named fields.
type Union struct {
	Attrs    []Attribute
	Vis      VisMarker
	Ident    token.Ident
	Generics *GenericParams
	Where    *WhereClause
	Fields   NamedFields
}

// FnParam is one function parameter. Receiver parameters like &mut self keep
// their tokens in Name with an empty type.
type FnParam struct {
	Attrs []Attribute
	Name  token.Ident
	Ty    TyExpr
}

// Function is a callable declaration. Qualifiers holds tokens like const,
// async, unsafe or extern "C" verbatim.
type Function struct {
	Attrs      []Attribute
	Vis        VisMarker
	Qualifiers token.Stream
	Ident      token.Ident
	Generics   *GenericParams
	Where      *WhereClause
	Params     []FnParam
	Return     *TyExpr
	Body       *token.Group
}

func (s *Struct) Name() token.Ident   { return s.Ident }
func (e *Enum) Name() token.Ident     { return e.Ident }
func (u *Union) Name() token.Ident    { return u.Ident }
func (f *Function) Name() token.Ident { return f.Ident }

func (s *Struct) GenericParams() *GenericParams   { return s.Generics }
func (e *Enum) GenericParams() *GenericParams     { return e.Generics }
func (u *Union) GenericParams() *GenericParams    { return u.Generics }
func (f *Function) GenericParams() *GenericParams { return f.Generics }

func (s *Struct) SetGenericParams(g *GenericParams)   { s.Generics = g }
func (e *Enum) SetGenericParams(g *GenericParams)     { e.Generics = g }
func (u *Union) SetGenericParams(g *GenericParams)    { u.Generics = g }
func (f *Function) SetGenericParams(g *GenericParams) { f.Generics = g }

func (s *Struct) WhereClause() *WhereClause   { return s.Where }
func (e *Enum) WhereClause() *WhereClause     { return e.Where }
func (u *Union) WhereClause() *WhereClause    { return u.Where }
func (f *Function) WhereClause() *WhereClause { return f.Where }

func (s *Struct) Attributes() []Attribute   { return s.Attrs }
func (e *Enum) Attributes() []Attribute     { return e.Attrs }
func (u *Union) Attributes() []Attribute    { return u.Attrs }
func (f *Function) Attributes() []Attribute { return f.Attrs }

func (s *Struct) AsStruct() *Struct { return s }
func (*Enum) AsStruct() *Struct     { return nil }
func (*Union) AsStruct() *Struct    { return nil }
func (*Function) AsStruct() *Struct { return nil }

func (*Struct) AsEnum() *Enum     { return nil }
func (e *Enum) AsEnum() *Enum     { return e }
func (*Union) AsEnum() *Enum      { return nil }
func (*Function) AsEnum() *Enum   { return nil }

func (*Struct) AsUnion() *Union   { return nil }
func (*Enum) AsUnion() *Union     { return nil }
func (u *Union) AsUnion() *Union  { return u }
func (*Function) AsUnion() *Union { return nil }

func (*Struct) AsFunction() *Function     { return nil }
func (*Enum) AsFunction() *Function       { return nil }
func (*Union) AsFunction() *Function      { return nil }
func (f *Function) AsFunction() *Function { return f }

func (*Struct) declNode()   {}
func (*Enum) declNode()     {}
func (*Union) declNode()    {}
func (*Function) declNode() {}

// WithParam returns a copy with the parameter added, creating the parameter
// list when absent. Lifetimes go to the front, everything else is appended.
func (s Struct) WithParam(p GenericParam) Struct {
	s.Generics = addParam(s.Generics, p)
	return s
}

// WithParam returns a copy with the parameter added; see Struct.WithParam.
func (e Enum) WithParam(p GenericParam) Enum {
	e.Generics = addParam(e.Generics, p)
	return e
}

// WithParam returns a copy with the parameter added; see Struct.WithParam.
func (u Union) WithParam(p GenericParam) Union {
	u.Generics = addParam(u.Generics, p)
	return u
}

// WithWhereItem returns a copy with the item appended to the where clause,
// creating the clause when absent.
func (s Struct) WithWhereItem(item WhereClauseItem) Struct {
	s.Where = addWhereItem(s.Where, item)
	return s
}

// WithWhereItem returns a copy with the item appended; see Struct.WithWhereItem.
func (e Enum) WithWhereItem(item WhereClauseItem) Enum {
	e.Where = addWhereItem(e.Where, item)
	return e
}

// WithWhereItem returns a copy with the item appended; see Struct.WithWhereItem.
func (u Union) WithWhereItem(item WhereClauseItem) Union {
	u.Where = addWhereItem(u.Where, item)
	return u
}

func addParam(g *GenericParams, p GenericParam) *GenericParams {
	var params GenericParams
	if g != nil {
		params = *g
	} else {
		params = NewGenericParams()
	}
	params = params.WithParam(p)
	return &params
}

func addWhereItem(w *WhereClause, item WhereClauseItem) *WhereClause {
	var clause WhereClause
	if w != nil {
		clause = w.WithItem(item)
	} else {
		clause = WhereClauseFromItem(item)
	}
	return &clause
}

// LifetimeParams yields the declaration's lifetime parameters in order;
// nothing when the parameter list is absent. Restartable.
func LifetimeParams(d Declaration) iter.Seq[GenericParam] {
	return filterParams(d.GenericParams(), GenericParam.IsLifetime)
}

// TypeParams yields the declaration's type parameters in order.
func TypeParams(d Declaration) iter.Seq[GenericParam] {
	return filterParams(d.GenericParams(), GenericParam.IsTy)
}

// ConstParams yields the declaration's const parameters in order.
func ConstParams(d Declaration) iter.Seq[GenericParam] {
	return filterParams(d.GenericParams(), GenericParam.IsConst)
}

// InlineArgs returns the declaration's parameter names as a generic-argument
// list, or nil when the declaration has no parameter list.
func InlineArgs(d Declaration) *InlineGenericArgs {
	g := d.GenericParams()
	if g == nil {
		return nil
	}
	args := g.InlineArgs()
	return &args
}

// CreateDeriveWhereClause returns the declaration's where clause, or an empty
// one, with one item per type parameter appended binding that parameter to
// trait. Lifetime and const parameters are skipped; pre-existing items keep
// their positions ahead of the appended ones.
func CreateDeriveWhereClause(d Declaration, trait token.Stream) WhereClause {
	var clause WhereClause
	if w := d.WhereClause(); w != nil {
		clause = *w
	} else {
		clause = WhereClause{Keyword: token.NewIdent("where")}
	}

	for p := range TypeParams(d) {
		item := WhereClauseItem{
			LeftSide: token.Stream{p.Name},
			Bound:    GenericBound{Colon: token.NewPunct(':', false), Tokens: trait},
		}
		clause = clause.WithItem(item)
	}
	return clause
}
