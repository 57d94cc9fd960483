package decl

import (
	"testing"

	"github.com/seitarof/gen-derive/internal/token"
)

func TestStruct_WithParamCreatesList(t *testing.T) {
	s := Struct{Ident: token.NewIdent("Hello"), Fields: Unit()}

	updated := s.WithParam(Ty("T"))
	if s.Generics != nil {
		t.Fatal("original should stay without generics")
	}
	if updated.Generics == nil || len(updated.Generics.Params) != 1 {
		t.Fatalf("updated generics = %+v", updated.Generics)
	}

	withLifetime := updated.WithParam(Lifetime("a"))
	params := withLifetime.Generics.Params
	if params[0].Name.Name != "a" || !params[0].IsLifetime() {
		t.Fatalf("params[0] = %+v, want lifetime a first", params[0])
	}
	if params[1].Name.Name != "T" {
		t.Fatalf("params[1] = %+v, want T", params[1])
	}
}

func TestEnum_WithWhereItemCreatesClause(t *testing.T) {
	e := Enum{Ident: token.NewIdent("MyEnum")}
	item := ParseWhereClauseItem(mustTokenize(t, "T: Debug"))

	updated := e.WithWhereItem(item)
	if e.Where != nil {
		t.Fatal("original should stay without a where clause")
	}
	if updated.Where == nil || len(updated.Where.Items) != 1 {
		t.Fatalf("updated where = %+v", updated.Where)
	}

	second := ParseWhereClauseItem(mustTokenize(t, "U: Clone"))
	grown := updated.WithWhereItem(second)
	if len(updated.Where.Items) != 1 {
		t.Fatal("intermediate clause mutated")
	}
	if len(grown.Where.Items) != 2 {
		t.Fatalf("grown where has %d items", len(grown.Where.Items))
	}
}

func TestUnion_WithParamAppendsNonLifetime(t *testing.T) {
	u := Union{Ident: token.NewIdent("Value")}
	u2 := u.WithParam(Ty("A")).WithParam(Ty("B")).WithParam(Const("N", boundTokens("usize")))

	want := []string{"A", "B", "N"}
	for i, name := range want {
		if got := u2.Generics.Params[i].Name.Name; got != name {
			t.Fatalf("params[%d] = %s, want %s", i, got, name)
		}
	}
}

func TestCreateDeriveWhereClause_TypeParamsOnly(t *testing.T) {
	s := &Struct{
		Ident:  token.NewIdent("Hello"),
		Fields: Unit(),
		Generics: &GenericParams{Params: []GenericParam{
			Lifetime("a"),
			Ty("T"),
			Const("N", boundTokens("usize")),
			Ty("U"),
		}},
	}

	clause := CreateDeriveWhereClause(s, mustTokenize(t, "Debug"))
	if len(clause.Items) != 2 {
		t.Fatalf("expected 2 items, got %d: %s", len(clause.Items), clause.String())
	}
	if got := clause.Items[0].String(); got != "T : Debug" {
		t.Fatalf("items[0] = %q", got)
	}
	if got := clause.Items[1].String(); got != "U : Debug" {
		t.Fatalf("items[1] = %q", got)
	}
}

func TestCreateDeriveWhereClause_KeepsExistingItemsFirst(t *testing.T) {
	existing := WhereClauseFromItem(ParseWhereClauseItem(mustTokenize(t, "X: Send")))
	s := &Struct{
		Ident:    token.NewIdent("Hello"),
		Fields:   Unit(),
		Generics: &GenericParams{Params: []GenericParam{Ty("T")}},
		Where:    &existing,
	}

	clause := CreateDeriveWhereClause(s, mustTokenize(t, "Clone"))
	if len(clause.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(clause.Items))
	}
	if got := clause.Items[0].String(); got != "X : Send" {
		t.Fatalf("pre-existing item moved: %q", got)
	}
	if got := clause.Items[1].String(); got != "T : Clone" {
		t.Fatalf("items[1] = %q", got)
	}
	if len(existing.Items) != 1 {
		t.Fatal("existing clause mutated")
	}
}

func TestCreateDeriveWhereClause_NoTypeParams(t *testing.T) {
	e := &Enum{
		Ident:    token.NewIdent("Only"),
		Generics: &GenericParams{Params: []GenericParam{Lifetime("a")}},
	}
	clause := CreateDeriveWhereClause(e, mustTokenize(t, "Debug"))
	if len(clause.Items) != 0 {
		t.Fatalf("expected empty clause, got %s", clause.String())
	}
}

func TestNarrowingAccessors(t *testing.T) {
	var decls = []Declaration{
		&Struct{Ident: token.NewIdent("S"), Fields: Unit()},
		&Enum{Ident: token.NewIdent("E")},
		&Union{Ident: token.NewIdent("U")},
		&Function{Ident: token.NewIdent("f")},
	}

	for _, d := range decls {
		matches := 0
		if d.AsStruct() != nil {
			matches++
		}
		if d.AsEnum() != nil {
			matches++
		}
		if d.AsUnion() != nil {
			matches++
		}
		if d.AsFunction() != nil {
			matches++
		}
		if matches != 1 {
			t.Fatalf("%T matched %d narrowing accessors", d, matches)
		}
	}
}

func TestSetGenericParams(t *testing.T) {
	var d Declaration = &Function{Ident: token.NewIdent("compute")}
	if d.GenericParams() != nil {
		t.Fatal("expected nil generics")
	}
	params := NewGenericParams(Ty("T"))
	d.SetGenericParams(&params)
	if got := d.GenericParams(); got == nil || len(got.Params) != 1 {
		t.Fatalf("generics = %+v", got)
	}
}
