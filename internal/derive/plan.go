package derive

import (
	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/token"
)

// Strategy identifies how an implementation scaffold is produced for one
// declaration shape.
type Strategy int

const (
	StrategyFieldStruct Strategy = iota // struct or union with per-field items
	StrategyCEnum                       // enum with only empty variants
	StrategyNewtypeEnum                 // enum whose variants all wrap one value
	StrategyVariantEnum                 // enum with mixed variant shapes
	StrategySkip                        // no scaffold can be produced
)

// FieldItem is one field access the scaffold covers. Key and Accessor come
// from the exhaustive field enumeration, so tuple and named structs render
// through the same template.
type FieldItem struct {
	Key      string
	Accessor token.Tree
	Ty       *decl.TyExpr
}

// VariantItem is one enum variant the scaffold covers. Inner is set for
// variants wrapping exactly one value.
type VariantItem struct {
	Name  string
	Empty bool
	Inner *decl.TyExpr
}

// Plan is the generation plan for one declaration: the rendered impl header
// parts plus the per-field or per-variant items.
type Plan struct {
	Decl     decl.Declaration
	Trait    token.Stream
	Strategy Strategy

	Target       string // declaration name
	ImplGenerics string // full parameter list with bounds, or ""
	TypeArgs     string // inline generic arguments, or ""
	WhereClause  string // synthesized derive where clause, or ""

	Fields   []FieldItem
	Variants []VariantItem
}

// TraitName renders the trait tokens of the plan.
func (p Plan) TraitName() string {
	return p.Trait.String()
}

// headerParts renders the shared impl header pieces for d.
func headerParts(d decl.Declaration, trait token.Stream) Plan {
	plan := Plan{
		Decl:   d,
		Trait:  trait,
		Target: d.Name().Name,
	}
	if g := d.GenericParams(); g != nil {
		plan.ImplGenerics = g.String()
	}
	if args := decl.InlineArgs(d); args != nil {
		plan.TypeArgs = args.String()
	}
	if clause := decl.CreateDeriveWhereClause(d, trait); len(clause.Items) > 0 {
		plan.WhereClause = clause.String()
	}
	return plan
}

func fieldItems(names []string, tokens []token.Tree, types []*decl.TyExpr) []FieldItem {
	items := make([]FieldItem, len(names))
	for i := range names {
		items[i] = FieldItem{Key: names[i], Accessor: tokens[i], Ty: types[i]}
	}
	return items
}
