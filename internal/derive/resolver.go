// Package derive classifies declarations and builds generation plans for
// trait-implementation scaffolds.
package derive

import (
	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/token"
)

// Resolver resolves a declaration into a generation plan.
type Resolver interface {
	Resolve(d decl.Declaration, trait token.Stream) Plan
}

// Rule tries to build a plan for one declaration shape.
type Rule interface {
	Name() string
	Try(d decl.Declaration, trait token.Stream) (Plan, bool)
}

type resolverImpl struct {
	rules []Rule
}

// New builds a resolver with the rule chain applied in priority order.
func New(rules ...Rule) Resolver {
	return &resolverImpl{rules: rules}
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		&CEnumRule{},
		&NewtypeEnumRule{},
		&VariantEnumRule{},
		&FieldStructRule{},
	}
}

func (r *resolverImpl) Resolve(d decl.Declaration, trait token.Stream) Plan {
	for _, rule := range r.rules {
		if plan, ok := rule.Try(d, trait); ok {
			return plan
		}
	}
	plan := headerParts(d, trait)
	plan.Strategy = StrategySkip
	return plan
}

// CEnumRule: enums whose variants are all empty scaffold over variant names.
type CEnumRule struct{}

func (r *CEnumRule) Name() string { return "c-enum" }

func (r *CEnumRule) Try(d decl.Declaration, trait token.Stream) (Plan, bool) {
	e := d.AsEnum()
	if e == nil || !e.IsCEnum() {
		return Plan{}, false
	}
	plan := headerParts(d, trait)
	plan.Strategy = StrategyCEnum
	for _, v := range e.Variants {
		plan.Variants = append(plan.Variants, VariantItem{Name: v.Name.Name, Empty: true})
	}
	return plan, true
}

// NewtypeEnumRule: enums whose variants each wrap exactly one value scaffold
// by unwrapping that value.
type NewtypeEnumRule struct{}

func (r *NewtypeEnumRule) Name() string { return "newtype-enum" }

func (r *NewtypeEnumRule) Try(d decl.Declaration, trait token.Stream) (Plan, bool) {
	e := d.AsEnum()
	if e == nil || len(e.Variants) == 0 {
		return Plan{}, false
	}
	items := make([]VariantItem, 0, len(e.Variants))
	for _, v := range e.Variants {
		single := v.SingleType()
		if single == nil {
			return Plan{}, false
		}
		items = append(items, VariantItem{Name: v.Name.Name, Inner: &single.Ty})
	}
	plan := headerParts(d, trait)
	plan.Strategy = StrategyNewtypeEnum
	plan.Variants = items
	return plan, true
}

// VariantEnumRule: any remaining enum scaffolds variant by variant.
type VariantEnumRule struct{}

func (r *VariantEnumRule) Name() string { return "variant-enum" }

func (r *VariantEnumRule) Try(d decl.Declaration, trait token.Stream) (Plan, bool) {
	e := d.AsEnum()
	if e == nil {
		return Plan{}, false
	}
	plan := headerParts(d, trait)
	plan.Strategy = StrategyVariantEnum
	for _, v := range e.Variants {
		item := VariantItem{Name: v.Name.Name, Empty: v.IsEmptyVariant()}
		if single := v.SingleType(); single != nil {
			item.Inner = &single.Ty
		}
		plan.Variants = append(plan.Variants, item)
	}
	return plan, true
}

// FieldStructRule: structs and unions scaffold over the exhaustive field
// enumeration.
type FieldStructRule struct{}

func (r *FieldStructRule) Name() string { return "field-struct" }

func (r *FieldStructRule) Try(d decl.Declaration, trait token.Stream) (Plan, bool) {
	if s := d.AsStruct(); s != nil {
		plan := headerParts(d, trait)
		plan.Strategy = StrategyFieldStruct
		plan.Fields = fieldItems(s.FieldNames(), s.FieldTokens(), s.FieldTypes())
		return plan, true
	}
	if u := d.AsUnion(); u != nil {
		plan := headerParts(d, trait)
		plan.Strategy = StrategyFieldStruct
		for i := range u.Fields.Fields {
			f := &u.Fields.Fields[i]
			plan.Fields = append(plan.Fields, FieldItem{
				Key:      f.Name.Name,
				Accessor: f.Name,
				Ty:       &f.Ty,
			})
		}
		return plan, true
	}
	return Plan{}, false
}
