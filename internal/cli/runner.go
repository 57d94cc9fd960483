package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/derive"
	"github.com/seitarof/gen-derive/internal/generator"
	"github.com/seitarof/gen-derive/internal/parser"
	"github.com/seitarof/gen-derive/internal/token"
)

// Runner orchestrates the tokenize/parse/derive/generate layers.
type Runner interface {
	Run(cfg *Config) error
	Watch(cfg *Config) error
}

type runnerImpl struct {
	resolver  derive.Resolver
	generator generator.Generator
}

// NewRunner creates a default runner implementation.
func NewRunner(r derive.Resolver, g generator.Generator) Runner {
	return &runnerImpl{resolver: r, generator: g}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(cfg *Config) error {
	src, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	decls, err := parser.ParseSource(string(src))
	if err != nil {
		return fmt.Errorf("parse %q: %w", cfg.Input, err)
	}

	trait, err := token.Tokenize(cfg.Trait)
	if err != nil {
		return fmt.Errorf("trait %q: %w", cfg.Trait, err)
	}
	if len(trait) == 0 {
		return fmt.Errorf("trait %q has no tokens", cfg.Trait)
	}

	selected := selectDeclarations(decls, cfg.Types, cfg.IgnoreTypes)
	if len(selected) == 0 {
		return fmt.Errorf("no matching type declarations in %q", cfg.Input)
	}

	plans := make([]derive.Plan, 0, len(selected))
	for _, d := range selected {
		plan := r.resolver.Resolve(d, trait)
		if plan.Strategy == derive.StrategySkip {
			log.Printf("gen-derive: warning: declaration %q: no scaffold strategy, skipped", d.Name().Name)
			continue
		}
		plans = append(plans, plan)
	}
	if len(plans) == 0 {
		return fmt.Errorf("no declarations left to derive for in %q", cfg.Input)
	}

	return r.generator.Generate(cfg, plans)
}

// selectDeclarations filters the parsed declarations by the include and
// ignore lists. Functions never participate in derive scaffolding.
func selectDeclarations(decls []decl.Declaration, include, ignore []string) []decl.Declaration {
	includeSet := toNameSet(include)
	ignoreSet := toNameSet(ignore)

	out := make([]decl.Declaration, 0, len(decls))
	for _, d := range decls {
		if d.AsFunction() != nil {
			continue
		}
		name := d.Name().Name
		if ignoreSet[name] {
			continue
		}
		if len(includeSet) > 0 && !includeSet[name] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func toNameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[n] = true
	}
	return set
}
