package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seitarof/gen-derive/internal/decl"
	"github.com/seitarof/gen-derive/internal/derive"
	"github.com/seitarof/gen-derive/internal/generator"
	"github.com/seitarof/gen-derive/internal/token"
)

type mockGenerator struct {
	callCount int
	plans     []derive.Plan
	err       error
}

func (g *mockGenerator) Generate(_ generator.Config, plans []derive.Plan) error {
	g.callCount++
	g.plans = plans
	return g.err
}

type skipResolver struct {
	skip map[string]bool
}

func (r *skipResolver) Resolve(d decl.Declaration, trait token.Stream) derive.Plan {
	if r.skip[d.Name().Name] {
		return derive.Plan{Decl: d, Trait: trait, Strategy: derive.StrategySkip}
	}
	return derive.New(derive.DefaultRules()...).Resolve(d, trait)
}

func writeInput(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.rs")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRunner_Run_PlansForEachTypeDeclaration(t *testing.T) {
	gen := &mockGenerator{}
	r := NewRunner(derive.New(derive.DefaultRules()...), gen)

	input := writeInput(t, `
struct A { x: u8 }
enum B { One, Two }
fn ignored() { }
`)
	cfg := &Config{Input: input, Trait: "Debug", Output: "out.rs"}

	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gen.callCount != 1 {
		t.Fatalf("generator call count = %d, want 1", gen.callCount)
	}
	if len(gen.plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(gen.plans))
	}
	if gen.plans[0].Target != "A" || gen.plans[1].Target != "B" {
		t.Fatalf("targets = %s, %s", gen.plans[0].Target, gen.plans[1].Target)
	}
}

func TestRunner_Run_HonorsIncludeAndIgnoreLists(t *testing.T) {
	gen := &mockGenerator{}
	r := NewRunner(derive.New(derive.DefaultRules()...), gen)

	input := writeInput(t, `
struct A { x: u8 }
struct B { y: u8 }
struct C { z: u8 }
`)
	cfg := &Config{
		Input:       input,
		Trait:       "Debug",
		Output:      "out.rs",
		Types:       []string{"A", "B"},
		IgnoreTypes: []string{"B"},
	}

	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(gen.plans) != 1 || gen.plans[0].Target != "A" {
		t.Fatalf("plans = %+v, want only A", gen.plans)
	}
}

func TestRunner_Run_SkipStrategyIsDropped(t *testing.T) {
	gen := &mockGenerator{}
	r := NewRunner(&skipResolver{skip: map[string]bool{"A": true}}, gen)

	input := writeInput(t, `
struct A { x: u8 }
struct B { y: u8 }
`)
	cfg := &Config{Input: input, Trait: "Debug", Output: "out.rs"}

	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(gen.plans) != 1 || gen.plans[0].Target != "B" {
		t.Fatalf("plans = %+v, want only B", gen.plans)
	}
}

func TestRunner_Run_Errors(t *testing.T) {
	gen := &mockGenerator{}
	r := NewRunner(derive.New(derive.DefaultRules()...), gen)

	t.Run("missing input file", func(t *testing.T) {
		cfg := &Config{Input: filepath.Join(t.TempDir(), "absent.rs"), Trait: "Debug", Output: "out.rs"}
		if err := r.Run(cfg); err == nil {
			t.Fatal("expected error for missing input")
		}
	})

	t.Run("parse failure", func(t *testing.T) {
		input := writeInput(t, "struct {")
		cfg := &Config{Input: input, Trait: "Debug", Output: "out.rs"}
		if err := r.Run(cfg); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("no matching declarations", func(t *testing.T) {
		input := writeInput(t, "struct A { x: u8 }")
		cfg := &Config{Input: input, Trait: "Debug", Output: "out.rs", Types: []string{"Missing"}}
		err := r.Run(cfg)
		if err == nil || !strings.Contains(err.Error(), "no matching type declarations") {
			t.Fatalf("error = %v", err)
		}
	})

	t.Run("generator failure propagates", func(t *testing.T) {
		failing := &mockGenerator{err: errors.New("disk full")}
		rr := NewRunner(derive.New(derive.DefaultRules()...), failing)
		input := writeInput(t, "struct A { x: u8 }")
		cfg := &Config{Input: input, Trait: "Debug", Output: "out.rs"}
		err := rr.Run(cfg)
		if err == nil || !strings.Contains(err.Error(), "disk full") {
			t.Fatalf("error = %v", err)
		}
	})
}
