package cli

import "testing"

func TestParseArgs_Success(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"--input", "src/model.rs",
		"--trait", "Debug",
		"--output", "derive_gen.rs",
		"--types", "Point, Shape",
		"--ignore-types", "Internal",
	})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Input != "src/model.rs" || cfg.Trait != "Debug" || cfg.Output != "derive_gen.rs" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if len(cfg.Types) != 2 || cfg.Types[1] != "Shape" {
		t.Fatalf("types = %v", cfg.Types)
	}
	if len(cfg.IgnoreTypes) != 1 || cfg.IgnoreTypes[0] != "Internal" {
		t.Fatalf("ignore types = %v", cfg.IgnoreTypes)
	}
}

func TestParseArgs_ShortFlags(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"-i", "model.rs",
		"-t", "Clone",
		"-o", "out.rs",
		"-w",
	})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if !cfg.Watch {
		t.Fatal("expected watch mode")
	}
	if cfg.Trait != "Clone" {
		t.Fatalf("trait = %q", cfg.Trait)
	}
}

func TestParseArgs_RequiresFlags(t *testing.T) {
	cases := [][]string{
		{"--trait", "Debug", "--output", "out.rs"},
		{"--input", "model.rs", "--output", "out.rs"},
		{"--input", "model.rs", "--trait", "Debug"},
	}
	for _, args := range cases {
		if _, err := ParseArgs(args); err == nil {
			t.Fatalf("ParseArgs(%v) expected error, got nil", args)
		}
	}
}

func TestParseArgs_VersionSkipsValidation(t *testing.T) {
	cfg, err := ParseArgs([]string{"--version"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if !cfg.ShowVersion {
		t.Fatal("expected version flag")
	}
}
