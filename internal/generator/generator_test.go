package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seitarof/gen-derive/internal/derive"
	"github.com/seitarof/gen-derive/internal/parser"
	"github.com/seitarof/gen-derive/internal/token"
)

type testConfig struct {
	output string
}

func (c testConfig) OutputFilename() string { return c.output }

type recordingWriter struct {
	filename string
	data     []byte
}

func (w *recordingWriter) Write(filename string, data []byte) error {
	w.filename = filename
	w.data = data
	return nil
}

func planFor(t *testing.T, src, trait string) derive.Plan {
	t.Helper()
	stream, err := token.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	d, err := parser.ParseOne(stream)
	if err != nil {
		t.Fatalf("ParseOne(%q) error = %v", src, err)
	}
	traitStream, err := token.Tokenize(trait)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", trait, err)
	}
	return derive.New(derive.DefaultRules()...).Resolve(d, traitStream)
}

func TestGenerate_WritesScaffoldFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "derive_gen.rs")
	gen := New(NewFileWriter())

	plan := planFor(t, "struct Point { x: f64, y: f64 }", "Debug")
	if err := gen.Generate(testConfig{output: output}, []derive.Plan{plan}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"// Code generated by gen-derive. DO NOT EDIT.",
		"impl Debug for Point {",
		"//   self.x: f64",
		"//   self.y: f64",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("output missing %q:\n%s", want, content)
		}
	}
}

func TestGenerate_GenericImplHeader(t *testing.T) {
	w := &recordingWriter{}
	gen := New(w)

	plan := planFor(t, "struct Holder<'a, T: Clone> { value: &'a T }", "Debug")
	if err := gen.Generate(testConfig{output: "out.rs"}, []derive.Plan{plan}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := "impl< 'a , T : Clone > Debug for Holder< 'a , T > where T : Debug {"
	if !strings.Contains(string(w.data), want) {
		t.Fatalf("output missing %q:\n%s", want, w.data)
	}
}

func TestGenerate_EnumBodies(t *testing.T) {
	w := &recordingWriter{}
	gen := New(w)

	plans := []derive.Plan{
		planFor(t, "enum Level { Low, High }", "Debug"),
		planFor(t, "enum Value { I(i64) }", "Debug"),
		planFor(t, "enum Event { Tick, Move { x: i32 } }", "Debug"),
	}
	if err := gen.Generate(testConfig{output: "out.rs"}, plans); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := string(w.data)

	for _, want := range []string{
		"// unit variants:",
		"//   Self::Low",
		"// newtype variants:",
		"//   Self::I(value) => value: i64",
		"//   Self::Move { .. }",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("output missing %q:\n%s", want, content)
		}
	}
}

func TestGenerate_NoPlans(t *testing.T) {
	gen := New(&recordingWriter{})

	err := gen.Generate(testConfig{output: "out.rs"}, nil)
	if err == nil {
		t.Fatal("Generate() expected error for empty plan list")
	}
	if !strings.Contains(err.Error(), "no derive plans") {
		t.Fatalf("error = %v", err)
	}
}
