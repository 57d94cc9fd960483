package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/seitarof/gen-derive/internal/derive"
)

//go:embed templates/*.rs.tmpl
var templateFS embed.FS

// Generator emits implementation scaffolds from derive plans.
type Generator interface {
	Generate(cfg Config, plans []derive.Plan) error
}

// Config is the minimum config contract required by the generator.
type Config interface {
	OutputFilename() string
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	writer FileWriter
	tmpl   *template.Template
}

type fileWriter struct{}

type templateData struct {
	Impls []derive.Plan
}

// New creates a scaffold generator.
func New(w FileWriter) Generator {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"renderBody": renderBody,
	}).ParseFS(templateFS, "templates/*.rs.tmpl"))
	return &generatorImpl{writer: w, tmpl: tmpl}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, plans []derive.Plan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no derive plans")
	}

	var buf bytes.Buffer
	data := templateData{Impls: plans}
	if err := g.tmpl.ExecuteTemplate(&buf, "impl.rs.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), buf.Bytes()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

// renderBody emits the body lines of one impl block according to the plan
// strategy.
func renderBody(plan derive.Plan) string {
	var b strings.Builder
	switch plan.Strategy {
	case derive.StrategyCEnum:
		b.WriteString("    // unit variants:\n")
		for _, v := range plan.Variants {
			fmt.Fprintf(&b, "    //   Self::%s\n", v.Name)
		}
	case derive.StrategyNewtypeEnum:
		b.WriteString("    // newtype variants:\n")
		for _, v := range plan.Variants {
			fmt.Fprintf(&b, "    //   Self::%s(value) => value: %s\n", v.Name, v.Inner)
		}
	case derive.StrategyVariantEnum:
		b.WriteString("    // variants:\n")
		for _, v := range plan.Variants {
			switch {
			case v.Empty:
				fmt.Fprintf(&b, "    //   Self::%s\n", v.Name)
			case v.Inner != nil:
				fmt.Fprintf(&b, "    //   Self::%s(value) => value: %s\n", v.Name, v.Inner)
			default:
				fmt.Fprintf(&b, "    //   Self::%s { .. }\n", v.Name)
			}
		}
	case derive.StrategyFieldStruct:
		if len(plan.Fields) == 0 {
			b.WriteString("    // no fields\n")
			break
		}
		b.WriteString("    // fields:\n")
		for _, f := range plan.Fields {
			fmt.Fprintf(&b, "    //   self.%s: %s\n", f.Key, f.Ty)
		}
	default:
		b.WriteString("    // gen-derive: no scaffold for this declaration\n")
	}
	return b.String()
}
