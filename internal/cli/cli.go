package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var typesRaw string
	var ignoreTypesRaw string

	fs := pflag.NewFlagSet("gen-derive", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Input, "input", "i", "", "source file with declarations")
	fs.StringVarP(&cfg.Trait, "trait", "t", "", "trait to derive, e.g. Debug or serde::Serialize")
	fs.StringVar(&typesRaw, "types", "", "comma-separated declaration names to include (default: all)")
	fs.StringVar(&ignoreTypesRaw, "ignore-types", "", "comma-separated declaration names to skip")
	fs.StringVarP(&cfg.Output, "output", "o", "", "output file name")
	fs.BoolVarP(&cfg.Watch, "watch", "w", false, "regenerate when the input file changes")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if strings.TrimSpace(cfg.Input) == "" {
		return nil, fmt.Errorf("--input is required")
	}
	if strings.TrimSpace(cfg.Trait) == "" {
		return nil, fmt.Errorf("--trait is required")
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return nil, fmt.Errorf("--output is required")
	}

	cfg.Types = splitCommaList(typesRaw)
	cfg.IgnoreTypes = splitCommaList(ignoreTypesRaw)
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
