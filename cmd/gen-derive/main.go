package main

import (
	"fmt"
	"log"
	"os"

	"github.com/seitarof/gen-derive/internal/cli"
	"github.com/seitarof/gen-derive/internal/derive"
	"github.com/seitarof/gen-derive/internal/generator"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	r := derive.New(derive.DefaultRules()...)
	g := generator.New(generator.NewFileWriter())
	runner := cli.NewRunner(r, g)

	if cfg.Watch {
		err = runner.Watch(cfg)
	} else {
		err = runner.Run(cfg)
	}
	if err != nil {
		log.Fatal(err)
	}
}
