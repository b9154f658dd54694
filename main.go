package main

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/xyproto/env/v2"
)

// commands is filled by the init functions of the command files.
var commands []*cli.Command

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "tlc",
		Usage:                  "Parse TL source files and print them back as a tree or as canonical source",
		Version:                "0.1.0",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Log what the compiler is doing",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") || env.Bool("TLC_NO_COLOR") {
				color.NoColor = true
			}

			log.SetFlags(0)
			log.SetPrefix("tlc: ")
			if c.Bool("verbose") {
				log.SetOutput(os.Stderr)
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
		Commands: commands,
	}
}
