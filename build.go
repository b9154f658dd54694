package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/tlc/lib/ast"
	tllex "github.com/vyPal/tlc/lib/lexer"
	"github.com/vyPal/tlc/lib/parser"
	"github.com/vyPal/tlc/lib/project"
	"github.com/vyPal/tlc/lib/unwriter"
	"gopkg.in/yaml.v3"
)

var sourceFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "input-str",
		Aliases: []string{"s"},
		Usage:   "Parse a string instead of a file",
	},
	&cli.BoolFlag{
		Name:  "strict",
		Usage: "Fail on the first diagnostic instead of printing a best-effort result",
	},
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the result to a file instead of stdout",
	},
}

func init() {
	commands = append(commands, &cli.Command{
		Name:      "unwrite",
		Aliases:   []string{"fmt"},
		Usage:     "Parse a TL file and print it back as canonical source",
		ArgsUsage: "[file]",
		Category:  "source",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "indent",
				Aliases: []string{"i"},
				Usage:   "Spaces per nesting level",
			},
		}, sourceFlags...),
		Action: unwrite,
	}, &cli.Command{
		Name:      "ast",
		Usage:     "Parse a TL file and dump its syntax tree",
		ArgsUsage: "[file]",
		Category:  "source",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Dump format: text, json or yaml",
				Value:   "text",
			},
		}, sourceFlags...),
		Action: dumpAST,
	}, &cli.Command{
		Name:      "tokens",
		Usage:     "Print the tokens of a TL file",
		ArgsUsage: "[file]",
		Category:  "source",
		Flags:     sourceFlags,
		Action:    dumpTokens,
	})
}

// source is the input of a command together with the settings that apply
// to it.
type source struct {
	filename string
	code     string
	inline   bool
	conf     project.TlConf
}

// loadSource resolves the input of a command. Without a file argument the
// main file of the project in the working directory is used.
func loadSource(c *cli.Context) (*source, error) {
	conf, confFile, err := project.GetTlConf(".")
	if err != nil && !os.IsNotExist(err) {
		return nil, cli.Exit(color.RedString("Error reading project config: %s", err), 1)
	}
	if confFile == "" {
		conf.CreateDefault("")
	} else {
		log.Println("using config", confFile)
	}
	conf.ApplyEnv()
	if err := conf.Validate(); err != nil {
		return nil, cli.Exit(color.RedString("Error in configuration: %s", err), 1)
	}
	if conf.Diagnostics.NoColor {
		color.NoColor = true
	}
	if c.Bool("strict") {
		conf.Diagnostics.Policy = project.PolicyFailFast
	}

	if str := c.String("input-str"); str != "" {
		return &source{filename: "<input>", code: str, inline: true, conf: conf}, nil
	}

	filename := c.Args().First()
	if filename == "" {
		if confFile == "" {
			return nil, cli.Exit(color.RedString("Error: No file specified"), 1)
		}
		filename = filepath.Join(filepath.Dir(confFile), conf.Main)
	}
	return &source{filename: filename, conf: conf}, nil
}

// parse runs the parser and prints its diagnostics. Under the fail-fast
// policy any diagnostic turns into an error.
func (s *source) parse() (*ast.File, error) {
	log.Println("parsing", s.filename)

	var file *ast.File
	var diags parser.Diagnostics
	var err error
	if s.inline {
		file, diags, err = parser.ParseString(s.filename, s.code)
	} else {
		file, diags, err = parser.ParseFile(s.filename)
	}
	if err != nil {
		return nil, cli.Exit(color.RedString("Error reading %s: %s", s.filename, err), 1)
	}

	printDiagnostics(os.Stderr, diags)
	log.Printf("parsed %d function(s), %d diagnostic(s)", len(file.Functions()), len(diags))

	if len(diags) > 0 && s.conf.FailFast() {
		return nil, cli.Exit(color.RedString("%d problem(s) found in %s", len(diags), s.filename), 1)
	}
	return file, nil
}

func (s *source) stream() (*tllex.Stream, error) {
	if s.inline {
		return tllex.NewStringStream(s.filename, s.code)
	}
	return tllex.OpenStream(s.filename)
}

func printDiagnostics(w io.Writer, diags parser.Diagnostics) {
	bold := color.New(color.Bold)
	for _, d := range diags {
		fmt.Fprintf(w, "%s %s %s (near %s)\n",
			bold.Sprint(d.Pos.String()+":"),
			color.RedString(d.Kind.String()+":"),
			d.Message,
			color.YellowString(d.Token))
	}
}

// createOutput opens the file named by --output.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// withOutput calls write with stdout or with the file named by --output.
func withOutput(c *cli.Context, write func(io.Writer) error) error {
	name := c.String("output")
	if name == "" {
		return write(os.Stdout)
	}

	f, err := createOutput(name)
	if err != nil {
		return cli.Exit(color.RedString("Error creating %s: %s", name, err), 1)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return cli.Exit(color.RedString("Error writing %s: %s", name, err), 1)
	}
	log.Println("wrote", name)
	return nil
}

func unwrite(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	if c.IsSet("indent") {
		src.conf.Format.Indent = c.Int("indent")
		if err := src.conf.Validate(); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
	}

	file, err := src.parse()
	if err != nil {
		return err
	}

	return withOutput(c, func(w io.Writer) error {
		if err := unwriter.Unwrite(w, file, unwriter.Options{Indent: src.conf.Format.Indent}); err != nil {
			return cli.Exit(color.RedString("Error writing source: %s", err), 1)
		}
		return nil
	})
}

func dumpAST(c *cli.Context) error {
	format := c.String("format")
	switch format {
	case "text", "json", "yaml":
	default:
		return cli.Exit(color.RedString("Error: unknown format %q", format), 1)
	}

	src, err := loadSource(c)
	if err != nil {
		return err
	}
	file, err := src.parse()
	if err != nil {
		return err
	}

	return withOutput(c, func(w io.Writer) error {
		switch format {
		case "json":
			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(file); err != nil {
				return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
			}
		case "yaml":
			encoder := yaml.NewEncoder(w)
			encoder.SetIndent(2)
			if err := encoder.Encode(file); err != nil {
				return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
			}
			return encoder.Close()
		default:
			ast.Fprint(w, file)
		}
		return nil
	})
}

func dumpTokens(c *cli.Context) error {
	src, err := loadSource(c)
	if err != nil {
		return err
	}
	stream, err := src.stream()
	if err != nil {
		return cli.Exit(color.RedString("Error reading %s: %s", src.filename, err), 1)
	}

	return withOutput(c, func(w io.Writer) error {
		for tok := stream.Next(); !tok.EOF(); tok = stream.Next() {
			name := tok.Kind.String()
			if tok.Is(tllex.Invalid) {
				name = color.RedString(name)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", tok.Pos, name, tok)
		}
		if err := stream.Err(); err != nil {
			return cli.Exit(color.RedString("Error reading %s: %s", src.filename, err), 1)
		}
		return nil
	})
}
