package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Spec  string `kong:"required,short='s',help='Bindings spec (.json, .yaml or .yml).'"`
	Out   string `kong:"required,short='o',help='Output .go file.'"`
	Check bool   `kong:"help='Fail if the output file is out of date instead of writing it.'"`
}

func run(args []string, stdout io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("injectgen"),
		kong.Description("Generates a di binding table from a bindings spec."),
		kong.Writers(stdout, stdout),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}
	return generate(cli.Spec, cli.Out, cli.Check)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
