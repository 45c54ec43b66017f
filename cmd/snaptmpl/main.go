package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

const version = "0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path (default: snaptmpl.yaml if present)"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Render  RenderCmd  `cmd:"" help:"Render a template with context data"`
	Tokens  TokensCmd  `cmd:"" help:"Print the tokens of a template"`
	Ast     AstCmd     `cmd:"" help:"Print the syntax tree of a template"`
	Check   CheckCmd   `cmd:"" help:"Check that templates parse"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "snaptmpl v%s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("snaptmpl"),
		kong.Description("Render {{ }} / {% %} text templates."),
		kong.UsageOnError(),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		printError(appCtx.Stderr, err)
		os.Exit(1)
	}
}
