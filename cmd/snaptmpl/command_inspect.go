package main

import (
	"fmt"

	"github.com/shibukawa/snaptmpl"
	"github.com/shibukawa/snaptmpl/ast"
)

// TokensCmd prints the token stream of a template
type TokensCmd struct {
	Template string `arg:"" help:"Template file, or - to read stdin"`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	text, name, err := readTemplate(ctx, cmd.Template, config.SourceName)
	if err != nil {
		return err
	}

	tokens, err := snaptmpl.Tokenize(text, name)
	if err != nil {
		return err
	}

	for _, tok := range tokens {
		fmt.Fprintf(ctx.Stdout, "%s\t%s\n", tok.Start.String(), tok.String())
	}

	return nil
}

// AstCmd prints the syntax tree of a template
type AstCmd struct {
	Template string `arg:"" help:"Template file, or - to read stdin"`
}

// Run executes the ast command
func (cmd *AstCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	text, name, err := readTemplate(ctx, cmd.Template, config.SourceName)
	if err != nil {
		return err
	}

	tmpl, err := snaptmpl.Compile(name, text)
	if err != nil {
		return err
	}

	fmt.Fprint(ctx.Stdout, ast.Dump(tmpl.Root()))

	return nil
}
