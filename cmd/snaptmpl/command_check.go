package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snaptmpl"
)

// CheckCmd tokenizes and parses templates without rendering them
type CheckCmd struct {
	Templates []string `arg:"" help:"Template files to check" type:"path"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	failed := 0

	for _, path := range cmd.Templates {
		text, name, err := readTemplate(ctx, path, config.SourceName)
		if err == nil {
			_, err = snaptmpl.Compile(name, text)
		}

		if err != nil {
			failed++

			printError(ctx.Stderr, err)

			continue
		}

		if !ctx.Quiet {
			color.New(color.FgGreen).Fprintf(ctx.Stdout, "OK %s\n", name)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCheckFailed, failed, len(cmd.Templates))
	}

	return nil
}
