package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/shibukawa/snaptmpl"
)

// RenderCmd represents the render command
type RenderCmd struct {
	Template string   `arg:"" help:"Template file, or - to read stdin"`
	Data     []string `help:"YAML or JSON data file (repeatable)" short:"d" sep:"none"`
	EnvFile  []string `help:"Env file exposed under 'env' (repeatable)" name:"env-file" sep:"none"`
	Set      []string `help:"Set a value, e.g. name=World or user.age=3 (repeatable)" sep:"none" placeholder:"KEY=VALUE"`
	Output   string   `help:"Write output to file instead of stdout" short:"o"`
	HTML     bool     `help:"Convert the rendered Markdown to HTML" name:"html"`
}

// Run executes the render command
func (cmd *RenderCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	text, name, err := readTemplate(ctx, cmd.Template, config.SourceName)
	if err != nil {
		return err
	}

	data, err := cmd.buildContext(ctx, config)
	if err != nil {
		return err
	}

	tmpl, err := snaptmpl.Compile(name, text)
	if err != nil {
		return err
	}

	rendered, err := tmpl.Render(data)
	if err != nil {
		return err
	}

	output := config.Output
	if cmd.HTML {
		output.Format = snaptmpl.FormatHTML
	}

	result, err := snaptmpl.FormatOutput(rendered, output)
	if err != nil {
		return err
	}

	if cmd.Output == "" {
		fmt.Fprint(ctx.Stdout, result)
		return nil
	}

	err = os.MkdirAll(filepath.Dir(cmd.Output), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	err = os.WriteFile(cmd.Output, []byte(result), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Stderr, "Rendered %s -> %s\n", name, cmd.Output)
	}

	return nil
}

// buildContext merges data files, env files and --set values, later layers winning.
func (cmd *RenderCmd) buildContext(ctx *Context, config *snaptmpl.Config) (map[string]any, error) {
	dataFiles := append(append([]string{}, config.DataFiles...), cmd.Data...)
	for _, path := range dataFiles {
		if !fileExists(path) {
			return nil, fmt.Errorf("%w: %s", ErrInputFileNotExist, path)
		}
	}

	data, err := snaptmpl.LoadDataFiles(dataFiles...)
	if err != nil {
		return nil, err
	}

	var env map[string]any

	envFiles := append(append([]string{}, config.EnvFiles...), cmd.EnvFile...)
	if len(envFiles) > 0 {
		env, err = snaptmpl.LoadEnvFiles(envFiles...)
		if err != nil {
			return nil, err
		}
	}

	sets, err := snaptmpl.ParseAssignments(cmd.Set)
	if err != nil {
		return nil, err
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, "Context: %d data file(s), %d env file(s), %d assignment(s)\n",
			len(dataFiles), len(envFiles), len(cmd.Set))
	}

	return snaptmpl.MergeData(data, env, sets), nil
}
