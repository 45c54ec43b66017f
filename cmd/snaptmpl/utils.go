package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/snaptmpl"
	"github.com/shibukawa/snaptmpl/tmplerror"
)

const stdinName = "-"

// loadConfig loads the configuration named by --config, or snaptmpl.yaml when present.
func loadConfig(ctx *Context) (*snaptmpl.Config, error) {
	path := ctx.Config
	if path == "" {
		path = snaptmpl.DefaultConfigFile
	} else if !fileExists(path) {
		return nil, fmt.Errorf("%w: %s", snaptmpl.ErrConfigFileNotFound, path)
	}

	config, err := snaptmpl.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if ctx.Verbose && fileExists(path) {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, "Loaded configuration: %s\n", path)
	}

	return config, nil
}

// readTemplate reads a template file, or stdin when path is "-".
// It returns the source name used in error positions.
func readTemplate(ctx *Context, path string, stdinSource string) (string, string, error) {
	if path == stdinName {
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), stdinSource, nil
	}

	if !fileExists(path) {
		return "", "", fmt.Errorf("%w: %s", ErrInputFileNotExist, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read template: %w", err)
	}

	return string(data), path, nil
}

// printError writes err to w. Template errors show the source line and a caret.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed)

	tErr, ok := tmplerror.As(err)
	if !ok {
		red.Fprintf(w, "Error: %v\n", err)
		return
	}

	header, line, caret := tErr.Parts()

	red.Add(color.Bold).Fprintf(w, "%s\n", header)

	if line == "" && !tErr.Start.IsKnown() {
		return
	}

	fmt.Fprintf(w, "\n%s\n", line)

	caretMark, detail, _ := strings.Cut(caret, "^")
	fmt.Fprint(w, caretMark)
	color.New(color.FgRed).Fprint(w, "^")
	fmt.Fprintf(w, "%s\n", detail)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
