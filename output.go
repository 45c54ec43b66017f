package snaptmpl

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownToHTML converts rendered Markdown into HTML.
func MarkdownToHTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	return buf.String(), nil
}

// FormatOutput post-processes a rendered template according to output settings.
func FormatOutput(rendered string, output OutputConfig) (string, error) {
	result := rendered

	switch output.Format {
	case "", FormatText:
	case FormatHTML:
		converted, err := MarkdownToHTML(rendered)
		if err != nil {
			return "", err
		}

		result = converted
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownOutputFormat, output.Format)
	}

	if output.TrailingNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	return result, nil
}
