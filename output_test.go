package snaptmpl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOutput(t *testing.T) {
	out, err := FormatOutput("plain", OutputConfig{Format: FormatText})
	require.NoError(t, err)
	assert.Equal(t, "plain", out)

	out, err = FormatOutput("plain", OutputConfig{Format: FormatText, TrailingNewline: true})
	require.NoError(t, err)
	assert.Equal(t, "plain\n", out)

	out, err = FormatOutput("# Title\n\n- a\n", OutputConfig{Format: FormatHTML})
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<li>a</li>")

	_, err = FormatOutput("x", OutputConfig{Format: "pdf"})
	assert.True(t, errors.Is(err, ErrUnknownOutputFormat))
}

func TestRenderedMarkdownToHTML(t *testing.T) {
	tmpl := MustCompile("list.md", "{% for item in items %}- {{ item }}\n{% endfor %}")

	md, err := tmpl.Render(map[string]any{"items": []string{"one", "two"}})
	require.NoError(t, err)

	html, err := MarkdownToHTML(md)
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n", html)
}
