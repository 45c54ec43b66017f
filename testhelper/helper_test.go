package testhelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimIndent(t *testing.T) {
	got := TrimIndent(t, `
		Hello {{ name }}
		  nested
			tabbed
		`)

	assert.Equal(t, "Hello {{ name }}\n  nested\n\ttabbed\n", got, GetCaller(t))
}

func TestTrimIndentSingleLine(t *testing.T) {
	assert.Equal(t, "abc", TrimIndent(t, "abc"))
}

func TestParseGoldenCase(t *testing.T) {
	c, ok := ParseGoldenCase("hello.txt", "Hi {{ name }}\n---\nname: Bob\n+++\nHi Bob\n")
	assert.True(t, ok)
	assert.Equal(t, "hello", c.Name)
	assert.Equal(t, "Hi {{ name }}", c.Template)
	assert.Equal(t, "name: Bob", c.Context)
	assert.Equal(t, "Hi Bob", c.Expected)
	assert.False(t, c.WantsError())

	c, ok = ParseGoldenCase("bad.txt", "{{ x }}\r\n---\r\n+++\r\nERR: Unknown variable\r\n")
	assert.True(t, ok)
	assert.Equal(t, "", c.Context)
	assert.True(t, c.WantsError())
	assert.Equal(t, "Unknown variable", c.Error)

	_, ok = ParseGoldenCase("broken.txt", "no separators")
	assert.False(t, ok)
}
