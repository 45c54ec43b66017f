package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var leadingWhitespace = regexp.MustCompile(`^[ \t]+`)

// TrimIndent removes the indentation of the first content line from every line
// of a raw string literal. The opening line break and a whitespace-only closing
// line are dropped, so
//
//	TrimIndent(t, `
//		Hello {{ name }}
//		  nested
//		`)
//
// yields "Hello {{ name }}\n  nested\n". Tabs after the common indent are kept.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	lines = lines[1:]

	if last := lines[len(lines)-1]; strings.TrimSpace(last) == "" {
		lines[len(lines)-1] = ""
	}

	indent := leadingWhitespace.FindString(lines[0])

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(lines, "\n")
}
