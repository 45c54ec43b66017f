package testhelper

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Golden file separators.
const (
	ContextSeparator  = "\n---\n"
	ExpectedSeparator = "\n+++\n"
	ErrorPrefix       = "ERR:"
)

// GoldenCase is one template fixture.
//
// A fixture file holds the template, the YAML context and the expected output:
//
//	Hello {{ name }}
//	---
//	name: World
//	+++
//	Hello World
//
// An expected section starting with "ERR:" names a substring of the expected error.
type GoldenCase struct {
	Name     string
	Template string
	Context  string
	Expected string
	Error    string
}

// WantsError reports whether the case expects rendering to fail.
func (c GoldenCase) WantsError() bool {
	return c.Error != ""
}

// LoadGoldenCases reads every *.txt fixture in dir, sorted by name.
func LoadGoldenCases(t *testing.T, dir string) []GoldenCase {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		t.Fatalf("failed to list golden files in %s: %v", dir, err)
	}

	sort.Strings(paths)

	cases := make([]GoldenCase, 0, len(paths))

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}

		c, ok := ParseGoldenCase(filepath.Base(path), string(content))
		if !ok {
			t.Fatalf("%s: expected template%scontext%sexpected sections", path, strings.TrimSpace(ContextSeparator), strings.TrimSpace(ExpectedSeparator))
		}

		cases = append(cases, c)
	}

	return cases
}

// ParseGoldenCase splits fixture content into its sections.
// Line endings are normalized to "\n".
func ParseGoldenCase(name, content string) (GoldenCase, bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	template, rest, ok := strings.Cut(content, ContextSeparator)
	if !ok {
		return GoldenCase{}, false
	}

	// prepend a newline so an empty context section still matches
	context, expected, ok := strings.Cut("\n"+rest, ExpectedSeparator)
	if !ok {
		return GoldenCase{}, false
	}

	context = strings.TrimPrefix(context, "\n")

	c := GoldenCase{
		Name:     strings.TrimSuffix(name, filepath.Ext(name)),
		Template: template,
		Context:  context,
	}

	if strings.HasPrefix(expected, ErrorPrefix) {
		c.Error = strings.TrimSpace(strings.TrimPrefix(expected, ErrorPrefix))
	} else {
		c.Expected = strings.TrimSuffix(expected, "\n")
	}

	return c, true
}
