// Package snaptmpl renders text templates made of literal text,
// {{ variable }} interpolations and {% for %} / {% if %} blocks.
//
// The pipeline is tokenizer, parser and interpreter; this package wires them
// together and adds context loading helpers used by the command line tool.
package snaptmpl

import (
	"fmt"

	"github.com/shibukawa/snaptmpl/ast"
	"github.com/shibukawa/snaptmpl/interpreter"
	"github.com/shibukawa/snaptmpl/parser"
	"github.com/shibukawa/snaptmpl/tokenizer"
)

// Tokenize splits text into tokens. sourceName is used in error positions.
func Tokenize(text, sourceName string) ([]tokenizer.Token, error) {
	return tokenizer.Tokenize(text, sourceName)
}

// Parse builds the syntax tree for a token sequence.
func Parse(tokens []tokenizer.Token) (*ast.ListNode, error) {
	return parser.Parse(tokens)
}

// Render evaluates a syntax tree against context.
func Render(root ast.Node, context map[string]any) (string, error) {
	return interpreter.Render(root, context)
}

// Template is a parsed template. It holds no render state and can be
// rendered any number of times, including concurrently.
type Template struct {
	name string
	text string
	root *ast.ListNode
}

// Compile tokenizes and parses text.
func Compile(name, text string) (*Template, error) {
	tokens, err := Tokenize(text, name)
	if err != nil {
		return nil, err
	}

	root, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	return &Template{name: name, text: text, root: root}, nil
}

// MustCompile is like Compile but panics if the template cannot be parsed.
func MustCompile(name, text string) *Template {
	tmpl, err := Compile(name, text)
	if err != nil {
		panic(fmt.Sprintf("snaptmpl: Compile(%q): %v", name, err))
	}

	return tmpl
}

// Name returns the source name given to Compile.
func (t *Template) Name() string {
	return t.name
}

// Source returns the template text.
func (t *Template) Source() string {
	return t.text
}

// Root returns the syntax tree.
func (t *Template) Root() *ast.ListNode {
	return t.root
}

// Render evaluates the template with a fresh interpreter.
func (t *Template) Render(context map[string]any) (string, error) {
	return interpreter.New(context).Run(t.root)
}

// RenderString compiles and renders text in one step.
func RenderString(name, text string, context map[string]any) (string, error) {
	tmpl, err := Compile(name, text)
	if err != nil {
		return "", err
	}

	return tmpl.Render(context)
}
