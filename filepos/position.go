// Package filepos tracks a cursor inside template source text.
//
// A Position is a value: the lexer keeps one live cursor and stamps tokens with
// copies of it, so snapshots never alias the cursor they were taken from.
package filepos

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position points at a character of Text.
// Index is a byte offset; Line and Col are 0-based.
type Position struct {
	Index int
	Line  int
	Col   int
	Name  string
	Text  string
}

// New returns a cursor placed on the first character of text.
func New(text, name string) Position {
	return Position{Name: name, Text: text}
}

// Advance moves past ch, the character currently under the cursor.
func (p *Position) Advance(ch rune) *Position {
	p.Index += runeLen(ch)
	p.Col++

	if ch == '\n' {
		p.Line++
		p.Col = 0
	}

	return p
}

// Reverse undoes Advance(ch).
func (p *Position) Reverse(ch rune) *Position {
	p.Index -= runeLen(ch)
	if p.Index < 0 {
		p.Index = 0
	}

	if ch != '\n' {
		if p.Col > 0 {
			p.Col--
		}

		return p
	}

	p.Line--

	lineStart := strings.LastIndexByte(p.Text[:p.Index], '\n') + 1
	p.Col = utf8.RuneCountInString(p.Text[lineStart:p.Index])

	return p
}

// Copy returns an independent snapshot.
func (p Position) Copy() Position {
	return p
}

// IsKnown reports whether the position was produced from real source text.
func (p Position) IsKnown() bool {
	return p.Text != "" || p.Index > 0 || p.Name != ""
}

// SourceLine returns the line of Text the position is on, without the newline.
func (p Position) SourceLine() string {
	idx := min(max(p.Index, 0), len(p.Text))

	start := strings.LastIndexByte(p.Text[:idx], '\n') + 1

	end := strings.IndexByte(p.Text[idx:], '\n')
	if end < 0 {
		return p.Text[start:]
	}

	return p.Text[start : idx+end]
}

// String renders name:line:col with 1-based line and column.
func (p Position) String() string {
	name := p.Name
	if name == "" {
		name = "<template>"
	}

	return fmt.Sprintf("%s:%d:%d", name, p.Line+1, p.Col+1)
}

func runeLen(ch rune) int {
	n := utf8.RuneLen(ch)
	if n < 0 {
		return 1
	}

	return n
}
