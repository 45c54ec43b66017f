package tokenizer

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snaptmpl/tmplerror"
)

type tokenSummary struct {
	Type   TokenType
	Value  string
	Indent int
}

func summarize(tokens []Token) []tokenSummary {
	result := make([]tokenSummary, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, tokenSummary{token.Type, token.Value, token.Indent})
	}

	return result
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenSummary
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []tokenSummary{{EOF, "", 0}},
		},
		{
			name:  "plain text with lone braces",
			input: "a { b } c",
			expected: []tokenSummary{
				{STRING, "a { b } c", 0},
				{EOF, "", 0},
			},
		},
		{
			name:  "variable block",
			input: "Hello {{ name }}!",
			expected: []tokenSummary{
				{STRING, "Hello ", 0},
				{VARBLOCK_OPEN, "", 0},
				{IDENTIFIER, "name", 1},
				{VARBLOCK_CLOSE, "", 1},
				{STRING, "!", 0},
				{EOF, "", 0},
			},
		},
		{
			name:  "if block with keywords",
			input: "{% if x.y == True %}A{% endif %}",
			expected: []tokenSummary{
				{CODEBLOCK_OPEN, "", 0},
				{KEYWORD, "if", 1},
				{IDENTIFIER, "x.y", 1},
				{KEYWORD, "==", 1},
				{KEYWORD, "True", 1},
				{CODEBLOCK_CLOSE, "", 1},
				{STRING, "A", 0},
				{CODEBLOCK_OPEN, "", 0},
				{KEYWORD, "endif", 1},
				{CODEBLOCK_CLOSE, "", 1},
				{EOF, "", 0},
			},
		},
		{
			name:  "whitespace inside blocks is skipped",
			input: "{%\tfor\r\n item  in items %}",
			expected: []tokenSummary{
				{CODEBLOCK_OPEN, "", 0},
				{KEYWORD, "for", 1},
				{IDENTIFIER, "item", 1},
				{KEYWORD, "in", 1},
				{IDENTIFIER, "items", 1},
				{CODEBLOCK_CLOSE, "", 1},
				{EOF, "", 0},
			},
		},
		{
			name:  "nested open increments indentation",
			input: "{% {{ x }} %}",
			expected: []tokenSummary{
				{CODEBLOCK_OPEN, "", 0},
				{VARBLOCK_OPEN, "", 1},
				{IDENTIFIER, "x", 2},
				{VARBLOCK_CLOSE, "", 2},
				{CODEBLOCK_CLOSE, "", 1},
				{EOF, "", 0},
			},
		},
		{
			name:  "unterminated block is left to the parser",
			input: "{{ x",
			expected: []tokenSummary{
				{VARBLOCK_OPEN, "", 0},
				{IDENTIFIER, "x", 1},
				{EOF, "", 1},
			},
		},
		{
			name:  "text keeps newlines",
			input: "a\n\nb",
			expected: []tokenSummary{
				{STRING, "a\n\nb", 0},
				{EOF, "", 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, "")
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, summarize(tokens))
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := Tokenize("ab\n{{ x }}", "t.txt")
	assert.NoError(t, err)
	assert.Equal(t, 5, len(tokens))

	open := tokens[1]
	assert.Equal(t, VARBLOCK_OPEN, open.Type)
	assert.Equal(t, 1, open.Start.Line)
	assert.Equal(t, 0, open.Start.Col)
	assert.Equal(t, 2, open.End.Col)
	assert.Equal(t, 3, open.Start.Index)

	ident := tokens[2]
	assert.Equal(t, 3, ident.Start.Col)
	assert.Equal(t, 4, ident.End.Col)
	assert.Equal(t, "t.txt:2:4", ident.Start.String())

	eofToken := tokens[4]
	assert.Equal(t, EOF, eofToken.Type)
	assert.Equal(t, len("ab\n{{ x }}"), eofToken.Start.Index)
	assert.Equal(t, eofToken.Start, eofToken.End)
}

func TestTokenizeMultibyte(t *testing.T) {
	tokens, err := Tokenize("日本 {{ 語 }}", "")
	assert.Error(t, err)
	assert.Zero(t, tokens)

	lexErr, ok := AsLexError(err)
	assert.True(t, ok)
	assert.Equal(t, '語', lexErr.Char)
	assert.Equal(t, 6, lexErr.Err.Start.Col)

	tokens, err = Tokenize("日本 {{ x }}", "")
	assert.NoError(t, err)
	assert.Equal(t, "日本 ", tokens[0].Value)
	assert.Equal(t, 3, tokens[1].Start.Col)
	assert.Equal(t, len("日本 "), tokens[1].Start.Index)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     tmplerror.Kind
		sentinel error
		char     rune
		block    BlockKind
		col      int
	}{
		{
			name:     "close outside block",
			input:    "a }} b",
			kind:     tmplerror.IllegalCharacter,
			sentinel: tmplerror.ErrIllegalCharacter,
			char:     '}',
			block:    TextMode,
			col:      2,
		},
		{
			name:     "code close in variable block",
			input:    "{{ a %}",
			kind:     tmplerror.ExpectedDelimiter,
			sentinel: tmplerror.ErrExpectedDelimiter,
			char:     '%',
			block:    VarBlock,
			col:      5,
		},
		{
			name:     "variable close in code block",
			input:    "{% if a }}",
			kind:     tmplerror.ExpectedDelimiter,
			sentinel: tmplerror.ErrExpectedDelimiter,
			char:     '}',
			block:    CodeBlock,
			col:      8,
		},
		{
			name:     "illegal character inside block",
			input:    "{{ a-b }}",
			kind:     tmplerror.ExpectedDelimiter,
			sentinel: tmplerror.ErrExpectedDelimiter,
			char:     '-',
			block:    VarBlock,
			col:      4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input, "")
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))

			lexErr, ok := AsLexError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, lexErr.Err.Kind)
			assert.Equal(t, tt.char, lexErr.Char)
			assert.Equal(t, tt.block, lexErr.Block)
			assert.Equal(t, tt.col, lexErr.Err.Start.Col)

			tErr, ok := tmplerror.As(err)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, tErr.Kind)
		})
	}
}

func TestTokensStopsEarly(t *testing.T) {
	count := 0
	for token, err := range NewTokenizer("a{{ b }}c", "").Tokens() {
		assert.NoError(t, err)
		count++
		if token.Type == VARBLOCK_OPEN {
			break
		}
	}

	assert.Equal(t, 2, count)
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "CODEBLOCK_OPEN", CODEBLOCK_OPEN.String())
	assert.Equal(t, "KEYWORD: endfor", Token{Type: KEYWORD, Value: "endfor"}.String())
	assert.True(t, IsKeyword("=="))
	assert.False(t, IsKeyword("elif"))
}
