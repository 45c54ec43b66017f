package tokenizer

import (
	"errors"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/shibukawa/snaptmpl/filepos"
	"github.com/shibukawa/snaptmpl/tmplerror"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// BlockKind is the lexer mode.
type BlockKind int

const (
	TextMode BlockKind = iota
	CodeBlock
	VarBlock
)

func (b BlockKind) String() string {
	switch b {
	case CodeBlock:
		return "code block"
	case VarBlock:
		return "variable block"
	default:
		return "text"
	}
}

// LexError is raised for illegal or unexpected characters.
type LexError struct {
	Err   *tmplerror.Error
	Char  rune
	Block BlockKind
}

func (e *LexError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying template error
func (e *LexError) Unwrap() error {
	return e.Err
}

// Tokenizer splits template text into tokens
type Tokenizer struct {
	input string
	name  string
}

// NewTokenizer creates a new Tokenizer. Invalid UTF-8 sequences are replaced
// with U+FFFD so positions stay consistent with the decoded runes.
func NewTokenizer(input, name string) *Tokenizer {
	return &Tokenizer{
		input: strings.ToValidUTF8(input, string(utf8.RuneError)),
		name:  name,
	}
}

// Tokens returns an iterator of tokens.
// The iteration stops after the first error; a successful run ends with EOF.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input: t.input,
			pos:   filepos.New(t.input, t.name),
		}

		tokenizer.load()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if !yield(token, nil) {
				return
			}

			if token.Type == EOF {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Tokenize is a shorthand for NewTokenizer(text, name).AllTokens().
func Tokenize(text, name string) ([]Token, error) {
	return NewTokenizer(text, name).AllTokens()
}

// AsLexError returns the *LexError in err's chain.
func AsLexError(err error) (*LexError, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr, true
	}

	return nil, false
}

const eof = -1

// Internal tokenizer implementation
type tokenizer struct {
	input   string
	pos     filepos.Position
	current rune
	blocks  []BlockKind
}

func (t *tokenizer) depth() int {
	return len(t.blocks)
}

func (t *tokenizer) mode() BlockKind {
	if len(t.blocks) == 0 {
		return TextMode
	}

	return t.blocks[len(t.blocks)-1]
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	for {
		if t.current == eof {
			return NewToken(EOF, "", t.pos, nil, t.depth()), nil
		}

		if t.mode() == TextMode {
			switch {
			case t.atOpen():
				return t.openBlock(), nil
			case t.current == '}' && t.peekChar() == '}':
				return Token{}, t.errorf(tmplerror.IllegalCharacter, "Unexpected '}}' outside of a block")
			default:
				return t.readText(), nil
			}
		}

		switch {
		case t.current == ' ' || t.current == '\t' || t.current == '\r' || t.current == '\n':
			t.readChar()
			continue
		case t.current == '%' && t.peekChar() == '}':
			if t.mode() != CodeBlock {
				return Token{}, t.errorf(tmplerror.ExpectedDelimiter, "Expected '}}' but '%%}' found")
			}
			return t.closeBlock(CODEBLOCK_CLOSE), nil
		case t.current == '}' && t.peekChar() == '}':
			if t.mode() != VarBlock {
				return Token{}, t.errorf(tmplerror.ExpectedDelimiter, "Expected '%%}' but '}}' found")
			}
			return t.closeBlock(VARBLOCK_CLOSE), nil
		case t.atOpen():
			return t.openBlock(), nil
		case isIdentifierChar(t.current):
			return t.readWord(), nil
		default:
			return Token{}, t.errorf(tmplerror.ExpectedDelimiter, "Expected %s but '%c' found", closingOf(t.mode()), t.current)
		}
	}
}

// load decodes the character under the cursor
func (t *tokenizer) load() {
	if t.pos.Index >= len(t.input) {
		t.current = eof
		return
	}

	t.current, _ = utf8.DecodeRuneInString(t.input[t.pos.Index:])
}

// readChar moves the cursor to the next character
func (t *tokenizer) readChar() {
	if t.current == eof {
		return
	}

	t.pos.Advance(t.current)
	t.load()
}

// unreadChar moves the cursor back onto prev
func (t *tokenizer) unreadChar(prev rune) {
	t.pos.Reverse(prev)
	t.current = prev
}

// peekChar returns the character after the current one without consuming it
func (t *tokenizer) peekChar() rune {
	if t.current == eof {
		return eof
	}

	prev := t.current
	t.readChar()
	next := t.current
	t.unreadChar(prev)

	return next
}

func (t *tokenizer) atOpen() bool {
	if t.current != '{' {
		return false
	}

	next := t.peekChar()

	return next == '{' || next == '%'
}

func (t *tokenizer) openBlock() Token {
	start := t.pos.Copy()
	depth := t.depth()

	typ, kind := CODEBLOCK_OPEN, CodeBlock
	if t.peekChar() == '{' {
		typ, kind = VARBLOCK_OPEN, VarBlock
	}

	t.readChar()
	t.readChar()

	t.blocks = append(t.blocks, kind)

	return NewToken(typ, "", start, &t.pos, depth)
}

func (t *tokenizer) closeBlock(typ TokenType) Token {
	start := t.pos.Copy()
	depth := t.depth()

	t.readChar()
	t.readChar()

	t.blocks = t.blocks[:len(t.blocks)-1]

	return NewToken(typ, "", start, &t.pos, depth)
}

// readText reads literal text up to the next block delimiter.
// Lone braces are part of the text.
func (t *tokenizer) readText() Token {
	start := t.pos.Copy()

	var builder strings.Builder

	for t.current != eof {
		if t.atOpen() || (t.current == '}' && t.peekChar() == '}') {
			break
		}

		builder.WriteRune(t.current)
		t.readChar()
	}

	return NewToken(STRING, builder.String(), start, &t.pos, t.depth())
}

func (t *tokenizer) readWord() Token {
	start := t.pos.Copy()

	var builder strings.Builder

	for t.current != eof && isIdentifierChar(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	word := builder.String()

	typ := IDENTIFIER
	if IsKeyword(word) {
		typ = KEYWORD
	}

	return NewToken(typ, word, start, &t.pos, t.depth())
}

func (t *tokenizer) errorf(kind tmplerror.Kind, format string, args ...any) error {
	start := t.pos.Copy()
	end := endOf(start)

	return &LexError{
		Err:   tmplerror.New(kind, start, end, format, args...),
		Char:  t.current,
		Block: t.mode(),
	}
}

func closingOf(mode BlockKind) string {
	if mode == VarBlock {
		return "'}}'"
	}

	return "'%}'"
}

// isIdentifierChar reports whether ch belongs to [a-zA-Z0-9_.=]
func isIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '.' || ch == '='
}
