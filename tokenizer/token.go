package tokenizer

import (
	"github.com/shibukawa/snaptmpl/filepos"
)

// TokenType represents the type of a token
type TokenType int

const (
	EOF TokenType = iota
	STRING
	IDENTIFIER
	KEYWORD
	CODEBLOCK_OPEN  // {%
	CODEBLOCK_CLOSE // %}
	VARBLOCK_OPEN   // {{
	VARBLOCK_CLOSE  // }}
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case STRING:
		return "STRING"
	case IDENTIFIER:
		return "IDENTIFIER"
	case KEYWORD:
		return "KEYWORD"
	case CODEBLOCK_OPEN:
		return "CODEBLOCK_OPEN"
	case CODEBLOCK_CLOSE:
		return "CODEBLOCK_CLOSE"
	case VARBLOCK_OPEN:
		return "VARBLOCK_OPEN"
	case VARBLOCK_CLOSE:
		return "VARBLOCK_CLOSE"
	default:
		return "UNKNOWN"
	}
}

// Keywords recognized inside blocks. The set is closed.
const (
	KeywordFor    = "for"
	KeywordEndFor = "endfor"
	KeywordEndIf  = "endif"
	KeywordIn     = "in"
	KeywordIs     = "is"
	KeywordEqual  = "=="
	KeywordIf     = "if"
	KeywordNot    = "not"
	KeywordTrue   = "True"
	KeywordFalse  = "False"
)

var keywords = map[string]struct{}{
	KeywordFor:    {},
	KeywordEndFor: {},
	KeywordEndIf:  {},
	KeywordIn:     {},
	KeywordIs:     {},
	KeywordEqual:  {},
	KeywordIf:     {},
	KeywordNot:    {},
	KeywordTrue:   {},
	KeywordFalse:  {},
}

// IsKeyword reports whether word belongs to the keyword set.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Token is an immutable lexical unit.
// Indent is the block nesting depth the lexer was at when the token was emitted;
// opening delimiters carry the depth before they open.
type Token struct {
	Type   TokenType
	Value  string
	Start  filepos.Position
	End    filepos.Position
	Indent int
}

// NewToken creates a token. When end is nil the token spans the single character at start.
func NewToken(typ TokenType, value string, start filepos.Position, end *filepos.Position, indent int) Token {
	token := Token{
		Type:   typ,
		Value:  value,
		Start:  start.Copy(),
		Indent: indent,
	}

	if end != nil {
		token.End = end.Copy()
	} else {
		token.End = endOf(start)
	}

	return token
}

// Matches reports whether the token has the given type and value.
func (t Token) Matches(typ TokenType, value string) bool {
	return t.Type == typ && t.Value == value
}

// IsKeyword reports whether the token is the keyword word.
func (t Token) IsKeyword(word string) bool {
	return t.Matches(KEYWORD, word)
}

// String returns the string representation of Token
func (t Token) String() string {
	if t.Value != "" {
		return t.Type.String() + ": " + t.Value
	}

	return t.Type.String()
}

func endOf(start filepos.Position) filepos.Position {
	end := start.Copy()

	if start.Index < len(start.Text) {
		for _, ch := range start.Text[start.Index:] {
			end.Advance(ch)
			break
		}
	}

	return end
}
