// Package parser turns a token sequence into a template syntax tree.
//
// Rules are parsercombinator parsers over Entity tokens: each returns how
// many tokens it consumed next to its result. A rule that fails no further
// than its opening delimiter fails with pc.ErrNotMatch and statements stops
// in front of it; any later failure is pc.ErrCritical and aborts the parse.
package parser

import (
	"errors"
	"fmt"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/shibukawa/snaptmpl/ast"
	"github.com/shibukawa/snaptmpl/tmplerror"
	"github.com/shibukawa/snaptmpl/tokenizer"
)

// Parser holds the token stream for one parse.
type Parser struct {
	tokens []pc.Token[Entity]
	block  pc.Parser[Entity]

	// failure remembered by the last stop in statements
	backtracked *tmplerror.Error
	stoppedAt   int
}

// New creates a parser. A trailing EOF token is added when tokens lack one.
func New(tokens []tokenizer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != tokenizer.EOF {
		var end tokenizer.Token
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = tokenizer.NewToken(tokenizer.EOF, "", last.End, &last.End, 0)
		} else {
			end = tokenizer.Token{Type: tokenizer.EOF}
		}

		tokens = append(append([]tokenizer.Token(nil), tokens...), end)
	}

	p := &Parser{tokens: TokenToEntity(tokens)}
	p.block = pc.Or(
		pc.Trace("for", p.forExpr),
		pc.Trace("if", p.ifExpr),
	)

	return p
}

// Parse is a shorthand for New(tokens).Parse().
func Parse(tokens []tokenizer.Token) (*ast.ListNode, error) {
	return New(tokens).Parse()
}

// Parse builds the tree. The whole token sequence up to EOF must be consumed.
func (p *Parser) Parse() (*ast.ListNode, error) {
	p.backtracked = nil

	pctx := pc.NewParseContext[Entity]()
	pctx.OrMode = pc.OrModeTryFast

	consumed, match, err := pc.Trace("template", p.statements(0))(pctx, p.tokens)
	if err != nil {
		return nil, templateError(err)
	}

	if rest := p.tokens[consumed]; rest.Val.Original.Type != tokenizer.EOF {
		if p.backtracked != nil && p.stoppedAt == consumed {
			return nil, p.backtracked
		}

		token := rest.Val.Original

		return nil, tmplerror.New(tmplerror.InvalidSyntax, token.Start, token.End, "Unexpected %s", describe(token))
	}

	return match[0].Val.Node.(*ast.ListNode), nil
}

// offset is the index of tokens[0] in the whole stream.
func (p *Parser) offset(tokens []pc.Token[Entity]) int {
	return len(p.tokens) - len(tokens)
}

func (p *Parser) remember(err error, tokens []pc.Token[Entity]) {
	var sErr *syntaxError
	if errors.As(err, &sErr) {
		p.backtracked = sErr.err
		p.stoppedAt = p.offset(tokens)
	}
}

// expect runs a single token matcher and turns a mismatch into a critical error.
func expect(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity], matcher pc.Parser[Entity], kind tmplerror.Kind, format string) (tokenizer.Token, error) {
	_, match, err := matcher(pctx, tokens)
	if err != nil {
		found := tokens[0].Val.Original
		return tokenizer.Token{}, critical(found, kind, format, describe(found))
	}

	return match[0].Val.Original, nil
}

func describe(token tokenizer.Token) string {
	switch token.Type {
	case tokenizer.EOF:
		return "end of template"
	case tokenizer.CODEBLOCK_OPEN:
		return "'{%'"
	case tokenizer.CODEBLOCK_CLOSE:
		return "'%}'"
	case tokenizer.VARBLOCK_OPEN:
		return "'{{'"
	case tokenizer.VARBLOCK_CLOSE:
		return "'}}'"
	case tokenizer.STRING:
		return "text"
	default:
		return fmt.Sprintf("'%s'", token.Value)
	}
}
