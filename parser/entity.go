package parser

import (
	"errors"
	"slices"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/shibukawa/snaptmpl/ast"
	"github.com/shibukawa/snaptmpl/tmplerror"
	"github.com/shibukawa/snaptmpl/tokenizer"
)

// Entity is the value carried through the combinators: a source token, or the
// node a rule built from a run of tokens.
type Entity struct {
	Original tokenizer.Token
	Node     ast.Node
}

// TokenToEntity wraps tokenizer output for the combinators.
func TokenToEntity(tokens []tokenizer.Token) []pc.Token[Entity] {
	results := make([]pc.Token[Entity], 0, len(tokens))

	for _, token := range tokens {
		results = append(results, pc.Token[Entity]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Start.Line + 1,
				Col:   token.Start.Col + 1,
				Index: token.Start.Index,
			},
			Val: Entity{Original: token},
			Raw: token.Value,
		})
	}

	return results
}

func nodeResult(typeName string, node ast.Node, at pc.Token[Entity]) []pc.Token[Entity] {
	return []pc.Token[Entity]{
		{
			Type: typeName,
			Pos:  at.Pos,
			Val:  Entity{Original: at.Val.Original, Node: node},
		},
	}
}

func primitiveType(typeName string, types ...tokenizer.TokenType) pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Original.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func keywordType(typeName string, words ...string) pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) > 0 && tokens[0].Val.Original.Type == tokenizer.KEYWORD &&
			slices.Contains(words, tokens[0].Val.Original.Value) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

var (
	text       = primitiveType("text", tokenizer.STRING)
	identifier = primitiveType("identifier", tokenizer.IDENTIFIER)
	codeOpen   = primitiveType("codeOpen", tokenizer.CODEBLOCK_OPEN)
	codeClose  = primitiveType("codeClose", tokenizer.CODEBLOCK_CLOSE)
	varOpen    = primitiveType("varOpen", tokenizer.VARBLOCK_OPEN)
	varClose   = primitiveType("varClose", tokenizer.VARBLOCK_CLOSE)

	forKeyword    = keywordType("for", tokenizer.KeywordFor)
	ifKeyword     = keywordType("if", tokenizer.KeywordIf)
	inKeyword     = keywordType("in", tokenizer.KeywordIn)
	notKeyword    = keywordType("not", tokenizer.KeywordNot)
	endForKeyword = keywordType("endfor", tokenizer.KeywordEndFor)
	endIfKeyword  = keywordType("endif", tokenizer.KeywordEndIf)
	boolLiteral   = keywordType("bool", tokenizer.KeywordTrue, tokenizer.KeywordFalse)
	comparator    = keywordType("comparator", tokenizer.KeywordIs, tokenizer.KeywordEqual)

	forHead = pc.Seq(codeOpen, forKeyword)
	ifHead  = pc.Seq(codeOpen, ifKeyword)
	// endTag returns: '{%', endfor|endif
	endTag = pc.Seq(codeOpen, pc.Or(endForKeyword, endIfKeyword))
	// operand returns: True|False|identifier
	operand = pc.Or(boolLiteral, identifier)
)

// syntaxError carries a template error through the combinators. Recoverable
// failures unwrap to pc.ErrNotMatch, the rest to pc.ErrCritical.
type syntaxError struct {
	err      *tmplerror.Error
	critical bool
}

func (e *syntaxError) Error() string {
	return e.err.Error()
}

func (e *syntaxError) Unwrap() []error {
	if e.critical {
		return []error{e.err, pc.ErrCritical}
	}

	return []error{e.err, pc.ErrNotMatch}
}

// recoverable reports a failure the enclosing rule may stop in front of.
func recoverable(token tokenizer.Token, kind tmplerror.Kind, format string, args ...any) error {
	return &syntaxError{err: tmplerror.New(kind, token.Start, token.End, format, args...)}
}

// critical reports a failure that aborts the parse.
func critical(token tokenizer.Token, kind tmplerror.Kind, format string, args ...any) error {
	return &syntaxError{err: tmplerror.New(kind, token.Start, token.End, format, args...), critical: true}
}

func templateError(err error) error {
	var sErr *syntaxError
	if errors.As(err, &sErr) {
		return sErr.err
	}

	return err
}
