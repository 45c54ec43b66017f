package parser

import (
	"errors"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/shibukawa/snaptmpl/ast"
	"github.com/shibukawa/snaptmpl/explang"
	"github.com/shibukawa/snaptmpl/filepos"
	"github.com/shibukawa/snaptmpl/tmplerror"
	"github.com/shibukawa/snaptmpl/tokenizer"
)

// statements collects text and expressions until a token that belongs to an
// enclosing construct. Expressions are only tried on tokens stamped with indent.
// It returns one "statements" token holding an *ast.ListNode.
func (p *Parser) statements(indent int) pc.Parser[Entity] {
	return func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		items := []ast.Node{}
		consumed := 0

	loop:
		for {
			if n, match, err := text(pctx, tokens[consumed:]); err == nil {
				items = append(items, ast.NewStringNode(match[0].Val.Original))
				consumed += n

				continue
			}

			token := tokens[consumed].Val.Original

			switch token.Type {
			case tokenizer.EOF, tokenizer.KEYWORD, tokenizer.CODEBLOCK_CLOSE, tokenizer.VARBLOCK_CLOSE:
				break loop
			}

			if token.Indent != indent {
				break
			}

			n, match, err := p.expr(pctx, tokens[consumed:])
			if err != nil {
				if errors.Is(err, pc.ErrCritical) {
					return 0, nil, err
				}

				p.remember(err, tokens[consumed:])

				break
			}

			items = append(items, match[0].Val.Node)
			consumed += n
		}

		list := ast.NewListNode(items, tokens[0].Val.Original.Start, tokens[consumed].Val.Original.Start)

		return consumed, nodeResult("statements", list, tokens[0]), nil
	}
}

func (p *Parser) expr(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
	switch token := tokens[0].Val.Original; token.Type {
	case tokenizer.CODEBLOCK_OPEN:
		return p.blockExpr(pctx, tokens)
	case tokenizer.VARBLOCK_OPEN:
		return p.varExpr(pctx, tokens)
	default:
		return 0, nil, recoverable(token, tmplerror.InvalidSyntax, "Expected variable declaration but found %s", describe(token))
	}
}

// blockExpr dispatches `{% for` and `{% if`. Any other word after `{%` is a
// recoverable failure so an enclosing block can report its own close tag.
func (p *Parser) blockExpr(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
	consumed, match, err := p.block(pctx, tokens)
	if err == nil {
		return consumed, match, nil
	}

	if errors.Is(err, pc.ErrCritical) {
		return 0, nil, err
	}

	found := tokens[1].Val.Original

	return 0, nil, recoverable(found, tmplerror.InvalidSyntax, "Expected 'for' or 'if' but found %s", describe(found))
}

// varExpr parses `{{ <path> }}`.
func (p *Parser) varExpr(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
	consumed, _, err := varOpen(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	path := tokens[consumed].Val.Original
	if _, _, err := identifier(pctx, tokens[consumed:]); err != nil {
		return 0, nil, recoverable(path, tmplerror.ExpectedCharacter, "Expected identifier but found %s", describe(path))
	}

	if _, err := explang.ParseSteps(path.Value, path.Start); err != nil {
		return 0, nil, recoverable(path, tmplerror.InvalidSyntax, "Invalid variable path '%s': only name or name.property is supported", path.Value)
	}

	consumed++

	if _, err := expect(pctx, tokens[consumed:], varClose, tmplerror.ExpectedCharacter, "Expected '}}' but found %s"); err != nil {
		return 0, nil, err
	}

	consumed++

	return consumed, nodeResult("var", ast.NewVarAccessNode(path), tokens[0]), nil
}

// forExpr parses `{% for <var> in <name> %} body {% endfor %}`.
func (p *Parser) forExpr(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
	consumed, _, err := forHead(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	open := tokens[0].Val.Original

	loopVar, err := expect(pctx, tokens[consumed:], identifier, tmplerror.ExpectedCharacter, "Expected loop variable but found %s")
	if err != nil {
		return 0, nil, err
	}

	consumed++

	if _, err := expect(pctx, tokens[consumed:], inKeyword, tmplerror.ExpectedCharacter, "Expected 'in' but found %s"); err != nil {
		return 0, nil, err
	}

	consumed++

	iterable, err := expect(pctx, tokens[consumed:], identifier, tmplerror.ExpectedCharacter, "Expected iterable name but found %s")
	if err != nil {
		return 0, nil, err
	}

	consumed++

	if _, err := expect(pctx, tokens[consumed:], codeClose, tmplerror.ExpectedCharacter, "Expected '%%}' but found %s"); err != nil {
		return 0, nil, err
	}

	consumed++

	n, body, err := p.loopBody(pctx, tokens[consumed:])
	if err != nil {
		return 0, nil, err
	}

	consumed += n

	n, end, err := p.closeTag(pctx, tokens[consumed:], open, tokenizer.KeywordEndFor, tmplerror.MissingLoopClose)
	if err != nil {
		return 0, nil, err
	}

	consumed += n

	return consumed, nodeResult("for", ast.NewForNode(loopVar, iterable, body, open.Start, end), tokens[0]), nil
}

// loopBody collects the loop body up to `{% endfor`, which it leaves unconsumed.
func (p *Parser) loopBody(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []ast.Node, error) {
	body := []ast.Node{}
	consumed := 0

	for {
		rest := tokens[consumed:]
		token := rest[0].Val.Original

		if token.Type == tokenizer.EOF {
			return consumed, body, nil
		}

		if _, match, err := endTag(pctx, rest); err == nil && match[1].Val.Original.Value == tokenizer.KeywordEndFor {
			return consumed, body, nil
		}

		if _, match, err := text(pctx, rest); err == nil {
			body = append(body, ast.NewStringNode(match[0].Val.Original))
			consumed++

			continue
		}

		if token.Type != tokenizer.VARBLOCK_OPEN && token.Type != tokenizer.CODEBLOCK_OPEN {
			return 0, nil, critical(token, tmplerror.InvalidSyntax, "Unexpected %s in loop body", describe(token))
		}

		n, match, err := p.expr(pctx, rest)
		if err != nil {
			if errors.Is(err, pc.ErrCritical) {
				return 0, nil, err
			}

			p.remember(err, rest)

			return consumed, body, nil
		}

		body = append(body, match[0].Val.Node)
		consumed += n
	}
}

// ifExpr parses both conditional forms.
//
//	{% if [not] True|False %} body {% endif %}
//	{% if [not] <operand> is|== [not] <operand> %} body {% endif %}
func (p *Parser) ifExpr(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
	consumed, _, err := ifHead(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	open := tokens[0].Val.Original

	var (
		negated  bool
		notToken tokenizer.Token
	)

	if n, match, err := notKeyword(pctx, tokens[consumed:]); err == nil {
		negated = true
		notToken = match[0].Val.Original
		consumed += n
	}

	if n, match, err := boolLiteral(pctx, tokens[consumed:]); err == nil {
		literal := match[0].Val.Original
		consumed += n

		var condition ast.Node = ast.NewIdentifierNode(literal)
		if negated {
			condition = ast.NewUnaryOpNode(notToken, condition, notToken.Start, literal.End)
		}

		n, body, end, err := p.ifBody(pctx, tokens[consumed:], open)
		if err != nil {
			return 0, nil, err
		}

		consumed += n

		return consumed, nodeResult("ifbool", ast.NewIfBoolNode(condition, body, open.Start, end), tokens[0]), nil
	}

	left, err := p.operand(pctx, tokens[consumed:])
	if err != nil {
		return 0, nil, err
	}

	consumed++

	op, err := expect(pctx, tokens[consumed:], comparator, tmplerror.ExpectedCharacter, "Expected 'is' or '==' but found %s")
	if err != nil {
		return 0, nil, err
	}

	consumed++

	if n, match, err := notKeyword(pctx, tokens[consumed:]); err == nil {
		if !negated {
			notToken = match[0].Val.Original
		}

		negated = !negated
		consumed += n
	}

	right, err := p.operand(pctx, tokens[consumed:])
	if err != nil {
		return 0, nil, err
	}

	consumed++

	var condition ast.Node = ast.NewBinaryOpNode(left, op, right)
	if negated {
		condition = ast.NewUnaryOpNode(notToken, condition, condition.Start(), condition.End())
	}

	n, body, end, err := p.ifBody(pctx, tokens[consumed:], open)
	if err != nil {
		return 0, nil, err
	}

	consumed += n

	return consumed, nodeResult("if", ast.NewIfNode(condition, body, open.Start, end), tokens[0]), nil
}

// ifBody parses `%} statements {% endif %}`.
func (p *Parser) ifBody(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity], open tokenizer.Token) (int, *ast.ListNode, filepos.Position, error) {
	if _, err := expect(pctx, tokens, codeClose, tmplerror.ExpectedCharacter, "Expected '%%}' but found %s"); err != nil {
		return 0, nil, filepos.Position{}, err
	}

	consumed := 1

	n, match, err := p.statements(open.Indent)(pctx, tokens[consumed:])
	if err != nil {
		return 0, nil, filepos.Position{}, err
	}

	consumed += n
	body := match[0].Val.Node.(*ast.ListNode)

	n, end, err := p.closeTag(pctx, tokens[consumed:], open, tokenizer.KeywordEndIf, tmplerror.MissingIfClose)
	if err != nil {
		return 0, nil, filepos.Position{}, err
	}

	return consumed + n, body, end, nil
}

// operand reads one variable path or True/False literal.
func (p *Parser) operand(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (ast.Node, error) {
	_, match, err := operand(pctx, tokens)
	if err != nil {
		found := tokens[0].Val.Original
		return nil, critical(found, tmplerror.ExpectedCharacter, "Expected identifier, 'True' or 'False' but found %s", describe(found))
	}

	token := match[0].Val.Original
	if token.Type == tokenizer.KEYWORD {
		return ast.NewIdentifierNode(token), nil
	}

	if _, err := explang.ParseSteps(token.Value, token.Start); err != nil {
		return nil, critical(token, tmplerror.InvalidSyntax, "Invalid variable path '%s': only name or name.property is supported", token.Value)
	}

	return ast.NewVarAccessNode(token), nil
}

// closeTag consumes `{% <keyword> %}` and returns the end of the closing delimiter.
// A different close tag in its place reports the missing one.
func (p *Parser) closeTag(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity], open tokenizer.Token, keyword string, missing tmplerror.Kind) (int, filepos.Position, error) {
	block := tokenizer.KeywordIf
	if missing == tmplerror.MissingLoopClose {
		block = tokenizer.KeywordFor
	}

	consumed, match, err := endTag(pctx, tokens)
	if err != nil {
		if p.backtracked != nil && p.stoppedAt == p.offset(tokens) {
			return 0, filepos.Position{}, &syntaxError{err: p.backtracked, critical: true}
		}

		found := tokens[0].Val.Original

		return 0, filepos.Position{}, critical(found, missing,
			"Expected '{%% %s %%}' to close '%s' opened at %s but found %s", keyword, block, open.Start, describe(found))
	}

	if found := match[1].Val.Original; found.Value != keyword {
		return 0, filepos.Position{}, critical(found, missing,
			"Expected '{%% %s %%}' to close '%s' opened at %s but found '{%% %s'", keyword, block, open.Start, found.Value)
	}

	closing, err := expect(pctx, tokens[consumed:], codeClose, tmplerror.ExpectedCharacter, "Expected '%%}' but found %s")
	if err != nil {
		return 0, filepos.Position{}, err
	}

	p.backtracked = nil

	return consumed + 1, closing.End, nil
}
