// Package interpreter renders a template syntax tree against a data context.
package interpreter

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shibukawa/snaptmpl/ast"
	"github.com/shibukawa/snaptmpl/explang"
	"github.com/shibukawa/snaptmpl/filepos"
	"github.com/shibukawa/snaptmpl/tmplerror"
	"github.com/shibukawa/snaptmpl/tokenizer"
)

// ErrNoFrame is returned when a binding targets a scope that is not open.
var ErrNoFrame = errors.New("no such scope frame")

// Interpreter evaluates one tree against one context.
// It is not safe for concurrent use; create one per render.
type Interpreter struct {
	symbols *SymbolTable
}

// New creates an interpreter whose globals are the entries of context.
func New(context map[string]any) *Interpreter {
	return &Interpreter{symbols: NewSymbolTable(context)}
}

// Symbols exposes the symbol table.
func (i *Interpreter) Symbols() *SymbolTable {
	return i.symbols
}

// Run renders root. The first error aborts the render.
func (i *Interpreter) Run(root ast.Node) (string, error) {
	return i.visit(root, nil)
}

// Render is a shorthand for New(context).Run(root).
func Render(root ast.Node, context map[string]any) (string, error) {
	return New(context).Run(root)
}

func (i *Interpreter) visit(node ast.Node, chain []uuid.UUID) (string, error) {
	if node == nil {
		return "", tmplerror.New(tmplerror.UnknownNodeType, filepos.Position{}, filepos.Position{}, "missing node")
	}

	scope := append(node.Scope(), chain...)

	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, nil
	case *ast.IdentifierNode:
		return i.visitIdentifier(n), nil
	case *ast.UnaryOpNode:
		return i.visitUnaryOp(n, scope)
	case *ast.BinaryOpNode:
		return i.visitBinaryOp(n, scope)
	case *ast.VarAccessNode:
		return i.visitVarAccess(n, scope)
	case *ast.ListNode:
		return i.visitList(n, scope)
	case *ast.ForNode:
		return i.visitFor(n, scope)
	case *ast.IfNode:
		return i.visitIf(n, n.Condition, n.Body, scope)
	case *ast.IfBoolNode:
		return i.visitIf(n, n.Condition, n.Body, scope)
	default:
		return "", tmplerror.New(tmplerror.UnknownNodeType, node.Start(), node.End(), "cannot evaluate %s node", node.Type())
	}
}

func (i *Interpreter) visitIdentifier(n *ast.IdentifierNode) string {
	switch {
	case n.Token.IsKeyword(tokenizer.KeywordTrue):
		return trueString
	case n.Token.IsKeyword(tokenizer.KeywordFalse):
		return falseString
	default:
		return n.Token.Value
	}
}

func (i *Interpreter) visitUnaryOp(n *ast.UnaryOpNode, scope []uuid.UUID) (string, error) {
	operand, err := i.visit(n.Operand, extend(scope, n.ID()))
	if err != nil {
		return "", err
	}

	if n.Operator.Value == tokenizer.KeywordNot {
		return negate(operand), nil
	}

	return falseString, nil
}

func (i *Interpreter) visitBinaryOp(n *ast.BinaryOpNode, scope []uuid.UUID) (string, error) {
	inner := extend(scope, n.ID())

	left, err := i.visit(n.Left, inner)
	if err != nil {
		return "", err
	}

	right, err := i.visit(n.Right, inner)
	if err != nil {
		return "", err
	}

	switch n.Comparator.Value {
	case tokenizer.KeywordIs, tokenizer.KeywordEqual, "===":
		return boolString(left == right), nil
	default:
		return falseString, nil
	}
}

func (i *Interpreter) visitVarAccess(n *ast.VarAccessNode, scope []uuid.UUID) (string, error) {
	path := n.Path

	if _, err := strconv.Atoi(path.Value); err == nil {
		return path.Value, nil
	}

	steps, err := explang.ParseSteps(path.Value, path.Start)
	if err != nil {
		return "", tmplerror.New(tmplerror.InvalidSyntax, path.Start, path.End, "Invalid variable path '%s'", path.Value)
	}

	value, err := explang.Resolve(steps, func(name string) (any, bool) {
		return i.symbols.Lookup(scope, name)
	})
	if err != nil {
		var resolveErr *explang.ResolveError
		if !errors.As(err, &resolveErr) {
			return "", err
		}

		kind := tmplerror.UnknownVariable
		if resolveErr.Step.Kind == explang.StepMember {
			kind = tmplerror.UnknownProperty
		}

		return "", tmplerror.New(kind, resolveErr.Step.Start, resolveErr.Step.End, "%s", resolveErr.Message)
	}

	return Stringify(value), nil
}

func (i *Interpreter) visitList(n *ast.ListNode, scope []uuid.UUID) (string, error) {
	inner := extend(scope, n.ID())

	var builder strings.Builder

	for _, item := range n.Items {
		out, err := i.visit(item, inner)
		if err != nil {
			return "", err
		}

		builder.WriteString(out)
	}

	return builder.String(), nil
}

// visitFor iterates a global list. The loop variable lives in a frame owned by the loop.
func (i *Interpreter) visitFor(n *ast.ForNode, scope []uuid.UUID) (string, error) {
	iterable, ok := i.symbols.Global(n.Iterable.Value)
	if !ok {
		return "", tmplerror.New(tmplerror.UnknownVariable, n.Iterable.Start, n.Iterable.End, "'%s' is not defined", n.Iterable.Value)
	}

	items, ok := explang.List(iterable)
	if !ok {
		return "", tmplerror.New(tmplerror.NotIterable, n.Iterable.Start, n.Iterable.End, "'%s' is not a list", n.Iterable.Value)
	}

	i.symbols.Push(n.ID())
	defer i.symbols.Pop()

	if err := i.symbols.Declare(n.ID(), n.LoopVar.Value, nil); err != nil {
		if errors.Is(err, tmplerror.ErrScopeConflict) {
			return "", tmplerror.New(tmplerror.ScopeConflict, n.LoopVar.Start, n.LoopVar.End, "loop variable '%s' is already defined in the context", n.LoopVar.Value)
		}

		return "", err
	}

	inner := extend(scope, n.ID())

	var builder strings.Builder

	for _, item := range items {
		if err := i.symbols.Assign(n.ID(), n.LoopVar.Value, item); err != nil {
			return "", err
		}

		for _, child := range n.Body {
			out, err := i.visit(child, inner)
			if err != nil {
				return "", err
			}

			builder.WriteString(out)
		}
	}

	return builder.String(), nil
}

func (i *Interpreter) visitIf(n ast.Node, condition ast.Node, body *ast.ListNode, scope []uuid.UUID) (string, error) {
	guard, err := i.visit(condition, scope)
	if err != nil {
		return "", err
	}

	if guard != trueString {
		return "", nil
	}

	if body == nil {
		return "", nil
	}

	return i.visit(body, extend(scope, n.ID()))
}

// extend returns a new chain; the input is never appended to in place.
func extend(scope []uuid.UUID, id uuid.UUID) []uuid.UUID {
	next := make([]uuid.UUID, len(scope), len(scope)+1)
	copy(next, scope)

	return append(next, id)
}
