// Package ast defines the template syntax tree produced by the parser.
package ast

import (
	"github.com/google/uuid"

	"github.com/shibukawa/snaptmpl/filepos"
	"github.com/shibukawa/snaptmpl/tokenizer"
)

// NodeType represents the type of AST node
type NodeType int

const (
	UNKNOWN NodeType = iota
	// STRING_NODE is literal text.
	STRING_NODE
	// IDENTIFIER_NODE is a bare operand such as True or False.
	IDENTIFIER_NODE
	// UNARY_OP is a negation.
	UNARY_OP
	// BINARY_OP is an is/== comparison.
	BINARY_OP
	// VAR_ACCESS is a {{ name }} or {{ name.property }} interpolation.
	VAR_ACCESS
	// VAR_ASSIGN is reserved; the parser never produces it.
	VAR_ASSIGN
	// FOR_BLOCK is a {% for %} loop.
	FOR_BLOCK
	// IF_BLOCK is a comparison conditional.
	IF_BLOCK
	// IF_BOOL_BLOCK is a True/False conditional.
	IF_BOOL_BLOCK
	// LIST is an ordered sequence of statements.
	LIST
)

// String returns the string representation of NodeType
func (n NodeType) String() string {
	switch n {
	case STRING_NODE:
		return "String"
	case IDENTIFIER_NODE:
		return "Identifier"
	case UNARY_OP:
		return "UnaryOp"
	case BINARY_OP:
		return "BinaryOp"
	case VAR_ACCESS:
		return "VarAccess"
	case VAR_ASSIGN:
		return "VarAssign"
	case FOR_BLOCK:
		return "For"
	case IF_BLOCK:
		return "If"
	case IF_BOOL_BLOCK:
		return "IfBool"
	case LIST:
		return "List"
	default:
		return "Unknown"
	}
}

// Node represents AST node interface
type Node interface {
	ID() uuid.UUID
	Type() NodeType
	Start() filepos.Position
	End() filepos.Position
	// Scope is the static scope chain recorded when the node was built.
	Scope() []uuid.UUID
	// Children returns the child nodes in evaluation order. Fixed slots may be nil.
	Children() []Node

	// rebuild returns a copy with a fresh id and the given children.
	rebuild(children []Node) Node
}

// BaseNode holds the fields shared by all nodes
type BaseNode struct {
	id    uuid.UUID
	start filepos.Position
	end   filepos.Position
	scope []uuid.UUID
}

func newBase(start, end filepos.Position) BaseNode {
	return BaseNode{id: uuid.New(), start: start.Copy(), end: end.Copy()}
}

func (b BaseNode) ID() uuid.UUID            { return b.id }
func (b BaseNode) Start() filepos.Position { return b.start }
func (b BaseNode) End() filepos.Position   { return b.end }

func (b BaseNode) Scope() []uuid.UUID {
	return append([]uuid.UUID(nil), b.scope...)
}

func (b BaseNode) renew() BaseNode {
	b.id = uuid.New()
	b.scope = append([]uuid.UUID(nil), b.scope...)

	return b
}

// WithScope returns a copy of base with scope appended.
func (b BaseNode) WithScope(scope ...uuid.UUID) BaseNode {
	b.scope = append(append([]uuid.UUID(nil), b.scope...), scope...)
	return b
}

// StringNode is literal text
type StringNode struct {
	BaseNode
	Value string
}

func NewStringNode(token tokenizer.Token) *StringNode {
	return &StringNode{BaseNode: newBase(token.Start, token.End), Value: token.Value}
}

func (n *StringNode) Type() NodeType   { return STRING_NODE }
func (n *StringNode) Children() []Node { return nil }

func (n *StringNode) rebuild([]Node) Node {
	return &StringNode{BaseNode: n.renew(), Value: n.Value}
}

// IdentifierNode is an operand token
type IdentifierNode struct {
	BaseNode
	Token tokenizer.Token
}

func NewIdentifierNode(token tokenizer.Token) *IdentifierNode {
	return &IdentifierNode{BaseNode: newBase(token.Start, token.End), Token: token}
}

func (n *IdentifierNode) Type() NodeType   { return IDENTIFIER_NODE }
func (n *IdentifierNode) Children() []Node { return nil }

func (n *IdentifierNode) rebuild([]Node) Node {
	return &IdentifierNode{BaseNode: n.renew(), Token: n.Token}
}

// UnaryOpNode applies Operator (only "not" is meaningful) to Operand
type UnaryOpNode struct {
	BaseNode
	Operator tokenizer.Token
	Operand  Node
}

func NewUnaryOpNode(operator tokenizer.Token, operand Node, start, end filepos.Position) *UnaryOpNode {
	return &UnaryOpNode{BaseNode: newBase(start, end), Operator: operator, Operand: operand}
}

func (n *UnaryOpNode) Type() NodeType   { return UNARY_OP }
func (n *UnaryOpNode) Children() []Node { return []Node{n.Operand} }

func (n *UnaryOpNode) rebuild(children []Node) Node {
	return &UnaryOpNode{BaseNode: n.renew(), Operator: n.Operator, Operand: slot(children, 0)}
}

// BinaryOpNode compares Left and Right with Comparator
type BinaryOpNode struct {
	BaseNode
	Left       Node
	Comparator tokenizer.Token
	Right      Node
}

func NewBinaryOpNode(left Node, comparator tokenizer.Token, right Node) *BinaryOpNode {
	return &BinaryOpNode{BaseNode: newBase(left.Start(), right.End()), Left: left, Comparator: comparator, Right: right}
}

func (n *BinaryOpNode) Type() NodeType   { return BINARY_OP }
func (n *BinaryOpNode) Children() []Node { return []Node{n.Left, n.Right} }

func (n *BinaryOpNode) rebuild(children []Node) Node {
	return &BinaryOpNode{BaseNode: n.renew(), Left: slot(children, 0), Comparator: n.Comparator, Right: slot(children, 1)}
}

// VarAccessNode reads a variable path
type VarAccessNode struct {
	BaseNode
	Path tokenizer.Token
}

func NewVarAccessNode(path tokenizer.Token) *VarAccessNode {
	return &VarAccessNode{BaseNode: newBase(path.Start, path.End), Path: path}
}

func (n *VarAccessNode) Type() NodeType   { return VAR_ACCESS }
func (n *VarAccessNode) Children() []Node { return nil }

func (n *VarAccessNode) rebuild([]Node) Node {
	return &VarAccessNode{BaseNode: n.renew(), Path: n.Path}
}

// VarAssignNode binds Value to Name. It is reserved and has no evaluation rule.
type VarAssignNode struct {
	BaseNode
	Name  tokenizer.Token
	Value Node
}

func NewVarAssignNode(name tokenizer.Token, value Node) *VarAssignNode {
	end := name.End
	if value != nil {
		end = value.End()
	}

	return &VarAssignNode{BaseNode: newBase(name.Start, end), Name: name, Value: value}
}

func (n *VarAssignNode) Type() NodeType   { return VAR_ASSIGN }
func (n *VarAssignNode) Children() []Node { return []Node{n.Value} }

func (n *VarAssignNode) rebuild(children []Node) Node {
	return &VarAssignNode{BaseNode: n.renew(), Name: n.Name, Value: slot(children, 0)}
}

// ForNode iterates Iterable binding each element to LoopVar
type ForNode struct {
	BaseNode
	Iterable tokenizer.Token
	LoopVar  tokenizer.Token
	Body     []Node
}

func NewForNode(loopVar, iterable tokenizer.Token, body []Node, start, end filepos.Position) *ForNode {
	return &ForNode{BaseNode: newBase(start, end), Iterable: iterable, LoopVar: loopVar, Body: body}
}

func (n *ForNode) Type() NodeType { return FOR_BLOCK }

func (n *ForNode) Children() []Node {
	return append([]Node(nil), n.Body...)
}

func (n *ForNode) rebuild(children []Node) Node {
	return &ForNode{BaseNode: n.renew(), Iterable: n.Iterable, LoopVar: n.LoopVar, Body: children}
}

// IfNode renders Body when the comparison Condition holds
type IfNode struct {
	BaseNode
	Condition Node
	Body      *ListNode
}

func NewIfNode(condition Node, body *ListNode, start, end filepos.Position) *IfNode {
	return &IfNode{BaseNode: newBase(start, end), Condition: condition, Body: body}
}

func (n *IfNode) Type() NodeType   { return IF_BLOCK }
func (n *IfNode) Children() []Node { return []Node{n.Condition, listOrNil(n.Body)} }

func (n *IfNode) rebuild(children []Node) Node {
	return &IfNode{BaseNode: n.renew(), Condition: slot(children, 0), Body: listSlot(children, 1)}
}

// IfBoolNode renders Body when the literal Condition is True
type IfBoolNode struct {
	BaseNode
	Condition Node
	Body      *ListNode
}

func NewIfBoolNode(condition Node, body *ListNode, start, end filepos.Position) *IfBoolNode {
	return &IfBoolNode{BaseNode: newBase(start, end), Condition: condition, Body: body}
}

func (n *IfBoolNode) Type() NodeType   { return IF_BOOL_BLOCK }
func (n *IfBoolNode) Children() []Node { return []Node{n.Condition, listOrNil(n.Body)} }

func (n *IfBoolNode) rebuild(children []Node) Node {
	return &IfBoolNode{BaseNode: n.renew(), Condition: slot(children, 0), Body: listSlot(children, 1)}
}

// ListNode is a sequence of statements
type ListNode struct {
	BaseNode
	Items []Node
}

func NewListNode(items []Node, start, end filepos.Position) *ListNode {
	return &ListNode{BaseNode: newBase(start, end), Items: items}
}

func (n *ListNode) Type() NodeType { return LIST }

func (n *ListNode) Children() []Node {
	return append([]Node(nil), n.Items...)
}

func (n *ListNode) rebuild(children []Node) Node {
	return &ListNode{BaseNode: n.renew(), Items: children}
}

func slot(children []Node, i int) Node {
	if i < len(children) {
		return children[i]
	}

	return nil
}

func listSlot(children []Node, i int) *ListNode {
	list, _ := slot(children, i).(*ListNode)
	return list
}

// listOrNil keeps a nil *ListNode from turning into a non-nil Node.
func listOrNil(list *ListNode) Node {
	if list == nil {
		return nil
	}

	return list
}
