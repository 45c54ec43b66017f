package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders an indented listing of the tree without node ids.
// Two trees parsed from the same tokens produce the same dump.
func Dump(root Node) string {
	var builder strings.Builder

	dump(&builder, root, 0)

	return builder.String()
}

func dump(builder *strings.Builder, node Node, depth int) {
	builder.WriteString(strings.Repeat("  ", depth))

	if node == nil {
		builder.WriteString("<nil>\n")
		return
	}

	start := node.Start()
	fmt.Fprintf(builder, "%s%s @%d:%d\n", node.Type(), describe(node), start.Line+1, start.Col+1)

	for _, child := range node.Children() {
		dump(builder, child, depth+1)
	}
}

func describe(node Node) string {
	switch n := node.(type) {
	case *StringNode:
		return " " + strconv.Quote(n.Value)
	case *IdentifierNode:
		return " " + n.Token.Value
	case *UnaryOpNode:
		return " " + n.Operator.Value
	case *BinaryOpNode:
		return " " + n.Comparator.Value
	case *VarAccessNode:
		return " " + n.Path.Value
	case *VarAssignNode:
		return " " + n.Name.Value
	case *ForNode:
		return fmt.Sprintf(" %s in %s", n.LoopVar.Value, n.Iterable.Value)
	default:
		return ""
	}
}
