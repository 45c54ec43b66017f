package ast

import (
	"iter"
)

// Walk visits root and every descendant in pre-order.
// Children of a node are skipped when visit returns false. Nil slots are not visited.
func Walk(root Node, visit func(Node) bool) {
	if root == nil {
		return
	}

	stack := []Node{root}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(node) {
			continue
		}

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}
}

// ForEach calls fn for every node in pre-order.
func ForEach(root Node, fn func(Node)) {
	Walk(root, func(n Node) bool {
		fn(n)
		return true
	})
}

// Find returns the first node in pre-order that satisfies pred.
func Find(root Node, pred func(Node) bool) (Node, bool) {
	var found Node

	Walk(root, func(n Node) bool {
		if found != nil {
			return false
		}

		if pred(n) {
			found = n
			return false
		}

		return true
	})

	return found, found != nil
}

// Reduce folds every node in pre-order into an accumulator.
func Reduce[T any](root Node, initial T, fn func(acc T, n Node) T) T {
	acc := initial

	ForEach(root, func(n Node) {
		acc = fn(acc, n)
	})

	return acc
}

// Chain yields root and then keeps descending while the current node has
// exactly one non-nil child. It does not branch.
func Chain(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		node := root
		for node != nil {
			if !yield(node) {
				return
			}

			children := node.Children()
			if len(children) != 1 {
				return
			}

			node = children[0]
		}
	}
}

// Map rebuilds the tree, replacing every node with fn's result.
// fn sees each original node before its children; returning nil drops the node
// and its subtree. Dropped list and loop items are removed unless allowNil is
// set; fixed slots such as an if condition become nil. The input is never
// modified and every rebuilt node has a new id.
func Map(root Node, fn func(Node) Node, allowNil bool) Node {
	if root == nil {
		return nil
	}

	replaced := fn(root)
	if replaced == nil {
		return nil
	}

	children := replaced.Children()
	mapped := make([]Node, 0, len(children))
	sequence := isSequence(replaced)

	for _, child := range children {
		var result Node
		if child != nil {
			result = Map(child, fn, allowNil)
		}

		if result == nil && sequence && !allowNil {
			continue
		}

		mapped = append(mapped, result)
	}

	return replaced.rebuild(mapped)
}

// Filter keeps the nodes for which keep returns true.
func Filter(root Node, keep func(Node) bool) Node {
	return Map(root, func(n Node) Node {
		if keep(n) {
			return n
		}

		return nil
	}, false)
}

func isSequence(n Node) bool {
	switch n.Type() {
	case LIST, FOR_BLOCK:
		return true
	default:
		return false
	}
}
