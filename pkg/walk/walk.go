// Package walk provides the pre-order, depth-first traversal shared by the
// key collector and the image locator.
//
// The traversal keeps its own stack, so nesting depth is limited by memory
// rather than by the goroutine stack.
package walk

import (
	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
	"github.com/lucas-albers-lz4/jsonimg/pkg/jsonpath"
)

// Action tells Walk what to do after visiting a node.
type Action int

const (
	// Continue descends into the node's children, if any.
	Continue Action = iota
	// SkipChildren leaves the node's children unvisited.
	SkipChildren
)

// Node is one value reached during a walk.
type Node struct {
	// Key is the member key for object members and "" otherwise.
	Key string
	// Index is the element index for array items and -1 otherwise.
	Index int
	// Path is the path expression of the node; "" for the root.
	Path string
	// Value is the node itself.
	Value any
	// Parent is the containing object or array; nil for the root.
	Parent any
	// Depth is 0 for the root.
	Depth int
}

// IsMember reports whether the node is an object member.
func (n Node) IsMember() bool {
	return n.Parent != nil && n.Index < 0
}

// Walk visits root and every value below it in document order: object
// members in their enumeration order, array items by index.
func Walk(root any, visit func(Node) Action) {
	stack := []Node{{Index: -1, Value: root}}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visit(n) == SkipChildren {
			continue
		}

		// Children are pushed last-first so they pop in order.
		if entries, ok := document.Entries(n.Value); ok {
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				stack = append(stack, Node{
					Key:    e.Key,
					Index:  -1,
					Path:   jsonpath.Join(n.Path, e.Key),
					Value:  e.Value,
					Parent: n.Value,
					Depth:  n.Depth + 1,
				})
			}
			continue
		}
		if items, ok := document.Elements(n.Value); ok {
			for i := len(items) - 1; i >= 0; i-- {
				stack = append(stack, Node{
					Index:  i,
					Path:   jsonpath.Index(n.Path, i),
					Value:  items[i],
					Parent: n.Value,
					Depth:  n.Depth + 1,
				})
			}
		}
	}
}
