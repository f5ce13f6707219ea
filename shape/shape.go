// Package shape turns the flat step trace a successful engine.State
// produces into a nested tree, the way ebnf/parse's Node type turns an
// Earley chart into a concrete syntax tree: leaves carry matched text,
// interior nodes accumulate children and take their span from their own
// Reference step.
package shape

import (
	"fmt"
	"strings"

	"github.com/dhamidi/pegstep/engine"
	"github.com/dhamidi/pegstep/grammar"
)

// Node is one node of the shaped tree. Rule is the grammar rule name for
// an interior node, empty for a leaf. Value is the matched text for a
// leaf, empty for an interior node. Sequence frames never appear as
// nodes: they carry no rule name of their own, so their children are
// spliced directly into the nearest enclosing named node.
type Node struct {
	Rule     string      `json:"rule,omitempty"`
	Span     engine.Span `json:"span"`
	Value    string      `json:"value,omitempty"`
	Children []*Node     `json:"children,omitempty"`
}

// String renders the tree one line per node, indented by depth, in the
// style of a debug AST dump.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	if n.Rule != "" {
		b.WriteString(n.Rule)
	} else {
		b.WriteString("#leaf")
	}
	fmt.Fprintf(b, " [%d-%d)", n.Span.Start, n.Span.End)
	if n.Value != "" {
		fmt.Fprintf(b, " %q", n.Value)
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.write(b, indent+1)
	}
}

// Build reconstructs the nesting implied by a successful State's step
// trace. steps must come from a State with Done() true and no recorded
// errors; behavior on a failed or in-progress trace is undefined.
func Build(steps []engine.Step) *Node {
	if len(steps) == 0 {
		return nil
	}
	node, _ := buildNode(steps, 0)
	return node
}

// buildNode builds the node for steps[i], which is always a Reference or
// a terminal step — buildChildren never recurses into this function for a
// Sequence frame, splicing its children in directly instead.
func buildNode(steps []engine.Step, i int) (*Node, int) {
	step := steps[i]
	children, next := buildChildren(steps, i+1, step)

	if ref, ok := step.Rule.(grammar.Reference); ok {
		return &Node{
			Rule:     ref.Name,
			Span:     engine.Span{Start: step.Pos, End: step.EndPos},
			Children: children,
		}, next
	}

	return &Node{
		Span:  engine.Span{Start: step.Pos, End: step.EndPos},
		Value: step.Value,
	}, next
}

// buildChildren collects every step nested inside parent's span, starting
// at index i, splicing any Sequence frame's own children in directly
// rather than emitting a node for the Sequence itself.
func buildChildren(steps []engine.Step, i int, parent engine.Step) ([]*Node, int) {
	var out []*Node
	j := i
	for j < len(steps) {
		step := steps[j]
		if step.EndPos == -1 || step.Pos < parent.Pos || step.EndPos > parent.EndPos {
			break
		}

		if _, ok := step.Rule.(*grammar.Sequence); ok {
			nested, next := buildChildren(steps, j+1, step)
			out = append(out, nested...)
			j = next
			continue
		}

		node, next := buildNode(steps, j)
		out = append(out, node)
		j = next
	}
	return out, j
}
