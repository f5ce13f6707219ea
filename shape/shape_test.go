package shape_test

import (
	"strings"
	"testing"

	"github.com/dhamidi/pegstep/ebnftext"
	"github.com/dhamidi/pegstep/engine"
	"github.com/dhamidi/pegstep/shape"
)

const sumGrammar = `
Sum = Number "+" Number .
Number = Digit Digit .
Digit = "0" … "9" .
`

func TestBuildFlattensSequencesAndKeepsRuleNames(t *testing.T) {
	g, err := ebnftext.Load(strings.NewReader(sumGrammar), "sum.ebnf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := engine.New(g, "Sum", "12+34")
	for !s.Done() {
		s.Advance()
	}
	if errs, _ := s.Errors(); len(errs) != 0 {
		t.Fatalf("expected a successful parse, got errors %v", errs)
	}

	root := shape.Build(s.Steps())
	if root == nil {
		t.Fatalf("Build returned nil")
	}
	if root.Rule != "Sum" {
		t.Fatalf("expected root rule %q, got %q", "Sum", root.Rule)
	}
	if root.Span.Start != 0 || root.Span.End != 5 {
		t.Fatalf("expected root span [0,5), got [%d,%d)", root.Span.Start, root.Span.End)
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected Sum's Sequence to flatten into 3 children, got %d", len(root.Children))
	}

	first, plus, second := root.Children[0], root.Children[1], root.Children[2]

	if first.Rule != "Number" || second.Rule != "Number" {
		t.Fatalf("expected both outer children to be Number nodes, got %q and %q", first.Rule, second.Rule)
	}
	if plus.Rule != "" || plus.Value != "+" {
		t.Fatalf("expected a bare leaf with value %q, got rule=%q value=%q", "+", plus.Rule, plus.Value)
	}

	if len(first.Children) != 2 || len(second.Children) != 2 {
		t.Fatalf("expected each Number to flatten into 2 Digit children")
	}
	for _, digit := range append(append([]*shape.Node{}, first.Children...), second.Children...) {
		if digit.Rule != "Digit" {
			t.Fatalf("expected a Digit node, got rule %q", digit.Rule)
		}
		if len(digit.Children) != 1 || digit.Children[0].Rule != "" {
			t.Fatalf("expected Digit to wrap a single terminal leaf")
		}
	}

	got := first.Children[0].Children[0].Value + first.Children[1].Children[0].Value + plus.Value +
		second.Children[0].Children[0].Value + second.Children[1].Children[0].Value
	if got != "12+34" {
		t.Fatalf("expected leaves to spell out %q, got %q", "12+34", got)
	}
}
