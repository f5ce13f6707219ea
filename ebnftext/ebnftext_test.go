package ebnftext_test

import (
	"strings"
	"testing"

	"github.com/dhamidi/pegstep/ebnftext"
	"github.com/dhamidi/pegstep/engine"
	"github.com/dhamidi/pegstep/grammar"
)

const additionGrammar = `
Sum = Number "+" Sum | Number .
Number = Digit { Digit } .
Digit = "0" … "9" .
`

func TestLoadDesugarsRangeAndRepetition(t *testing.T) {
	g, err := ebnftext.Load(strings.NewReader(additionGrammar), "addition.ebnf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok := g["Sum"]; !ok {
		t.Fatalf("expected rule %q in desugared grammar", "Sum")
	}
	if _, ok := g["Digit"].(*grammar.Regex); !ok {
		t.Fatalf("expected Digit to desugar to a Regex, got %T", g["Digit"])
	}

	foundRepetition := false
	for name := range g {
		if strings.Contains(name, "#rep") {
			foundRepetition = true
		}
	}
	if !foundRepetition {
		t.Fatalf("expected a synthetic repetition rule for Number's { Digit }")
	}

	if err := ebnftext.Verify(g, "Sum"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsUndefinedReference(t *testing.T) {
	g := grammar.Grammar{
		"start": grammar.Reference{Name: "missing"},
	}

	if err := ebnftext.Verify(g, "start"); err == nil {
		t.Fatalf("expected Verify to reject a dangling reference")
	}
}

func TestVerifyRejectsUnknownStart(t *testing.T) {
	g := grammar.Grammar{"start": grammar.String("x")}

	if err := ebnftext.Verify(g, "nope"); err == nil {
		t.Fatalf("expected Verify to reject an unknown start rule")
	}
}

func TestLoadedGrammarParsesAddition(t *testing.T) {
	g, err := ebnftext.Load(strings.NewReader(additionGrammar), "addition.ebnf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := engine.New(g, "Sum", "12+34")
	for !s.Done() {
		s.Advance()
	}

	steps := s.Steps()
	if len(steps) == 0 {
		t.Fatalf("expected a successful parse, got total failure")
	}
	if top := steps[0]; top.EndPos != len("12+34") {
		t.Fatalf("expected full input consumed, got EndPos=%d", top.EndPos)
	}
}
