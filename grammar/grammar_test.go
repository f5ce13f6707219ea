package grammar_test

import (
	"testing"

	"github.com/dhamidi/pegstep/grammar"
)

func TestSequenceIdentityIsPointerStable(t *testing.T) {
	seq := &grammar.Sequence{grammar.String("a")}

	var a, b grammar.Rule = seq, seq
	if a != b {
		t.Fatalf("expected two Rule values holding the same *Sequence pointer to compare equal")
	}

	other := &grammar.Sequence{grammar.String("a")}
	var c grammar.Rule = other
	if a == c {
		t.Fatalf("expected two distinct *Sequence values (even with identical contents) to compare unequal")
	}
}

func TestIsSep(t *testing.T) {
	if !grammar.IsSep(grammar.Sep) {
		t.Fatalf("expected IsSep(Sep) to be true")
	}
	if grammar.IsSep(grammar.String("/")) {
		t.Fatalf("expected a literal string not to be mistaken for Sep")
	}
}

func TestNewRegexAnchorsAtStart(t *testing.T) {
	re, err := grammar.NewRegex("[0-9]+")
	if err != nil {
		t.Fatalf("NewRegex: %v", err)
	}

	loc := re.Compiled.FindStringIndex("42abc")
	if loc == nil || loc[0] != 0 {
		t.Fatalf("expected an anchored match at offset 0, got %v", loc)
	}

	if re.Compiled.FindStringIndex("abc42") != nil {
		t.Fatalf("expected the anchored pattern not to match mid-string")
	}
}

func TestNewRegexRejectsInvalidPattern(t *testing.T) {
	if _, err := grammar.NewRegex("[unterminated"); err == nil {
		t.Fatalf("expected an error for a malformed regex")
	}
}
