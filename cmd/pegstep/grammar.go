package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pegstep/ebnftext"
	"github.com/dhamidi/pegstep/grammar"
)

func loadGrammar(filename string) (grammar.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := ebnftext.Load(f, filename)
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}
	return g, nil
}
