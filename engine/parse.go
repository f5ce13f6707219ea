package engine

import "github.com/dhamidi/pegstep/grammar"

// Parse creates a State, drives Advance to completion and returns the
// finished State.
// It is a convenience wrapper for callers that don't need to interleave
// other work between steps; the LSP server and the incremental-reparse
// path call Advance directly instead.
func Parse(g grammar.Grammar, start string, input string) *State {
	s := New(g, start, input)
	for !s.Done() {
		s.Advance()
	}
	return s
}
