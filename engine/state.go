// Package engine implements the iterative, stack-free parse engine: an
// explicit State, its single-step Advance transition, the forward/backward
// bookkeeping that implements prioritized-choice backtracking, the packrat
// memoization cache, and the incremental-reparse protocol.
//
// A State is owned exclusively by its driver. Advance never blocks. It
// panics only on a malformed grammar, never on an ordinary parse failure:
// with a GrammarError for an unresolvable rule reference, and with a plain
// message for a top-of-stack rule of no known kind (such as Sep).
package engine

import (
	"fmt"
	"sort"

	"github.com/dhamidi/pegstep/grammar"
)

// GrammarError is the panic value Advance raises when a Reference names a
// rule absent from the grammar. It is distinct from an ordinary parse
// failure (which is reported through Done+Errors, never a panic) because
// it means the grammar handed to New is malformed, not that the input
// failed to match it.
type GrammarError struct {
	Name string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.Name)
}

// State owns the grammar, start rule, current input, the reified step
// stack, the error accumulator, and the packrat memoization cache.
type State struct {
	grammar grammar.Grammar
	start   string
	input   string

	steps []Step

	errors    map[string]struct{}
	errorsPos int

	memo map[stepKey][]Step

	done bool

	lineStarts []int // lazily built by PosToLineColumn; cleared by Increment
}

// New creates a State ready to parse input against grammar starting at
// rule start. The initial step stack holds exactly one frame: a Reference
// to start at position 0.
func New(g grammar.Grammar, start string, input string) *State {
	s := &State{
		grammar:   g,
		start:     start,
		input:     input,
		errors:    make(map[string]struct{}),
		errorsPos: -1,
		memo:      make(map[stepKey][]Step),
	}
	s.steps = []Step{newStep(grammar.Reference{Name: start}, 0)}
	return s
}

// Done reports whether the parse has terminated, successfully or not.
func (s *State) Done() bool {
	return s.done
}

// Steps returns the current step list. The slice is shared with the
// State's internals; callers must not mutate it.
func (s *State) Steps() []Step {
	return s.steps
}

// Input returns the current input string.
func (s *State) Input() string {
	return s.input
}

// Errors returns the accumulated expectation messages and the input offset
// they describe. The position is -1 when no error has been recorded yet.
func (s *State) Errors() ([]string, int) {
	if len(s.errors) == 0 {
		return nil, s.errorsPos
	}
	out := make([]string, 0, len(s.errors))
	for msg := range s.errors {
		out = append(out, msg)
	}
	sort.Strings(out)
	return out, s.errorsPos
}
