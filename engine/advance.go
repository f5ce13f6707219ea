package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/pegstep/grammar"
)

// Advance performs a single step of the parse. Preconditions: Done() is
// false and Steps() is non-empty — both hold for any State produced by New
// and maintained by Advance/Increment themselves, so a driver need only
// check Done() before calling.
//
// Advance inspects the top step and, in priority order: replays a packrat
// memo hit if one exists for it; otherwise dispatches on the step's rule
// kind, pushing a child step for Sequence/Reference or attempting a
// terminal match (Regex/String/Char) and calling forward or backward.
func (s *State) Advance() {
	top := s.steps[len(s.steps)-1]

	if pack, ok := s.memo[top.key()]; ok {
		s.steps = append(s.steps, pack...)
		return
	}

	switch rule := top.Rule.(type) {
	case *grammar.Sequence:
		s.steps = append(s.steps, newStep((*rule)[0], top.Pos))

	case grammar.Reference:
		target, ok := s.grammar[rule.Name]
		if !ok {
			panic(&GrammarError{Name: rule.Name})
		}
		s.steps = append(s.steps, newStep(target, top.Pos))

	case *grammar.Regex:
		loc := rule.Compiled.FindStringIndex(s.input[top.Pos:])
		if loc != nil {
			s.forward(s.input[top.Pos : top.Pos+loc[1]])
		} else {
			s.backward(fmt.Sprintf("Expected match of %s", rule.Pattern))
		}

	case grammar.String:
		literal := string(rule)
		if hasPrefixAt(s.input, top.Pos, literal) {
			s.forward(literal)
		} else {
			s.backward(fmt.Sprintf("Expected string '%s'", literal))
		}

	case grammar.Char:
		r, size := utf8.DecodeRuneInString(s.input[top.Pos:])
		if size > 0 && r == rune(rule) {
			s.forward(s.input[top.Pos : top.Pos+size])
		} else {
			s.backward(fmt.Sprintf("Expected character '%c'", rune(rule)))
		}

	default:
		panic(fmt.Sprintf("engine: step with unhandled rule kind %T", rule))
	}
}

func hasPrefixAt(input string, pos int, literal string) bool {
	if pos+len(literal) > len(input) {
		return false
	}
	return input[pos:pos+len(literal)] == literal
}
