package engine

import "github.com/dhamidi/pegstep/grammar"

// backward is invoked after a terminal mismatch, or by forward upon
// leftover-input EOF failure. It records the expectation at the top
// step's position, then climbs the stack looking for an enclosing
// Sequence with a live (untried) alternative. Steps found completed along
// the way are collected into pack, top-first order reversed to original
// order, so that once an alternative is found, adjacent completed steps
// can be memoized as "what followed this step" before being discarded.
//
// If no live alternative is found anywhere in the stack, the parse
// terminates in failure: done becomes true with errors/errorsPos left
// populated for reporting.
func (s *State) backward(message string) {
	lastIndex := len(s.steps) - 1
	pos := s.steps[lastIndex].Pos
	s.recordError(message, pos)

	var pack []Step

	i := lastIndex
	for ; i >= 0; i-- {
		step := s.steps[i]
		if seq, ok := step.Rule.(*grammar.Sequence); ok && !step.Done() {
			list := *seq
			if k := indexOfSep(list[step.RuleIndex:]); k >= 0 {
				s.steps[i].RuleIndex += k
				s.steps = s.steps[:i+1]
				for j := 0; j < len(pack)-1; j++ {
					tail := append([]Step{}, pack[j+1:]...)
					s.memo[pack[j].key()] = tail
				}
				s.forwardAbsent()
				return
			}
		}
		if step.Done() {
			pack = append([]Step{step}, pack...)
		}
	}

	s.steps = s.steps[:0]
	s.done = true
}

func (s *State) recordError(message string, pos int) {
	if pos != s.errorsPos {
		s.errors = make(map[string]struct{})
		s.errorsPos = pos
	}
	s.errors[message] = struct{}{}
}

// indexOfSep returns the offset of the first alternative-separator marker
// in list, or -1 if list contains none.
func indexOfSep(list []grammar.Rule) int {
	for i, r := range list {
		if grammar.IsSep(r) {
			return i
		}
	}
	return -1
}
