package engine

import "github.com/dhamidi/pegstep/grammar"

// forward is invoked after a terminal match (present=true, value the
// matched text) or, from backward, after skipping an alternative
// separator (present=false — the step that just "matched" is the
// enclosing Sequence itself, advancing past Sep, not a terminal).
//
// It marks the top step as having matched value, then climbs the step
// stack looking for the next sub-rule to try in an enclosing Sequence; if
// it finds one it pushes a child step and returns. If the climb reaches
// the bottom of the stack, the outermost rule has finished: success if
// the whole input was consumed, otherwise a trailing-input failure.
func (s *State) forward(value string) {
	s.forwardValue(value, true)
}

func (s *State) forwardAbsent() {
	s.forwardValue("", false)
}

func (s *State) forwardValue(value string, present bool) {
	lastIndex := len(s.steps) - 1
	newPos := s.steps[lastIndex].Pos
	if present {
		newPos += len(value)
	}
	s.steps[lastIndex].Value = value
	s.steps[lastIndex].HasValue = present

	i := lastIndex
	for ; i >= 0; i-- {
		step := &s.steps[i]
		if seq, ok := step.Rule.(*grammar.Sequence); ok {
			list := *seq
			if len(list) > step.RuleIndex+1 && !grammar.IsSep(list[step.RuleIndex+1]) {
				step.RuleIndex++
				s.steps = append(s.steps, newStep(list[step.RuleIndex], newPos))
				return
			}
		}
		if step.EndPos == -1 {
			step.EndPos = newPos
		}
	}

	if newPos != len(s.input) {
		s.backward("Expected EOF")
	} else {
		s.errors = make(map[string]struct{})
		s.done = true
	}
}
