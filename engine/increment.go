package engine

import "github.com/dhamidi/pegstep/grammar"

// Increment applies an edit — input[at:at+length) is replaced by
// replacement — and prepares the State for a fresh drive of Advance that
// reuses as much of the prior parse as possible.
//
// Steps from the prior parse are partitioned by how they relate to the
// edited region: steps entirely after it are kept and shifted by the
// length delta; steps entirely before it are kept unshifted; steps that
// intersect it are dropped. From the survivors, every Reference-ruled step
// that completed in the prior parse seeds a memo entry keyed on its
// (rule, shifted pos) identity, paired with the maximal run of subsequent
// survivors nested inside its span — exactly what a fresh Advance would
// need to skip re-deriving that subtree. The step stack itself is then
// reset to a single fresh root frame; Advance, driven normally from there,
// will hit those memo entries wherever the edit left a rule's subtree
// untouched.
func (s *State) Increment(replacement string, at, length int) {
	shift := len(replacement) - length
	s.input = s.input[:at] + replacement + s.input[at+length:]

	var surviving []Step
	for _, step := range s.steps {
		switch {
		case step.Pos > at+length:
			step.Pos += shift
			if step.EndPos != -1 {
				step.EndPos += shift
			}
			surviving = append(surviving, step)
		case step.EndPos <= at:
			surviving = append(surviving, step)
		}
		// else: the step intersects the edited region and is discarded.
	}

	memo := make(map[stepKey][]Step)
	for i, step := range surviving {
		if _, ok := step.Rule.(grammar.Reference); !ok || step.EndPos == -1 {
			continue
		}
		var pack []Step
		for j := i + 1; j < len(surviving); j++ {
			other := surviving[j]
			if other.Pos >= step.Pos && other.EndPos <= step.EndPos {
				pack = append(pack, other)
			} else {
				break
			}
		}
		if len(pack) > 0 {
			memo[step.key()] = pack
		}
	}
	s.memo = memo

	s.steps = []Step{newStep(grammar.Reference{Name: s.start}, 0)}
	s.errors = make(map[string]struct{})
	s.errorsPos = -1
	s.lineStarts = nil
	s.done = false
}
