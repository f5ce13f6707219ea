// Package grammar defines the rule model that drives package engine: a
// small tagged variant of rule kinds (sequence, rule reference, regex,
// string literal, character literal) plus the grammar mapping that ties
// rule names to rule values.
package grammar

import "regexp"

// Grammar maps a rule name to its definition. One name is designated the
// start rule when constructing an engine.State; the mapping itself carries
// no notion of which name that is.
type Grammar map[string]Rule

// Rule is a grammar construct describing how to match a fragment of input.
// It is a closed, five-case tagged variant: *Sequence, Reference, *Regex,
// String, Char. The unexported marker method keeps the set closed to this
// package.
//
// Sequence and Regex are used by pointer so that Rule equality (==), which
// package engine relies on for Step identity and packrat memo keys, is a
// cheap, stable pointer comparison rather than a deep structural one —
// both kinds are built once when a Grammar is assembled and never mutated
// afterward, so pointer identity is exactly rule identity.
type Rule interface {
	ruleKind()
}

// Sequence is an ordered list of sub-rules interleaved with Sep markers.
// A Sep partitions the list into consecutive alternative branches, each
// itself a run of sub-rules tried as a unit: [A, B, Sep, C, D, Sep, E]
// denotes three alternatives (A B), (C D), (E), tried left to right.
type Sequence []Rule

func (*Sequence) ruleKind() {}

// sepRule is the alternative-separator sentinel's concrete type. Sep is
// the only value of this type; equality is by identity (==), never by
// structural comparison, since it carries no data to compare.
type sepRule struct{}

func (sepRule) ruleKind() {}

// Sep is the alternative separator. It is a Rule only so it can live
// inside a Sequence's slice; engine.Advance must never dispatch on it as
// the top-of-stack rule — doing so is an invariant violation, not a
// parse failure.
var Sep Rule = sepRule{}

// IsSep reports whether r is the alternative-separator sentinel.
func IsSep(r Rule) bool {
	_, ok := r.(sepRule)
	return ok
}

// Reference names another rule in the grammar, resolved by Grammar[Name]
// at Advance time.
type Reference struct {
	Name string
}

func (Reference) ruleKind() {}

// Regex is a regular expression anchored to match only at the current
// input offset. Pattern is kept for diagnostics ("Expected match of
// <pattern>"); Compiled is the anchored form actually used for matching —
// see NewRegex, which always anchors with \A so callers never need to
// remember to.
type Regex struct {
	Pattern  string
	Compiled *regexp.Regexp
}

func (*Regex) ruleKind() {}

// NewRegex compiles pattern, anchoring it to the start of the remaining
// input, and returns it ready to place in a Grammar. Per spec, engines
// that accept unanchored patterns must wrap them with a start-of-text
// anchor before use; this constructor is that wrap, done once at
// grammar-construction time rather than on every match.
func NewRegex(pattern string) (*Regex, error) {
	compiled, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, err
	}
	return &Regex{Pattern: pattern, Compiled: compiled}, nil
}

// MustRegex is like NewRegex but panics on a malformed pattern. Useful for
// grammars built as Go literals.
func MustRegex(pattern string) *Regex {
	r, err := NewRegex(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// String is a literal substring.
type String string

func (String) ruleKind() {}

// Char is a single literal character.
type Char rune

func (Char) ruleKind() {}
