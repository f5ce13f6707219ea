// Package ebnftext loads grammars written in the textual EBNF notation
// golang.org/x/exp/ebnf understands and desugars them into this module's
// five-kind grammar.Rule model: quoted literals become grammar.String or
// grammar.Char, character ranges become grammar.Regex, alternation is
// flattened into a grammar.Sequence interleaved with grammar.Sep, and
// Option/Repetition are rewritten into synthetic named rules so that
// engine never has to know about EBNF sugar.
package ebnftext

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/pegstep/grammar"
)

// Load parses grammar text from r (attributing syntax errors to filename)
// and desugars it into a grammar.Grammar ready to drive an engine.State.
func Load(r io.Reader, filename string) (grammar.Grammar, error) {
	raw, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar %s: %w", filename, err)
	}

	d := &desugarer{out: make(grammar.Grammar, len(raw))}
	for name, prod := range raw {
		if prod.Expr == nil {
			continue
		}
		d.current = name
		rule, err := d.rule(prod.Expr)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		d.out[name] = rule
	}
	return d.out, nil
}

// Verify checks that start is defined and that every Reference reachable
// from it names a rule that exists. engine deliberately does not check
// this itself (a malformed grammar surfaces as a panic from Advance only
// when the bad reference is actually reached), so callers that want an
// upfront check call Verify after Load.
func Verify(g grammar.Grammar, start string) error {
	if _, ok := g[start]; !ok {
		return fmt.Errorf("start rule %q is not defined", start)
	}

	seen := map[string]bool{start: true}
	queue := []string{start}
	var missing []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		for _, ref := range references(g[name]) {
			if _, ok := g[ref]; !ok {
				missing = append(missing, ref)
				continue
			}
			if !seen[ref] {
				seen[ref] = true
				queue = append(queue, ref)
			}
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("undefined rules referenced: %s", strings.Join(missing, ", "))
	}
	return nil
}

func references(rule grammar.Rule) []string {
	switch r := rule.(type) {
	case grammar.Reference:
		return []string{r.Name}
	case *grammar.Sequence:
		var out []string
		for _, sub := range *r {
			out = append(out, references(sub)...)
		}
		return out
	default:
		return nil
	}
}

type desugarer struct {
	out     grammar.Grammar
	current string
	counter int
}

func (d *desugarer) rule(expr ebnf.Expression) (grammar.Rule, error) {
	switch e := expr.(type) {
	case *ebnf.Token:
		return literal(e.String), nil

	case *ebnf.Range:
		return charRange(e.Begin.String, e.End.String)

	case *ebnf.Name:
		return grammar.Reference{Name: e.String}, nil

	case ebnf.Sequence:
		seq := make(grammar.Sequence, 0, len(e))
		for _, item := range e {
			sub, err := d.rule(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, sub)
		}
		return &seq, nil

	case ebnf.Alternative:
		var seq grammar.Sequence
		for i, alt := range e {
			if i > 0 {
				seq = append(seq, grammar.Sep)
			}
			sub, err := d.rule(alt)
			if err != nil {
				return nil, err
			}
			seq = append(seq, sub)
		}
		return &seq, nil

	case *ebnf.Group:
		return d.rule(e.Body)

	case *ebnf.Option:
		body, err := d.rule(e.Body)
		if err != nil {
			return nil, err
		}
		name := d.synthetic("opt")
		d.out[name] = &grammar.Sequence{body, grammar.Sep, grammar.String("")}
		return grammar.Reference{Name: name}, nil

	case *ebnf.Repetition:
		body, err := d.rule(e.Body)
		if err != nil {
			return nil, err
		}
		name := d.synthetic("rep")
		first := &grammar.Sequence{body, grammar.Reference{Name: name}}
		d.out[name] = &grammar.Sequence{first, grammar.Sep, grammar.String("")}
		return grammar.Reference{Name: name}, nil

	default:
		return nil, fmt.Errorf("unsupported EBNF expression %T", expr)
	}
}

// synthetic names a desugared helper rule after the production it was
// found in, e.g. "term#rep3", so a grammar dump stays traceable to its
// source.
func (d *desugarer) synthetic(kind string) string {
	d.counter++
	return fmt.Sprintf("%s#%s%d", d.current, kind, d.counter)
}

func literal(token string) grammar.Rule {
	s := unquote(token)
	if r := []rune(s); len(r) == 1 {
		return grammar.Char(r[0])
	}
	return grammar.String(s)
}

func charRange(beginTok, endTok string) (grammar.Rule, error) {
	begin := unquote(beginTok)
	end := unquote(endTok)
	pattern := fmt.Sprintf("[%s-%s]", regexp.QuoteMeta(begin), regexp.QuoteMeta(end))
	re, err := grammar.NewRegex(pattern)
	if err != nil {
		return nil, fmt.Errorf("character range %s-%s: %w", begin, end, err)
	}
	return re, nil
}

func unquote(token string) string {
	if s, err := strconv.Unquote(token); err == nil {
		return s
	}
	return strings.Trim(token, `"'`)
}
