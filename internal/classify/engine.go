package classify

import (
	"fmt"
	"strings"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Options tune classification.
type Options struct {
	Weights Weights
	// Threshold is the minimum confidence for a rule-based suggestion;
	// below it the coarse code-range fallback is used.
	Threshold int
	// ShortCircuit stops scanning lower-priority rules once a candidate
	// reaches this confidence.
	ShortCircuit int
	// DisableFallback reports unmapped instead of using the code-range
	// heuristic.
	DisableFallback bool
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return Options{
		Weights:      DefaultWeights(),
		Threshold:    50,
		ShortCircuit: 95,
	}
}

// Candidate is a scored (statement, line item) proposal for one account.
type Candidate struct {
	RuleID     string
	Statement  model.Statement
	LineItem   string
	Priority   int
	Confidence int
	Vetoed     bool
	Forced     bool
	Reasons    []string
	Overrides  []string
}

// Reason joins the candidate's reasons into one line.
func (c Candidate) Reason() string {
	return strings.Join(c.Reasons, "; ")
}

// Engine classifies accounts against a ruleset. It holds no mutable state
// and is safe for concurrent use as long as the ruleset is not modified.
type Engine struct {
	rules     *Ruleset
	overrides []Override
	opts      Options
}

// NewEngine creates an Engine with the default override table.
func NewEngine(rules *Ruleset, opts Options) *Engine {
	return NewEngineWithOverrides(rules, DefaultOverrides(), opts)
}

// NewEngineWithOverrides creates an Engine with a custom override table.
func NewEngineWithOverrides(rules *Ruleset, overrides []Override, opts Options) *Engine {
	if opts.ShortCircuit <= 0 {
		opts.ShortCircuit = 101
	}
	return &Engine{rules: rules, overrides: overrides, opts: opts}
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.opts
}

// Rules returns the engine's catalog.
func (e *Engine) Rules() *Ruleset {
	return e.rules
}

// Classify returns the best suggestion for acct. ok is false when the
// account stays unmapped; that is a normal outcome, not an error.
func (e *Engine) Classify(acct model.RawAccount) (model.MappingSuggestion, bool) {
	s := NewSubject(acct)
	cands := e.evaluate(s, true)

	best, found := pick(cands)
	if found && best.Confidence >= e.opts.Threshold {
		return model.MappingSuggestion{
			AccountID:  acct.AccountID,
			Statement:  best.Statement,
			LineItem:   best.LineItem,
			Confidence: best.Confidence,
			Reason:     best.Reason(),
			RuleID:     best.RuleID,
		}, true
	}
	if e.opts.DisableFallback {
		return model.MappingSuggestion{}, false
	}
	return fallback(s)
}

// ClassifyAll classifies accounts in input order. Unmapped accounts get a
// suggestion with Statement == model.Unmapped and zero confidence.
func (e *Engine) ClassifyAll(accts []model.RawAccount) []model.MappingSuggestion {
	out := make([]model.MappingSuggestion, len(accts))
	for i, a := range accts {
		sug, ok := e.Classify(a)
		if !ok {
			sug = model.MappingSuggestion{
				AccountID: a.AccountID,
				Statement: model.Unmapped,
				Reason:    "no rule matched and no code-range fallback applies",
			}
		}
		out[i] = sug
	}
	return out
}

// Candidates returns every candidate for acct, including vetoed ones, in
// evaluation order without short-circuiting.
func (e *Engine) Candidates(acct model.RawAccount) []Candidate {
	return e.evaluate(NewSubject(acct), false)
}

func (e *Engine) evaluate(s Subject, shortCircuit bool) []Candidate {
	active := make([]Override, 0, len(e.overrides))
	for _, o := range e.overrides {
		if o.When(s) {
			active = append(active, o)
		}
	}

	var cands []Candidate
	for _, r := range e.rules.rules {
		b := scoreRule(r, s, e.opts.Weights)
		if !b.matched {
			continue
		}
		c := Candidate{
			RuleID:     r.ID,
			Statement:  r.Statement,
			LineItem:   r.LineItem,
			Priority:   r.Priority,
			Confidence: clamp(b.score),
			Reasons:    b.reasons,
		}
		for _, o := range active {
			o.apply(&c)
		}
		cands = append(cands, c)
		if shortCircuit && !c.Vetoed && c.Confidence >= e.opts.ShortCircuit {
			break
		}
	}

	for _, o := range active {
		if o.Force == nil || hasTarget(cands, *o.Force) {
			continue
		}
		c := Candidate{
			Statement: o.Force.Statement,
			LineItem:  o.Force.LineItem,
			Forced:    true,
		}
		for _, o2 := range active {
			o2.apply(&c)
		}
		cands = append(cands, c)
	}
	return cands
}

func hasTarget(cands []Candidate, t Target) bool {
	for _, c := range cands {
		if c.Statement == t.Statement && c.LineItem == t.LineItem {
			return true
		}
	}
	return false
}

// pick returns the highest-confidence non-vetoed candidate; the earliest
// wins ties.
func pick(cands []Candidate) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range cands {
		if c.Vetoed || c.Confidence <= 0 {
			continue
		}
		if !found || c.Confidence > best.Confidence {
			best = c
			found = true
		}
	}
	return best, found
}

// fallbackTargets follows the common chart-of-accounts numbering.
var fallbackTargets = map[int]Target{
	1: {model.StatementAssets, model.LineOtherCurrentAssets},
	2: {model.StatementLiabilities, model.LineOtherCurrentLiab},
	3: {model.StatementEquity, model.LineOtherReserves},
	4: {model.StatementRevenue, model.LineOtherIncome},
}

const (
	fallbackConfidence   = 30
	fallbackConsistent   = 10
	fallbackInconsistent = 10
)

func fallback(s Subject) (model.MappingSuggestion, bool) {
	digit, ok := s.LeadingDigit()
	if !ok || digit == 0 {
		return model.MappingSuggestion{}, false
	}
	t, ok := fallbackTargets[digit]
	if !ok {
		t = Target{model.StatementExpenses, model.LineOtherOperatingExp}
	}

	conf := fallbackConfidence
	note := "zero balance"
	switch side := s.Side(); {
	case side == "":
	case side == t.Statement.NormalBalance():
		conf += fallbackConsistent
		note = string(side) + " balance consistent"
	default:
		conf -= fallbackInconsistent
		note = string(side) + " balance inconsistent"
	}
	return model.MappingSuggestion{
		AccountID:  s.AccountID,
		Statement:  t.Statement,
		LineItem:   t.LineItem,
		Confidence: conf,
		Reason:     fmt.Sprintf("fallback: code %dxxx range suggests %s (%s)", digit, t.Statement, note),
	}, true
}
