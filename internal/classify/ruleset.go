package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// compiledRule pairs a rule with its pre-processed matchers.
type compiledRule struct {
	model.ClassificationRule
	patterns []*regexp.Regexp
	keywords []keyword
	prefixes []string
	seq      int // insertion order, breaks priority ties
}

type keyword struct {
	phrase string // normalised, space separated
	words  int
}

// Ruleset is the classification catalog. It is not safe for concurrent
// mutation; classification itself only reads it.
type Ruleset struct {
	rules []*compiledRule
	byID  map[string]*compiledRule
	next  int
}

// NewRuleset builds a Ruleset from rules, validating each.
func NewRuleset(rules ...model.ClassificationRule) (*Ruleset, error) {
	rs := &Ruleset{byID: make(map[string]*compiledRule)}
	for _, r := range rules {
		if err := rs.Add(r); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Add registers a rule. Adding a rule whose ID already exists replaces it.
func (rs *Ruleset) Add(rule model.ClassificationRule) error {
	if err := model.Validate(rule); err != nil {
		return err
	}
	cr := &compiledRule{ClassificationRule: rule, seq: rs.next}
	rs.next++
	for _, p := range rule.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("rule %s: compiling pattern %q: %w", rule.ID, p, err)
		}
		cr.patterns = append(cr.patterns, re)
	}
	for _, k := range rule.Keywords {
		phrase := normalise(k)
		if phrase == "" {
			continue
		}
		cr.keywords = append(cr.keywords, keyword{phrase: phrase, words: len(strings.Fields(phrase))})
	}
	for _, p := range rule.AccountCodePrefixes {
		if np := normaliseCode(p); np != "" {
			cr.prefixes = append(cr.prefixes, np)
		}
	}

	if old, ok := rs.byID[rule.ID]; ok {
		rs.removeRule(old)
	}
	rs.byID[rule.ID] = cr
	rs.rules = append(rs.rules, cr)
	rs.sort()
	return nil
}

// Remove deletes a rule by ID and reports whether it existed.
func (rs *Ruleset) Remove(id string) bool {
	cr, ok := rs.byID[id]
	if !ok {
		return false
	}
	rs.removeRule(cr)
	delete(rs.byID, id)
	return true
}

func (rs *Ruleset) removeRule(cr *compiledRule) {
	for i, r := range rs.rules {
		if r == cr {
			rs.rules = append(rs.rules[:i], rs.rules[i+1:]...)
			return
		}
	}
}

// Get returns a rule by ID.
func (rs *Ruleset) Get(id string) (model.ClassificationRule, bool) {
	cr, ok := rs.byID[id]
	if !ok {
		return model.ClassificationRule{}, false
	}
	return cr.ClassificationRule, true
}

// Len returns the number of rules.
func (rs *Ruleset) Len() int {
	return len(rs.rules)
}

// Rules returns the catalog in evaluation order: descending priority, then
// insertion order.
func (rs *Ruleset) Rules() []model.ClassificationRule {
	out := make([]model.ClassificationRule, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.ClassificationRule
	}
	return out
}

// Search returns rules whose ID, line item, statement or keywords contain
// query (case-insensitive), in evaluation order.
func (rs *Ruleset) Search(query string) []model.ClassificationRule {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.ClassificationRule
	for _, r := range rs.rules {
		if q == "" || r.matchesQuery(q) {
			out = append(out, r.ClassificationRule)
		}
	}
	return out
}

func (r *compiledRule) matchesQuery(q string) bool {
	if strings.Contains(strings.ToLower(r.ID), q) ||
		strings.Contains(strings.ToLower(r.LineItem), q) ||
		strings.Contains(string(r.Statement), q) {
		return true
	}
	for _, k := range r.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy that can be extended without affecting rs.
func (rs *Ruleset) Clone() *Ruleset {
	out := &Ruleset{
		rules: make([]*compiledRule, len(rs.rules)),
		byID:  make(map[string]*compiledRule, len(rs.byID)),
		next:  rs.next,
	}
	copy(out.rules, rs.rules)
	for k, v := range rs.byID {
		out.byID[k] = v
	}
	return out
}

func (rs *Ruleset) sort() {
	sort.SliceStable(rs.rules, func(i, j int) bool {
		if rs.rules[i].Priority != rs.rules[j].Priority {
			return rs.rules[i].Priority > rs.rules[j].Priority
		}
		return rs.rules[i].seq < rs.rules[j].seq
	})
}
