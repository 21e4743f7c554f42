package classify

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Weights are the tunable scoring constants. Their relative order is
// pattern > multi-word keyword > single keyword > code prefix > polarity.
type Weights struct {
	Pattern       int // any pattern matched
	SingleKeyword int // one-word keyword hit
	PhraseKeyword int // two-word keyword hit
	ExtraWord     int // added per word beyond two
	KeywordCap    int // ceiling for the stacked keyword contribution
	CodePrefix    int // account code starts with a registered prefix
	Polarity      int // balance sits on the bucket's normal side
}

// DefaultWeights returns the stock weights.
func DefaultWeights() Weights {
	return Weights{
		Pattern:       70,
		SingleKeyword: 10,
		PhraseKeyword: 15,
		ExtraWord:     5,
		KeywordCap:    30,
		CodePrefix:    8,
		Polarity:      5,
	}
}

// Subject is the normalised view of an account that features and
// overrides inspect.
type Subject struct {
	AccountID string
	Name      string
	Code      string // upper-case alphanumerics of the account ID
	Net       decimal.Decimal

	text   string // " word word " for whole-word containment
	tokens map[string]bool
}

// NewSubject normalises an account for scoring.
func NewSubject(acct model.RawAccount) Subject {
	s := Subject{
		AccountID: acct.AccountID,
		Name:      acct.AccountName,
		Code:      normaliseCode(acct.AccountID),
		Net:       acct.Debit.Sub(acct.Credit),
		tokens:    make(map[string]bool),
	}
	norm := normalise(acct.AccountName)
	s.text = " " + norm + " "
	for _, t := range strings.Fields(norm) {
		s.tokens[t] = true
	}
	return s
}

// Has reports whether any of the given tokens appears as a whole word.
func (s Subject) Has(tokens ...string) bool {
	for _, t := range tokens {
		if s.tokens[t] {
			return true
		}
	}
	return false
}

// Contains reports whether phrase appears as whole words.
func (s Subject) Contains(phrase string) bool {
	p := normalise(phrase)
	return p != "" && strings.Contains(s.text, " "+p+" ")
}

// Side returns the side the balance sits on, or "" for a zero balance.
func (s Subject) Side() model.Side {
	switch {
	case s.Net.IsPositive():
		return model.Debit
	case s.Net.IsNegative():
		return model.Credit
	}
	return ""
}

// LeadingDigit returns the first character of the code when it is a digit.
func (s Subject) LeadingDigit() (int, bool) {
	if s.Code == "" || s.Code[0] < '0' || s.Code[0] > '9' {
		return 0, false
	}
	return int(s.Code[0] - '0'), true
}

// baseScore is the phase-one score of one rule against one subject.
type baseScore struct {
	score   int
	matched bool // at least one pattern, keyword or prefix hit
	reasons []string
}

func scoreRule(r *compiledRule, s Subject, w Weights) baseScore {
	var b baseScore

	for _, re := range r.patterns {
		if re.MatchString(s.Name) || (s.Code != "" && re.MatchString(s.AccountID)) {
			b.score += w.Pattern
			b.matched = true
			b.reasons = append(b.reasons, fmt.Sprintf("pattern %q", re.String()[4:]))
			break
		}
	}

	kw := 0
	var hits []string
	for _, k := range r.keywords {
		if !strings.Contains(s.text, " "+k.phrase+" ") {
			continue
		}
		kw += keywordWeight(k, w)
		hits = append(hits, k.phrase)
	}
	if kw > w.KeywordCap {
		kw = w.KeywordCap
	}
	if len(hits) > 0 {
		b.score += kw
		b.matched = true
		b.reasons = append(b.reasons, "keywords "+strings.Join(hits, ", "))
	}

	if s.Code != "" {
		for _, p := range r.prefixes {
			if strings.HasPrefix(s.Code, p) {
				b.score += w.CodePrefix
				b.matched = true
				b.reasons = append(b.reasons, "code prefix "+p)
				break
			}
		}
	}

	if b.matched && s.Side() != "" && s.Side() == r.Statement.NormalBalance() {
		b.score += w.Polarity
		b.reasons = append(b.reasons, string(s.Side())+" balance")
	}
	return b
}

func keywordWeight(k keyword, w Weights) int {
	if k.words <= 1 {
		return w.SingleKeyword
	}
	return w.PhraseKeyword + (k.words-2)*w.ExtraWord
}

// normalise lowercases s and collapses every run of non-alphanumerics to a
// single space.
func normalise(s string) string {
	var b strings.Builder
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

func normaliseCode(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
