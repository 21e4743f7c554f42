package model

// ClassificationRule binds a statement line item to the signals that
// suggest an account belongs there.
type ClassificationRule struct {
	ID                  string    `json:"id" yaml:"id" validate:"required"`
	Statement           Statement `json:"statement" yaml:"statement" validate:"required,oneof=assets liabilities equity revenue expenses"`
	LineItem            string    `json:"lineItem" yaml:"line_item" validate:"required"`
	Keywords            []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Patterns            []string  `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	AccountCodePrefixes []string  `json:"accountCodePrefixes,omitempty" yaml:"account_code_prefixes,omitempty"`
	Priority            int       `json:"priority" yaml:"priority" validate:"gte=0"`
}

// MappingSuggestion is a classification proposal. It is never stored as
// authoritative state.
type MappingSuggestion struct {
	AccountID  string    `json:"accountId"`
	Statement  Statement `json:"statement"`
	LineItem   string    `json:"lineItem"`
	Confidence int       `json:"confidence"`
	Reason     string    `json:"reason"`
	RuleID     string    `json:"ruleId,omitempty"`
}

// Mapping is the authoritative classification of one account.
type Mapping struct {
	Statement Statement `json:"statement" yaml:"statement"`
	LineItem  string    `json:"lineItem" yaml:"line_item"`
}

// IsMapped reports whether the mapping points at a real bucket.
func (m Mapping) IsMapped() bool {
	return m.Statement.IsValid() && m.LineItem != ""
}

// AccountMapping indexes mappings by account ID.
type AccountMapping map[string]Mapping

// Clone returns an independent copy.
func (m AccountMapping) Clone() AccountMapping {
	out := make(AccountMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MappedTrialBalance groups accounts by statement and line item. It is a
// derived view, always rebuilt from accounts and mappings.
type MappedTrialBalance map[Statement]map[string][]TrialBalanceAccount

// Accounts returns the accounts bucketed under a line item.
func (m MappedTrialBalance) Accounts(s Statement, lineItem string) []TrialBalanceAccount {
	items, ok := m[s]
	if !ok {
		return nil
	}
	return items[lineItem]
}
