package model

import "strings"

// Statement is the top-level bucket an account is classified into.
type Statement string

const (
	StatementAssets      Statement = "assets"
	StatementLiabilities Statement = "liabilities"
	StatementEquity      Statement = "equity"
	StatementRevenue     Statement = "revenue"
	StatementExpenses    Statement = "expenses"

	// Unmapped marks an account with no authoritative classification.
	Unmapped Statement = "unmapped"
)

// Statements lists the five classifiable buckets in presentation order.
var Statements = []Statement{
	StatementAssets,
	StatementLiabilities,
	StatementEquity,
	StatementRevenue,
	StatementExpenses,
}

// Side is a column of the trial balance.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// ParseStatement accepts the canonical names plus a few singular aliases.
func ParseStatement(s string) (Statement, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assets", "asset":
		return StatementAssets, true
	case "liabilities", "liability":
		return StatementLiabilities, true
	case "equity":
		return StatementEquity, true
	case "revenue", "revenues", "income":
		return StatementRevenue, true
	case "expenses", "expense":
		return StatementExpenses, true
	case "unmapped", "":
		return Unmapped, true
	}
	return "", false
}

// IsValid reports whether s is one of the five buckets.
func (s Statement) IsValid() bool {
	switch s {
	case StatementAssets, StatementLiabilities, StatementEquity, StatementRevenue, StatementExpenses:
		return true
	}
	return false
}

// NormalBalance returns the side an account in this bucket is expected to
// carry a positive balance on.
func (s Statement) NormalBalance() Side {
	switch s {
	case StatementAssets, StatementExpenses:
		return Debit
	default:
		return Credit
	}
}

// IsBalanceSheet reports whether the bucket belongs to the statement of
// financial position.
func (s Statement) IsBalanceSheet() bool {
	return s == StatementAssets || s == StatementLiabilities || s == StatementEquity
}
