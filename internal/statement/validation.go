package statement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Severity grades a validation result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Validation codes.
const (
	CodeBalanceEquation  = "balance_equation"
	CodeRounding         = "rounding_difference"
	CodeNegativeBalance  = "negative_balance"
	CodeUnlistedLineItem = "unlisted_line_item"
	CodeUnmappedAccounts = "unmapped_accounts"
)

// ValidationResult is one finding about populated statements. Findings are
// values, not errors: a statement with only warnings can be finalised.
type ValidationResult struct {
	Severity Severity        `json:"severity"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	LineItem string          `json:"lineItem,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

func (v ValidationResult) String() string {
	return fmt.Sprintf("%s: %s", v.Severity, v.Message)
}

// CanFinalize reports whether no validation result is an error.
func (p PopulatedStatements) CanFinalize() bool {
	return len(p.Errors()) == 0
}

// Errors returns the error results.
func (p PopulatedStatements) Errors() []ValidationResult {
	return p.filter(SeverityError)
}

// Warnings returns the warning results.
func (p PopulatedStatements) Warnings() []ValidationResult {
	return p.filter(SeverityWarning)
}

func (p PopulatedStatements) filter(s Severity) []ValidationResult {
	var out []ValidationResult
	for _, v := range p.Validation {
		if v.Severity == s {
			out = append(out, v)
		}
	}
	return out
}

// Find returns the node with the given ID from either statement.
func (p PopulatedStatements) Find(nodeID string) (model.StatementLineItem, bool) {
	if n, ok := model.Find(p.BalanceSheet, nodeID); ok {
		return n, true
	}
	return model.Find(p.IncomeStatement, nodeID)
}

// Value sums the value of every node called name within a section. It
// returns false when no such node exists.
func (p PopulatedStatements) Value(section model.Statement, name string) (decimal.Decimal, bool) {
	total := decimal.Zero
	found := false
	for _, root := range append(append([]model.StatementLineItem(nil), p.BalanceSheet...), p.IncomeStatement...) {
		if root.Section != section {
			continue
		}
		root.Walk(func(n model.StatementLineItem) {
			if n.Name == name {
				total = total.Add(n.Value)
				found = true
			}
		})
	}
	return total, found
}

func validateTotals(p PopulatedStatements, opts Options) []ValidationResult {
	var out []ValidationResult
	t := p.Totals
	rhs := t.TotalLiabilities.Add(t.TotalEquity)
	diff := t.TotalAssets.Sub(rhs).Abs()
	switch {
	case diff.GreaterThan(opts.Tolerance):
		out = append(out, ValidationResult{
			Severity: SeverityError,
			Code:     CodeBalanceEquation,
			Amount:   diff,
			Message: fmt.Sprintf("balance sheet does not balance: assets %s, liabilities and equity %s, difference %s",
				t.TotalAssets.StringFixed(opts.Precision), rhs.StringFixed(opts.Precision), diff.StringFixed(opts.Precision)),
		})
	case diff.IsPositive():
		out = append(out, ValidationResult{
			Severity: SeverityWarning,
			Code:     CodeRounding,
			Amount:   diff,
			Message:  fmt.Sprintf("balance sheet differs by %s, within tolerance", diff.StringFixed(opts.Precision)),
		})
	}

	for _, root := range p.BalanceSheet {
		if root.Section != model.StatementAssets && root.Section != model.StatementLiabilities {
			continue
		}
		root.Walk(func(n model.StatementLineItem) {
			if n.Level == 0 || !n.IsLeaf() || !n.Value.IsNegative() {
				return
			}
			out = append(out, ValidationResult{
				Severity: SeverityWarning,
				Code:     CodeNegativeBalance,
				LineItem: n.Name,
				Amount:   n.Value,
				Message:  fmt.Sprintf("%s has a negative balance of %s", n.Name, n.Value.StringFixed(opts.Precision)),
			})
		})
	}
	return out
}
