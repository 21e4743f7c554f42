package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference still treated as
// balanced.
var BalanceTolerance = decimal.New(1, -2)

// BalanceCheck is the outcome of Validate. An unbalanced ledger is a
// result, not an error.
type BalanceCheck struct {
	IsBalanced   bool            `json:"isBalanced"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Difference   decimal.Decimal `json:"difference"`
}

func (b BalanceCheck) String() string {
	if b.IsBalanced {
		return fmt.Sprintf("balanced: debits %s = credits %s", b.TotalDebits.StringFixed(2), b.TotalCredits.StringFixed(2))
	}
	return fmt.Sprintf("out of balance by %s: debits %s, credits %s",
		b.Difference.StringFixed(2), b.TotalDebits.StringFixed(2), b.TotalCredits.StringFixed(2))
}

// Validate sums the debit and credit columns, final or original per
// useFinal.
func (tb *TrialBalance) Validate(useFinal bool) BalanceCheck {
	debits, credits := decimal.Zero, decimal.Zero
	for _, a := range tb.Accounts {
		d, c := a.Amounts(useFinal)
		debits = debits.Add(d)
		credits = credits.Add(c)
	}
	diff := debits.Sub(credits).Abs()
	return BalanceCheck{
		IsBalanced:   diff.LessThan(BalanceTolerance),
		TotalDebits:  debits,
		TotalCredits: credits,
		Difference:   diff,
	}
}
