package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawAccount is an account as received from an import source.
type RawAccount struct {
	AccountID   string          `json:"accountId" yaml:"account_id" validate:"required"`
	AccountName string          `json:"accountName" yaml:"account_name" validate:"required"`
	Debit       decimal.Decimal `json:"debit" yaml:"debit" validate:"gte=0"`
	Credit      decimal.Decimal `json:"credit" yaml:"credit" validate:"gte=0"`
}

// Net returns debit minus credit.
func (a RawAccount) Net() decimal.Decimal {
	return a.Debit.Sub(a.Credit)
}

// TrialBalanceAccount tracks an account's imported, adjusted and final
// balances. Final is always Original + Adjustment.
type TrialBalanceAccount struct {
	RawAccount

	OriginalDebit    decimal.Decimal `json:"originalDebit"`
	OriginalCredit   decimal.Decimal `json:"originalCredit"`
	AdjustmentDebit  decimal.Decimal `json:"adjustmentDebit"`
	AdjustmentCredit decimal.Decimal `json:"adjustmentCredit"`
	FinalDebit       decimal.Decimal `json:"finalDebit"`
	FinalCredit      decimal.Decimal `json:"finalCredit"`

	IsEdited     bool      `json:"isEdited"`
	LastModified time.Time `json:"lastModified"`
	ModifiedBy   string    `json:"modifiedBy,omitempty"`
}

// NewTrialBalanceAccount freezes the raw amounts as originals.
func NewTrialBalanceAccount(raw RawAccount) TrialBalanceAccount {
	a := TrialBalanceAccount{
		RawAccount:       raw,
		OriginalDebit:    raw.Debit,
		OriginalCredit:   raw.Credit,
		AdjustmentDebit:  decimal.Zero,
		AdjustmentCredit: decimal.Zero,
	}
	a.Recompute()
	return a
}

// Recompute re-derives the final columns. The embedded Debit/Credit mirror
// the final amounts so downstream consumers see adjusted balances.
func (a *TrialBalanceAccount) Recompute() {
	a.FinalDebit = a.OriginalDebit.Add(a.AdjustmentDebit)
	a.FinalCredit = a.OriginalCredit.Add(a.AdjustmentCredit)
	a.Debit = a.FinalDebit
	a.Credit = a.FinalCredit
}

// Consistent reports whether final = original + adjustment on both columns.
func (a TrialBalanceAccount) Consistent() bool {
	return a.FinalDebit.Equal(a.OriginalDebit.Add(a.AdjustmentDebit)) &&
		a.FinalCredit.Equal(a.OriginalCredit.Add(a.AdjustmentCredit))
}

// HasAdjustment reports whether any adjustment is recorded.
func (a TrialBalanceAccount) HasAdjustment() bool {
	return !a.AdjustmentDebit.IsZero() || !a.AdjustmentCredit.IsZero()
}

// Amounts returns the debit and credit columns for the chosen basis.
func (a TrialBalanceAccount) Amounts(useFinal bool) (debit, credit decimal.Decimal) {
	if useFinal {
		return a.FinalDebit, a.FinalCredit
	}
	return a.OriginalDebit, a.OriginalCredit
}

// SignedBalance returns the balance signed by the bucket's normal side:
// debit - credit for debit-normal buckets, credit - debit otherwise.
func (a TrialBalanceAccount) SignedBalance(s Statement, useFinal bool) decimal.Decimal {
	d, c := a.Amounts(useFinal)
	if s.NormalBalance() == Debit {
		return d.Sub(c)
	}
	return c.Sub(d)
}
