// Package accounts reads and writes trial balances as CSV.
package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

const (
	numFields       = 10
	colID           = 0
	colName         = 1
	colOrigDebit    = 2
	colOrigCredit   = 3
	colAdjDebit     = 4
	colAdjCredit    = 5
	colFinalDebit   = 6
	colFinalCredit  = 7
	colStatement    = 8
	colLineItem     = 9
	amountPrecision = 2
)

var header = []string{
	"account_id", "account_name",
	"original_debit", "original_credit",
	"adjustment_debit", "adjustment_credit",
	"final_debit", "final_credit",
	"statement", "line_item",
}

// WriteTrialBalance writes accounts with their mapping, one row each.
func WriteTrialBalance(w io.Writer, accts []model.TrialBalanceAccount, mappings model.AccountMapping) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accts {
		if err := cw.Write(MarshalAccount(a, mappings[a.AccountID])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTrialBalance reads a file written by WriteTrialBalance. Mappings are
// returned only for mapped rows.
func ReadTrialBalance(r io.Reader) ([]model.TrialBalanceAccount, model.AccountMapping, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading trial balance CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	var accts []model.TrialBalanceAccount
	mappings := make(model.AccountMapping)
	for i, rec := range records[1:] {
		a, m, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accts = append(accts, a)
		if m.IsMapped() {
			mappings[a.AccountID] = m
		}
	}
	return accts, mappings, nil
}

// MarshalAccount converts an account and its mapping to a CSV row.
func MarshalAccount(a model.TrialBalanceAccount, m model.Mapping) []string {
	row := make([]string, numFields)
	row[colID] = a.AccountID
	row[colName] = a.AccountName
	row[colOrigDebit] = a.OriginalDebit.StringFixed(amountPrecision)
	row[colOrigCredit] = a.OriginalCredit.StringFixed(amountPrecision)
	row[colAdjDebit] = a.AdjustmentDebit.StringFixed(amountPrecision)
	row[colAdjCredit] = a.AdjustmentCredit.StringFixed(amountPrecision)
	row[colFinalDebit] = a.FinalDebit.StringFixed(amountPrecision)
	row[colFinalCredit] = a.FinalCredit.StringFixed(amountPrecision)
	if m.IsMapped() {
		row[colStatement] = string(m.Statement)
		row[colLineItem] = m.LineItem
	}
	return row
}

// UnmarshalAccount converts a CSV row to an account and mapping. The final
// columns must equal original plus adjustment.
func UnmarshalAccount(rec []string) (model.TrialBalanceAccount, model.Mapping, error) {
	if len(rec) != numFields {
		return model.TrialBalanceAccount{}, model.Mapping{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	amounts := make([]decimal.Decimal, numFields)
	for col := colOrigDebit; col <= colFinalCredit; col++ {
		d, err := decimal.NewFromString(rec[col])
		if err != nil {
			return model.TrialBalanceAccount{}, model.Mapping{}, fmt.Errorf("parsing %s %q: %w", header[col], rec[col], err)
		}
		amounts[col] = d
	}

	a := model.NewTrialBalanceAccount(model.RawAccount{
		AccountID:   rec[colID],
		AccountName: rec[colName],
		Debit:       amounts[colOrigDebit],
		Credit:      amounts[colOrigCredit],
	})
	a.AdjustmentDebit = amounts[colAdjDebit]
	a.AdjustmentCredit = amounts[colAdjCredit]
	a.IsEdited = a.HasAdjustment()
	a.Recompute()
	if !a.FinalDebit.Equal(amounts[colFinalDebit]) || !a.FinalCredit.Equal(amounts[colFinalCredit]) {
		return model.TrialBalanceAccount{}, model.Mapping{}, fmt.Errorf("account %s: final amounts do not equal original plus adjustment", a.AccountID)
	}

	var m model.Mapping
	if rec[colStatement] != "" {
		s, ok := model.ParseStatement(rec[colStatement])
		if !ok {
			return model.TrialBalanceAccount{}, model.Mapping{}, fmt.Errorf("unknown statement %q", rec[colStatement])
		}
		m = model.Mapping{Statement: s, LineItem: rec[colLineItem]}
	}
	return a, m, nil
}

// WriteRaw writes accounts in the standard import layout.
func WriteRaw(w io.Writer, accts []model.RawAccount) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_id", "account_name", "debit", "credit"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accts {
		row := []string{a.AccountID, a.AccountName, a.Debit.StringFixed(amountPrecision), a.Credit.StringFixed(amountPrecision)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
