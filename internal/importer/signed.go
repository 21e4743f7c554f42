package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// SignedParser reads a single balance column where positive amounts are
// debits and negative amounts are credits.
type SignedParser struct{}

var signedColumns = map[string][]string{
	"id":      idColumns,
	"name":    nameColumns,
	"balance": {"balance", "net balance", "closing balance", "amount"},
}

// Format returns the parser name.
func (p *SignedParser) Format() string { return "signed" }

// Accepts reports whether header has id, name and balance columns.
func (p *SignedParser) Accepts(header []string) bool {
	_, ok := columns(header, signedColumns)
	return ok
}

// Parse reads a signed-balance trial balance.
func (p *SignedParser) Parse(r io.Reader) ([]model.RawAccount, error) {
	rows, idx, err := readRows(r, signedColumns)
	if err != nil {
		return nil, err
	}

	var out []model.RawAccount
	for i, rec := range rows {
		if blank(rec) || isTotal(field(rec, idx["id"])) {
			continue
		}
		bal, err := parseAmount(field(rec, idx["balance"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		acct, err := finish(model.RawAccount{
			AccountID:   field(rec, idx["id"]),
			AccountName: field(rec, idx["name"]),
			Debit:       bal,
			Credit:      decimal.Zero,
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, acct)
	}
	return out, nil
}

func isTotal(s string) bool {
	s = strings.ToLower(s)
	return s == "total" || s == "totals" || s == "grand total"
}
