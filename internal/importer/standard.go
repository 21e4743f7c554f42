package importer

import (
	"fmt"
	"io"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

var (
	idColumns   = []string{"account_id", "account id", "account code", "code", "account no", "account number", "id"}
	nameColumns = []string{"account_name", "account name", "name", "description", "account"}
)

// StandardParser reads the common four-column layout: account code,
// account name, debit and credit. Extra columns are ignored.
type StandardParser struct{}

var standardColumns = map[string][]string{
	"id":     idColumns,
	"name":   nameColumns,
	"debit":  {"debit", "debits", "dr", "debit amount"},
	"credit": {"credit", "credits", "cr", "credit amount"},
}

// Format returns the parser name.
func (p *StandardParser) Format() string { return "standard" }

// Accepts reports whether header has id, name, debit and credit columns.
func (p *StandardParser) Accepts(header []string) bool {
	_, ok := columns(header, standardColumns)
	return ok
}

// Parse reads a standard trial balance. Blank rows and rows whose id cell
// reads "total" are skipped.
func (p *StandardParser) Parse(r io.Reader) ([]model.RawAccount, error) {
	rows, idx, err := readRows(r, standardColumns)
	if err != nil {
		return nil, err
	}

	var out []model.RawAccount
	for i, rec := range rows {
		if blank(rec) || isTotal(field(rec, idx["id"])) {
			continue
		}
		debit, err := parseAmount(field(rec, idx["debit"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		credit, err := parseAmount(field(rec, idx["credit"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		acct, err := finish(model.RawAccount{
			AccountID:   field(rec, idx["id"]),
			AccountName: field(rec, idx["name"]),
			Debit:       debit,
			Credit:      credit,
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, acct)
	}
	return out, nil
}
