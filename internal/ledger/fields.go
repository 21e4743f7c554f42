package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Field names used in EditRecord diffs.
const (
	FieldAccountName      = "accountName"
	FieldAdjustmentDebit  = "adjustmentDebit"
	FieldAdjustmentCredit = "adjustmentCredit"
	FieldDeltaDebit       = "deltaDebit"
	FieldDeltaCredit      = "deltaCredit"
	FieldStatement        = "statement"
	FieldLineItem         = "lineItem"

	// FieldMappingPrefix is followed by the account ID in auto_map diffs.
	FieldMappingPrefix = "mapping:"
)

func amountChange(field string, old, next decimal.Decimal) model.FieldChange {
	return model.FieldChange{Field: field, OldValue: old.String(), NewValue: next.String()}
}

func statementValue(m model.Mapping) string {
	if !m.IsMapped() {
		return string(model.Unmapped)
	}
	return string(m.Statement)
}

// FormatMapping renders a mapping as "statement/line item".
func FormatMapping(m model.Mapping) string {
	if !m.IsMapped() {
		return string(model.Unmapped)
	}
	return string(m.Statement) + "/" + m.LineItem
}

// ParseMapping is the inverse of FormatMapping.
func ParseMapping(s string) (model.Mapping, error) {
	st, item, _ := strings.Cut(s, "/")
	statement, ok := model.ParseStatement(st)
	if !ok {
		return model.Mapping{}, fmt.Errorf("%w: mapping %q", ErrInvalidInput, s)
	}
	if statement == model.Unmapped {
		return model.Mapping{Statement: model.Unmapped}, nil
	}
	m := model.Mapping{Statement: statement, LineItem: strings.TrimSpace(item)}
	if !m.IsMapped() {
		return model.Mapping{}, fmt.Errorf("%w: mapping %q has no line item", ErrInvalidInput, s)
	}
	return m, nil
}

func describeFields(diff []model.FieldChange) string {
	names := make([]string, len(diff))
	for i, c := range diff {
		names[i] = c.Field
	}
	return strings.Join(names, ", ")
}
