package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Replay folds an edit log into a fresh ledger. The result carries the
// same history, so its Version equals len(history).
func Replay(ledgerID string, history []model.EditRecord) (*TrialBalance, error) {
	tb := New(ledgerID)
	for i, rec := range history {
		next, err := tb.apply(rec)
		if err != nil {
			return nil, fmt.Errorf("replaying record %d (%s %s): %w", i+1, rec.Action, rec.ID, err)
		}
		tb = next
	}
	return tb, nil
}

// AsOf reconstructs the ledger as it was right after the given version.
func (tb *TrialBalance) AsOf(version int) (*TrialBalance, error) {
	if version < 0 || version > len(tb.History) {
		return nil, fmt.Errorf("%w: version %d outside 0..%d", ErrInvalidInput, version, len(tb.History))
	}
	return Replay(tb.ID, tb.History[:version])
}

func (tb *TrialBalance) apply(rec model.EditRecord) (*TrialBalance, error) {
	switch rec.Action {
	case model.ActionImport:
		if rec.Import == nil {
			return nil, fmt.Errorf("%w: import record without payload", ErrInvalidInput)
		}
		out, err := tb.applyImport(*rec.Import)
		if err != nil {
			return nil, err
		}
		for i := range out.Accounts {
			out.Accounts[i].LastModified = rec.Timestamp
			out.Accounts[i].ModifiedBy = rec.UserID
		}
		return out.record(rec), nil

	case model.ActionEditAccount, model.ActionAddAdjustment, model.ActionResetAdjustment:
		i, ok := tb.find(rec.AccountID)
		if !ok {
			return nil, fmt.Errorf("%s: %w", rec.AccountID, ErrAccountNotFound)
		}
		out := tb.clone()
		acct := &out.Accounts[i]
		for _, c := range rec.Changes {
			if err := setField(acct, c); err != nil {
				return nil, err
			}
		}
		acct.Recompute()
		touch(acct, Meta{UserID: rec.UserID, At: rec.Timestamp})
		out.HasAdjustments = anyAdjusted(out.Accounts)
		return out.record(rec), nil

	case model.ActionEditMapping:
		if _, ok := tb.find(rec.AccountID); !ok {
			return nil, fmt.Errorf("%s: %w", rec.AccountID, ErrAccountNotFound)
		}
		st, _ := rec.Change(FieldStatement)
		item, _ := rec.Change(FieldLineItem)
		m, err := ParseMapping(st.NewValue + "/" + item.NewValue)
		if err != nil {
			return nil, err
		}
		out := tb.clone()
		setMapping(out.Mappings, rec.AccountID, m)
		return out.record(rec), nil

	case model.ActionAutoMap:
		out := tb.clone()
		for _, c := range rec.Changes {
			acctID, ok := strings.CutPrefix(c.Field, FieldMappingPrefix)
			if !ok {
				continue
			}
			if _, ok := tb.find(acctID); !ok {
				return nil, fmt.Errorf("%s: %w", acctID, ErrAccountNotFound)
			}
			m, err := ParseMapping(c.NewValue)
			if err != nil {
				return nil, err
			}
			setMapping(out.Mappings, acctID, m)
		}
		return out.record(rec), nil
	}
	return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, rec.Action)
}

func setField(a *model.TrialBalanceAccount, c model.FieldChange) error {
	switch c.Field {
	case FieldAccountName:
		a.AccountName = c.NewValue
	case FieldAdjustmentDebit, FieldAdjustmentCredit:
		v, err := decimal.NewFromString(c.NewValue)
		if err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalidInput, c.Field, c.NewValue, err)
		}
		if c.Field == FieldAdjustmentDebit {
			a.AdjustmentDebit = v
		} else {
			a.AdjustmentCredit = v
		}
	}
	return nil
}

func setMapping(m model.AccountMapping, accountID string, next model.Mapping) {
	if next.IsMapped() {
		m[accountID] = next
		return
	}
	delete(m, accountID)
}
