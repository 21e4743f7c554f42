// Package ledger holds the trial balance aggregate. Every operation returns
// a new aggregate one version ahead with exactly one appended EditRecord;
// the receiver is never modified.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/id"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Meta identifies who performs an operation and when. A zero At means now.
type Meta struct {
	UserID string
	At     time.Time
}

func (m Meta) stamped() Meta {
	if m.At.IsZero() {
		m.At = time.Now().UTC()
	}
	return m
}

// TrialBalance is the ledger aggregate. Accounts is a flat arena in import
// order; Mappings and the derived views index into it by account ID.
type TrialBalance struct {
	ID             string                      `json:"id"`
	Version        int                         `json:"version"`
	Accounts       []model.TrialBalanceAccount `json:"accounts"`
	Mappings       model.AccountMapping        `json:"mappings"`
	HasAdjustments bool                        `json:"hasAdjustments"`
	SourceFile     string                      `json:"sourceFile,omitempty"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
	History        []model.EditRecord          `json:"history"`

	index map[string]int
}

// New returns an empty ledger at version 0.
func New(ledgerID string) *TrialBalance {
	return &TrialBalance{
		ID:       ledgerID,
		Mappings: model.AccountMapping{},
		index:    map[string]int{},
	}
}

// Restore rebuilds a ledger from persisted state.
func Restore(tb TrialBalance) *TrialBalance {
	out := tb
	if out.Mappings == nil {
		out.Mappings = model.AccountMapping{}
	}
	out.reindex()
	return &out
}

func (tb *TrialBalance) reindex() {
	tb.index = make(map[string]int, len(tb.Accounts))
	for i, a := range tb.Accounts {
		tb.index[a.AccountID] = i
	}
}

func (tb *TrialBalance) find(accountID string) (int, bool) {
	if tb.index != nil {
		i, ok := tb.index[accountID]
		return i, ok
	}
	for i, a := range tb.Accounts {
		if a.AccountID == accountID {
			return i, true
		}
	}
	return 0, false
}

// Account returns an account by ID.
func (tb *TrialBalance) Account(accountID string) (model.TrialBalanceAccount, bool) {
	i, ok := tb.find(accountID)
	if !ok {
		return model.TrialBalanceAccount{}, false
	}
	return tb.Accounts[i], true
}

// Mapping returns the authoritative mapping of an account.
func (tb *TrialBalance) Mapping(accountID string) (model.Mapping, bool) {
	m, ok := tb.Mappings[accountID]
	return m, ok && m.IsMapped()
}

// RawAccounts returns the accounts at their final balances, in arena order.
func (tb *TrialBalance) RawAccounts() []model.RawAccount {
	out := make([]model.RawAccount, len(tb.Accounts))
	for i, a := range tb.Accounts {
		out[i] = model.RawAccount{
			AccountID:   a.AccountID,
			AccountName: a.AccountName,
			Debit:       a.FinalDebit,
			Credit:      a.FinalCredit,
		}
	}
	return out
}

// LastEdit returns the most recent record.
func (tb *TrialBalance) LastEdit() (model.EditRecord, bool) {
	if len(tb.History) == 0 {
		return model.EditRecord{}, false
	}
	return tb.History[len(tb.History)-1], true
}

// clone copies everything an operation may touch. The index is shared
// because no operation other than Import changes account positions.
func (tb *TrialBalance) clone() *TrialBalance {
	out := *tb
	out.Accounts = append([]model.TrialBalanceAccount(nil), tb.Accounts...)
	out.Mappings = tb.Mappings.Clone()
	out.History = append(make([]model.EditRecord, 0, len(tb.History)+1), tb.History...)
	if out.index == nil {
		out.reindex()
	}
	return &out
}

func (tb *TrialBalance) commit(rec model.EditRecord, meta Meta) *TrialBalance {
	rec.ID = id.NewEditID(meta.At)
	rec.Timestamp = meta.At
	rec.UserID = meta.UserID
	return tb.record(rec)
}

func (tb *TrialBalance) record(rec model.EditRecord) *TrialBalance {
	tb.History = append(tb.History, rec)
	tb.Version++
	tb.UpdatedAt = rec.Timestamp
	return tb
}

// Import replaces the ledger's accounts with raw, freezing the raw amounts
// as originals with zero adjustments. Mappings for accounts not in raw are
// dropped.
func (tb *TrialBalance) Import(raw []model.RawAccount, mappings model.AccountMapping, sourceFile string, meta Meta) (*TrialBalance, error) {
	meta = meta.stamped()
	payload := model.ImportPayload{
		Accounts:   append([]model.RawAccount(nil), raw...),
		Mappings:   mappings.Clone(),
		SourceFile: sourceFile,
	}
	out, err := tb.applyImport(payload)
	if err != nil {
		return nil, err
	}
	rec := model.EditRecord{
		Action:      model.ActionImport,
		Description: importDescription(payload),
		Changes: []model.FieldChange{
			{Field: "accounts", OldValue: fmt.Sprint(len(tb.Accounts)), NewValue: fmt.Sprint(len(raw))},
			{Field: "mappings", OldValue: fmt.Sprint(len(tb.Mappings)), NewValue: fmt.Sprint(len(out.Mappings))},
		},
		Import: &payload,
	}
	if sourceFile != "" {
		rec.Changes = append(rec.Changes, model.FieldChange{Field: "sourceFile", OldValue: tb.SourceFile, NewValue: sourceFile})
	}
	for i := range out.Accounts {
		out.Accounts[i].LastModified = meta.At
		out.Accounts[i].ModifiedBy = meta.UserID
	}
	return out.commit(rec, meta), nil
}

func (tb *TrialBalance) applyImport(p model.ImportPayload) (*TrialBalance, error) {
	out := tb.clone()
	out.Accounts = make([]model.TrialBalanceAccount, 0, len(p.Accounts))
	out.index = make(map[string]int, len(p.Accounts))
	for _, r := range p.Accounts {
		if err := model.Validate(r); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, dup := out.index[r.AccountID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, r.AccountID)
		}
		out.index[r.AccountID] = len(out.Accounts)
		out.Accounts = append(out.Accounts, model.NewTrialBalanceAccount(r))
	}
	out.Mappings = model.AccountMapping{}
	for acctID, m := range p.Mappings {
		if _, ok := out.index[acctID]; ok && m.IsMapped() {
			out.Mappings[acctID] = m
		}
	}
	out.HasAdjustments = false
	out.SourceFile = p.SourceFile
	return out, nil
}

func importDescription(p model.ImportPayload) string {
	if p.SourceFile == "" {
		return fmt.Sprintf("imported %d accounts", len(p.Accounts))
	}
	return fmt.Sprintf("imported %d accounts from %s", len(p.Accounts), p.SourceFile)
}

// AccountChanges is a partial update; nil fields are left alone.
type AccountChanges struct {
	AccountName      *string
	AdjustmentDebit  *decimal.Decimal
	AdjustmentCredit *decimal.Decimal
}

// EditAccount merges changes into an account. Changing an adjustment
// replaces it and recomputes the final balance.
func (tb *TrialBalance) EditAccount(accountID string, changes AccountChanges, meta Meta) (*TrialBalance, error) {
	meta = meta.stamped()
	i, ok := tb.find(accountID)
	if !ok {
		return nil, fmt.Errorf("editing %s: %w", accountID, ErrAccountNotFound)
	}
	if changes.AccountName != nil && strings.TrimSpace(*changes.AccountName) == "" {
		return nil, fmt.Errorf("%w: account name cannot be empty", ErrInvalidInput)
	}

	out := tb.clone()
	acct := &out.Accounts[i]
	var diff []model.FieldChange
	if changes.AccountName != nil && *changes.AccountName != acct.AccountName {
		diff = append(diff, model.FieldChange{Field: FieldAccountName, OldValue: acct.AccountName, NewValue: *changes.AccountName})
		acct.AccountName = *changes.AccountName
	}
	if changes.AdjustmentDebit != nil && !changes.AdjustmentDebit.Equal(acct.AdjustmentDebit) {
		diff = append(diff, amountChange(FieldAdjustmentDebit, acct.AdjustmentDebit, *changes.AdjustmentDebit))
		acct.AdjustmentDebit = *changes.AdjustmentDebit
	}
	if changes.AdjustmentCredit != nil && !changes.AdjustmentCredit.Equal(acct.AdjustmentCredit) {
		diff = append(diff, amountChange(FieldAdjustmentCredit, acct.AdjustmentCredit, *changes.AdjustmentCredit))
		acct.AdjustmentCredit = *changes.AdjustmentCredit
	}
	acct.Recompute()
	touch(acct, meta)
	out.HasAdjustments = anyAdjusted(out.Accounts)

	desc := "edited " + describeFields(diff)
	if len(diff) == 0 {
		desc = "edited, no fields changed"
	}
	return out.commit(model.EditRecord{
		Action:      model.ActionEditAccount,
		AccountID:   accountID,
		Changes:     diff,
		Description: desc,
	}, meta), nil
}

// UpdateMapping replaces the mapping of an account. Mapping to
// model.Unmapped removes it.
func (tb *TrialBalance) UpdateMapping(accountID string, statement model.Statement, lineItem string, meta Meta) (*TrialBalance, error) {
	meta = meta.stamped()
	if _, ok := tb.find(accountID); !ok {
		return nil, fmt.Errorf("mapping %s: %w", accountID, ErrAccountNotFound)
	}
	next := model.Mapping{Statement: statement, LineItem: strings.TrimSpace(lineItem)}
	if statement != model.Unmapped && !next.IsMapped() {
		return nil, fmt.Errorf("%w: mapping %s to %q/%q", ErrInvalidInput, accountID, statement, lineItem)
	}

	out := tb.clone()
	prev := out.Mappings[accountID]
	if next.IsMapped() {
		out.Mappings[accountID] = next
	} else {
		delete(out.Mappings, accountID)
	}

	return out.commit(model.EditRecord{
		Action:    model.ActionEditMapping,
		AccountID: accountID,
		Changes: []model.FieldChange{
			{Field: FieldStatement, OldValue: statementValue(prev), NewValue: statementValue(next)},
			{Field: FieldLineItem, OldValue: prev.LineItem, NewValue: next.LineItem},
		},
		Description: fmt.Sprintf("mapped to %s", FormatMapping(next)),
	}, meta), nil
}

// ApplyAdjustment adds deltas to the account's running adjustments.
func (tb *TrialBalance) ApplyAdjustment(accountID string, deltaDebit, deltaCredit decimal.Decimal, description string, meta Meta) (*TrialBalance, error) {
	meta = meta.stamped()
	i, ok := tb.find(accountID)
	if !ok {
		return nil, fmt.Errorf("adjusting %s: %w", accountID, ErrAccountNotFound)
	}

	out := tb.clone()
	acct := &out.Accounts[i]
	diff := []model.FieldChange{
		{Field: FieldDeltaDebit, NewValue: deltaDebit.String()},
		{Field: FieldDeltaCredit, NewValue: deltaCredit.String()},
		amountChange(FieldAdjustmentDebit, acct.AdjustmentDebit, acct.AdjustmentDebit.Add(deltaDebit)),
		amountChange(FieldAdjustmentCredit, acct.AdjustmentCredit, acct.AdjustmentCredit.Add(deltaCredit)),
	}
	acct.AdjustmentDebit = acct.AdjustmentDebit.Add(deltaDebit)
	acct.AdjustmentCredit = acct.AdjustmentCredit.Add(deltaCredit)
	acct.Recompute()
	touch(acct, meta)
	out.HasAdjustments = anyAdjusted(out.Accounts)

	if description == "" {
		description = fmt.Sprintf("adjusted by Dr %s / Cr %s", deltaDebit.StringFixed(2), deltaCredit.StringFixed(2))
	}
	return out.commit(model.EditRecord{
		Action:      model.ActionAddAdjustment,
		AccountID:   accountID,
		Changes:     diff,
		Description: description,
	}, meta), nil
}

// ResetAdjustment zeroes an account's adjustments so final equals original.
func (tb *TrialBalance) ResetAdjustment(accountID string, meta Meta) (*TrialBalance, error) {
	meta = meta.stamped()
	i, ok := tb.find(accountID)
	if !ok {
		return nil, fmt.Errorf("resetting %s: %w", accountID, ErrAccountNotFound)
	}

	out := tb.clone()
	acct := &out.Accounts[i]
	diff := []model.FieldChange{
		amountChange(FieldAdjustmentDebit, acct.AdjustmentDebit, decimal.Zero),
		amountChange(FieldAdjustmentCredit, acct.AdjustmentCredit, decimal.Zero),
	}
	acct.AdjustmentDebit = decimal.Zero
	acct.AdjustmentCredit = decimal.Zero
	acct.Recompute()
	touch(acct, meta)
	out.HasAdjustments = anyAdjusted(out.Accounts)

	return out.commit(model.EditRecord{
		Action:      model.ActionResetAdjustment,
		AccountID:   accountID,
		Changes:     diff,
		Description: "reset adjustments",
	}, meta), nil
}

// AutoMapOptions control ApplyMappings.
type AutoMapOptions struct {
	MinConfidence int
	// Overwrite replaces existing mappings; by default only unmapped
	// accounts are filled in.
	Overwrite bool
}

// ApplyMappings accepts classification suggestions in bulk as a single
// edit. Suggestions below MinConfidence or without a target are skipped; a
// batch where every suggestion is skipped still records an empty edit.
func (tb *TrialBalance) ApplyMappings(suggestions []model.MappingSuggestion, opts AutoMapOptions, meta Meta) (*TrialBalance, error) {
	meta = meta.stamped()
	out := tb.clone()
	diff, err := planMappings(out.Mappings, tb, suggestions, opts)
	if err != nil {
		return nil, err
	}
	return out.commit(model.EditRecord{
		Action:      model.ActionAutoMap,
		Changes:     diff,
		Description: fmt.Sprintf("auto-mapped %d accounts", len(diff)),
	}, meta), nil
}

// MappingsToApply reports how many accounts ApplyMappings would remap, so
// callers can skip writing an empty batch.
func (tb *TrialBalance) MappingsToApply(suggestions []model.MappingSuggestion, opts AutoMapOptions) (int, error) {
	diff, err := planMappings(tb.Mappings.Clone(), tb, suggestions, opts)
	return len(diff), err
}

// planMappings applies accepted suggestions to m and returns one change per
// remapped account.
func planMappings(m model.AccountMapping, tb *TrialBalance, suggestions []model.MappingSuggestion, opts AutoMapOptions) ([]model.FieldChange, error) {
	var diff []model.FieldChange
	for _, s := range suggestions {
		if _, ok := tb.find(s.AccountID); !ok {
			return nil, fmt.Errorf("auto-mapping %s: %w", s.AccountID, ErrAccountNotFound)
		}
		next := model.Mapping{Statement: s.Statement, LineItem: s.LineItem}
		if !next.IsMapped() || s.Confidence < opts.MinConfidence {
			continue
		}
		prev, had := m[s.AccountID]
		if (had && prev.IsMapped() && !opts.Overwrite) || prev == next {
			continue
		}
		m[s.AccountID] = next
		diff = append(diff, model.FieldChange{
			Field:    FieldMappingPrefix + s.AccountID,
			OldValue: FormatMapping(prev),
			NewValue: FormatMapping(next),
		})
	}
	return diff, nil
}

// Mapped builds a fresh MappedTrialBalance. Accounts without a mapping are
// grouped under model.Unmapped with an empty line item.
func (tb *TrialBalance) Mapped() model.MappedTrialBalance {
	out := make(model.MappedTrialBalance)
	for _, a := range tb.Accounts {
		m, ok := tb.Mappings[a.AccountID]
		if !ok || !m.IsMapped() {
			m = model.Mapping{Statement: model.Unmapped}
		}
		items, ok := out[m.Statement]
		if !ok {
			items = make(map[string][]model.TrialBalanceAccount)
			out[m.Statement] = items
		}
		items[m.LineItem] = append(items[m.LineItem], a)
	}
	return out
}

// Unmapped returns accounts that have no mapping, in arena order.
func (tb *TrialBalance) Unmapped() []model.TrialBalanceAccount {
	var out []model.TrialBalanceAccount
	for _, a := range tb.Accounts {
		if m, ok := tb.Mappings[a.AccountID]; !ok || !m.IsMapped() {
			out = append(out, a)
		}
	}
	return out
}

func touch(a *model.TrialBalanceAccount, meta Meta) {
	a.IsEdited = true
	a.LastModified = meta.At
	a.ModifiedBy = meta.UserID
}

func anyAdjusted(accts []model.TrialBalanceAccount) bool {
	for _, a := range accts {
		if a.HasAdjustment() {
			return true
		}
	}
	return false
}
