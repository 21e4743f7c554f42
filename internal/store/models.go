package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// LedgerModel is the aggregate row; Version drives optimistic locking.
type LedgerModel struct {
	ID             string `gorm:"primaryKey"`
	Version        int    `gorm:"not null;default:0"`
	SourceFile     string
	HasAdjustments bool `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (LedgerModel) TableName() string { return "ledgers" }

// AccountModel is one trial balance account. Amounts are stored as text
// to keep them exact.
type AccountModel struct {
	ID               uint            `gorm:"primaryKey"`
	LedgerID         string          `gorm:"not null;index:idx_account_ledger_pos,priority:1"`
	Position         int             `gorm:"not null;index:idx_account_ledger_pos,priority:2"`
	AccountID        string          `gorm:"not null"`
	AccountName      string          `gorm:"not null"`
	OriginalDebit    decimal.Decimal `gorm:"type:text;not null"`
	OriginalCredit   decimal.Decimal `gorm:"type:text;not null"`
	AdjustmentDebit  decimal.Decimal `gorm:"type:text;not null"`
	AdjustmentCredit decimal.Decimal `gorm:"type:text;not null"`
	IsEdited         bool
	LastModified     time.Time
	ModifiedBy       string
}

func (AccountModel) TableName() string { return "ledger_accounts" }

// MappingModel is the authoritative mapping of one account.
type MappingModel struct {
	LedgerID  string `gorm:"primaryKey"`
	AccountID string `gorm:"primaryKey"`
	Statement string `gorm:"not null"`
	LineItem  string `gorm:"not null"`
}

func (MappingModel) TableName() string { return "ledger_mappings" }

// EditModel is one append-only history entry.
type EditModel struct {
	ID          string `gorm:"primaryKey"`
	LedgerID    string `gorm:"not null;uniqueIndex:idx_edit_ledger_seq,priority:1"`
	Seq         int    `gorm:"not null;uniqueIndex:idx_edit_ledger_seq,priority:2"`
	Timestamp   time.Time
	UserID      string
	Action      string              `gorm:"not null"`
	AccountID   string              `gorm:"index"`
	Changes     []model.FieldChange  `gorm:"serializer:json"`
	Description string
	Import      *model.ImportPayload `gorm:"serializer:json"`
}

func (EditModel) TableName() string { return "ledger_edits" }

func accountModelFromDomain(ledgerID string, pos int, a model.TrialBalanceAccount) AccountModel {
	return AccountModel{
		LedgerID:         ledgerID,
		Position:         pos,
		AccountID:        a.AccountID,
		AccountName:      a.AccountName,
		OriginalDebit:    a.OriginalDebit,
		OriginalCredit:   a.OriginalCredit,
		AdjustmentDebit:  a.AdjustmentDebit,
		AdjustmentCredit: a.AdjustmentCredit,
		IsEdited:         a.IsEdited,
		LastModified:     a.LastModified,
		ModifiedBy:       a.ModifiedBy,
	}
}

// ToDomain rebuilds the account; final balances are derived.
func (m AccountModel) ToDomain() model.TrialBalanceAccount {
	a := model.TrialBalanceAccount{
		RawAccount:       model.RawAccount{AccountID: m.AccountID, AccountName: m.AccountName},
		OriginalDebit:    m.OriginalDebit,
		OriginalCredit:   m.OriginalCredit,
		AdjustmentDebit:  m.AdjustmentDebit,
		AdjustmentCredit: m.AdjustmentCredit,
		IsEdited:         m.IsEdited,
		LastModified:     m.LastModified,
		ModifiedBy:       m.ModifiedBy,
	}
	a.Recompute()
	return a
}

func editModelFromDomain(ledgerID string, seq int, r model.EditRecord) EditModel {
	return EditModel{
		ID:          r.ID,
		LedgerID:    ledgerID,
		Seq:         seq,
		Timestamp:   r.Timestamp,
		UserID:      r.UserID,
		Action:      string(r.Action),
		AccountID:   r.AccountID,
		Changes:     r.Changes,
		Description: r.Description,
		Import:      r.Import,
	}
}

// ToDomain converts the row back into an EditRecord.
func (m EditModel) ToDomain() model.EditRecord {
	return model.EditRecord{
		ID:          m.ID,
		Timestamp:   m.Timestamp,
		UserID:      m.UserID,
		Action:      model.EditAction(m.Action),
		AccountID:   m.AccountID,
		Changes:     m.Changes,
		Description: m.Description,
		Import:      m.Import,
	}
}

func toDomain(lm LedgerModel, accts []AccountModel, maps []MappingModel, edits []EditModel) *ledger.TrialBalance {
	tb := ledger.TrialBalance{
		ID:             lm.ID,
		Version:        lm.Version,
		HasAdjustments: lm.HasAdjustments,
		SourceFile:     lm.SourceFile,
		UpdatedAt:      lm.UpdatedAt,
		Accounts:       make([]model.TrialBalanceAccount, len(accts)),
		Mappings:       make(model.AccountMapping, len(maps)),
		History:        make([]model.EditRecord, len(edits)),
	}
	for i, a := range accts {
		tb.Accounts[i] = a.ToDomain()
	}
	for _, m := range maps {
		tb.Mappings[m.AccountID] = model.Mapping{Statement: model.Statement(m.Statement), LineItem: m.LineItem}
	}
	for i, e := range edits {
		tb.History[i] = e.ToDomain()
	}
	return ledger.Restore(tb)
}
