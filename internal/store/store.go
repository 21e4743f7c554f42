// Package store persists ledgers in SQLite through gorm.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/logging"
)

// SQLiteStore implements ledger.Store.
type SQLiteStore struct {
	db *gorm.DB
}

var _ ledger.Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the database at path and migrates the
// schema. Use ":memory:" for a throwaway database.
func Open(path string, logger *zap.Logger, logLevel string) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logging.NewGormLogger(logger, logging.GormLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	return New(db)
}

// New wraps an open gorm connection and migrates the schema.
func New(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&LedgerModel{}, &AccountModel{}, &MappingModel{}, &EditModel{}); err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load reads a ledger with its accounts, mappings and history.
func (s *SQLiteStore) Load(ctx context.Context, ledgerID string) (*ledger.TrialBalance, error) {
	db := s.db.WithContext(ctx)
	var lm LedgerModel
	if err := db.First(&lm, "id = ?", ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", ledgerID, ledger.ErrLedgerNotFound)
		}
		return nil, err
	}
	var accts []AccountModel
	if err := db.Where("ledger_id = ?", ledgerID).Order("position").Find(&accts).Error; err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	var maps []MappingModel
	if err := db.Where("ledger_id = ?", ledgerID).Find(&maps).Error; err != nil {
		return nil, fmt.Errorf("loading mappings: %w", err)
	}
	var edits []EditModel
	if err := db.Where("ledger_id = ?", ledgerID).Order("seq").Find(&edits).Error; err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return toDomain(lm, accts, maps, edits), nil
}

// Save writes tb if the stored version equals expectedVersion. Accounts and
// mappings are replaced; history rows are only ever appended.
func (s *SQLiteStore) Save(ctx context.Context, tb *ledger.TrialBalance, expectedVersion int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current LedgerModel
		err := tx.Select("id", "version").First(&current, "id = ?", tb.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if expectedVersion != 0 {
				return fmt.Errorf("%s: not stored, expected version %d: %w", tb.ID, expectedVersion, ledger.ErrVersionConflict)
			}
			if err := tx.Create(&LedgerModel{
				ID:             tb.ID,
				Version:        tb.Version,
				SourceFile:     tb.SourceFile,
				HasAdjustments: tb.HasAdjustments,
			}).Error; err != nil {
				return fmt.Errorf("inserting ledger: %w", err)
			}
		case err != nil:
			return err
		default:
			if current.Version != expectedVersion {
				return fmt.Errorf("%s: stored version %d, expected %d: %w", tb.ID, current.Version, expectedVersion, ledger.ErrVersionConflict)
			}
			result := tx.Model(&LedgerModel{}).
				Where("id = ? AND version = ?", tb.ID, expectedVersion).
				Updates(map[string]any{
					"version":         tb.Version,
					"source_file":     tb.SourceFile,
					"has_adjustments": tb.HasAdjustments,
					"updated_at":      tb.UpdatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%s: %w", tb.ID, ledger.ErrVersionConflict)
			}
		}

		if err := replaceAccounts(tx, tb); err != nil {
			return err
		}
		if err := replaceMappings(tx, tb); err != nil {
			return err
		}
		return appendHistory(tx, tb)
	})
}

func replaceAccounts(tx *gorm.DB, tb *ledger.TrialBalance) error {
	if err := tx.Where("ledger_id = ?", tb.ID).Delete(&AccountModel{}).Error; err != nil {
		return fmt.Errorf("clearing accounts: %w", err)
	}
	if len(tb.Accounts) == 0 {
		return nil
	}
	rows := make([]AccountModel, len(tb.Accounts))
	for i, a := range tb.Accounts {
		rows[i] = accountModelFromDomain(tb.ID, i, a)
	}
	if err := tx.CreateInBatches(rows, 200).Error; err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	return nil
}

func replaceMappings(tx *gorm.DB, tb *ledger.TrialBalance) error {
	if err := tx.Where("ledger_id = ?", tb.ID).Delete(&MappingModel{}).Error; err != nil {
		return fmt.Errorf("clearing mappings: %w", err)
	}
	var rows []MappingModel
	for acctID, m := range tb.Mappings {
		if !m.IsMapped() {
			continue
		}
		rows = append(rows, MappingModel{
			LedgerID:  tb.ID,
			AccountID: acctID,
			Statement: string(m.Statement),
			LineItem:  m.LineItem,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, 200).Error; err != nil {
		return fmt.Errorf("writing mappings: %w", err)
	}
	return nil
}

func appendHistory(tx *gorm.DB, tb *ledger.TrialBalance) error {
	var stored int64
	if err := tx.Model(&EditModel{}).Where("ledger_id = ?", tb.ID).Count(&stored).Error; err != nil {
		return fmt.Errorf("counting history: %w", err)
	}
	if int(stored) > len(tb.History) {
		return fmt.Errorf("%s: history has %d records, store has %d: %w", tb.ID, len(tb.History), stored, ledger.ErrVersionConflict)
	}
	for i := int(stored); i < len(tb.History); i++ {
		row := editModelFromDomain(tb.ID, i+1, tb.History[i])
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("writing history record %d: %w", i+1, err)
		}
	}
	return nil
}

// List returns ledger summaries ordered by ID.
func (s *SQLiteStore) List(ctx context.Context) ([]ledger.Summary, error) {
	db := s.db.WithContext(ctx)
	var lms []LedgerModel
	if err := db.Order("id").Find(&lms).Error; err != nil {
		return nil, err
	}
	var counts []struct {
		LedgerID string
		N        int
	}
	if err := db.Model(&AccountModel{}).
		Select("ledger_id, count(*) as n").
		Group("ledger_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byLedger := make(map[string]int, len(counts))
	for _, c := range counts {
		byLedger[c.LedgerID] = c.N
	}
	out := make([]ledger.Summary, len(lms))
	for i, lm := range lms {
		out[i] = ledger.Summary{
			ID:         lm.ID,
			Version:    lm.Version,
			Accounts:   byLedger[lm.ID],
			SourceFile: lm.SourceFile,
			UpdatedAt:  lm.UpdatedAt,
		}
	}
	return out, nil
}
