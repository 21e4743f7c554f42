package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/id"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// DefaultRetries is how many times Update retries after a version conflict.
const DefaultRetries = 3

// Mutation computes the next ledger from the current one.
type Mutation func(tb *TrialBalance, meta Meta) (*TrialBalance, error)

// Service runs ledger operations against a Store: load, mutate, save with
// the loaded version as the expected version.
type Service struct {
	store   Store
	logger  *zap.Logger
	retries int
	now     func() time.Time
}

// NewService creates a Service. A nil logger disables logging.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		logger:  logger.Named("ledger"),
		retries: DefaultRetries,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetRetries sets how many times a conflicting write is retried.
func (s *Service) SetRetries(n int) {
	s.retries = n
}

// Create stores a new empty ledger and returns it.
func (s *Service) Create(ctx context.Context) (*TrialBalance, error) {
	tb := New(id.NewLedgerID())
	if err := s.store.Save(ctx, tb, 0); err != nil {
		return nil, fmt.Errorf("creating ledger: %w", err)
	}
	s.logger.Info("ledger created", zap.String("ledger_id", tb.ID))
	return tb, nil
}

// Get loads a ledger.
func (s *Service) Get(ctx context.Context, ledgerID string) (*TrialBalance, error) {
	return s.store.Load(ctx, ledgerID)
}

// List returns stored ledger summaries.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.store.List(ctx)
}

// Update applies fn to the latest stored ledger and saves the result,
// retrying from a fresh load when another writer got there first.
func (s *Service) Update(ctx context.Context, ledgerID, userID string, fn Mutation) (*TrialBalance, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		current, err := s.store.Load(ctx, ledgerID)
		if err != nil {
			return nil, err
		}
		next, err := fn(current, Meta{UserID: userID, At: s.now()})
		if err != nil {
			return nil, err
		}
		err = s.store.Save(ctx, next, current.Version)
		if err == nil {
			rec, _ := next.LastEdit()
			s.logger.Info("ledger updated",
				zap.String("ledger_id", ledgerID),
				zap.Int("version", next.Version),
				zap.String("action", string(rec.Action)),
				zap.String("account_id", rec.AccountID),
				zap.String("user_id", userID),
			)
			return next, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, fmt.Errorf("saving ledger %s: %w", ledgerID, err)
		}
		lastErr = err
		s.logger.Warn("version conflict, retrying",
			zap.String("ledger_id", ledgerID),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("saving ledger %s after %d attempts: %w", ledgerID, s.retries+1, lastErr)
}

// Import replaces the ledger's accounts.
func (s *Service) Import(ctx context.Context, ledgerID, userID string, raw []model.RawAccount, mappings model.AccountMapping, sourceFile string) (*TrialBalance, error) {
	return s.Update(ctx, ledgerID, userID, func(tb *TrialBalance, meta Meta) (*TrialBalance, error) {
		return tb.Import(raw, mappings, sourceFile, meta)
	})
}

// EditAccount merges partial changes into an account.
func (s *Service) EditAccount(ctx context.Context, ledgerID, userID, accountID string, changes AccountChanges) (*TrialBalance, error) {
	return s.Update(ctx, ledgerID, userID, func(tb *TrialBalance, meta Meta) (*TrialBalance, error) {
		return tb.EditAccount(accountID, changes, meta)
	})
}

// UpdateMapping replaces an account's mapping.
func (s *Service) UpdateMapping(ctx context.Context, ledgerID, userID, accountID string, statement model.Statement, lineItem string) (*TrialBalance, error) {
	return s.Update(ctx, ledgerID, userID, func(tb *TrialBalance, meta Meta) (*TrialBalance, error) {
		return tb.UpdateMapping(accountID, statement, lineItem, meta)
	})
}

// ApplyAdjustment adds deltas to an account's adjustments.
func (s *Service) ApplyAdjustment(ctx context.Context, ledgerID, userID, accountID string, deltaDebit, deltaCredit decimal.Decimal, description string) (*TrialBalance, error) {
	return s.Update(ctx, ledgerID, userID, func(tb *TrialBalance, meta Meta) (*TrialBalance, error) {
		return tb.ApplyAdjustment(accountID, deltaDebit, deltaCredit, description, meta)
	})
}

// ResetAdjustment zeroes an account's adjustments.
func (s *Service) ResetAdjustment(ctx context.Context, ledgerID, userID, accountID string) (*TrialBalance, error) {
	return s.Update(ctx, ledgerID, userID, func(tb *TrialBalance, meta Meta) (*TrialBalance, error) {
		return tb.ResetAdjustment(accountID, meta)
	})
}

// ApplyMappings accepts classification suggestions in bulk.
func (s *Service) ApplyMappings(ctx context.Context, ledgerID, userID string, suggestions []model.MappingSuggestion, opts AutoMapOptions) (*TrialBalance, error) {
	return s.Update(ctx, ledgerID, userID, func(tb *TrialBalance, meta Meta) (*TrialBalance, error) {
		return tb.ApplyMappings(suggestions, opts, meta)
	})
}
