package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Summary describes a stored ledger without loading its accounts.
type Summary struct {
	ID         string
	Version    int
	Accounts   int
	SourceFile string
	UpdatedAt  time.Time
}

// Store persists ledgers. Save must reject a write whose expectedVersion
// does not match the stored version with ErrVersionConflict; a ledger that
// does not exist yet has version 0.
type Store interface {
	Load(ctx context.Context, ledgerID string) (*TrialBalance, error)
	Save(ctx context.Context, tb *TrialBalance, expectedVersion int) error
	List(ctx context.Context) ([]Summary, error)
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu      sync.Mutex
	ledgers map[string]*TrialBalance
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ledgers: make(map[string]*TrialBalance)}
}

// Load returns a copy of the stored ledger.
func (s *MemoryStore) Load(_ context.Context, ledgerID string) (*TrialBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tb, ok := s.ledgers[ledgerID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ledgerID, ErrLedgerNotFound)
	}
	return tb.clone(), nil
}

// Save stores a copy of tb if the stored version equals expectedVersion.
func (s *MemoryStore) Save(_ context.Context, tb *TrialBalance, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := 0
	if old, ok := s.ledgers[tb.ID]; ok {
		current = old.Version
	}
	if current != expectedVersion {
		return fmt.Errorf("%s: stored version %d, expected %d: %w", tb.ID, current, expectedVersion, ErrVersionConflict)
	}
	s.ledgers[tb.ID] = tb.clone()
	return nil
}

// List returns summaries ordered by ID.
func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Summary, 0, len(s.ledgers))
	for _, tb := range s.ledgers {
		out = append(out, tb.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Summary returns the ledger's summary.
func (tb *TrialBalance) Summary() Summary {
	return Summary{
		ID:         tb.ID,
		Version:    tb.Version,
		Accounts:   len(tb.Accounts),
		SourceFile: tb.SourceFile,
		UpdatedAt:  tb.UpdatedAt,
	}
}
