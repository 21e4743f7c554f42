package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// SnapshotPath is where the current trial balance is mirrored inside a
// project, so changes show up in git diffs.
const SnapshotPath = "accounts/trial-balance.csv"

// SaveSnapshot writes accounts and mappings to <repoRoot>/accounts/trial-balance.csv.
func SaveSnapshot(repoRoot string, accts []model.TrialBalanceAccount, mappings model.AccountMapping) error {
	path := filepath.Join(repoRoot, SnapshotPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trial balance file: %w", err)
	}
	defer f.Close()

	if err := WriteTrialBalance(f, accts, mappings); err != nil {
		return fmt.Errorf("writing trial balance: %w", err)
	}
	return nil
}

// LoadSnapshot reads <repoRoot>/accounts/trial-balance.csv.
func LoadSnapshot(repoRoot string) ([]model.TrialBalanceAccount, model.AccountMapping, error) {
	f, err := os.Open(filepath.Join(repoRoot, SnapshotPath))
	if err != nil {
		return nil, nil, fmt.Errorf("opening trial balance: %w", err)
	}
	defer f.Close()

	accts, mappings, err := ReadTrialBalance(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading trial balance: %w", err)
	}
	return accts, mappings, nil
}
