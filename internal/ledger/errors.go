package ledger

import "errors"

var (
	// ErrAccountNotFound is returned when an operation names an account the
	// ledger does not hold.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount is returned when an import lists an account twice.
	ErrDuplicateAccount = errors.New("duplicate account")
	// ErrInvalidInput is returned for malformed operation arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrVersionConflict is returned by a Store when the expected version is
	// stale.
	ErrVersionConflict = errors.New("version conflict")
	// ErrLedgerNotFound is returned by a Store for an unknown ledger ID.
	ErrLedgerNotFound = errors.New("ledger not found")
)
