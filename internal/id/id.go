package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// NewLedgerID returns a random identifier for a trial balance.
func NewLedgerID() string {
	return uuid.NewString()
}

// NewEditID returns a ULID for an edit record. IDs issued by one process
// sort in issue order, which keeps the audit log ordered by string compare.
// Times outside the ULID range (before 1970, or zero) use the current time.
func NewEditID(t time.Time) string {
	if t.Before(time.Unix(0, 0)) {
		t = time.Now()
	}
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// EditTime extracts the timestamp encoded in an edit ID.
func EditTime(editID string) (time.Time, error) {
	u, err := ulid.ParseStrict(editID)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid edit ID %q: %w", editID, err)
	}
	return ulid.Time(u.Time()), nil
}

// FormatLineCode returns a line item code like "BS-010".
func FormatLineCode(prefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// ParseLineCode parses "BS-010" into prefix and sequence.
func ParseLineCode(code string) (prefix string, seq int, err error) {
	i := strings.LastIndexByte(code, '-')
	if i <= 0 || i == len(code)-1 {
		return "", 0, fmt.Errorf("invalid line code format: %q", code)
	}
	seq, err = strconv.Atoi(code[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in line code %q: %w", code, err)
	}
	return code[:i], seq, nil
}

// Slug lowercases s and joins its words with hyphens: "Trade Receivables"
// becomes "trade-receivables".
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
