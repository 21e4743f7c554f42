// Package auditlog keeps a CSV copy of the ledger's edit history at
// logs/audit-log.csv for review and compliance export.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Entry is one row in the audit log. An edit record with several field
// changes produces one entry per change.
type Entry struct {
	Timestamp   time.Time
	EditID      string
	LedgerID    string
	Version     int
	UserID      string
	Action      model.EditAction
	AccountID   string
	Field       string
	OldValue    string
	NewValue    string
	Description string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,edit_id,ledger_id,version,user_id,action,account_id,field,old_value,new_value,description"

const (
	numFields      = 11
	logDir         = "logs"
	logFile        = "logs/audit-log.csv"
	colTimestamp   = 0
	colEditID      = 1
	colLedgerID    = 2
	colVersion     = 3
	colUserID      = 4
	colAction      = 5
	colAccountID   = 6
	colField       = 7
	colOldValue    = 8
	colNewValue    = 9
	colDescription = 10
)

// FromRecords flattens edit records into entries. version is the ledger
// version produced by the first record; each later record adds one.
func FromRecords(ledgerID string, version int, recs []model.EditRecord) []Entry {
	var out []Entry
	for i, r := range recs {
		base := Entry{
			Timestamp:   r.Timestamp,
			EditID:      r.ID,
			LedgerID:    ledgerID,
			Version:     version + i,
			UserID:      r.UserID,
			Action:      r.Action,
			AccountID:   r.AccountID,
			Description: r.Description,
		}
		if len(r.Changes) == 0 {
			out = append(out, base)
			continue
		}
		for _, c := range r.Changes {
			e := base
			e.Field, e.OldValue, e.NewValue = c.Field, c.OldValue, c.NewValue
			out = append(out, e)
		}
	}
	return out
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colEditID] = e.EditID
	row[colLedgerID] = e.LedgerID
	row[colVersion] = strconv.Itoa(e.Version)
	row[colUserID] = e.UserID
	row[colAction] = string(e.Action)
	row[colAccountID] = e.AccountID
	row[colField] = e.Field
	row[colOldValue] = e.OldValue
	row[colNewValue] = e.NewValue
	row[colDescription] = e.Description
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	version, err := strconv.Atoi(record[colVersion])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing version %q: %w", record[colVersion], err)
	}

	return Entry{
		Timestamp:   ts,
		EditID:      record[colEditID],
		LedgerID:    record[colLedgerID],
		Version:     version,
		UserID:      record[colUserID],
		Action:      model.EditAction(record[colAction]),
		AccountID:   record[colAccountID],
		Field:       record[colField],
		OldValue:    record[colOldValue],
		NewValue:    record[colNewValue],
		Description: record[colDescription],
	}, nil
}

// Append writes entries to <repoRoot>/logs/audit-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		return Write(f, entries)
	}
	return writeRows(csv.NewWriter(f), entries)
}

// Write writes a complete audit log, header included, to w.
func Write(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return writeRows(cw, entries)
}

func writeRows(cw *csv.Writer, entries []Entry) error {
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/audit-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
