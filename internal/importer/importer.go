// Package importer reads trial balances exported by accounting packages.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// ErrUnknownFormat is returned when no parser accepts a file's header.
var ErrUnknownFormat = errors.New("unrecognised trial balance format")

// Parser converts a trial balance CSV into raw accounts.
type Parser interface {
	Parse(r io.Reader) ([]model.RawAccount, error)
	Format() string
	// Accepts reports whether the parser understands a header row.
	Accepts(header []string) bool
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
	order   []string
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, key)
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists registered formats in registration order.
func (r *Registry) Formats() []string {
	return append([]string(nil), r.order...)
}

// Detect returns the first registered parser that accepts header.
func (r *Registry) Detect(header []string) (Parser, error) {
	for _, key := range r.order {
		if p := r.parsers[key]; p.Accepts(header) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: header %q", ErrUnknownFormat, strings.Join(header, ","))
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&StandardParser{})
	r.Register(&SignedParser{})
	return r
}

// ParseFile reads path with the named parser, or detects the parser from
// the header when format is empty.
func (r *Registry) ParseFile(path, format string) ([]model.RawAccount, Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var p Parser
	if format != "" {
		if p = r.Get(format); p == nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		}
	} else {
		header, err := csv.NewReader(bytes.NewReader(data)).Read()
		if err != nil {
			return nil, nil, fmt.Errorf("reading header of %s: %w", filepath.Base(path), err)
		}
		if p, err = r.Detect(header); err != nil {
			return nil, nil, err
		}
	}

	accts, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s as %s: %w", filepath.Base(path), p.Format(), err)
	}
	return accts, p, nil
}

// Trial balance exports waiting to be imported live in import/; once
// imported they move to import/processed/ so a file is never loaded twice.
const (
	importDir    = "import"
	processedDir = "import/processed"
)

var (
	// ErrNoPendingFile is returned by Pending when import/ holds no CSV.
	ErrNoPendingFile = errors.New("no trial balance CSV in import/")
	// ErrAlreadyProcessed is returned when a file of the same name was
	// imported before.
	ErrAlreadyProcessed = errors.New("already imported")
)

// Scan lists the trial balance CSVs waiting in <repoRoot>/import/, by name.
// A missing directory holds no files.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", importDir, err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{Name: e.Name(), Path: filepath.Join(dir, e.Name()), Size: info.Size()})
	}
	return files, nil
}

// Pending returns the single trial balance waiting in import/. Several
// waiting files are ambiguous and a file imported before is refused.
func Pending(repoRoot string) (FileInfo, error) {
	files, err := Scan(repoRoot)
	if err != nil {
		return FileInfo{}, err
	}
	switch len(files) {
	case 0:
		return FileInfo{}, ErrNoPendingFile
	case 1:
	default:
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		return FileInfo{}, fmt.Errorf("%d trial balances waiting in %s (%s); name the one to import",
			len(files), importDir, strings.Join(names, ", "))
	}
	if IsProcessed(repoRoot, files[0].Name) {
		return FileInfo{}, fmt.Errorf("%s: %w; rename it to import again", files[0].Name, ErrAlreadyProcessed)
	}
	return files[0], nil
}

// IsProcessed reports whether a file named fileName was imported before.
func IsProcessed(repoRoot, fileName string) bool {
	_, err := os.Stat(filepath.Join(repoRoot, processedDir, fileName))
	return err == nil
}

// MarkProcessed moves an imported file from import/ to import/processed/.
// It never overwrites an earlier import of the same name.
func MarkProcessed(repoRoot, fileName string) error {
	if IsProcessed(repoRoot, fileName) {
		return fmt.Errorf("%s: %w", fileName, ErrAlreadyProcessed)
	}
	if err := os.MkdirAll(filepath.Join(repoRoot, processedDir), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", processedDir, err)
	}
	src := filepath.Join(repoRoot, importDir, fileName)
	if err := os.Rename(src, filepath.Join(repoRoot, processedDir, fileName)); err != nil {
		return fmt.Errorf("archiving %s: %w", fileName, err)
	}
	return nil
}

// columns locates named columns in a header row. Names are matched
// case-insensitively after trimming; each key lists accepted spellings.
func columns(header []string, keys map[string][]string) (map[string]int, bool) {
	idx := make(map[string]int, len(keys))
	for key, names := range keys {
		idx[key] = -1
		for i, h := range header {
			h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
			for _, n := range names {
				if h == n {
					idx[key] = i
				}
			}
			if idx[key] >= 0 {
				break
			}
		}
		if idx[key] < 0 {
			return nil, false
		}
	}
	return idx, true
}

// parseAmount accepts "1,234.50", "(500.00)" and blank cells.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// readRows reads every record after the header and resolves column
// indexes with keys.
func readRows(r io.Reader, keys map[string][]string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	idx, ok := columns(records[0], keys)
	if !ok {
		return nil, nil, fmt.Errorf("%w: header %q", ErrUnknownFormat, strings.Join(records[0], ","))
	}
	return records[1:], idx, nil
}

// field returns the cell at column i, or "" for short rows.
func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// blank reports whether every cell of a row is empty.
func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// finish normalises signs, so negative debits become credits and the
// reverse, then validates the account.
func finish(a model.RawAccount) (model.RawAccount, error) {
	debit, credit := a.Debit, a.Credit
	if debit.IsNegative() {
		credit = credit.Add(debit.Neg())
		debit = decimal.Zero
	}
	if credit.IsNegative() {
		debit = debit.Add(credit.Neg())
		credit = decimal.Zero
	}
	a.Debit, a.Credit = debit, credit
	if err := model.Validate(a); err != nil {
		return model.RawAccount{}, err
	}
	return a, nil
}
