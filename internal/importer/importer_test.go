package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStandardParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/trial-balance.csv")
	require.NoError(t, err)
	defer f.Close()

	p := &StandardParser{}
	accts, err := p.Parse(f)
	require.NoError(t, err)
	require.Len(t, accts, 23, "total row is skipped")

	assert.Equal(t, "1000", accts[0].AccountID)
	assert.Equal(t, "Cash at Bank", accts[0].AccountName)
	assert.True(t, dec("250000").Equal(accts[0].Debit))
	assert.True(t, accts[0].Credit.IsZero())

	loan := accts[10]
	assert.Equal(t, "Equity Bank Loan", loan.AccountName)
	assert.True(t, dec("300000").Equal(loan.Credit))

	debits, credits := decimal.Zero, decimal.Zero
	for _, a := range accts {
		debits = debits.Add(a.Debit)
		credits = credits.Add(a.Credit)
	}
	assert.True(t, debits.Equal(credits))
	assert.True(t, dec("2614000").Equal(debits))
}

func TestStandardParser_NormalisesSigns(t *testing.T) {
	in := "code,name,dr,cr\n1000,Bank,-50,\n2000,Loan,,(75.25)\n"
	accts, err := (&StandardParser{}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, accts, 2)

	assert.True(t, accts[0].Debit.IsZero())
	assert.True(t, dec("50").Equal(accts[0].Credit))
	assert.True(t, dec("75.25").Equal(accts[1].Debit))
	assert.True(t, accts[1].Credit.IsZero())
}

func TestStandardParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"bad amount", "code,name,debit,credit\n1000,Bank,abc,\n", "row 2"},
		{"missing name", "code,name,debit,credit\n1000,,10,\n", "AccountName"},
		{"unknown header", "foo,bar\n1,2\n", "unrecognised"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&StandardParser{}).Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSignedParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/trial-balance-signed.csv")
	require.NoError(t, err)
	defer f.Close()

	accts, err := (&SignedParser{}).Parse(f)
	require.NoError(t, err)
	require.Len(t, accts, 5)

	assert.True(t, dec("250000").Equal(accts[0].Debit))
	assert.True(t, dec("90000").Equal(accts[1].Credit))
	assert.True(t, accts[1].Debit.IsZero())
	assert.True(t, dec("160000").Equal(accts[3].Credit))
}

func TestRegistry_Detect(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"standard", "signed"}, r.Formats())

	tests := []struct {
		header []string
		want   string
	}{
		{[]string{"Account Code", "Account Name", "Debit", "Credit"}, "standard"},
		{[]string{"\ufeffaccount_id", "account_name", "debit", "credit", "notes"}, "standard"},
		{[]string{"id", "name", "balance"}, "signed"},
		{[]string{"Account No", "Description", "Closing Balance"}, "signed"},
	}
	for _, tt := range tests {
		p, err := r.Detect(tt.header)
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, p.Format())
	}

	_, err := r.Detect([]string{"date", "amount"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegistry_ParseFile(t *testing.T) {
	r := DefaultRegistry()

	accts, p, err := r.ParseFile("../../testdata/trial-balance-signed.csv", "")
	require.NoError(t, err)
	assert.Equal(t, "signed", p.Format())
	assert.Len(t, accts, 5)

	_, _, err = r.ParseFile("../../testdata/trial-balance.csv", "quickbooks")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, _, err = r.ParseFile(filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&StandardParser{})
	assert.Panics(t, func() { r.Register(&StandardParser{}) })
	assert.Nil(t, r.Get("nope"))
	assert.NotNil(t, r.Get("STANDARD"))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	importPath := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(importPath, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importPath, "tb-2024.csv"), []byte("a,b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "TB-2025.CSV"), []byte("c,d"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "notes.txt"), []byte("nope"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(importPath, "processed"), 0o755))

	files, err := Scan(root)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	assert.Contains(t, names, "tb-2024.csv")
	assert.Contains(t, names, "TB-2025.CSV")
}

func TestScan_NoDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	root := t.TempDir()
	importPath := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(importPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "tb.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(root, "tb.csv"))

	_, err := os.Stat(filepath.Join(importPath, "tb.csv"))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(root, "import", "processed", "tb.csv"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestMarkProcessed_KeepsEarlierImport(t *testing.T) {
	root := t.TempDir()
	importPath := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(filepath.Join(importPath, "processed"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "processed", "tb.csv"), []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "tb.csv"), []byte("second"), 0o644))

	err := MarkProcessed(root, "tb.csv")
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	data, err := os.ReadFile(filepath.Join(importPath, "processed", "tb.csv"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
	_, err = os.Stat(filepath.Join(importPath, "tb.csv"))
	assert.NoError(t, err, "the new file stays in import/")
}

func TestPending(t *testing.T) {
	write := func(t *testing.T, root string, names ...string) {
		t.Helper()
		for _, n := range names {
			path := filepath.Join(root, n)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		}
	}

	tests := []struct {
		name    string
		files   []string
		want    string
		wantErr error
		errText string
	}{
		{name: "none", wantErr: ErrNoPendingFile},
		{name: "one", files: []string{"import/tb.csv", "import/.gitkeep"}, want: "tb.csv"},
		{name: "several", files: []string{"import/a.csv", "import/b.csv"}, errText: "a.csv, b.csv"},
		{name: "imported before", files: []string{"import/tb.csv", "import/processed/tb.csv"}, wantErr: ErrAlreadyProcessed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			write(t, root, tt.files...)

			f, err := Pending(root)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, f.Name)
			}
		})
	}
}
