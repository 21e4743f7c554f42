package accounts

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/importer"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

func adjusted(raw model.RawAccount, adjDebit, adjCredit int64) model.TrialBalanceAccount {
	a := model.NewTrialBalanceAccount(raw)
	a.AdjustmentDebit = decimal.NewFromInt(adjDebit)
	a.AdjustmentCredit = decimal.NewFromInt(adjCredit)
	a.IsEdited = a.HasAdjustment()
	a.Recompute()
	return a
}

func TestRoundTrip(t *testing.T) {
	sample := SampleTrialBalance()
	accts := []model.TrialBalanceAccount{
		adjusted(sample[0], 5000, 0),
		adjusted(sample[10], 0, 0),
		adjusted(sample[13], 0, 2500),
	}
	mappings := model.AccountMapping{
		"1000": {Statement: model.StatementAssets, LineItem: model.LineCash},
		"2510": {Statement: model.StatementLiabilities, LineItem: model.LineLongTermBorrowings},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTrialBalance(&buf, accts, mappings))

	got, gotMappings, err := ReadTrialBalance(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "1000", got[0].AccountID)
	assert.True(t, decimal.NewFromInt(255000).Equal(got[0].FinalDebit))
	assert.True(t, got[0].IsEdited)
	assert.False(t, got[1].IsEdited)
	assert.True(t, decimal.NewFromInt(1552500).Equal(got[2].FinalCredit))
	for _, a := range got {
		assert.True(t, a.Consistent(), a.AccountID)
	}
	assert.Equal(t, mappings, gotMappings)
}

func TestReadTrialBalance_Inconsistent(t *testing.T) {
	in := strings.Join(header, ",") + "\n" +
		"1000,Cash,100.00,0.00,10.00,0.00,200.00,0.00,assets,Cash and Cash Equivalents\n"
	_, _, err := ReadTrialBalance(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "original plus adjustment")
}

func TestReadTrialBalance_BadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad amount", "1000,Cash,x,0,0,0,0,0,,", "original_debit"},
		{"bad statement", "1000,Cash,1,0,0,0,1,0,cashflow,Cash", "unknown statement"},
		{"short row", "1000,Cash,1,0", "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := strings.Join(header, ",") + "\n" + tt.row + "\n"
			_, _, err := ReadTrialBalance(strings.NewReader(in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSampleTrialBalance(t *testing.T) {
	sample := SampleTrialBalance()
	require.Len(t, sample, 23)

	debits, credits := decimal.Zero, decimal.Zero
	ids := make(map[string]bool)
	for _, a := range sample {
		require.NoError(t, model.Validate(a))
		assert.False(t, ids[a.AccountID], "duplicate %s", a.AccountID)
		ids[a.AccountID] = true
		debits = debits.Add(a.Debit)
		credits = credits.Add(a.Credit)
	}
	assert.True(t, debits.Equal(credits))
	assert.True(t, decimal.NewFromInt(2614000).Equal(debits))
}

func TestWriteRaw_ImportsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRaw(&buf, SampleTrialBalance()))

	got, err := (&importer.StandardParser{}).Parse(&buf)
	require.NoError(t, err)
	require.Len(t, got, 23)
	assert.Equal(t, "Equity Bank Loan", got[10].AccountName)
	assert.True(t, decimal.NewFromInt(300000).Equal(got[10].Credit))
}

func TestSnapshot(t *testing.T) {
	root := t.TempDir()
	accts := []model.TrialBalanceAccount{model.NewTrialBalanceAccount(SampleTrialBalance()[0])}

	require.NoError(t, SaveSnapshot(root, accts, nil))

	got, mappings, err := LoadSnapshot(root)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, mappings)

	_, _, err = LoadSnapshot(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
