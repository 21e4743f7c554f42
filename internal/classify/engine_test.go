package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

func acct(id, name string, debit, credit int64) model.RawAccount {
	return model.RawAccount{
		AccountID:   id,
		AccountName: name,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

func defaultEngine() *Engine {
	return NewEngine(DefaultRuleset(), DefaultOptions())
}

func TestClassifyBankLoanIsLiability(t *testing.T) {
	e := defaultEngine()

	sug, ok := e.Classify(acct("2510", "Equity Bank Loan", 0, 500000))
	require.True(t, ok)
	assert.Equal(t, model.StatementLiabilities, sug.Statement)
	assert.Equal(t, model.LineLongTermBorrowings, sug.LineItem)
	assert.GreaterOrEqual(t, sug.Confidence, 90)
	assert.Contains(t, sug.Reason, "bank-loan")
	assert.Equal(t, "long-term-borrowings", sug.RuleID)
}

func TestClassifyBankLoanVetoesCash(t *testing.T) {
	e := defaultEngine()

	cands := e.Candidates(acct("2510", "Equity Bank Loan", 0, 500000))
	var sawCash bool
	for _, c := range cands {
		if c.Statement != model.StatementLiabilities {
			assert.True(t, c.Vetoed, "candidate %s should be vetoed", c.RuleID)
			assert.Zero(t, c.Confidence)
		}
		if c.RuleID == "cash" {
			sawCash = true
		}
	}
	assert.True(t, sawCash, "cash rule should have been considered")
}

func TestClassifyBankOverdraft(t *testing.T) {
	e := defaultEngine()

	sug, ok := e.Classify(acct("", "KCB Bank Overdraft", 0, 12000))
	require.True(t, ok)
	assert.Equal(t, model.StatementLiabilities, sug.Statement)
	assert.Equal(t, model.LineShortTermBorrowings, sug.LineItem)
}

func TestClassifyPayableNeverOutsideLiabilities(t *testing.T) {
	e := defaultEngine()
	names := []string{
		"Trade Payables",
		"Salaries Payable",
		"Loan Interest Payable",
		"Rent Payable",
		"Accounts Payable - Expenses",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			a := acct("", name, 0, 1000)
			for _, c := range e.Candidates(a) {
				if c.Statement != model.StatementLiabilities {
					assert.True(t, c.Vetoed, "candidate %s", c.RuleID)
				}
			}
			sug, ok := e.Classify(a)
			require.True(t, ok)
			assert.Equal(t, model.StatementLiabilities, sug.Statement)
		})
	}
}

func TestPayableTokenIsMonotone(t *testing.T) {
	e := defaultEngine()
	bases := []struct{ id, name string }{
		{"1000", "Cash at Bank"},
		{"1100", "Trade Receivables"},
		{"1600", "Motor Vehicles"},
		{"2100", "Accrued Expenses"},
		{"2200", "Income Tax"},
		{"2510", "Equity Bank Loan"},
		{"", "Bank Overdraft"},
		{"4000", "Sales Revenue"},
		{"6000", "Salaries and Wages"},
		{"6400", "Rent Expense"},
		{"6700", "Interest"},
		{"", "Sundry"},
	}
	sides := []struct {
		name          string
		debit, credit int64
	}{
		{"debit", 1000, 0},
		{"credit", 0, 1000},
	}
	for _, b := range bases {
		for _, side := range sides {
			t.Run(b.name+"/"+side.name, func(t *testing.T) {
				before := byRule(e.Candidates(acct(b.id, b.name, side.debit, side.credit)))
				after := e.Candidates(acct(b.id, b.name+" Payable", side.debit, side.credit))

				for _, c := range after {
					if c.RuleID == "" {
						continue
					}
					if c.Statement != model.StatementLiabilities {
						assert.True(t, c.Vetoed, "non-liability candidate %s survives the payable token", c.RuleID)
					}
					prev, ok := before[c.RuleID]
					if !ok {
						continue
					}
					if c.Statement == model.StatementLiabilities {
						assert.GreaterOrEqual(t, c.Confidence, prev.Confidence, "liability candidate %s lost confidence", c.RuleID)
					} else {
						assert.LessOrEqual(t, c.Confidence, prev.Confidence, "candidate %s gained confidence", c.RuleID)
					}
				}
				for id := range before {
					assert.Contains(t, ruleIDs(after), id, "candidate %s disappeared", id)
				}
			})
		}
	}
}

func byRule(cands []Candidate) map[string]Candidate {
	out := make(map[string]Candidate, len(cands))
	for _, c := range cands {
		if c.RuleID != "" {
			out[c.RuleID] = c
		}
	}
	return out
}

func ruleIDs(cands []Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.RuleID)
	}
	return out
}

func TestClassifyReceivableIsAsset(t *testing.T) {
	e := defaultEngine()

	for _, name := range []string{"Staff Receivable", "Rent Receivable", "Accounts Receivable"} {
		sug, ok := e.Classify(acct("", name, 800, 0))
		require.True(t, ok, name)
		assert.Equal(t, model.StatementAssets, sug.Statement, name)
		assert.Equal(t, model.LineTradeReceivables, sug.LineItem, name)
	}
}

func TestClassifyVehicles(t *testing.T) {
	e := defaultEngine()
	tests := []struct {
		name      string
		account   model.RawAccount
		statement model.Statement
		lineItem  string
	}{
		{
			name:      "fixed asset",
			account:   acct("1600", "Motor Vehicles", 2000000, 0),
			statement: model.StatementAssets,
			lineItem:  model.LinePPE,
		},
		{
			name:      "repairs",
			account:   acct("6200", "Motor Vehicle Repairs", 45000, 0),
			statement: model.StatementExpenses,
			lineItem:  model.LineRepairs,
		},
		{
			name:      "fuel",
			account:   acct("6300", "Fuel - Motor Vehicles", 30000, 0),
			statement: model.StatementExpenses,
			lineItem:  model.LineMotorVehicle,
		},
		{
			name:      "running expenses",
			account:   acct("", "Motor Vehicle Expenses", 9000, 0),
			statement: model.StatementExpenses,
			lineItem:  model.LineMotorVehicle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sug, ok := e.Classify(tt.account)
			require.True(t, ok)
			assert.Equal(t, tt.statement, sug.Statement)
			assert.Equal(t, tt.lineItem, sug.LineItem)
		})
	}
}

func TestClassifyCommonAccounts(t *testing.T) {
	e := defaultEngine()
	tests := []struct {
		account   model.RawAccount
		statement model.Statement
		lineItem  string
	}{
		{acct("1000", "Cash at Bank", 150000, 0), model.StatementAssets, model.LineCash},
		{acct("1200", "Inventory - Finished Goods", 80000, 0), model.StatementAssets, model.LineInventories},
		{acct("3000", "Share Capital", 0, 100000), model.StatementEquity, model.LineShareCapital},
		{acct("3100", "Retained Earnings", 0, 50000), model.StatementEquity, model.LineRetainedEarnings},
		{acct("4000", "Sales Revenue", 0, 900000), model.StatementRevenue, model.LineRevenue},
		{acct("5000", "Cost of Sales", 400000, 0), model.StatementExpenses, model.LineCostOfSales},
		{acct("6000", "Salaries and Wages", 200000, 0), model.StatementExpenses, model.LineEmployeeBenefits},
		{acct("6700", "Interest Expense", 15000, 0), model.StatementExpenses, model.LineFinanceCosts},
	}
	for _, tt := range tests {
		t.Run(tt.account.AccountName, func(t *testing.T) {
			sug, ok := e.Classify(tt.account)
			require.True(t, ok)
			assert.Equal(t, tt.statement, sug.Statement)
			assert.Equal(t, tt.lineItem, sug.LineItem)
			assert.GreaterOrEqual(t, sug.Confidence, 50)
			assert.LessOrEqual(t, sug.Confidence, 100)
		})
	}
}

func TestClassifyFallback(t *testing.T) {
	e := defaultEngine()
	tests := []struct {
		name       string
		account    model.RawAccount
		statement  model.Statement
		lineItem   string
		confidence int
	}{
		{"asset consistent", acct("1999", "Qwerty", 100, 0), model.StatementAssets, model.LineOtherCurrentAssets, 40},
		{"liability inconsistent", acct("2999", "Qwerty", 100, 0), model.StatementLiabilities, model.LineOtherCurrentLiab, 20},
		{"equity credit", acct("3999", "Qwerty", 0, 100), model.StatementEquity, model.LineOtherReserves, 40},
		{"revenue credit", acct("4999", "Qwerty", 0, 100), model.StatementRevenue, model.LineOtherIncome, 40},
		{"expense zero", acct("5999", "Qwerty", 0, 0), model.StatementExpenses, model.LineOtherOperatingExp, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sug, ok := e.Classify(tt.account)
			require.True(t, ok)
			assert.Equal(t, tt.statement, sug.Statement)
			assert.Equal(t, tt.lineItem, sug.LineItem)
			assert.Equal(t, tt.confidence, sug.Confidence)
			assert.Contains(t, sug.Reason, "fallback")
			assert.Empty(t, sug.RuleID)
		})
	}
}

func TestClassifyUnmapped(t *testing.T) {
	e := defaultEngine()

	_, ok := e.Classify(acct("ABC", "Qwerty", 100, 0))
	assert.False(t, ok)

	_, ok = e.Classify(acct("0999", "Qwerty", 100, 0))
	assert.False(t, ok)
}

func TestClassifyDisableFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.DisableFallback = true
	e := NewEngine(DefaultRuleset(), opts)

	_, ok := e.Classify(acct("1999", "Qwerty", 100, 0))
	assert.False(t, ok)
}

func TestClassifyAllKeepsOrder(t *testing.T) {
	e := defaultEngine()
	accts := []model.RawAccount{
		acct("1000", "Cash at Bank", 100, 0),
		acct("ABC", "Qwerty", 5, 0),
		acct("2000", "Trade Payables", 0, 105),
	}

	got := e.ClassifyAll(accts)
	require.Len(t, got, 3)
	assert.Equal(t, "1000", got[0].AccountID)
	assert.Equal(t, model.StatementAssets, got[0].Statement)
	assert.Equal(t, "ABC", got[1].AccountID)
	assert.Equal(t, model.Unmapped, got[1].Statement)
	assert.Zero(t, got[1].Confidence)
	assert.Equal(t, "2000", got[2].AccountID)
	assert.Equal(t, model.StatementLiabilities, got[2].Statement)
}

func TestClassifyIsPure(t *testing.T) {
	e := defaultEngine()
	a := acct("2510", "Equity Bank Loan", 0, 500000)

	first, _ := e.Classify(a)
	second, _ := e.Classify(a)
	assert.Equal(t, first, second)
}

func TestShortCircuitStopsScanning(t *testing.T) {
	e := defaultEngine()
	s := NewSubject(acct("2510", "Equity Bank Loan", 0, 500000))

	short := e.evaluate(s, true)
	full := e.evaluate(s, false)
	require.Len(t, short, 1)
	assert.Greater(t, len(full), 1)
	assert.Equal(t, "long-term-borrowings", short[0].RuleID)
}

func TestTieGoesToEarlierRule(t *testing.T) {
	rs, err := NewRuleset(
		model.ClassificationRule{ID: "a", Statement: model.StatementAssets, LineItem: "A", Keywords: []string{"widget"}, Priority: 1},
		model.ClassificationRule{ID: "b", Statement: model.StatementLiabilities, LineItem: "B", Keywords: []string{"widget"}, Priority: 1},
	)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Threshold = 5
	e := NewEngineWithOverrides(rs, nil, opts)

	sug, ok := e.Classify(acct("", "Widget", 0, 0))
	require.True(t, ok)
	assert.Equal(t, "a", sug.RuleID)
	assert.Equal(t, 10, sug.Confidence)
}

func TestForcedTargetInjected(t *testing.T) {
	rs, err := NewRuleset(model.ClassificationRule{
		ID: "cash", Statement: model.StatementAssets, LineItem: model.LineCash,
		Keywords: []string{"bank"}, Priority: 10,
	})
	require.NoError(t, err)
	e := NewEngine(rs, DefaultOptions())

	sug, ok := e.Classify(acct("", "Stanbic Bank Loan", 0, 1000))
	require.True(t, ok)
	assert.Equal(t, model.StatementLiabilities, sug.Statement)
	assert.Equal(t, model.LineLongTermBorrowings, sug.LineItem)
	assert.Equal(t, 90, sug.Confidence)
	assert.Empty(t, sug.RuleID)
}

func TestCustomRuleTakesPrecedence(t *testing.T) {
	rs, err := WithCustomRules(DefaultRuleset(), []model.ClassificationRule{{
		ID:        "mobile-float",
		Statement: model.StatementAssets,
		LineItem:  model.LineCash,
		Patterns:  []string{`\bm-?pesa\b`},
		Priority:  95,
	}})
	require.NoError(t, err)
	e := NewEngine(rs, DefaultOptions())

	sug, ok := e.Classify(acct("", "M-Pesa Float", 2500, 0))
	require.True(t, ok)
	assert.Equal(t, model.LineCash, sug.LineItem)
	assert.Equal(t, "mobile-float", sug.RuleID)
	assert.Equal(t, 75, sug.Confidence)
}

func TestScoreRuleWeights(t *testing.T) {
	w := DefaultWeights()
	rs, err := NewRuleset(model.ClassificationRule{
		ID: "r", Statement: model.StatementAssets, LineItem: "X", Priority: 1,
		Keywords:            []string{"alpha", "beta", "gamma", "delta"},
		AccountCodePrefixes: []string{"1-1"},
	})
	require.NoError(t, err)
	r := rs.rules[0]

	capped := scoreRule(r, NewSubject(acct("", "Alpha Beta Gamma Delta", 0, 0)), w)
	assert.True(t, capped.matched)
	assert.Equal(t, w.KeywordCap, capped.score)

	prefix := scoreRule(r, NewSubject(acct("11.20", "Nothing", 10, 0)), w)
	assert.True(t, prefix.matched)
	assert.Equal(t, w.CodePrefix+w.Polarity, prefix.score)

	none := scoreRule(r, NewSubject(acct("", "Nothing", 10, 0)), w)
	assert.False(t, none.matched)
	assert.Zero(t, none.score)
}

func TestPhraseKeywordWeight(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 10, keywordWeight(keyword{phrase: "cash", words: 1}, w))
	assert.Equal(t, 15, keywordWeight(keyword{phrase: "bank loan", words: 2}, w))
	assert.Equal(t, 20, keywordWeight(keyword{phrase: "cash at bank", words: 3}, w))
}
