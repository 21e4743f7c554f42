package ratios

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/statement"
)

func n(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func byKey(rs []Ratio) map[string]Ratio {
	out := make(map[string]Ratio, len(rs))
	for _, r := range rs {
		out[r.Key] = r
	}
	return out
}

func TestCalculate(t *testing.T) {
	f := FinancialData{
		Cash:               n(60),
		Inventories:        n(100),
		Receivables:        n(50),
		CurrentAssets:      n(300),
		CurrentLiabilities: n(150),
		Payables:           n(30),
		TotalAssets:        n(1000),
		TotalLiabilities:   n(400),
		TotalEquity:        n(600),
		Revenue:            n(2000),
		CostOfSales:        n(1200),
		GrossProfit:        n(800),
		OperatingProfit:    n(300),
		FinanceCosts:       n(50),
		NetIncome:          n(200),
	}
	rs := byKey(Calculate(f))

	tests := []struct {
		key     string
		want    string
		reading string
	}{
		{"current_ratio", "2", "comfortable short-term liquidity"},
		{"quick_ratio", "1.33", "liquid assets cover current liabilities"},
		{"cash_ratio", "0.4", "limited cash against current liabilities"},
		{"gross_margin", "40", "high gross margin"},
		{"operating_margin", "15", "strong operating performance"},
		{"net_margin", "10", "healthy net margin"},
		{"return_on_assets", "20", "assets are used productively"},
		{"return_on_equity", "33.33", "strong return to shareholders"},
		{"debt_to_equity", "0.67", "conservatively financed"},
		{"debt_ratio", "0.4", "most assets are financed by equity"},
		{"interest_cover", "6", "interest is comfortably covered"},
		{"asset_turnover", "2", "assets generate revenue efficiently"},
		{"receivable_days", "9.13", "receivables are collected promptly"},
		{"inventory_days", "30.42", "inventory turns over quickly"},
		{"payable_days", "9.13", "suppliers are paid promptly"},
	}
	require.Len(t, rs, len(tests))
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r, ok := rs[tt.key]
			require.True(t, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(r.Value), "got %s", r.Value)
			assert.Equal(t, tt.reading, r.Interpretation)
			assert.NotEmpty(t, r.Label)
			assert.NotEmpty(t, r.Formula)
		})
	}
}

func TestCalculate_ZeroDenominators(t *testing.T) {
	rs := Calculate(FinancialData{Cash: n(10), NetIncome: n(5)})
	require.NotEmpty(t, rs)
	for _, r := range rs {
		assert.True(t, r.Value.IsZero(), "%s = %s", r.Key, r.Value)
	}
}

func TestCalculate_NegativeReading(t *testing.T) {
	rs := byKey(Calculate(FinancialData{Revenue: n(100), NetIncome: n(-20)}))
	assert.Equal(t, "negative", rs["net_margin"].Interpretation)
	assert.True(t, n(-20).Equal(rs["net_margin"].Value))
}

func TestByCategory(t *testing.T) {
	rs := Calculate(FinancialData{})
	liq := ByCategory(rs, Liquidity)
	require.Len(t, liq, 3)
	assert.Equal(t, "current_ratio", liq[0].Key)
	assert.Len(t, ByCategory(rs, Leverage), 3)
}

func TestCashFlow_Reconciles(t *testing.T) {
	prior := FinancialData{
		Cash: n(100), Receivables: n(50), Inventories: n(30), CurrentAssets: n(180),
		NonCurrentAssets: n(200), TotalAssets: n(380),
		Payables: n(40), CurrentLiabilities: n(40),
		LongTermBorrowings: n(100), NonCurrentLiabilities: n(100), TotalLiabilities: n(140),
		ShareCapital: n(200), TotalEquity: n(240),
	}
	current := FinancialData{
		Cash: n(150), Receivables: n(70), Inventories: n(20), CurrentAssets: n(240),
		NonCurrentAssets: n(230), TotalAssets: n(470),
		Payables: n(50), ShortTermBorrowings: n(10), CurrentLiabilities: n(60),
		LongTermBorrowings: n(120), NonCurrentLiabilities: n(120), TotalLiabilities: n(180),
		ShareCapital: n(220), TotalEquity: n(290),
		NetIncome: n(60), Depreciation: n(20),
	}

	cf := CashFlow(current, prior)

	assert.True(t, n(80).Equal(cf.NetOperating), "operating %s", cf.NetOperating)
	assert.True(t, n(-50).Equal(cf.NetInvesting), "investing %s", cf.NetInvesting)
	assert.True(t, n(20).Equal(cf.NetFinancing), "financing %s", cf.NetFinancing)
	assert.True(t, n(50).Equal(cf.NetChange))
	assert.True(t, n(100).Equal(cf.OpeningCash))
	assert.True(t, n(150).Equal(cf.ClosingCash))
	assert.True(t, cf.Reconciles())

	fin := cf.Section(Financing)
	require.Len(t, fin, 3)
	assert.True(t, n(-30).Equal(fin[2].Amount), "distributions %s", fin[2].Amount)
}

func TestCashFlow_UnbalancedSheetLeavesDifference(t *testing.T) {
	prior := FinancialData{Cash: n(100), CurrentAssets: n(100), TotalAssets: n(100), TotalEquity: n(100), ShareCapital: n(100)}
	current := FinancialData{Cash: n(130), CurrentAssets: n(130), TotalAssets: n(130), TotalEquity: n(100), ShareCapital: n(100)}

	cf := CashFlow(current, prior)
	assert.False(t, cf.Reconciles())
	assert.True(t, n(30).Equal(cf.Unexplained), "unexplained %s", cf.Unexplained)
}

func TestExtract(t *testing.T) {
	acct := func(id, name string, debit, credit int64) model.TrialBalanceAccount {
		return model.NewTrialBalanceAccount(model.RawAccount{
			AccountID: id, AccountName: name, Debit: n(debit), Credit: n(credit),
		})
	}
	mapped := model.MappedTrialBalance{
		model.StatementAssets: {
			model.LineCash:        {acct("1000", "Bank", 200, 0)},
			model.LineInventories: {acct("1200", "Stock", 50, 0)},
			model.LinePPE:         {acct("1500", "Plant", 200, 0)},
		},
		model.StatementLiabilities: {
			model.LineTradePayables:      {acct("2000", "Creditors", 0, 80)},
			model.LineLongTermBorrowings: {acct("2500", "Term Loan", 0, 100)},
		},
		model.StatementEquity: {
			model.LineShareCapital: {acct("3000", "Ordinary Shares", 0, 100)},
		},
		model.StatementRevenue: {
			model.LineRevenue: {acct("4000", "Sales", 0, 500)},
		},
		model.StatementExpenses: {
			model.LineCostOfSales:  {acct("5000", "Purchases", 300, 0)},
			model.LineDepreciation: {acct("6100", "Depreciation", 30, 0)},
		},
	}
	p := statement.Populate(mapped, statement.IFRSFull(), statement.DefaultOptions())
	require.True(t, p.CanFinalize(), "%v", p.Validation)

	f := Extract(p)

	checks := map[string]struct {
		got  decimal.Decimal
		want int64
	}{
		"cash":                  {f.Cash, 200},
		"inventories":           {f.Inventories, 50},
		"currentAssets":         {f.CurrentAssets, 250},
		"nonCurrentAssets":      {f.NonCurrentAssets, 200},
		"currentLiabilities":    {f.CurrentLiabilities, 80},
		"nonCurrentLiabilities": {f.NonCurrentLiabilities, 100},
		"borrowings":            {f.Borrowings(), 100},
		"shareCapital":          {f.ShareCapital, 100},
		"totalEquity":           {f.TotalEquity, 270},
		"revenue":               {f.Revenue, 500},
		"grossProfit":           {f.GrossProfit, 200},
		"depreciation":          {f.Depreciation, 30},
		"netIncome":             {f.NetIncome, 170},
	}
	for name, c := range checks {
		assert.True(t, n(c.want).Equal(c.got), "%s: want %d, got %s", name, c.want, c.got)
	}
}

func TestExtract_SmallBalancesStayInTheirGroup(t *testing.T) {
	acct := func(id, name string, debit, credit int64) model.TrialBalanceAccount {
		return model.NewTrialBalanceAccount(model.RawAccount{
			AccountID: id, AccountName: name, Debit: n(debit), Credit: n(credit),
		})
	}
	mapped := model.MappedTrialBalance{
		model.StatementAssets: {
			model.LineCash:        {acct("1000", "Bank", 200, 0)},
			model.LineInventories: {acct("1200", "Stock", 5, 0)},
			model.LinePrepayments: {acct("1300", "Prepaid Rent", 3, 0)},
			model.LinePPE:         {acct("1500", "Plant", 200, 0)},
			model.LineIntangibles: {acct("1700", "Software", 4, 0)},
		},
		model.StatementLiabilities: {
			model.LineTradePayables:      {acct("2000", "Creditors", 0, 80)},
			model.LineAccruals:           {acct("2100", "Accrued Audit Fee", 0, 6)},
			model.LineLongTermBorrowings: {acct("2500", "Term Loan", 0, 100)},
		},
		model.StatementEquity: {
			model.LineShareCapital: {acct("3000", "Ordinary Shares", 0, 226)},
		},
	}
	opts := statement.DefaultOptions()
	opts.AggregateSmallBalances = true
	opts.SmallBalanceThreshold = n(10)

	p := statement.Populate(mapped, statement.IFRSFull(), opts)
	require.True(t, p.CanFinalize(), "%v", p.Validation)

	f := Extract(p)

	assert.True(t, n(208).Equal(f.CurrentAssets), "current assets: %s", f.CurrentAssets)
	assert.True(t, n(204).Equal(f.NonCurrentAssets), "non-current assets: %s", f.NonCurrentAssets)
	assert.True(t, n(86).Equal(f.CurrentLiabilities), "current liabilities: %s", f.CurrentLiabilities)
	assert.True(t, n(100).Equal(f.NonCurrentLiabilities), "non-current liabilities: %s", f.NonCurrentLiabilities)

	ratios := byKey(Calculate(f))
	require.Contains(t, ratios, "current_ratio")
	assert.True(t, n(208).Div(n(86)).Round(2).Equal(ratios["current_ratio"].Value.Round(2)))
}
