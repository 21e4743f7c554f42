// Package ratios derives financial ratios and an indirect-method cash flow
// statement from populated statements.
package ratios

import (
	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/statement"
)

// Group names read from the balance sheet.
const (
	GroupCurrentAssets      = "Current Assets"
	GroupCurrentLiabilities = "Current Liabilities"
)

// FinancialData is a flat snapshot of the figures the calculators need.
type FinancialData struct {
	Cash                  decimal.Decimal `json:"cash"`
	Receivables           decimal.Decimal `json:"receivables"`
	Inventories           decimal.Decimal `json:"inventories"`
	CurrentAssets         decimal.Decimal `json:"currentAssets"`
	NonCurrentAssets      decimal.Decimal `json:"nonCurrentAssets"`
	TotalAssets           decimal.Decimal `json:"totalAssets"`
	Payables              decimal.Decimal `json:"payables"`
	ShortTermBorrowings   decimal.Decimal `json:"shortTermBorrowings"`
	LongTermBorrowings    decimal.Decimal `json:"longTermBorrowings"`
	LeaseLiabilities      decimal.Decimal `json:"leaseLiabilities"`
	CurrentLiabilities    decimal.Decimal `json:"currentLiabilities"`
	NonCurrentLiabilities decimal.Decimal `json:"nonCurrentLiabilities"`
	TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
	ShareCapital          decimal.Decimal `json:"shareCapital"`
	TotalEquity           decimal.Decimal `json:"totalEquity"`
	Revenue               decimal.Decimal `json:"revenue"`
	CostOfSales           decimal.Decimal `json:"costOfSales"`
	GrossProfit           decimal.Decimal `json:"grossProfit"`
	OperatingExpenses     decimal.Decimal `json:"operatingExpenses"`
	OperatingProfit       decimal.Decimal `json:"operatingProfit"`
	Depreciation          decimal.Decimal `json:"depreciation"`
	FinanceCosts          decimal.Decimal `json:"financeCosts"`
	ProfitBeforeTax       decimal.Decimal `json:"profitBeforeTax"`
	IncomeTax             decimal.Decimal `json:"incomeTax"`
	NetIncome             decimal.Decimal `json:"netIncome"`
}

// Borrowings is the interest-bearing debt: short-term, long-term and lease
// liabilities.
func (d FinancialData) Borrowings() decimal.Decimal {
	return d.ShortTermBorrowings.Add(d.LongTermBorrowings).Add(d.LeaseLiabilities)
}

// Extract reads a FinancialData snapshot from populated statements by line
// item and group name. Missing lines read as zero. Non-current figures are
// the section total less the current group, so balances swept into an
// "Other" line count as non-current.
func Extract(p statement.PopulatedStatements) FinancialData {
	get := func(s model.Statement, name string) decimal.Decimal {
		v, _ := p.Value(s, name)
		return v
	}
	t := p.Totals
	d := FinancialData{
		Cash:                get(model.StatementAssets, model.LineCash),
		Receivables:         get(model.StatementAssets, model.LineTradeReceivables),
		Inventories:         get(model.StatementAssets, model.LineInventories),
		CurrentAssets:       get(model.StatementAssets, GroupCurrentAssets),
		TotalAssets:         t.TotalAssets,
		Payables:            get(model.StatementLiabilities, model.LineTradePayables),
		ShortTermBorrowings: get(model.StatementLiabilities, model.LineShortTermBorrowings),
		LongTermBorrowings:  get(model.StatementLiabilities, model.LineLongTermBorrowings),
		LeaseLiabilities:    get(model.StatementLiabilities, model.LineLeaseLiabilities),
		CurrentLiabilities:  get(model.StatementLiabilities, GroupCurrentLiabilities),
		TotalLiabilities:    t.TotalLiabilities,
		ShareCapital:        get(model.StatementEquity, model.LineShareCapital).Add(get(model.StatementEquity, model.LineSharePremium)),
		TotalEquity:         t.TotalEquity,
		Revenue:             t.Revenue,
		CostOfSales:         t.CostOfSales,
		GrossProfit:         t.GrossProfit,
		OperatingExpenses:   t.OperatingExpenses,
		OperatingProfit:     t.OperatingProfit,
		Depreciation:        get(model.StatementExpenses, model.LineDepreciation),
		FinanceCosts:        t.FinanceCosts,
		ProfitBeforeTax:     t.ProfitBeforeTax,
		IncomeTax:           t.IncomeTax,
		NetIncome:           t.NetIncome,
	}
	d.NonCurrentAssets = d.TotalAssets.Sub(d.CurrentAssets)
	d.NonCurrentLiabilities = d.TotalLiabilities.Sub(d.CurrentLiabilities)
	return d
}
