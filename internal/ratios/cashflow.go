package ratios

import "github.com/shopspring/decimal"

// CashFlowSection is a block of the cash flow statement.
type CashFlowSection string

const (
	Operating CashFlowSection = "operating"
	Investing CashFlowSection = "investing"
	Financing CashFlowSection = "financing"
)

// CashFlowLine is one reconciling line.
type CashFlowLine struct {
	Section CashFlowSection `json:"section"`
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
}

// CashFlowStatement is an indirect-method cash flow statement derived from
// two balance sheets and the current income statement.
type CashFlowStatement struct {
	Lines        []CashFlowLine  `json:"lines"`
	NetOperating decimal.Decimal `json:"netOperating"`
	NetInvesting decimal.Decimal `json:"netInvesting"`
	NetFinancing decimal.Decimal `json:"netFinancing"`
	NetChange    decimal.Decimal `json:"netChange"`
	OpeningCash  decimal.Decimal `json:"openingCash"`
	ClosingCash  decimal.Decimal `json:"closingCash"`
	// Unexplained is the movement in cash the derived flows do not
	// account for. It is zero when both balance sheets balance.
	Unexplained decimal.Decimal `json:"unexplained"`
}

// Reconciles reports whether the derived flows explain the change in cash.
func (c CashFlowStatement) Reconciles() bool {
	return c.Unexplained.IsZero()
}

// Section returns the lines of one section.
func (c CashFlowStatement) Section(s CashFlowSection) []CashFlowLine {
	var out []CashFlowLine
	for _, l := range c.Lines {
		if l.Section == s {
			out = append(out, l)
		}
	}
	return out
}

// CashFlow builds the cash flow statement for the period between prior and
// current. Working capital excludes cash and short-term borrowings.
// Capital expenditure is the movement in non-current assets grossed up for
// depreciation. Distributions are the equity movement not explained by
// profit or share issues.
func CashFlow(current, prior FinancialData) CashFlowStatement {
	var cf CashFlowStatement
	add := func(s CashFlowSection, label string, amount decimal.Decimal) {
		cf.Lines = append(cf.Lines, CashFlowLine{Section: s, Label: label, Amount: amount})
		switch s {
		case Operating:
			cf.NetOperating = cf.NetOperating.Add(amount)
		case Investing:
			cf.NetInvesting = cf.NetInvesting.Add(amount)
		case Financing:
			cf.NetFinancing = cf.NetFinancing.Add(amount)
		}
	}

	workingAssets := func(f FinancialData) decimal.Decimal { return f.CurrentAssets.Sub(f.Cash) }
	workingLiabilities := func(f FinancialData) decimal.Decimal {
		return f.CurrentLiabilities.Sub(f.ShortTermBorrowings)
	}
	otherNonCurrent := func(f FinancialData) decimal.Decimal {
		return f.NonCurrentLiabilities.Sub(f.LongTermBorrowings).Sub(f.LeaseLiabilities)
	}

	add(Operating, "Net income", current.NetIncome)
	add(Operating, "Depreciation and amortisation", current.Depreciation)
	add(Operating, "Increase in receivables", current.Receivables.Sub(prior.Receivables).Neg())
	add(Operating, "Increase in inventories", current.Inventories.Sub(prior.Inventories).Neg())
	other := workingAssets(current).Sub(workingAssets(prior)).
		Sub(current.Receivables.Sub(prior.Receivables)).
		Sub(current.Inventories.Sub(prior.Inventories))
	add(Operating, "Increase in other current assets", other.Neg())
	add(Operating, "Increase in trade payables", current.Payables.Sub(prior.Payables))
	otherLiab := workingLiabilities(current).Sub(workingLiabilities(prior)).
		Sub(current.Payables.Sub(prior.Payables))
	add(Operating, "Increase in other current liabilities", otherLiab)
	add(Operating, "Increase in provisions and deferred items", otherNonCurrent(current).Sub(otherNonCurrent(prior)))

	capex := current.NonCurrentAssets.Sub(prior.NonCurrentAssets).Add(current.Depreciation)
	add(Investing, "Purchase of non-current assets", capex.Neg())

	shares := current.ShareCapital.Sub(prior.ShareCapital)
	add(Financing, "Proceeds from borrowings", current.Borrowings().Sub(prior.Borrowings()))
	add(Financing, "Proceeds from share issues", shares)
	distributions := prior.TotalEquity.Add(current.NetIncome).Add(shares).Sub(current.TotalEquity)
	add(Financing, "Dividends and other equity movements", distributions.Neg())

	cf.NetChange = cf.NetOperating.Add(cf.NetInvesting).Add(cf.NetFinancing)
	cf.OpeningCash = prior.Cash
	cf.ClosingCash = current.Cash
	cf.Unexplained = cf.ClosingCash.Sub(cf.OpeningCash).Sub(cf.NetChange)
	return cf
}
