package model

// Standard line item names shared by the classification catalog and the
// statement templates.
const (
	// Assets
	LineCash               = "Cash and Cash Equivalents"
	LineTradeReceivables   = "Trade and Other Receivables"
	LineInventories        = "Inventories"
	LinePrepayments        = "Prepayments"
	LineOtherCurrentAssets = "Other Current Assets"
	LinePPE                = "Property, Plant and Equipment"
	LineRightOfUse         = "Right-of-use Assets"
	LineIntangibles        = "Intangible Assets"
	LineInvestmentProperty = "Investment Property"
	LineInvestments        = "Investments"
	LineDeferredTaxAssets  = "Deferred Tax Assets"
	LineOtherNonCurrent    = "Other Non-current Assets"

	// Liabilities
	LineTradePayables          = "Trade and Other Payables"
	LineAccruals               = "Accruals"
	LineShortTermBorrowings    = "Short-term Borrowings"
	LineCurrentTax             = "Current Tax Liabilities"
	LineOtherCurrentLiab       = "Other Current Liabilities"
	LineLongTermBorrowings     = "Long-term Borrowings"
	LineLeaseLiabilities       = "Lease Liabilities"
	LineDeferredTaxLiabilities = "Deferred Tax Liabilities"
	LineProvisions             = "Provisions"

	// Equity
	LineShareCapital     = "Share Capital"
	LineSharePremium     = "Share Premium"
	LineRetainedEarnings = "Retained Earnings"
	LineOtherReserves    = "Other Reserves"

	// Revenue
	LineRevenue       = "Revenue"
	LineOtherIncome   = "Other Income"
	LineFinanceIncome = "Finance Income"

	// Expenses
	LineCostOfSales       = "Cost of Sales"
	LineEmployeeBenefits  = "Employee Benefits Expense"
	LineDepreciation      = "Depreciation and Amortisation"
	LineRepairs           = "Repairs and Maintenance"
	LineMotorVehicle      = "Motor Vehicle Expenses"
	LineOccupancy         = "Rent and Utilities"
	LineSelling           = "Selling and Distribution Expenses"
	LineAdministrative    = "Administrative Expenses"
	LineOtherOperatingExp = "Other Operating Expenses"
	LineFinanceCosts      = "Finance Costs"
	LineIncomeTaxExpense  = "Income Tax Expense"
)
