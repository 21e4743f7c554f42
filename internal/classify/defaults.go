package classify

import "github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"

// DefaultRuleset returns a fresh copy of the built-in catalog.
func DefaultRuleset() *Ruleset {
	rs, err := NewRuleset(DefaultRules()...)
	if err != nil {
		panic("classify: invalid default rule: " + err.Error())
	}
	return rs
}

// DefaultRules returns the built-in IFRS catalog.
func DefaultRules() []model.ClassificationRule {
	const (
		A = model.StatementAssets
		L = model.StatementLiabilities
		E = model.StatementEquity
		R = model.StatementRevenue
		X = model.StatementExpenses
	)
	return []model.ClassificationRule{
		// Assets
		{
			ID: "cash", Statement: A, LineItem: model.LineCash, Priority: 80,
			Keywords:            []string{"cash", "bank", "petty cash", "cash at bank", "cash on hand", "cash in hand", "current account", "call deposit", "mobile money"},
			Patterns:            []string{`\b(petty\s+)?cash\b`, `\bcash\s+(at|in)\s+bank\b`, `\bbank\s+(account|balance|current)\b`},
			AccountCodePrefixes: []string{"10"},
		},
		{
			ID: "trade-receivables", Statement: A, LineItem: model.LineTradeReceivables, Priority: 85,
			Keywords:            []string{"receivable", "receivables", "debtors", "trade debtors", "accounts receivable", "other receivables", "staff advances"},
			Patterns:            []string{`\breceivables?\b`, `\b(trade\s+)?debtors\b`},
			AccountCodePrefixes: []string{"11"},
		},
		{
			ID: "inventories", Statement: A, LineItem: model.LineInventories, Priority: 75,
			Keywords:            []string{"inventory", "inventories", "stock", "stocks", "raw materials", "finished goods", "work in progress", "goods in transit"},
			Patterns:            []string{`\binventor(y|ies)\b`, `\b(raw\s+materials?|finished\s+goods|work\s+in\s+progress)\b`, `\bstock\s+(on\s+hand|in\s+trade)\b`},
			AccountCodePrefixes: []string{"12"},
		},
		{
			ID: "prepayments", Statement: A, LineItem: model.LinePrepayments, Priority: 75,
			Keywords:            []string{"prepaid", "prepayment", "prepayments", "prepaid expenses", "advance payment", "deposits paid"},
			Patterns:            []string{`\bpre[\s-]?paid\b`, `\bprepayments?\b`},
			AccountCodePrefixes: []string{"13"},
		},
		{
			ID: "other-current-assets", Statement: A, LineItem: model.LineOtherCurrentAssets, Priority: 20,
			Keywords:            []string{"suspense", "short term deposit", "vat recoverable", "input vat", "withholding tax recoverable"},
			Patterns:            []string{`\b(input\s+vat|vat\s+recoverable)\b`},
			AccountCodePrefixes: []string{"14"},
		},
		{
			ID: "ppe", Statement: A, LineItem: model.LinePPE, Priority: 70,
			Keywords:            []string{"property", "plant", "equipment", "machinery", "motor vehicles", "furniture", "fixtures", "fittings", "computers", "buildings", "land", "office equipment", "accumulated depreciation"},
			Patterns:            []string{`\bproperty,?\s+plant\b`, `\b(plant|office)\s+(and|&)?\s*(machinery|equipment)\b`, `\bfurniture\b`, `\bmotor\s+vehicles?\b`, `\baccumulated\s+depreciation\b`, `\b(land|buildings?)\b`},
			AccountCodePrefixes: []string{"15", "16"},
		},
		{
			ID: "right-of-use", Statement: A, LineItem: model.LineRightOfUse, Priority: 72,
			Keywords: []string{"right of use", "rou asset", "leased asset"},
			Patterns: []string{`\bright[\s-]of[\s-]use\b`},
		},
		{
			ID: "intangibles", Statement: A, LineItem: model.LineIntangibles, Priority: 70,
			Keywords:            []string{"goodwill", "intangible", "intangibles", "software", "patents", "trademarks", "licences", "licenses", "accumulated amortisation", "accumulated amortization"},
			Patterns:            []string{`\bintangibles?\b`, `\bgoodwill\b`, `\baccumulated\s+amorti[sz]ation\b`},
			AccountCodePrefixes: []string{"17"},
		},
		{
			ID: "investment-property", Statement: A, LineItem: model.LineInvestmentProperty, Priority: 74,
			Keywords: []string{"investment property", "investment properties"},
			Patterns: []string{`\binvestment\s+propert(y|ies)\b`},
		},
		{
			ID: "investments", Statement: A, LineItem: model.LineInvestments, Priority: 65,
			Keywords:            []string{"investment", "investments", "shares in", "treasury bills", "treasury bonds", "fixed deposit", "associate", "subsidiary"},
			Patterns:            []string{`\binvestments?\s+in\b`, `\btreasury\s+(bills?|bonds?)\b`, `\bfixed\s+deposits?\b`},
			AccountCodePrefixes: []string{"18"},
		},
		{
			ID: "deferred-tax-asset", Statement: A, LineItem: model.LineDeferredTaxAssets, Priority: 78,
			Keywords: []string{"deferred tax asset", "deferred tax"},
			Patterns: []string{`\bdeferred\s+tax\s+assets?\b`},
		},

		// Liabilities
		{
			ID: "trade-payables", Statement: L, LineItem: model.LineTradePayables, Priority: 85,
			Keywords:            []string{"payable", "payables", "creditors", "trade creditors", "accounts payable", "other payables", "customer deposits"},
			Patterns:            []string{`\bpayables?\b`, `\b(trade\s+)?creditors\b`},
			AccountCodePrefixes: []string{"20"},
		},
		{
			ID: "accruals", Statement: L, LineItem: model.LineAccruals, Priority: 82,
			Keywords:            []string{"accrued", "accruals", "accrual", "accrued expenses", "accrued liabilities"},
			Patterns:            []string{`\baccru(ed|als?)\b`},
			AccountCodePrefixes: []string{"21"},
		},
		{
			ID: "current-tax", Statement: L, LineItem: model.LineCurrentTax, Priority: 80,
			Keywords:            []string{"tax payable", "income tax payable", "vat payable", "paye", "output vat", "withholding tax payable", "corporation tax"},
			Patterns:            []string{`\b(income|corporation|corporate)\s+tax\s+payable\b`, `\b(vat|paye)\b`},
			AccountCodePrefixes: []string{"22"},
		},
		{
			ID: "short-term-borrowings", Statement: L, LineItem: model.LineShortTermBorrowings, Priority: 88,
			Keywords:            []string{"overdraft", "bank overdraft", "short term loan", "current portion", "credit card", "credit line"},
			Patterns:            []string{`\boverdrafts?\b`, `\bshort[\s-]term\s+(loans?|borrowings?)\b`, `\bcurrent\s+portion\b`},
			AccountCodePrefixes: []string{"23"},
		},
		{
			ID: "other-current-liabilities", Statement: L, LineItem: model.LineOtherCurrentLiab, Priority: 20,
			Keywords:            []string{"deferred income", "unearned revenue", "contract liabilities", "dividends declared", "advances from customers"},
			Patterns:            []string{`\b(deferred\s+income|unearned\s+revenue|contract\s+liabilit(y|ies))\b`},
			AccountCodePrefixes: []string{"24"},
		},
		{
			ID: "long-term-borrowings", Statement: L, LineItem: model.LineLongTermBorrowings, Priority: 90,
			Keywords:            []string{"loan", "loans", "borrowing", "borrowings", "bank loan", "term loan", "long term loan", "debenture", "debentures", "mortgage", "notes payable", "bonds payable"},
			Patterns:            []string{`\b(bank|term)\s+loans?\b`, `\bborrowings?\b`, `\bloans?\s+payable\b`, `\bdebentures?\b`, `\bmortgages?\b`},
			AccountCodePrefixes: []string{"25"},
		},
		{
			ID: "lease-liabilities", Statement: L, LineItem: model.LineLeaseLiabilities, Priority: 84,
			Keywords: []string{"lease liability", "lease liabilities", "finance lease", "lease obligation"},
			Patterns: []string{`\blease\s+(liabilit(y|ies)|obligations?)\b`},
		},
		{
			ID: "deferred-tax-liability", Statement: L, LineItem: model.LineDeferredTaxLiabilities, Priority: 79,
			Keywords: []string{"deferred tax liability", "deferred tax"},
			Patterns: []string{`\bdeferred\s+tax\s+liabilit(y|ies)\b`},
		},
		{
			ID: "provisions", Statement: L, LineItem: model.LineProvisions, Priority: 60,
			Keywords:            []string{"provision", "provisions", "warranty provision", "provision for leave", "gratuity"},
			Patterns:            []string{`\bprovisions?\s+for\b`},
			AccountCodePrefixes: []string{"26"},
		},

		// Equity
		{
			ID: "share-capital", Statement: E, LineItem: model.LineShareCapital, Priority: 80,
			Keywords:            []string{"share capital", "capital", "ordinary shares", "common stock", "stated capital", "paid up capital", "owner capital"},
			Patterns:            []string{`\b(share|stated|paid[\s-]?up|issued)\s+capital\b`, `\b(common|ordinary)\s+(stock|shares)\b`},
			AccountCodePrefixes: []string{"30"},
		},
		{
			ID: "share-premium", Statement: E, LineItem: model.LineSharePremium, Priority: 81,
			Keywords: []string{"share premium", "additional paid in capital"},
			Patterns: []string{`\bshare\s+premium\b`, `\badditional\s+paid[\s-]in\s+capital\b`},
		},
		{
			ID: "retained-earnings", Statement: E, LineItem: model.LineRetainedEarnings, Priority: 80,
			Keywords:            []string{"retained earnings", "retained profit", "accumulated profit", "accumulated losses", "accumulated deficit", "profit and loss reserve"},
			Patterns:            []string{`\bretained\s+(earnings|profits?)\b`, `\baccumulated\s+(profits?|loss(es)?|deficit)\b`},
			AccountCodePrefixes: []string{"31"},
		},
		{
			ID: "other-reserves", Statement: E, LineItem: model.LineOtherReserves, Priority: 50,
			Keywords:            []string{"reserve", "reserves", "revaluation", "equity", "drawings", "translation reserve"},
			Patterns:            []string{`\b(revaluation|capital|statutory|general)\s+reserves?\b`},
			AccountCodePrefixes: []string{"32", "33"},
		},

		// Revenue
		{
			ID: "revenue", Statement: R, LineItem: model.LineRevenue, Priority: 75,
			Keywords:            []string{"revenue", "sales", "turnover", "fees earned", "service income", "contract revenue", "commission income"},
			Patterns:            []string{`\b(sales|revenue|turnover)\b`},
			AccountCodePrefixes: []string{"40", "41"},
		},
		{
			ID: "finance-income", Statement: R, LineItem: model.LineFinanceIncome, Priority: 78,
			Keywords:            []string{"interest income", "interest received", "dividend income", "investment income"},
			Patterns:            []string{`\b(interest|dividend|investment)\s+(income|received|earned)\b`},
			AccountCodePrefixes: []string{"43"},
		},
		{
			ID: "other-income", Statement: R, LineItem: model.LineOtherIncome, Priority: 40,
			Keywords:            []string{"other income", "sundry income", "gain", "gains", "rental income", "grant income", "miscellaneous income"},
			Patterns:            []string{`\b(other|sundry|rental|grant|miscellaneous)\s+income\b`, `\bgain\s+on\b`},
			AccountCodePrefixes: []string{"42"},
		},

		// Expenses
		{
			ID: "cost-of-sales", Statement: X, LineItem: model.LineCostOfSales, Priority: 80,
			Keywords:            []string{"cost of sales", "cost of goods sold", "cogs", "purchases", "direct costs", "direct labour", "freight in"},
			Patterns:            []string{`\bcost\s+of\s+(sales|goods\s+sold|revenue)\b`, `\bcogs\b`, `\bdirect\s+(costs?|labou?r|materials?)\b`},
			AccountCodePrefixes: []string{"50"},
		},
		{
			ID: "employee-benefits", Statement: X, LineItem: model.LineEmployeeBenefits, Priority: 70,
			Keywords:            []string{"salaries", "salary", "wages", "staff costs", "payroll", "pension", "staff welfare", "bonus", "medical", "nssf", "nhif"},
			Patterns:            []string{`\b(salar(y|ies)|wages|payroll)\b`, `\bstaff\s+(costs?|welfare|training)\b`},
			AccountCodePrefixes: []string{"60"},
		},
		{
			ID: "depreciation", Statement: X, LineItem: model.LineDepreciation, Priority: 72,
			Keywords:            []string{"depreciation", "amortisation", "amortization", "depreciation expense", "impairment"},
			Patterns:            []string{`\b(depreciation|amorti[sz]ation)\s+(expense|charge)\b`},
			AccountCodePrefixes: []string{"61"},
		},
		{
			ID: "repairs", Statement: X, LineItem: model.LineRepairs, Priority: 65,
			Keywords:            []string{"repairs", "maintenance", "repairs and maintenance", "servicing"},
			Patterns:            []string{`\brepairs?\b`, `\bmaintenance\b`},
			AccountCodePrefixes: []string{"62"},
		},
		{
			ID: "motor-vehicle", Statement: X, LineItem: model.LineMotorVehicle, Priority: 64,
			Keywords:            []string{"fuel", "motor vehicle expenses", "vehicle running", "vehicle insurance", "vehicle hire", "transport", "travel"},
			Patterns:            []string{`\b(fuel|petrol|diesel)\b`, `\bvehicle\s+(running|expenses?|insurance|hire)\b`},
			AccountCodePrefixes: []string{"63"},
		},
		{
			ID: "occupancy", Statement: X, LineItem: model.LineOccupancy, Priority: 60,
			Keywords:            []string{"rent", "rates", "electricity", "water", "utilities", "power", "security", "cleaning"},
			Patterns:            []string{`\brent(al)?\s+(expense|paid)\b`, `\butilit(y|ies)\b`, `\belectricity\b`},
			AccountCodePrefixes: []string{"64"},
		},
		{
			ID: "selling", Statement: X, LineItem: model.LineSelling, Priority: 60,
			Keywords:            []string{"advertising", "marketing", "promotion", "carriage outwards", "distribution", "sales commission", "delivery"},
			Patterns:            []string{`\b(advertising|marketing|promotions?)\b`, `\bcarriage\s+out(wards)?\b`},
			AccountCodePrefixes: []string{"65"},
		},
		{
			ID: "administrative", Statement: X, LineItem: model.LineAdministrative, Priority: 55,
			Keywords:            []string{"audit fees", "legal fees", "professional fees", "consultancy", "insurance", "stationery", "printing", "telephone", "internet", "postage", "subscriptions", "office expenses", "bank charges", "licences"},
			Patterns:            []string{`\b(audit|legal|professional|consultancy)\s+fees\b`, `\b(stationery|printing|telephone|postage)\b`, `\bbank\s+charges\b`},
			AccountCodePrefixes: []string{"66"},
		},
		{
			ID: "finance-costs", Statement: X, LineItem: model.LineFinanceCosts, Priority: 78,
			Keywords:            []string{"interest expense", "interest paid", "finance costs", "finance charges", "loan interest"},
			Patterns:            []string{`\binterest\s+(expense|paid|on\s+loans?)\b`, `\bfinance\s+(costs?|charges)\b`, `\bloan\s+interest\b`},
			AccountCodePrefixes: []string{"67"},
		},
		{
			ID: "income-tax-expense", Statement: X, LineItem: model.LineIncomeTaxExpense, Priority: 78,
			Keywords:            []string{"income tax expense", "tax expense", "corporation tax expense", "current tax expense", "deferred tax expense"},
			Patterns:            []string{`\b(income|corporation|current|deferred)\s+tax\s+(expense|charge)\b`},
			AccountCodePrefixes: []string{"68"},
		},
		{
			ID: "other-operating-expenses", Statement: X, LineItem: model.LineOtherOperatingExp, Priority: 10,
			Keywords:            []string{"expense", "expenses", "sundry", "miscellaneous", "general expenses", "other expenses", "donations", "entertainment"},
			Patterns:            []string{`\b(sundry|miscellaneous|general|other)\s+expenses?\b`},
			AccountCodePrefixes: []string{"69", "7", "8", "9"},
		},
	}
}
