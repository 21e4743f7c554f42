package ratios

import (
	"github.com/shopspring/decimal"
)

// Category groups related ratios.
type Category string

const (
	Liquidity     Category = "liquidity"
	Profitability Category = "profitability"
	Leverage      Category = "leverage"
	Efficiency    Category = "efficiency"
)

// Unit describes how a ratio value reads.
type Unit string

const (
	Times   Unit = "x"
	Percent Unit = "%"
	Days    Unit = "days"
)

// Ratio is one computed ratio.
type Ratio struct {
	Key            string          `json:"key"`
	Label          string          `json:"label"`
	Category       Category        `json:"category"`
	Value          decimal.Decimal `json:"value"`
	Unit           Unit            `json:"unit"`
	Formula        string          `json:"formula"`
	Interpretation string          `json:"interpretation"`
}

// Precision is the number of decimal places ratio values are rounded to.
const Precision = 2

var (
	hundred  = decimal.NewFromInt(100)
	yearDays = decimal.NewFromInt(365)
)

// band maps a value at or above Min to a reading. Bands are checked in
// order, the last one is the catch-all.
type band struct {
	Min     decimal.Decimal
	Reading string
}

type definition struct {
	key      string
	label    string
	category Category
	unit     Unit
	formula  string
	compute  func(FinancialData) decimal.Decimal
	bands    []band
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var definitions = []definition{
	{
		key: "current_ratio", label: "Current Ratio", category: Liquidity, unit: Times,
		formula: "current assets / current liabilities",
		compute: func(f FinancialData) decimal.Decimal { return div(f.CurrentAssets, f.CurrentLiabilities) },
		bands: []band{
			{amt("1.5"), "comfortable short-term liquidity"},
			{amt("1"), "current obligations are covered"},
			{decimal.Zero, "current liabilities exceed current assets"},
		},
	},
	{
		key: "quick_ratio", label: "Quick Ratio", category: Liquidity, unit: Times,
		formula: "(current assets - inventories) / current liabilities",
		compute: func(f FinancialData) decimal.Decimal {
			return div(f.CurrentAssets.Sub(f.Inventories), f.CurrentLiabilities)
		},
		bands: []band{
			{amt("1"), "liquid assets cover current liabilities"},
			{decimal.Zero, "relies on selling inventory to meet current liabilities"},
		},
	},
	{
		key: "cash_ratio", label: "Cash Ratio", category: Liquidity, unit: Times,
		formula: "cash and cash equivalents / current liabilities",
		compute: func(f FinancialData) decimal.Decimal { return div(f.Cash, f.CurrentLiabilities) },
		bands: []band{
			{amt("0.5"), "strong cash position"},
			{decimal.Zero, "limited cash against current liabilities"},
		},
	},
	{
		key: "gross_margin", label: "Gross Profit Margin", category: Profitability, unit: Percent,
		formula: "gross profit / revenue x 100",
		compute: func(f FinancialData) decimal.Decimal { return pct(f.GrossProfit, f.Revenue) },
		bands: []band{
			{amt("40"), "high gross margin"},
			{amt("20"), "moderate gross margin"},
			{decimal.Zero, "thin gross margin"},
		},
	},
	{
		key: "operating_margin", label: "Operating Profit Margin", category: Profitability, unit: Percent,
		formula: "operating profit / revenue x 100",
		compute: func(f FinancialData) decimal.Decimal { return pct(f.OperatingProfit, f.Revenue) },
		bands: []band{
			{amt("15"), "strong operating performance"},
			{decimal.Zero, "operations are profitable"},
		},
	},
	{
		key: "net_margin", label: "Net Profit Margin", category: Profitability, unit: Percent,
		formula: "net income / revenue x 100",
		compute: func(f FinancialData) decimal.Decimal { return pct(f.NetIncome, f.Revenue) },
		bands: []band{
			{amt("10"), "healthy net margin"},
			{decimal.Zero, "profitable after all costs"},
		},
	},
	{
		key: "return_on_assets", label: "Return on Assets", category: Profitability, unit: Percent,
		formula: "net income / total assets x 100",
		compute: func(f FinancialData) decimal.Decimal { return pct(f.NetIncome, f.TotalAssets) },
		bands: []band{
			{amt("5"), "assets are used productively"},
			{decimal.Zero, "low return on assets"},
		},
	},
	{
		key: "return_on_equity", label: "Return on Equity", category: Profitability, unit: Percent,
		formula: "net income / total equity x 100",
		compute: func(f FinancialData) decimal.Decimal { return pct(f.NetIncome, f.TotalEquity) },
		bands: []band{
			{amt("15"), "strong return to shareholders"},
			{decimal.Zero, "modest return to shareholders"},
		},
	},
	{
		key: "debt_to_equity", label: "Debt to Equity", category: Leverage, unit: Times,
		formula: "total liabilities / total equity",
		compute: func(f FinancialData) decimal.Decimal { return div(f.TotalLiabilities, f.TotalEquity) },
		bands: []band{
			{amt("2"), "highly leveraged"},
			{amt("1"), "creditors fund more than shareholders"},
			{decimal.Zero, "conservatively financed"},
		},
	},
	{
		key: "debt_ratio", label: "Debt Ratio", category: Leverage, unit: Times,
		formula: "total liabilities / total assets",
		compute: func(f FinancialData) decimal.Decimal { return div(f.TotalLiabilities, f.TotalAssets) },
		bands: []band{
			{amt("0.6"), "most assets are financed by creditors"},
			{decimal.Zero, "most assets are financed by equity"},
		},
	},
	{
		key: "interest_cover", label: "Interest Cover", category: Leverage, unit: Times,
		formula: "operating profit / finance costs",
		compute: func(f FinancialData) decimal.Decimal { return div(f.OperatingProfit, f.FinanceCosts) },
		bands: []band{
			{amt("3"), "interest is comfortably covered"},
			{amt("1"), "interest is covered with little headroom"},
			{decimal.Zero, "operating profit does not cover interest"},
		},
	},
	{
		key: "asset_turnover", label: "Asset Turnover", category: Efficiency, unit: Times,
		formula: "revenue / total assets",
		compute: func(f FinancialData) decimal.Decimal { return div(f.Revenue, f.TotalAssets) },
		bands: []band{
			{amt("1"), "assets generate revenue efficiently"},
			{decimal.Zero, "revenue is low relative to the asset base"},
		},
	},
	{
		key: "receivable_days", label: "Receivable Days", category: Efficiency, unit: Days,
		formula: "trade receivables / revenue x 365",
		compute: func(f FinancialData) decimal.Decimal { return days(f.Receivables, f.Revenue) },
		bands: []band{
			{amt("60"), "customers take long to pay"},
			{decimal.Zero, "receivables are collected promptly"},
		},
	},
	{
		key: "inventory_days", label: "Inventory Days", category: Efficiency, unit: Days,
		formula: "inventories / cost of sales x 365",
		compute: func(f FinancialData) decimal.Decimal { return days(f.Inventories, f.CostOfSales) },
		bands: []band{
			{amt("90"), "slow-moving inventory"},
			{decimal.Zero, "inventory turns over quickly"},
		},
	},
	{
		key: "payable_days", label: "Payable Days", category: Efficiency, unit: Days,
		formula: "trade payables / cost of sales x 365",
		compute: func(f FinancialData) decimal.Decimal { return days(f.Payables, f.CostOfSales) },
		bands: []band{
			{amt("60"), "suppliers are paid slowly"},
			{decimal.Zero, "suppliers are paid promptly"},
		},
	},
}

// Calculate computes every ratio. A zero denominator yields zero.
func Calculate(f FinancialData) []Ratio {
	out := make([]Ratio, 0, len(definitions))
	for _, def := range definitions {
		v := def.compute(f).Round(Precision)
		out = append(out, Ratio{
			Key:            def.key,
			Label:          def.label,
			Category:       def.category,
			Value:          v,
			Unit:           def.unit,
			Formula:        def.formula,
			Interpretation: interpret(v, def.bands),
		})
	}
	return out
}

// ByCategory returns the ratios of one category, in calculation order.
func ByCategory(rs []Ratio, c Category) []Ratio {
	var out []Ratio
	for _, r := range rs {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

func interpret(v decimal.Decimal, bands []band) string {
	if v.IsNegative() {
		return "negative"
	}
	for _, b := range bands {
		if v.GreaterThanOrEqual(b.Min) {
			return b.Reading
		}
	}
	return ""
}

func div(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, Precision+4)
}

func pct(num, den decimal.Decimal) decimal.Decimal {
	return div(num.Mul(hundred), den)
}

func days(num, den decimal.Decimal) decimal.Decimal {
	return div(num.Mul(yearDays), den)
}
