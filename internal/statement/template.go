// Package statement turns a mapped trial balance into a statement of
// financial position and an income statement.
package statement

import (
	"fmt"
	"strings"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// Role tags the line items that feed derived income statement totals.
type Role string

const (
	RoleNone             Role = ""
	RoleRevenue          Role = "revenue"
	RoleOtherIncome      Role = "other_income"
	RoleCostOfSales      Role = "cost_of_sales"
	RoleOperatingExpense Role = "operating_expense"
	RoleFinanceCost      Role = "finance_cost"
	RoleIncomeTax        Role = "income_tax"
)

// Accounting standard variants.
const (
	StandardIFRS    = "ifrs"
	StandardIFRSSME = "ifrs-sme"
)

// Item is a template line item. Accounts mapped to any of Aliases are
// presented under this item.
type Item struct {
	Name     string
	Required bool
	Role     Role
	Aliases  []string
}

// Group is a sub-heading such as "Current Assets".
type Group struct {
	Name  string
	Items []Item
}

// Section is a top-level block bound to one statement bucket.
type Section struct {
	Statement model.Statement
	Name      string
	Groups    []Group
}

// Template describes the layout of both statements for one standard.
type Template struct {
	Standard        string
	Name            string
	BalanceSheet    []Section
	IncomeStatement []Section
}

// TemplateFor returns the template for a standard name.
func TemplateFor(standard string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(standard)) {
	case StandardIFRS, "ifrs-full", "full":
		return IFRSFull(), nil
	case StandardIFRSSME, "sme", "ifrs-for-smes":
		return IFRSSME(), nil
	}
	return Template{}, fmt.Errorf("unknown reporting standard %q", standard)
}

// Sections returns the balance sheet then the income statement sections.
func (t Template) Sections() []Section {
	return append(append([]Section(nil), t.BalanceSheet...), t.IncomeStatement...)
}

// lookup maps "statement/line item" (including aliases) to the item that
// presents it.
func (t Template) lookup() map[model.Mapping]Item {
	out := make(map[model.Mapping]Item)
	for _, sec := range t.Sections() {
		for _, g := range sec.Groups {
			for _, it := range g.Items {
				out[model.Mapping{Statement: sec.Statement, LineItem: it.Name}] = it
				for _, a := range it.Aliases {
					out[model.Mapping{Statement: sec.Statement, LineItem: a}] = it
				}
			}
		}
	}
	return out
}

// LineItems lists every line item name the template presents for a
// statement bucket, aliases excluded.
func (t Template) LineItems(s model.Statement) []string {
	var out []string
	for _, sec := range t.Sections() {
		if sec.Statement != s {
			continue
		}
		for _, g := range sec.Groups {
			for _, it := range g.Items {
				out = append(out, it.Name)
			}
		}
	}
	return out
}

func req(name string) Item { return Item{Name: name, Required: true} }
func opt(name string) Item { return Item{Name: name} }

// IFRSFull is the full IFRS layout.
func IFRSFull() Template {
	return Template{
		Standard: StandardIFRS,
		Name:     "IFRS",
		BalanceSheet: []Section{
			{
				Statement: model.StatementAssets,
				Name:      "Assets",
				Groups: []Group{
					{Name: "Non-current Assets", Items: []Item{
						req(model.LinePPE),
						opt(model.LineRightOfUse),
						opt(model.LineIntangibles),
						opt(model.LineInvestmentProperty),
						opt(model.LineInvestments),
						opt(model.LineDeferredTaxAssets),
						opt(model.LineOtherNonCurrent),
					}},
					{Name: "Current Assets", Items: []Item{
						opt(model.LineInventories),
						req(model.LineTradeReceivables),
						opt(model.LinePrepayments),
						opt(model.LineOtherCurrentAssets),
						req(model.LineCash),
					}},
				},
			},
			{
				Statement: model.StatementLiabilities,
				Name:      "Liabilities",
				Groups: []Group{
					{Name: "Non-current Liabilities", Items: []Item{
						opt(model.LineLongTermBorrowings),
						opt(model.LineLeaseLiabilities),
						opt(model.LineDeferredTaxLiabilities),
						opt(model.LineProvisions),
					}},
					{Name: "Current Liabilities", Items: []Item{
						req(model.LineTradePayables),
						opt(model.LineAccruals),
						opt(model.LineShortTermBorrowings),
						opt(model.LineCurrentTax),
						opt(model.LineOtherCurrentLiab),
					}},
				},
			},
			{
				Statement: model.StatementEquity,
				Name:      "Equity",
				Groups: []Group{
					{Name: "Equity", Items: []Item{
						req(model.LineShareCapital),
						opt(model.LineSharePremium),
						req(model.LineRetainedEarnings),
						opt(model.LineOtherReserves),
					}},
				},
			},
		},
		IncomeStatement: incomeStatement(
			[]Item{
				{Name: model.LineEmployeeBenefits, Role: RoleOperatingExpense},
				{Name: model.LineDepreciation, Role: RoleOperatingExpense},
				{Name: model.LineRepairs, Role: RoleOperatingExpense},
				{Name: model.LineMotorVehicle, Role: RoleOperatingExpense},
				{Name: model.LineOccupancy, Role: RoleOperatingExpense},
				{Name: model.LineSelling, Role: RoleOperatingExpense},
				{Name: model.LineAdministrative, Role: RoleOperatingExpense},
				{Name: model.LineOtherOperatingExp, Role: RoleOperatingExpense},
			},
		),
	}
}

// IFRSSME is the condensed layout of IFRS for SMEs. Finer line items are
// folded into broader ones.
func IFRSSME() Template {
	return Template{
		Standard: StandardIFRSSME,
		Name:     "IFRS for SMEs",
		BalanceSheet: []Section{
			{
				Statement: model.StatementAssets,
				Name:      "Assets",
				Groups: []Group{
					{Name: "Non-current Assets", Items: []Item{
						{Name: model.LinePPE, Required: true, Aliases: []string{model.LineRightOfUse}},
						opt(model.LineIntangibles),
						{Name: model.LineInvestments, Aliases: []string{model.LineInvestmentProperty}},
						{Name: model.LineOtherNonCurrent, Aliases: []string{model.LineDeferredTaxAssets}},
					}},
					{Name: "Current Assets", Items: []Item{
						opt(model.LineInventories),
						{Name: model.LineTradeReceivables, Required: true, Aliases: []string{model.LinePrepayments}},
						opt(model.LineOtherCurrentAssets),
						req(model.LineCash),
					}},
				},
			},
			{
				Statement: model.StatementLiabilities,
				Name:      "Liabilities",
				Groups: []Group{
					{Name: "Non-current Liabilities", Items: []Item{
						{Name: model.LineLongTermBorrowings, Aliases: []string{model.LineLeaseLiabilities}},
						{Name: model.LineProvisions, Aliases: []string{model.LineDeferredTaxLiabilities}},
					}},
					{Name: "Current Liabilities", Items: []Item{
						{Name: model.LineTradePayables, Required: true, Aliases: []string{model.LineAccruals}},
						opt(model.LineShortTermBorrowings),
						opt(model.LineCurrentTax),
						opt(model.LineOtherCurrentLiab),
					}},
				},
			},
			{
				Statement: model.StatementEquity,
				Name:      "Equity",
				Groups: []Group{
					{Name: "Equity", Items: []Item{
						{Name: model.LineShareCapital, Required: true, Aliases: []string{model.LineSharePremium}},
						req(model.LineRetainedEarnings),
						opt(model.LineOtherReserves),
					}},
				},
			},
		},
		IncomeStatement: incomeStatement(
			[]Item{
				{Name: model.LineEmployeeBenefits, Role: RoleOperatingExpense},
				{Name: model.LineDepreciation, Role: RoleOperatingExpense},
				{Name: model.LineSelling, Role: RoleOperatingExpense},
				{
					Name: model.LineAdministrative, Role: RoleOperatingExpense,
					Aliases: []string{model.LineRepairs, model.LineMotorVehicle, model.LineOccupancy},
				},
				{Name: model.LineOtherOperatingExp, Role: RoleOperatingExpense},
			},
		),
	}
}

func incomeStatement(opex []Item) []Section {
	return []Section{
		{
			Statement: model.StatementRevenue,
			Name:      "Revenue",
			Groups: []Group{
				{Name: "Income", Items: []Item{
					{Name: model.LineRevenue, Required: true, Role: RoleRevenue},
					{Name: model.LineOtherIncome, Role: RoleOtherIncome},
					{Name: model.LineFinanceIncome, Role: RoleOtherIncome},
				}},
			},
		},
		{
			Statement: model.StatementExpenses,
			Name:      "Expenses",
			Groups: []Group{
				{Name: "Cost of Sales", Items: []Item{
					{Name: model.LineCostOfSales, Role: RoleCostOfSales},
				}},
				{Name: "Operating Expenses", Items: opex},
				{Name: "Finance Costs", Items: []Item{
					{Name: model.LineFinanceCosts, Role: RoleFinanceCost},
				}},
				{Name: "Taxation", Items: []Item{
					{Name: model.LineIncomeTaxExpense, Role: RoleIncomeTax},
				}},
			},
		},
	}
}
