package statement

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/id"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// LineProfitForYear is the equity line carrying the income statement
// result when Options.IncludeCurrentYearProfit is set.
const LineProfitForYear = "Profit for the Year"

// Options control population.
type Options struct {
	// Precision is the number of decimal places values are rounded to,
	// half away from zero.
	Precision int32
	// IncludeZeroBalances keeps optional line items whose value is zero.
	IncludeZeroBalances bool
	// AggregateSmallBalances sweeps optional line items below
	// SmallBalanceThreshold into an "Other <Group>" line within their group.
	AggregateSmallBalances bool
	SmallBalanceThreshold  decimal.Decimal
	// Tolerance is the largest balance sheet difference that is only a
	// warning.
	Tolerance decimal.Decimal
	// UseOriginal populates from imported balances instead of final ones.
	UseOriginal bool
	// IncludeCurrentYearProfit adds net income to equity so an unclosed
	// trial balance still balances.
	IncludeCurrentYearProfit bool
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return Options{
		Precision:                2,
		Tolerance:                decimal.NewFromInt(1),
		SmallBalanceThreshold:    decimal.Zero,
		IncludeCurrentYearProfit: true,
	}
}

// Totals are the section totals and derived income statement figures.
type Totals struct {
	TotalAssets       decimal.Decimal `json:"totalAssets"`
	TotalLiabilities  decimal.Decimal `json:"totalLiabilities"`
	TotalEquity       decimal.Decimal `json:"totalEquity"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	Revenue           decimal.Decimal `json:"revenue"`
	OtherIncome       decimal.Decimal `json:"otherIncome"`
	CostOfSales       decimal.Decimal `json:"costOfSales"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	OperatingExpenses decimal.Decimal `json:"operatingExpenses"`
	OperatingProfit   decimal.Decimal `json:"operatingProfit"`
	FinanceCosts      decimal.Decimal `json:"financeCosts"`
	ProfitBeforeTax   decimal.Decimal `json:"profitBeforeTax"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	NetIncome         decimal.Decimal `json:"netIncome"`
}

// PopulatedStatements is the output of Populate.
type PopulatedStatements struct {
	Standard        string                    `json:"standard"`
	BalanceSheet    []model.StatementLineItem `json:"balanceSheet"`
	IncomeStatement []model.StatementLineItem `json:"incomeStatement"`
	Totals          Totals                    `json:"totals"`
	Validation      []ValidationResult        `json:"validation"`
}

// leaf is a line item under construction.
type leaf struct {
	item   model.StatementLineItem
	role   Role
	pinned bool // never swept into "Other"
	// split carries per-role amounts once small leaves are folded in.
	split map[Role]decimal.Decimal
}

type builder struct {
	tmpl   Template
	opts   Options
	mapped model.MappedTrialBalance
	lookup map[model.Mapping]Item
	roles  map[Role]decimal.Decimal
	issues []ValidationResult
}

// Populate builds both statements. It reads mapped and never modifies it,
// so repeated calls with the same input give the same result.
func Populate(mapped model.MappedTrialBalance, tmpl Template, opts Options) PopulatedStatements {
	b := &builder{
		tmpl:   tmpl,
		opts:   opts,
		mapped: mapped,
		lookup: tmpl.lookup(),
		roles:  make(map[Role]decimal.Decimal),
	}

	out := PopulatedStatements{Standard: tmpl.Standard}

	var incomeTotals map[model.Statement]decimal.Decimal
	out.IncomeStatement, incomeTotals = b.statement(tmpl.IncomeStatement, model.IncomeStatement, nil)
	t := &out.Totals
	t.TotalRevenue = incomeTotals[model.StatementRevenue]
	t.TotalExpenses = incomeTotals[model.StatementExpenses]
	t.Revenue = b.role(RoleRevenue)
	t.OtherIncome = b.role(RoleOtherIncome)
	t.CostOfSales = b.role(RoleCostOfSales)
	t.OperatingExpenses = b.role(RoleOperatingExpense)
	t.FinanceCosts = b.role(RoleFinanceCost)
	t.IncomeTax = b.role(RoleIncomeTax)
	t.GrossProfit = t.Revenue.Sub(t.CostOfSales)
	t.OperatingProfit = t.GrossProfit.Sub(t.OperatingExpenses)
	t.ProfitBeforeTax = t.OperatingProfit.Sub(t.FinanceCosts)
	t.NetIncome = t.TotalRevenue.Sub(t.TotalExpenses)

	var extra *leaf
	if opts.IncludeCurrentYearProfit {
		extra = &leaf{
			item: model.StatementLineItem{
				ID:    "bs-" + id.Slug(LineProfitForYear),
				Name:  LineProfitForYear,
				Value: t.NetIncome,
			},
			pinned: true,
		}
	}
	var bsTotals map[model.Statement]decimal.Decimal
	out.BalanceSheet, bsTotals = b.statement(tmpl.BalanceSheet, model.BalanceSheet, extra)
	t.TotalAssets = bsTotals[model.StatementAssets]
	t.TotalLiabilities = bsTotals[model.StatementLiabilities]
	t.TotalEquity = bsTotals[model.StatementEquity]

	b.checkUnmapped()
	out.Validation = append(b.issues, validateTotals(out, opts)...)
	return out
}

func (b *builder) role(r Role) decimal.Decimal {
	if v, ok := b.roles[r]; ok {
		return v
	}
	return decimal.Zero
}

// statement builds one statement's section trees. extra, when set, is
// appended to the equity section.
func (b *builder) statement(sections []Section, st model.StatementType, extra *leaf) ([]model.StatementLineItem, map[model.Statement]decimal.Decimal) {
	prefix := "BS"
	if st == model.IncomeStatement {
		prefix = "IS"
	}
	totals := make(map[model.Statement]decimal.Decimal)
	var nodes []model.StatementLineItem
	for _, sec := range sections {
		groups := make([][]leaf, len(sec.Groups))
		for gi, g := range sec.Groups {
			for _, it := range g.Items {
				groups[gi] = append(groups[gi], b.leaf(sec, st, it))
			}
		}
		if n := len(groups); n > 0 {
			groups[n-1] = append(groups[n-1], b.unlisted(sec, st)...)
			if extra != nil && sec.Statement == model.StatementEquity {
				groups[n-1] = append(groups[n-1], *extra)
			}
		}

		for gi := range groups {
			groups[gi] = b.filter(groups[gi])
			if b.opts.AggregateSmallBalances {
				groups[gi] = b.sweep(sec.Groups[gi], st, groups[gi])
			}
		}

		node := model.StatementLineItem{
			ID:            sectionID(prefix, sec.Name),
			Name:          sec.Name,
			Section:       sec.Statement,
			StatementType: st,
			Value:         decimal.Zero,
		}
		for gi, g := range sec.Groups {
			if len(groups[gi]) == 0 {
				continue
			}
			gnode := model.StatementLineItem{
				ID:            groupID(prefix, g.Name),
				Name:          g.Name,
				Level:         1,
				Section:       sec.Statement,
				StatementType: st,
				Value:         decimal.Zero,
			}
			for _, l := range groups[gi] {
				l.item.Level = 2
				l.item.Section = sec.Statement
				l.item.StatementType = st
				gnode.Children = append(gnode.Children, l.item)
				gnode.Value = gnode.Value.Add(l.item.Value)
				if l.split == nil {
					b.roles[l.role] = b.role(l.role).Add(l.item.Value)
					continue
				}
				for r, v := range l.split {
					b.roles[r] = b.role(r).Add(v)
				}
			}
			node.Children = append(node.Children, gnode)
			node.Value = node.Value.Add(gnode.Value)
		}
		totals[sec.Statement] = totals[sec.Statement].Add(node.Value)
		nodes = append(nodes, node)
	}
	assignCodes(prefix, nodes)
	return nodes, totals
}

func (b *builder) leaf(sec Section, st model.StatementType, it Item) leaf {
	names := append([]string{it.Name}, it.Aliases...)
	var accts []model.TrialBalanceAccount
	for _, n := range names {
		accts = append(accts, b.mapped.Accounts(sec.Statement, n)...)
	}
	return leaf{
		item: model.StatementLineItem{
			ID:       itemID(st, it.Name),
			Name:     it.Name,
			Value:    b.sum(sec.Statement, accts),
			Accounts: accts,
			Required: it.Required,
		},
		role:   it.Role,
		pinned: it.Required,
	}
}

// unlisted builds line items for buckets the template does not know, so
// their balances still count toward the totals.
func (b *builder) unlisted(sec Section, st model.StatementType) []leaf {
	var names []string
	for name := range b.mapped[sec.Statement] {
		if _, ok := b.lookup[model.Mapping{Statement: sec.Statement, LineItem: name}]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var out []leaf
	for _, name := range names {
		accts := append([]model.TrialBalanceAccount(nil), b.mapped[sec.Statement][name]...)
		l := leaf{
			item: model.StatementLineItem{
				ID:       itemID(st, name),
				Name:     name,
				Value:    b.sum(sec.Statement, accts),
				Accounts: accts,
			},
			role: defaultRole(sec.Statement),
		}
		out = append(out, l)
		b.issues = append(b.issues, ValidationResult{
			Severity: SeverityWarning,
			Code:     CodeUnlistedLineItem,
			LineItem: name,
			Amount:   l.item.Value,
			Message:  fmt.Sprintf("%q is not part of the %s template; shown under %s", name, b.tmpl.Name, sec.Name),
		})
	}
	return out
}

func defaultRole(s model.Statement) Role {
	switch s {
	case model.StatementRevenue:
		return RoleOtherIncome
	case model.StatementExpenses:
		return RoleOperatingExpense
	}
	return RoleNone
}

func (b *builder) sum(s model.Statement, accts []model.TrialBalanceAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accts {
		total = total.Add(a.SignedBalance(s, !b.opts.UseOriginal))
	}
	return total.Round(b.opts.Precision)
}

func (b *builder) filter(leaves []leaf) []leaf {
	out := leaves[:0:0]
	for _, l := range leaves {
		if l.item.Value.IsZero() && !l.item.Required && !b.opts.IncludeZeroBalances {
			continue
		}
		out = append(out, l)
	}
	return out
}

// sweep folds the small optional leaves of one group into an
// "Other <Group>" leaf that stays inside the group, so group subtotals
// such as current assets keep their members. A template item of that
// name absorbs them when the group already shows one.
func (b *builder) sweep(g Group, st model.StatementType, leaves []leaf) []leaf {
	threshold := b.opts.SmallBalanceThreshold.Abs()
	kept := leaves[:0:0]
	var swept []leaf
	for _, l := range leaves {
		if !l.pinned && !l.item.Value.IsZero() && l.item.Value.Abs().LessThan(threshold) {
			swept = append(swept, l)
			continue
		}
		kept = append(kept, l)
	}
	if len(swept) == 0 {
		return kept
	}

	name := "Other " + g.Name
	fold := cases.Fold()
	at := -1
	for i, l := range kept {
		if fold.String(l.item.Name) == fold.String(name) {
			at = i
			break
		}
	}
	if at < 0 {
		kept = append(kept, leaf{
			item: model.StatementLineItem{
				ID:    itemID(st, name),
				Name:  name,
				Value: decimal.Zero,
			},
			split: make(map[Role]decimal.Decimal),
		})
		at = len(kept) - 1
	}
	other := &kept[at]
	if other.split == nil {
		other.split = map[Role]decimal.Decimal{other.role: other.item.Value}
	}
	for _, l := range swept {
		other.item.Value = other.item.Value.Add(l.item.Value)
		other.item.Accounts = append(other.item.Accounts, l.item.Accounts...)
		other.split[l.role] = other.split[l.role].Add(l.item.Value)
	}
	return kept
}

func (b *builder) checkUnmapped() {
	var n int
	for _, accts := range b.mapped[model.Unmapped] {
		n += len(accts)
	}
	if n > 0 {
		b.issues = append(b.issues, ValidationResult{
			Severity: SeverityWarning,
			Code:     CodeUnmappedAccounts,
			Message:  fmt.Sprintf("%d accounts are not mapped and are excluded from the statements", n),
		})
	}
}

func sectionID(prefix, name string) string {
	return id.Slug(prefix) + "-section-" + id.Slug(name)
}

func groupID(prefix, name string) string {
	return id.Slug(prefix) + "-group-" + id.Slug(name)
}

func itemID(st model.StatementType, name string) string {
	if st == model.IncomeStatement {
		return "is-" + id.Slug(name)
	}
	return "bs-" + id.Slug(name)
}

// assignCodes numbers nodes depth-first in steps of ten.
func assignCodes(prefix string, nodes []model.StatementLineItem) {
	seq := 0
	var walk func([]model.StatementLineItem)
	walk = func(items []model.StatementLineItem) {
		for i := range items {
			seq += 10
			items[i].Code = id.FormatLineCode(prefix, seq)
			walk(items[i].Children)
		}
	}
	walk(nodes)
}
