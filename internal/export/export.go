// Package export serializes populated statements and ratios as CSV, JSON
// and plain text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ratios"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/statement"
)

// Money formats an amount in the currency's display format, e.g.
// "$1,234.50". Unknown currency codes fall back to two decimals and the
// code.
func Money(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return strings.TrimSpace(amount.StringFixed(2) + " " + currency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

var statementHeader = []string{"statement", "section", "code", "level", "name", "value", "display"}

// StatementsCSV writes every node of both statements, depth-first.
func StatementsCSV(w io.Writer, p statement.PopulatedStatements, currency string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	var werr error
	write := func(n model.StatementLineItem) {
		if werr != nil {
			return
		}
		werr = cw.Write([]string{
			string(n.StatementType),
			string(n.Section),
			n.Code,
			strconv.Itoa(n.Level),
			n.Name,
			n.Value.String(),
			Money(n.Value, currency),
		})
	}
	for _, roots := range [][]model.StatementLineItem{p.BalanceSheet, p.IncomeStatement} {
		for _, root := range roots {
			root.Walk(write)
		}
	}
	if werr != nil {
		return fmt.Errorf("writing row: %w", werr)
	}
	cw.Flush()
	return cw.Error()
}

// StatementsJSON writes the populated statements as indented JSON.
func StatementsJSON(w io.Writer, p statement.PopulatedStatements) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding statements: %w", err)
	}
	return nil
}

// StatementsText renders both statements as an indented report followed by
// the validation results.
func StatementsText(w io.Writer, p statement.PopulatedStatements, companyName, currency string) error {
	var b strings.Builder
	heading := func(title string) {
		fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("=", len(title)))
	}
	line := func(n model.StatementLineItem) {
		label := strings.Repeat("  ", n.Level) + n.Name
		fmt.Fprintf(&b, "%-8s %-52s %20s\n", n.Code, label, Money(n.Value, currency))
	}

	if companyName != "" {
		fmt.Fprintf(&b, "%s\n\n", companyName)
	}
	heading("Statement of Financial Position")
	for _, root := range p.BalanceSheet {
		root.Walk(line)
	}
	fmt.Fprintf(&b, "%-61s %20s\n\n", "Total liabilities and equity", Money(p.Totals.TotalLiabilities.Add(p.Totals.TotalEquity), currency))

	heading("Income Statement")
	for _, root := range p.IncomeStatement {
		root.Walk(line)
	}
	t := p.Totals
	for _, row := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Gross profit", t.GrossProfit},
		{"Operating profit", t.OperatingProfit},
		{"Profit before tax", t.ProfitBeforeTax},
		{"Net income", t.NetIncome},
	} {
		fmt.Fprintf(&b, "%-61s %20s\n", row.label, Money(row.value, currency))
	}

	if len(p.Validation) > 0 {
		b.WriteString("\n")
		for _, v := range p.Validation {
			fmt.Fprintf(&b, "%s\n", v)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RatiosCSV writes ratios one per row.
func RatiosCSV(w io.Writer, rs []ratios.Ratio) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "label", "category", "value", "unit", "formula", "interpretation"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rs {
		row := []string{r.Key, r.Label, string(r.Category), r.Value.StringFixed(ratios.Precision), string(r.Unit), r.Formula, r.Interpretation}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RatiosText renders ratios grouped by category.
func RatiosText(w io.Writer, rs []ratios.Ratio) error {
	var b strings.Builder
	for _, c := range []ratios.Category{ratios.Liquidity, ratios.Profitability, ratios.Leverage, ratios.Efficiency} {
		group := ratios.ByCategory(rs, c)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(string(c)))
		for _, r := range group {
			value := r.Value.StringFixed(ratios.Precision)
			if r.Unit != "" {
				value += " " + string(r.Unit)
			}
			fmt.Fprintf(&b, "  %-26s %14s  %s\n", r.Label, value, r.Interpretation)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CashFlowText renders a cash flow statement.
func CashFlowText(w io.Writer, cf ratios.CashFlowStatement, currency string) error {
	var b strings.Builder
	sections := []struct {
		section ratios.CashFlowSection
		title   string
		total   decimal.Decimal
	}{
		{ratios.Operating, "Cash flows from operating activities", cf.NetOperating},
		{ratios.Investing, "Cash flows from investing activities", cf.NetInvesting},
		{ratios.Financing, "Cash flows from financing activities", cf.NetFinancing},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "%s\n", s.title)
		for _, l := range cf.Section(s.section) {
			fmt.Fprintf(&b, "  %-50s %20s\n", l.Label, Money(l.Amount, currency))
		}
		fmt.Fprintf(&b, "  %-50s %20s\n", "Net cash from "+string(s.section)+" activities", Money(s.total, currency))
	}
	fmt.Fprintf(&b, "%-52s %20s\n", "Net change in cash", Money(cf.NetChange, currency))
	fmt.Fprintf(&b, "%-52s %20s\n", "Opening cash", Money(cf.OpeningCash, currency))
	fmt.Fprintf(&b, "%-52s %20s\n", "Closing cash", Money(cf.ClosingCash, currency))
	if !cf.Reconciles() {
		fmt.Fprintf(&b, "warning: %s of the movement in cash is unexplained\n", Money(cf.Unexplained, currency))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
