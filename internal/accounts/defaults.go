package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

// SampleTrialBalance returns a small balanced trial balance for a trading
// company. Debits and credits both total 2,614,000.
func SampleTrialBalance() []model.RawAccount {
	dr := func(id, name string, amount int64) model.RawAccount {
		return model.RawAccount{AccountID: id, AccountName: name, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero}
	}
	cr := func(id, name string, amount int64) model.RawAccount {
		return model.RawAccount{AccountID: id, AccountName: name, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)}
	}
	return []model.RawAccount{
		dr("1000", "Cash at Bank", 250000),
		dr("1010", "Petty Cash", 5000),
		dr("1100", "Trade Receivables", 180000),
		dr("1200", "Inventory", 120000),
		dr("1300", "Prepaid Insurance", 15000),
		dr("1510", "Office Equipment", 150000),
		dr("1600", "Motor Vehicles", 400000),
		cr("2000", "Accounts Payable", 140000),
		cr("2100", "Accrued Expenses", 22000),
		cr("2200", "Income Tax Payable", 45000),
		cr("2510", "Equity Bank Loan", 300000),
		cr("3000", "Share Capital", 500000),
		cr("3100", "Retained Earnings", 45000),
		cr("4000", "Sales Revenue", 1550000),
		cr("4200", "Other Income", 12000),
		dr("5000", "Cost of Sales", 900000),
		dr("6000", "Salaries and Wages", 320000),
		dr("6100", "Depreciation Expense", 60000),
		dr("6200", "Repairs and Maintenance", 25000),
		dr("6300", "Fuel and Vehicle Running Costs", 18000),
		dr("6400", "Rent Expense", 96000),
		dr("6700", "Interest Expense", 30000),
		dr("6800", "Income Tax Expense", 45000),
	}
}
