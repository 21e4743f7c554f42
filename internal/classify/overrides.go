package classify

import "github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"

// Target is a statement line item.
type Target struct {
	Statement model.Statement
	LineItem  string
}

// Effect is what an override does to a candidate it applies to. Veto wins
// over everything; otherwise Delta is added and the score is raised to at
// least Floor.
type Effect struct {
	Veto  bool
	Delta int
	Floor int
}

// Override is one row of the contradiction table. When the condition holds
// for an account, Effect is applied to every candidate Applies selects, and
// Force (if set) is injected as a candidate when no candidate targets it.
type Override struct {
	Name    string
	Reason  string
	When    func(Subject) bool
	Applies func(Candidate) bool
	Effect  Effect
	Force   *Target
}

func statementIs(s model.Statement) func(Candidate) bool {
	return func(c Candidate) bool { return c.Statement == s }
}

func statementIsNot(s model.Statement) func(Candidate) bool {
	return func(c Candidate) bool { return c.Statement != s }
}

func lineItemIs(s model.Statement, items ...string) func(Candidate) bool {
	return func(c Candidate) bool {
		if c.Statement != s {
			return false
		}
		for _, it := range items {
			if c.LineItem == it {
				return true
			}
		}
		return false
	}
}

func bankLoan(s Subject) bool {
	return s.Has("bank", "banks") && s.Has("loan", "loans", "borrowing", "borrowings", "mortgage")
}

func bankOverdraft(s Subject) bool {
	return s.Has("bank", "banks") && s.Has("overdraft", "overdrafts", "od", "credit")
}

// vehicleUsage holds for running costs of vehicles. A bare "Motor Vehicles"
// account is a fixed asset and does not trigger it.
func vehicleUsage(s Subject) bool {
	return s.Has("vehicle", "vehicles", "motor") &&
		s.Has("repair", "repairs", "maintenance", "fuel", "running", "expense", "expenses", "insurance", "hire", "servicing")
}

func repairsOrMaintenance(s Subject) bool {
	return s.Has("repair", "repairs", "maintenance", "servicing")
}

// DefaultOverrides returns the built-in contradiction table in precedence
// order.
func DefaultOverrides() []Override {
	return []Override{
		{
			Name:    "bank-loan",
			Reason:  "bank borrowing is a liability, not cash",
			When:    bankLoan,
			Applies: statementIsNot(model.StatementLiabilities),
			Effect:  Effect{Veto: true},
		},
		{
			Name:    "bank-loan",
			Reason:  "bank borrowing is a liability, not cash",
			When:    bankLoan,
			Applies: lineItemIs(model.StatementLiabilities, model.LineLongTermBorrowings, model.LineShortTermBorrowings),
			Effect:  Effect{Delta: 10, Floor: 90},
			Force:   &Target{model.StatementLiabilities, model.LineLongTermBorrowings},
		},
		{
			Name:    "bank-overdraft",
			Reason:  "bank overdraft or credit facility is a liability, not cash",
			When:    bankOverdraft,
			Applies: statementIsNot(model.StatementLiabilities),
			Effect:  Effect{Veto: true},
		},
		{
			Name:    "bank-overdraft",
			Reason:  "bank overdraft or credit facility is a liability, not cash",
			When:    bankOverdraft,
			Applies: lineItemIs(model.StatementLiabilities, model.LineShortTermBorrowings),
			Effect:  Effect{Delta: 10, Floor: 90},
			Force:   &Target{model.StatementLiabilities, model.LineShortTermBorrowings},
		},
		{
			Name:    "vehicle-running-cost",
			Reason:  "vehicle running costs are expenses, not assets",
			When:    vehicleUsage,
			Applies: statementIs(model.StatementAssets),
			Effect:  Effect{Veto: true},
		},
		{
			Name:    "vehicle-running-cost",
			Reason:  "vehicle running costs are expenses, not assets",
			When:    func(s Subject) bool { return vehicleUsage(s) && !repairsOrMaintenance(s) },
			Applies: lineItemIs(model.StatementExpenses, model.LineMotorVehicle),
			Effect:  Effect{Delta: 10, Floor: 80},
			Force:   &Target{model.StatementExpenses, model.LineMotorVehicle},
		},
		{
			Name:    "repairs-maintenance",
			Reason:  "repairs and maintenance are expensed, not capitalised",
			When:    repairsOrMaintenance,
			Applies: statementIs(model.StatementAssets),
			Effect:  Effect{Veto: true},
		},
		{
			Name:    "repairs-maintenance",
			Reason:  "repairs and maintenance are expensed, not capitalised",
			When:    repairsOrMaintenance,
			Applies: lineItemIs(model.StatementExpenses, model.LineRepairs),
			Effect:  Effect{Delta: 10, Floor: 80},
			Force:   &Target{model.StatementExpenses, model.LineRepairs},
		},
		{
			Name:    "payable",
			Reason:  "a payable is a liability",
			When:    func(s Subject) bool { return s.Has("payable", "payables") },
			Applies: statementIsNot(model.StatementLiabilities),
			Effect:  Effect{Veto: true},
		},
		{
			Name:    "receivable",
			Reason:  "a receivable is an asset",
			When:    func(s Subject) bool { return s.Has("receivable", "receivables") },
			Applies: statementIsNot(model.StatementAssets),
			Effect:  Effect{Veto: true},
		},
		{
			Name:    "expense-token",
			Reason:  "name says expense",
			When:    func(s Subject) bool { return s.Has("expense", "expenses") },
			Applies: statementIsNot(model.StatementExpenses),
			Effect:  Effect{Delta: -30},
		},
	}
}

// apply runs the effect on c. It reports whether the override touched c.
func (o Override) apply(c *Candidate) bool {
	if c.Vetoed || !o.Applies(*c) {
		return false
	}
	if o.Effect.Veto {
		c.Vetoed = true
		c.Confidence = 0
	} else {
		c.Confidence = clamp(c.Confidence + o.Effect.Delta)
		if c.Confidence < o.Effect.Floor {
			c.Confidence = o.Effect.Floor
		}
	}
	c.Overrides = append(c.Overrides, o.Name)
	c.Reasons = append(c.Reasons, "override "+o.Name+": "+o.Reason)
	return true
}

func clamp(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	}
	return n
}
