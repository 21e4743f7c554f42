package model

import "github.com/shopspring/decimal"

// StatementType identifies which financial statement a node belongs to.
type StatementType string

const (
	BalanceSheet    StatementType = "balance_sheet"
	IncomeStatement StatementType = "income_statement"
)

// StatementLineItem is a node of a populated statement tree.
type StatementLineItem struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	Value         decimal.Decimal       `json:"value"`
	Accounts      []TrialBalanceAccount `json:"accounts,omitempty"`
	Level         int                   `json:"level"`
	Section       Statement             `json:"section"`
	StatementType StatementType         `json:"statementType"`
	Required      bool                  `json:"required"`
	Children      []StatementLineItem   `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (li StatementLineItem) IsLeaf() bool {
	return len(li.Children) == 0
}

// Walk visits the node and its descendants depth-first.
func (li StatementLineItem) Walk(fn func(StatementLineItem)) {
	fn(li)
	for _, c := range li.Children {
		c.Walk(fn)
	}
}

// Find returns the first node in the tree with the given ID.
func Find(items []StatementLineItem, id string) (StatementLineItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
		if found, ok := Find(it.Children, id); ok {
			return found, true
		}
	}
	return StatementLineItem{}, false
}
