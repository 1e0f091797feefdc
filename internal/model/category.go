package model

import "github.com/shopspring/decimal"

// CategoryType splits the registry into income and expense entries.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is one entry in the category registry. Transactions embed a full
// copy rather than referencing by id.
type Category struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Icon          string           `json:"icon"`
	Color         string           `json:"color"`
	Type          CategoryType     `json:"type"`
	Budget        *decimal.Decimal `json:"budget,omitempty"`
	Subcategories []string         `json:"subcategories,omitempty"`
}
