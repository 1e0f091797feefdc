package ledger

import "github.com/banklytics/banklytics/internal/model"

// DefaultCategories returns the built-in category registry. The first entry
// of each type doubles as the fallback when CSV import cannot resolve a
// category name.
func DefaultCategories() []model.Category {
	return []model.Category{
		// Income.
		{ID: "salary", Name: "Salary", Icon: "💼", Color: "#00875A", Type: model.CategoryIncome},
		{ID: "freelance", Name: "Freelance", Icon: "💻", Color: "#00A86B", Type: model.CategoryIncome},
		{ID: "investment", Name: "Investment", Icon: "📈", Color: "#36B37E", Type: model.CategoryIncome},
		{ID: "other-income", Name: "Other Income", Icon: "💰", Color: "#57D9A3", Type: model.CategoryIncome},

		// Expenses.
		{ID: "groceries", Name: "Groceries", Icon: "🛒", Color: "#FF8B00", Type: model.CategoryExpense},
		{ID: "dining", Name: "Dining Out", Icon: "🍽️", Color: "#FFAB00", Type: model.CategoryExpense},
		{ID: "transport", Name: "Transportation", Icon: "🚗", Color: "#0052CC", Type: model.CategoryExpense},
		{ID: "utilities", Name: "Utilities", Icon: "💡", Color: "#0065FF", Type: model.CategoryExpense},
		{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#6554C0", Type: model.CategoryExpense},
		{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#FF5630", Type: model.CategoryExpense},
		{ID: "healthcare", Name: "Healthcare", Icon: "🏥", Color: "#00B8D9", Type: model.CategoryExpense},
		{ID: "education", Name: "Education", Icon: "📚", Color: "#36B37E", Type: model.CategoryExpense},
		{ID: "rent", Name: "Rent/Mortgage", Icon: "🏠", Color: "#172B4D", Type: model.CategoryExpense},
		{ID: "insurance", Name: "Insurance", Icon: "🛡️", Color: "#5E6C84", Type: model.CategoryExpense},
		{ID: "subscriptions", Name: "Subscriptions", Icon: "📱", Color: "#8777D9", Type: model.CategoryExpense},
		{ID: "other-expense", Name: "Other Expense", Icon: "💸", Color: "#97A0AF", Type: model.CategoryExpense},
	}
}
