package budget

import (
	"github.com/banklytics/banklytics/internal/id"
	"github.com/banklytics/banklytics/internal/model"
)

// Template is a predefined percentage-split allocation used to bulk-generate
// budgets from one total amount.
type Template struct {
	ID          string
	Name        string
	Description string
	Lines       []TemplateLine
}

// TemplateLine allocates a percentage of the total to one category.
type TemplateLine struct {
	Category   string
	Percentage int64
}

// DefaultTemplates returns the built-in budget templates.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:          "50-30-20",
			Name:        "50/30/20 Rule",
			Description: "50% needs, 30% wants, 20% savings",
			Lines: []TemplateLine{
				{Category: "needs", Percentage: 50},
				{Category: "wants", Percentage: 30},
				{Category: "savings", Percentage: 20},
			},
		},
		{
			ID:          "conservative",
			Name:        "Conservative Budget",
			Description: "Focus on savings and essentials",
			Lines: []TemplateLine{
				{Category: "rent", Percentage: 30},
				{Category: "groceries", Percentage: 15},
				{Category: "utilities", Percentage: 10},
				{Category: "transport", Percentage: 10},
				{Category: "savings", Percentage: 25},
				{Category: "other", Percentage: 10},
			},
		},
		{
			ID:          "balanced",
			Name:        "Balanced Budget",
			Description: "Balance between saving and spending",
			Lines: []TemplateLine{
				{Category: "rent", Percentage: 30},
				{Category: "groceries", Percentage: 12},
				{Category: "dining", Percentage: 8},
				{Category: "entertainment", Percentage: 10},
				{Category: "transport", Percentage: 10},
				{Category: "savings", Percentage: 20},
				{Category: "other", Percentage: 10},
			},
		},
	}
}

// FindTemplate returns the template with the given id, or false.
func FindTemplate(templateID string) (Template, bool) {
	for _, tpl := range DefaultTemplates() {
		if tpl.ID == templateID {
			return tpl, true
		}
	}
	return Template{}, false
}

// defaultAlertTiers are the standard thresholds attached to every
// template-generated budget.
var defaultAlertTiers = []int{50, 75, 90, 100}

// DefaultAlerts returns the standard four-tier alert set, untriggered.
func DefaultAlerts() []model.BudgetAlert {
	alerts := make([]model.BudgetAlert, 0, len(defaultAlertTiers))
	for _, tier := range defaultAlertTiers {
		alerts = append(alerts, model.BudgetAlert{
			ID:        id.Alert(tier),
			Threshold: tier,
		})
	}
	return alerts
}
