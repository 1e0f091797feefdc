package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the recurring calendar window a spending cap applies to.
type BudgetPeriod string

const (
	PeriodWeekly    BudgetPeriod = "weekly"
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// ParsePeriod parses a period name, accepting short forms like "month".
func ParsePeriod(s string) (BudgetPeriod, error) {
	switch strings.ToLower(s) {
	case "weekly", "week":
		return PeriodWeekly, nil
	case "monthly", "month":
		return PeriodMonthly, nil
	case "quarterly", "quarter":
		return PeriodQuarterly, nil
	case "yearly", "year":
		return PeriodYearly, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// EndDate returns the period end for a window starting at start, using
// calendar arithmetic (a month from Jan 15 is Feb 15, not +30 days).
func (p BudgetPeriod) EndDate(start time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case PeriodMonthly:
		return start.AddDate(0, 1, 0)
	case PeriodQuarterly:
		return start.AddDate(0, 3, 0)
	case PeriodYearly:
		return start.AddDate(1, 0, 0)
	}
	return start
}

// BudgetAlert is a one-shot threshold trip point. Triggered flips true
// exactly once when spend crosses the threshold and never resets while the
// budget is active; Notified is the delivery layer's separate flag.
type BudgetAlert struct {
	ID          string     `json:"id"`
	Threshold   int        `json:"threshold"` // percentage of budget amount, 0-100
	Triggered   bool       `json:"triggered"`
	Notified    bool       `json:"notified"`
	TriggeredAt *time.Time `json:"triggeredAt,omitempty"`
}

// Budget is a spending cap for one category over one period.
// Remaining is always Amount - Spent; it is never set independently.
type Budget struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    BudgetPeriod    `json:"period"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Alerts    []BudgetAlert   `json:"alerts"`
	Rollover  bool            `json:"rollover"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProgressStatus classifies budget consumption.
type ProgressStatus string

const (
	ProgressOnTrack  ProgressStatus = "on-track"
	ProgressWarning  ProgressStatus = "warning"
	ProgressExceeded ProgressStatus = "exceeded"
)

// BudgetProgress is derived from a budget snapshot on demand; it is never
// persisted.
type BudgetProgress struct {
	BudgetID          string          `json:"budgetId"`
	Percentage        float64         `json:"percentage"`
	Status            ProgressStatus  `json:"status"`
	DaysRemaining     int             `json:"daysRemaining"`
	ProjectedSpending decimal.Decimal `json:"projectedSpending"`
}
