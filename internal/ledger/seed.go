package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklytics/banklytics/internal/model"
)

// Seed populates an empty ledger with a small set of demo transactions.
// It is a no-op when the ledger already has data.
func (s *Service) Seed() error {
	if len(s.transactions) > 0 {
		return nil
	}

	cat := func(categoryID string) model.Category {
		c, _ := s.CategoryByID(categoryID)
		return c
	}
	day := func(d int) time.Time {
		return time.Date(2026, time.January, d, 0, 0, 0, 0, time.Local)
	}

	inputs := []TransactionInput{
		{
			AccountID:   "acc_1",
			Date:        day(15),
			Description: "Salary - January 2026",
			Amount:      decimal.NewFromInt(85000),
			Type:        model.TypeCredit,
			Category:    cat("salary"),
			Merchant:    "Company Inc.",
			Status:      model.StatusCompleted,
		},
		{
			AccountID:   "acc_1",
			Date:        day(18),
			Description: "Grocery Shopping",
			Amount:      decimal.NewFromInt(3500),
			Type:        model.TypeDebit,
			Category:    cat("groceries"),
			Merchant:    "BigBasket",
			Status:      model.StatusCompleted,
		},
		{
			AccountID:   "acc_1",
			Date:        day(19),
			Description: "Dinner at Restaurant",
			Amount:      decimal.NewFromInt(1200),
			Type:        model.TypeDebit,
			Category:    cat("dining"),
			Merchant:    "The Spice Route",
			Status:      model.StatusCompleted,
		},
		{
			AccountID:   "acc_1",
			Date:        day(20),
			Description: "Uber Rides",
			Amount:      decimal.NewFromInt(450),
			Type:        model.TypeDebit,
			Category:    cat("transport"),
			Merchant:    "Uber",
			Status:      model.StatusCompleted,
		},
		{
			AccountID:   "acc_1",
			Date:        day(20),
			Description: "Netflix Subscription",
			Amount:      decimal.NewFromInt(649),
			Type:        model.TypeDebit,
			Category:    cat("subscriptions"),
			Merchant:    "Netflix",
			Status:      model.StatusCompleted,
			Recurring: &model.RecurringInfo{
				Frequency: "monthly",
				NextDate:  time.Date(2026, time.February, 20, 0, 0, 0, 0, time.Local),
			},
		},
	}

	for _, input := range inputs {
		if _, err := s.Add(input); err != nil {
			return err
		}
	}
	return nil
}
