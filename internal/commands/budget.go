package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banklytics/banklytics/internal/budget"
	"github.com/banklytics/banklytics/internal/model"
)

func newBudgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Work with budgets and their alerts",
	}

	cmd.AddCommand(newBudgetCreateCommand())
	cmd.AddCommand(newBudgetListCommand())
	cmd.AddCommand(newBudgetProgressCommand())
	cmd.AddCommand(newBudgetSpendCommand())
	cmd.AddCommand(newBudgetTemplateCommand())
	cmd.AddCommand(newBudgetAlertsCommand())

	return cmd
}

func newBudgetCreateCommand() *cobra.Command {
	var (
		name      string
		category  string
		amountStr string
		periodStr string
		user      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a budget starting today",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountStr, err)
			}
			period, err := model.ParsePeriod(periodStr)
			if err != nil {
				return err
			}

			start := time.Now()
			b, err := a.budgets.Create(budget.Input{
				UserID:    user,
				Name:      name,
				Category:  category,
				Amount:    amount,
				Period:    period,
				StartDate: start,
				EndDate:   period.EndDate(start),
				Alerts:    budget.DefaultAlerts(),
				Active:    true,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created %s (%s, %s%s per %s)\n",
				b.ID, b.Category, a.cfg.Report.CurrencySymbol, b.Amount.StringFixed(2), b.Period)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "budget name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&category, "category", "", "category (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amountStr, "amount", "", "spending cap (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&periodStr, "period", "monthly", "weekly, monthly, quarterly, or yearly")
	cmd.Flags().StringVar(&user, "user", "local", "owning user id")

	return cmd
}

func newBudgetListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			budgets := a.budgets.Active()
			if all {
				budgets = a.budgets.All()
			}

			cur := a.cfg.Report.CurrencySymbol
			for _, b := range budgets {
				cmd.Printf("%s  %-20s  %-12s  spent %s%s of %s%s (%s%s left)  %s\n",
					b.ID, b.Name, b.Category,
					cur, b.Spent.StringFixed(2), cur, b.Amount.StringFixed(2),
					cur, b.Remaining.StringFixed(2), b.Period)
			}

			cmd.Printf("\nBudgeted %s%s  Spent %s%s  Remaining %s%s\n",
				cur, a.budgets.TotalBudgeted().StringFixed(2),
				cur, a.budgets.TotalSpent().StringFixed(2),
				cur, a.budgets.TotalRemaining().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive budgets")

	return cmd
}

func newBudgetProgressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <budget-id>",
		Short: "Show consumption and projection for a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			p, err := a.budgets.Progress(args[0])
			if err != nil {
				return fmt.Errorf("budget %s: %w", args[0], err)
			}

			cmd.Printf("%.1f%% spent (%s), %d days remaining, projected %s%s\n",
				p.Percentage, p.Status, p.DaysRemaining,
				a.cfg.Report.CurrencySymbol, p.ProjectedSpending.StringFixed(2))
			return nil
		},
	}
}

func newBudgetSpendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spend <budget-id> <amount>",
		Short: "Record spending against a budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
			}

			b, err := a.budgets.AddSpending(args[0], amount)
			if err != nil {
				return fmt.Errorf("budget %s: %w", args[0], err)
			}

			cur := a.cfg.Report.CurrencySymbol
			cmd.Printf("%s: spent %s%s of %s%s, %s%s remaining\n",
				b.Name, cur, b.Spent.StringFixed(2), cur, b.Amount.StringFixed(2),
				cur, b.Remaining.StringFixed(2))
			return nil
		},
	}
}

func newBudgetTemplateCommand() *cobra.Command {
	var (
		totalStr  string
		periodStr string
		user      string
	)

	cmd := &cobra.Command{
		Use:   "template <template-id>",
		Short: "Generate budgets from a percentage-split template",
		Long: `Generate one budget per template line by splitting a total amount.
Built-in templates: 50-30-20, conservative, balanced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			total, err := decimal.NewFromString(totalStr)
			if err != nil {
				return fmt.Errorf("parsing total %q: %w", totalStr, err)
			}
			period, err := model.ParsePeriod(periodStr)
			if err != nil {
				return err
			}

			budgets, err := a.budgets.CreateFromTemplate(args[0], total, period, user)
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				return fmt.Errorf("unknown template %q", args[0])
			}

			for _, b := range budgets {
				cmd.Printf("Created %s: %s %s%s\n",
					b.ID, b.Category, a.cfg.Report.CurrencySymbol, b.Amount.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&totalStr, "total", "", "total amount to split (required)")
	_ = cmd.MarkFlagRequired("total")
	cmd.Flags().StringVar(&periodStr, "period", "monthly", "weekly, monthly, quarterly, or yearly")
	cmd.Flags().StringVar(&user, "user", "local", "owning user id")

	return cmd
}

func newBudgetAlertsCommand() *cobra.Command {
	var ack bool

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show triggered, un-notified budget alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			pending := a.budgets.TriggeredAlerts()
			if len(pending) == 0 {
				cmd.Println("No pending alerts")
				return nil
			}

			for _, ta := range pending {
				cmd.Printf("%s: crossed %d%% (spent %s%s of %s%s)\n",
					ta.Budget.Name, ta.Alert.Threshold,
					a.cfg.Report.CurrencySymbol, ta.Budget.Spent.StringFixed(2),
					a.cfg.Report.CurrencySymbol, ta.Budget.Amount.StringFixed(2))
				if ack {
					if err := a.budgets.MarkAlertNotified(ta.Budget.ID, ta.Alert.ID); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ack, "ack", false, "mark the listed alerts as notified")

	return cmd
}
