package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banklytics/banklytics/internal/ledger"
	"github.com/banklytics/banklytics/internal/model"
)

func newTxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Work with ledger transactions",
	}

	cmd.AddCommand(newTxListCommand())
	cmd.AddCommand(newTxAddCommand())
	cmd.AddCommand(newTxDeleteCommand())

	return cmd
}

func newTxListCommand() *cobra.Command {
	var (
		search   string
		txType   string
		status   string
		category string
		account  string
		from     string
		to       string
		recent   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			filters := ledger.Filters{SearchQuery: search}
			if txType != "" {
				filters.Types = []model.TransactionType{model.TransactionType(txType)}
			}
			if status != "" {
				filters.Statuses = []model.TransactionStatus{model.TransactionStatus(status)}
			}
			if category != "" {
				filters.Categories = []string{category}
			}
			if account != "" {
				filters.Accounts = []string{account}
			}
			if from != "" || to != "" {
				r, err := parseDateRange(from, to)
				if err != nil {
					return err
				}
				filters.DateRange = r
			}

			txns := a.ledger.Filtered(filters)
			sort.SliceStable(txns, func(i, j int) bool {
				return txns[i].Date.After(txns[j].Date)
			})
			if recent > 0 && recent < len(txns) {
				txns = txns[:recent]
			}

			for _, t := range txns {
				sign := "-"
				if t.Type == model.TypeCredit {
					sign = "+"
				}
				cmd.Printf("%s  %s  %s%s%s  %-14s  %s  %s\n",
					t.Date.Format("2006-01-02"), t.ID, sign,
					a.cfg.Report.CurrencySymbol, t.Amount.StringFixed(2),
					t.Category.Name, t.Status, t.Description)
			}

			cmd.Printf("\nIncome %s%s  Expenses %s%s  Balance %s%s\n",
				a.cfg.Report.CurrencySymbol, a.ledger.TotalIncome().StringFixed(2),
				a.cfg.Report.CurrencySymbol, a.ledger.TotalExpenses().StringFixed(2),
				a.cfg.Report.CurrencySymbol, a.ledger.Balance().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over description, merchant, notes")
	cmd.Flags().StringVar(&txType, "type", "", "debit or credit")
	cmd.Flags().StringVar(&status, "status", "", "pending, completed, failed, or cancelled")
	cmd.Flags().StringVar(&category, "category", "", "category id")
	cmd.Flags().StringVar(&account, "account", "", "account id")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&recent, "recent", 0, "only the N most recent")

	return cmd
}

func newTxAddCommand() *cobra.Command {
	var (
		date      string
		desc      string
		amountStr string
		txType    string
		category  string
		merchant  string
		notes     string
		account   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			when := time.Now()
			if date != "" {
				when, err = time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
			}

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountStr, err)
			}

			cat, ok := a.ledger.CategoryByID(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}

			if account == "" {
				account = a.cfg.Import.DefaultAccountID
			}

			txn, err := a.ledger.Add(ledger.TransactionInput{
				AccountID:   account,
				Date:        when,
				Description: desc,
				Amount:      amount,
				Type:        model.TransactionType(txType),
				Category:    cat,
				Merchant:    merchant,
				Notes:       notes,
				Status:      model.StatusCompleted,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Added %s\n", txn.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&desc, "description", "", "description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&amountStr, "amount", "", "non-negative amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&txType, "type", "debit", "debit or credit")
	cmd.Flags().StringVar(&category, "category", "other-expense", "category id")
	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&account, "account", "", "account id (default from config)")

	return cmd
}

func newTxDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete transactions by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			count, err := a.ledger.BulkDelete(args)
			if err != nil {
				return err
			}
			cmd.Printf("Deleted %d of %d\n", count, len(args))
			return nil
		},
	}
}

func parseDateRange(from, to string) (*ledger.DateRange, error) {
	r := &ledger.DateRange{
		Start: time.Date(1, 1, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local),
	}
	var err error
	if from != "" {
		r.Start, err = time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing --from %q: %w", from, err)
		}
	}
	if to != "" {
		r.End, err = time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing --to %q: %w", to, err)
		}
	}
	return r, nil
}
