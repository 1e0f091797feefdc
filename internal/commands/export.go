package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/banklytics/banklytics/internal/export"
)

func newExportCommand() *cobra.Command {
	var (
		format   string
		out      string
		noHeader bool
	)

	cmd := &cobra.Command{
		Use:       "export {transactions|budgets}",
		Short:     "Export the ledger or budgets to a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"transactions", "budgets"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			now := time.Now()
			opts := export.Options{OmitHeader: noHeader}

			var content, filename string
			switch {
			case args[0] == "transactions" && format == "csv":
				content = export.TransactionsCSV(a.ledger.All(), opts)
				filename = export.TransactionsFilename(now)
			case args[0] == "transactions" && format == "excel":
				content = export.TransactionsExcelCSV(a.ledger.All(), opts)
				filename = export.TransactionsFilename(now)
			case args[0] == "budgets" && format == "csv":
				content = export.BudgetsCSV(a.budgets.All(), opts)
				filename = export.BudgetsFilename(now)
			case format == "json":
				env := export.Envelope{ExportedAt: now}
				if args[0] == "transactions" {
					env.Transactions = a.ledger.All()
				} else {
					env.Budgets = a.budgets.All()
				}
				content, err = export.JSON(env)
				if err != nil {
					return err
				}
				filename = export.JSONFilename(now)
			default:
				return fmt.Errorf("unsupported format %q for %s", format, args[0])
			}

			if out != "" {
				filename = out
			}
			if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			cmd.Printf("Wrote %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "csv, excel, or json")
	cmd.Flags().StringVar(&out, "out", "", "output path (default stamped filename)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the CSV header row")

	return cmd
}
