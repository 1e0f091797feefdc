package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/banklytics/banklytics/internal/ledger"
)

func newImportCommand() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV file",
		Long: `Import transactions from a comma-delimited CSV file with a header row and
columns Date, Description, Amount, Type, Category, Merchant. Rows already in
the ledger are skipped; malformed rows are counted as errors and the rest of
the batch continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading csv: %w", err)
			}

			if account == "" {
				account = a.cfg.Import.DefaultAccountID
			}

			summary, err := a.ledger.ImportCSV(string(data), account)
			if err != nil {
				return err
			}

			cmd.Printf("Imported %d, skipped %d duplicates, %d errors\n",
				summary.Imported, summary.Skipped, summary.Errors)
			for _, row := range summary.Rows {
				if row.Outcome == ledger.RowError {
					cmd.Printf("  line %d: %s\n", row.Line, row.Reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account id for imported rows (default from config)")

	return cmd
}
