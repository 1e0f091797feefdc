package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/banklytics/banklytics/internal/export"
)

func newReportCommand() *cobra.Command {
	var (
		html bool
		out  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the financial summary report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			now := time.Now()
			txns := a.ledger.All()
			currency := a.cfg.Report.CurrencySymbol

			var content string
			if html {
				content, err = export.HTMLReport(txns, currency, now)
				if err != nil {
					return err
				}
			} else {
				content = export.SummaryReport(txns, currency, now)
			}

			if out == "" {
				cmd.Print(content)
				return nil
			}
			if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			cmd.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "render HTML for the print dialog")
	cmd.Flags().StringVar(&out, "out", "", "write to a file instead of stdout")

	return cmd
}
