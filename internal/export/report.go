package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklytics/banklytics/internal/model"
)

// SummaryReport renders a human-readable financial summary: totals plus a
// per-category breakdown. Only completed transactions count.
func SummaryReport(txns []model.Transaction, currency string, now time.Time) string {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txns {
		if t.Status != model.StatusCompleted {
			continue
		}
		switch t.Type {
		case model.TypeCredit:
			income = income.Add(t.Amount)
		case model.TypeDebit:
			expenses = expenses.Add(t.Amount)
		}
	}
	balance := income.Sub(expenses)

	var report strings.Builder
	report.WriteString("=== BANKLYTICS FINANCIAL SUMMARY ===\n\n")
	fmt.Fprintf(&report, "Report Generated: %s\n", now.Format(dateFormat))
	fmt.Fprintf(&report, "Total Transactions: %d\n\n", len(txns))
	fmt.Fprintf(&report, "Total Income: %s%s\n", currency, income.StringFixed(2))
	fmt.Fprintf(&report, "Total Expenses: %s%s\n", currency, expenses.StringFixed(2))
	fmt.Fprintf(&report, "Net Balance: %s%s\n\n", currency, balance.StringFixed(2))
	report.WriteString("=== CATEGORY BREAKDOWN ===\n\n")

	for _, entry := range categoryBreakdown(txns) {
		fmt.Fprintf(&report, "%s: %s%s\n", entry.name, currency, entry.total.StringFixed(2))
	}

	return report.String()
}

// ReportFilename returns a stamped default like
// "summary_report_20260131.txt".
func ReportFilename(now time.Time) string {
	return fmt.Sprintf("summary_report_%s.txt", now.Format("20060102"))
}

type categoryTotal struct {
	name  string
	total decimal.Decimal
}

// categoryBreakdown sums completed transactions per category name, sorted
// by name for stable output.
func categoryBreakdown(txns []model.Transaction) []categoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Status != model.StatusCompleted {
			continue
		}
		totals[t.Category.Name] = totals[t.Category.Name].Add(t.Amount)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	breakdown := make([]categoryTotal, 0, len(names))
	for _, name := range names {
		breakdown = append(breakdown, categoryTotal{name: name, total: totals[name]})
	}
	return breakdown
}
