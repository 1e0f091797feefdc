// Package export renders ledger and budget data as CSV, JSON, plain-text,
// and HTML. Everything here is a pure transformation; nothing mutates state.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/banklytics/banklytics/internal/model"
)

// utf8BOM makes spreadsheet tools detect the character set correctly.
const utf8BOM = "\xEF\xBB\xBF"

const dateFormat = "2006-01-02"

// Options control CSV rendering.
type Options struct {
	// OmitHeader drops the header row.
	OmitHeader bool
}

var transactionHeader = []string{
	"Date", "Description", "Amount", "Type", "Category", "Merchant", "Status", "Notes",
}

var transactionExcelHeader = []string{
	"Date", "Description", "Amount", "Type", "Category", "Subcategory", "Merchant", "Status", "Notes", "Tags",
}

var budgetHeader = []string{
	"Name", "Category", "Amount", "Spent", "Remaining", "Period", "Start Date", "End Date", "Status",
}

// TransactionsCSV renders transactions with the standard column set.
func TransactionsCSV(txns []model.Transaction, opts Options) string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.Date.Format(dateFormat),
			escape(t.Description),
			t.Amount.StringFixed(2),
			string(t.Type),
			t.Category.Name,
			escape(t.Merchant),
			string(t.Status),
			escape(t.Notes),
		})
	}
	return render(transactionHeader, rows, opts)
}

// TransactionsExcelCSV renders the Excel-compatible variant: a UTF-8 BOM
// prefix, the extended column set, and Income/Expense type labels.
func TransactionsExcelCSV(txns []model.Transaction, opts Options) string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.Date.Format(dateFormat),
			escape(t.Description),
			t.Amount.StringFixed(2),
			typeLabel(t.Type),
			t.Category.Name,
			escape(t.Subcategory),
			escape(t.Merchant),
			string(t.Status),
			escape(t.Notes),
			escape(strings.Join(t.Tags, ", ")),
		})
	}
	return utf8BOM + render(transactionExcelHeader, rows, opts)
}

// BudgetsCSV renders budgets with the standard column set.
func BudgetsCSV(budgets []model.Budget, opts Options) string {
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		status := "Inactive"
		if b.Active {
			status = "Active"
		}
		rows = append(rows, []string{
			escape(b.Name),
			b.Category,
			b.Amount.StringFixed(2),
			b.Spent.StringFixed(2),
			b.Remaining.StringFixed(2),
			string(b.Period),
			b.StartDate.Format(dateFormat),
			b.EndDate.Format(dateFormat),
			status,
		})
	}
	return render(budgetHeader, rows, opts)
}

// TransactionsFilename returns a stamped default like
// "transactions_20260131.csv".
func TransactionsFilename(now time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", now.Format("20060102"))
}

// BudgetsFilename returns a stamped default like "budgets_20260131.csv".
func BudgetsFilename(now time.Time) string {
	return fmt.Sprintf("budgets_%s.csv", now.Format("20060102"))
}

func typeLabel(t model.TransactionType) string {
	if t == model.TypeCredit {
		return "Income"
	}
	return "Expense"
}

func render(header []string, rows [][]string, opts Options) string {
	var lines []string
	if !opts.OmitHeader {
		lines = append(lines, strings.Join(header, ","))
	}
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// escape wraps a field in quotes, doubling internal quotes, only when it
// contains a comma, quote, or newline.
func escape(value string) string {
	if value == "" {
		return ""
	}
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
