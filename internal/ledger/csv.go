package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/banklytics/banklytics/internal/model"
)

// Import column order: Date, Description, Amount, Type, Category, Merchant.
// Only the first three are required; extra trailing columns are ignored.
const (
	colDate = iota
	colDescription
	colAmount
	colType
	colCategory
	colMerchant
	minColumns = 3
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// looseDateLayouts are tried in order when a date is not YYYY-MM-DD.
var looseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// RowOutcome tags the fate of one CSV data row.
type RowOutcome string

const (
	RowImported RowOutcome = "imported"
	RowSkipped  RowOutcome = "skipped"
	RowError    RowOutcome = "error"
)

// RowResult is the per-row outcome of an import. Line is 1-based and counts
// the header.
type RowResult struct {
	Line    int
	Outcome RowOutcome
	Reason  string
}

// ImportSummary aggregates an ImportCSV run.
type ImportSummary struct {
	Imported int
	Skipped  int
	Errors   int
	Rows     []RowResult
}

type parsedRow struct {
	date        time.Time
	description string
	amount      decimal.Decimal
	typ         model.TransactionType
	category    string
	merchant    string
}

// ImportCSV ingests comma-delimited transaction rows. The first non-blank
// line is treated as a header and skipped. Rows are processed independently:
// a malformed row counts as an error, a row already in the ledger counts as
// skipped, and neither aborts the batch. Imported rows land on accountID
// with completed status.
//
// Fields are split on plain commas; quoted fields are not supported, so a
// description containing a literal comma will mis-split.
func (s *Service) ImportCSV(text, accountID string) (ImportSummary, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	var summary ImportSummary
	if len(lines) < 2 {
		return summary, nil
	}

	for i, line := range lines[1:] {
		lineNo := i + 2

		row, err := parseRow(line)
		if err != nil {
			summary.Errors++
			summary.Rows = append(summary.Rows, RowResult{Line: lineNo, Outcome: RowError, Reason: err.Error()})
			continue
		}

		if s.Exists(DuplicateProbe{Date: row.date, Amount: row.amount, Description: row.description, Type: row.typ}) {
			summary.Skipped++
			summary.Rows = append(summary.Rows, RowResult{Line: lineNo, Outcome: RowSkipped, Reason: "duplicate"})
			continue
		}

		if _, err := s.Add(TransactionInput{
			AccountID:   accountID,
			Date:        row.date,
			Description: row.description,
			Amount:      row.amount,
			Type:        row.typ,
			Category:    s.resolveCategory(row.category),
			Merchant:    row.merchant,
			Status:      model.StatusCompleted,
		}); err != nil {
			return summary, err
		}
		summary.Imported++
		summary.Rows = append(summary.Rows, RowResult{Line: lineNo, Outcome: RowImported})
	}

	s.log.Info("csv import finished",
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", summary.Errors),
	)
	return summary, nil
}

func parseRow(line string) (parsedRow, error) {
	cols := strings.Split(line, ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	if len(cols) < minColumns {
		return parsedRow{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(cols))
	}

	date, err := parseDate(cols[colDate])
	if err != nil {
		return parsedRow{}, err
	}

	amount, err := parseAmount(cols[colAmount])
	if err != nil {
		return parsedRow{}, err
	}

	row := parsedRow{
		date:        date,
		description: cols[colDescription],
		amount:      amount,
		typ:         model.TypeDebit,
	}
	if row.description == "" {
		row.description = "Transaction"
	}
	if len(cols) > colType && strings.EqualFold(cols[colType], string(model.TypeCredit)) {
		row.typ = model.TypeCredit
	}
	if len(cols) > colCategory {
		row.category = cols[colCategory]
	}
	if len(cols) > colMerchant {
		row.merchant = cols[colMerchant]
	}
	return row, nil
}

// parseDate reads YYYY-MM-DD as a local calendar date, falling back to a
// list of common layouts.
func parseDate(value string) (time.Time, error) {
	if isoDate.MatchString(value) {
		return time.ParseInLocation("2006-01-02", value, time.Local)
	}
	for _, layout := range looseDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// parseAmount strips currency symbols and grouping characters, then takes
// the absolute value: "$1,234.56" parses as 1234.56.
func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, value)

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q", value)
	}
	return amount.Abs(), nil
}

// resolveCategory matches a registry entry by name or id, case-insensitively,
// defaulting to the first registry entry.
func (s *Service) resolveCategory(name string) model.Category {
	if name != "" {
		for _, c := range s.categories {
			if strings.EqualFold(c.Name, name) || strings.EqualFold(c.ID, name) {
				return c
			}
		}
	}
	return s.categories[0]
}
