package export

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/banklytics/banklytics/internal/model"
)

// printTemplate is the print-surface rendering: the summary followed by a
// row-per-transaction table.
var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Banklytics - Transaction Report</title>
<style>
body { font-family: sans-serif; padding: 20px; color: #172B4D; }
h1 { color: #0052CC; border-bottom: 3px solid #0052CC; padding-bottom: 10px; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th, td { padding: 12px; text-align: left; border-bottom: 1px solid #DFE1E6; }
th { background-color: #F4F5F7; font-weight: 600; }
.credit { color: #00875A; }
.debit { color: #DE350B; }
.summary { background: #F4F5F7; padding: 20px; border-radius: 8px; }
@media print { body { padding: 0; } }
</style>
</head>
<body>
<h1>Banklytics - Transaction Report</h1>
<div class="summary"><pre>{{.Summary}}</pre></div>
<table>
<thead>
<tr><th>Date</th><th>Description</th><th>Category</th><th>Amount</th><th>Type</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Date}}</td>
<td>{{.Description}}</td>
<td>{{.Category}}</td>
<td class="{{.Class}}">{{.Amount}}</td>
<td>{{.TypeLabel}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type printRow struct {
	Date        string
	Description string
	Category    string
	Amount      string
	Class       string
	TypeLabel   string
}

type printData struct {
	Summary string
	Rows    []printRow
}

// HTMLReport renders the summary and transaction table for the print
// surface. The caller hands the result to whatever opens the print dialog.
func HTMLReport(txns []model.Transaction, currency string, now time.Time) (string, error) {
	data := printData{
		Summary: SummaryReport(txns, currency, now),
		Rows:    make([]printRow, 0, len(txns)),
	}
	for _, t := range txns {
		data.Rows = append(data.Rows, printRow{
			Date:        t.Date.Format(dateFormat),
			Description: t.Description,
			Category:    t.Category.Name,
			Amount:      currency + t.Amount.StringFixed(2),
			Class:       string(t.Type),
			TypeLabel:   typeLabel(t.Type),
		})
	}

	var out strings.Builder
	if err := printTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering print report: %w", err)
	}
	return out.String(), nil
}
