package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/banklytics/banklytics/internal/ledger"
	"github.com/banklytics/banklytics/internal/model"
)

// Envelope is the JSON export payload: the entities plus the export
// timestamp and whatever filter set produced the selection.
type Envelope struct {
	ExportedAt   time.Time           `json:"exportedAt"`
	Filters      *ledger.Filters     `json:"filters,omitempty"`
	Transactions []model.Transaction `json:"transactions,omitempty"`
	Budgets      []model.Budget      `json:"budgets,omitempty"`
}

// JSON renders the envelope pretty-printed.
func JSON(env Envelope) (string, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}
	return string(data), nil
}

// JSONFilename returns a stamped default like "export_20260131.json".
func JSONFilename(now time.Time) string {
	return fmt.Sprintf("export_%s.json", now.Format("20060102"))
}
