// Package id generates entity identifiers. Ids are prefixed by entity kind
// so a bare id string in a log line or export is self-describing.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewTransaction returns a transaction id like "txn_5f3a...".
func NewTransaction() string { return "txn_" + suffix() }

// NewBudget returns a budget id like "budget_5f3a...".
func NewBudget() string { return "budget_" + suffix() }

// NewCategory returns a category id like "cat_5f3a...".
func NewCategory() string { return "cat_" + suffix() }

// Alert returns the id for a threshold-tier alert, e.g. Alert(50) = "alert_50".
// Alert ids are stable per tier so a budget never carries two alerts for the
// same threshold.
func Alert(threshold int) string {
	return fmt.Sprintf("alert_%d", threshold)
}

func suffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
