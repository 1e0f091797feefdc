package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewTransaction(), "txn_"))
	assert.True(t, strings.HasPrefix(NewBudget(), "budget_"))
	assert.True(t, strings.HasPrefix(NewCategory(), "cat_"))
}

func TestUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTransaction()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestAlert(t *testing.T) {
	assert.Equal(t, "alert_50", Alert(50))
	assert.Equal(t, "alert_100", Alert(100))
}
