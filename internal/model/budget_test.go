package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodEndDate(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		period BudgetPeriod
		want   time.Time
	}{
		{PeriodWeekly, time.Date(2026, 1, 22, 0, 0, 0, 0, time.Local)},
		{PeriodMonthly, time.Date(2026, 2, 15, 0, 0, 0, 0, time.Local)},
		{PeriodQuarterly, time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)},
		{PeriodYearly, time.Date(2027, 1, 15, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.EndDate(start))
		})
	}
}

func TestPeriodEndDate_CalendarNotFixedDuration(t *testing.T) {
	// February is short; a month from Jan 31 must not be 30 days later.
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local)
	end := PeriodMonthly.EndDate(start)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local), end)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("Monthly")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonthly, p)

	p, err = ParsePeriod("week")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)

	_, err = ParsePeriod("fortnightly")
	require.Error(t, err)
}

func TestTransactionSameDay(t *testing.T) {
	txn := Transaction{Date: time.Date(2026, 1, 1, 9, 30, 0, 0, time.Local)}

	assert.True(t, txn.SameDay(time.Date(2026, 1, 1, 23, 59, 0, 0, time.Local)))
	assert.False(t, txn.SameDay(time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)))
}
