package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType carries the cash-flow direction. Amounts are always
// non-negative magnitudes; the sign of the effect lives here.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// RecurringInfo describes a repeating transaction schedule.
type RecurringInfo struct {
	Frequency string     `json:"frequency"` // daily, weekly, monthly, yearly
	NextDate  time.Time  `json:"nextDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Transaction is one row in the ledger. The embedded Category is a snapshot
// taken at creation time; registry updates do not rewrite it.
type Transaction struct {
	ID          string            `json:"id"`
	AccountID   string            `json:"accountId"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"` // always >= 0
	Type        TransactionType   `json:"type"`
	Category    Category          `json:"category"`
	Subcategory string            `json:"subcategory,omitempty"`
	Merchant    string            `json:"merchant,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Attachments []string          `json:"attachments,omitempty"`
	Recurring   *RecurringInfo    `json:"recurring,omitempty"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// SameDay reports whether the transaction falls on the given calendar day,
// ignoring time of day.
func (t Transaction) SameDay(other time.Time) bool {
	y1, m1, d1 := t.Date.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
