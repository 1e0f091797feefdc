package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/banklytics/banklytics/internal/id"
	"github.com/banklytics/banklytics/internal/model"
	"github.com/banklytics/banklytics/internal/storage"
)

// dupTolerance is the absolute amount difference under which two
// transactions on the same day count as duplicates.
var dupTolerance = decimal.RequireFromString("0.01")

// Service owns the authoritative in-memory transaction collection and the
// category registry. Every mutation is written through to the store before
// it returns. Not safe for concurrent use.
type Service struct {
	store        storage.Store
	log          *zap.Logger
	transactions []model.Transaction
	categories   []model.Category
	now          func() time.Time
}

// NewService creates a Service backed by store, loading any previously
// persisted transactions. A corrupt blob is logged and treated as empty.
func NewService(store storage.Store, logger *zap.Logger) *Service {
	s := &Service{
		store:      store,
		log:        logger,
		categories: DefaultCategories(),
		now:        time.Now,
	}
	s.load()
	return s
}

func (s *Service) load() {
	raw, ok, err := s.store.Get(storage.KeyTransactions)
	if err != nil {
		s.log.Error("loading transactions", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var txns []model.Transaction
	if err := json.Unmarshal([]byte(raw), &txns); err != nil {
		s.log.Warn("corrupt transactions blob, starting empty", zap.Error(err))
		return
	}
	s.transactions = txns
}

func (s *Service) persist() error {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}
	if err := s.store.Set(storage.KeyTransactions, string(data)); err != nil {
		return fmt.Errorf("persisting transactions: %w", err)
	}
	return nil
}

// TransactionInput holds the caller-supplied fields for a new transaction.
// Amount sign and magnitude are the caller's responsibility.
type TransactionInput struct {
	AccountID   string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        model.TransactionType
	Category    model.Category
	Subcategory string
	Merchant    string
	Notes       string
	Tags        []string
	Attachments []string
	Recurring   *model.RecurringInfo
	Status      model.TransactionStatus
}

// Add assigns an id and timestamps, appends, persists, and returns the
// stored transaction.
func (s *Service) Add(input TransactionInput) (model.Transaction, error) {
	now := s.now()
	txn := model.Transaction{
		ID:          id.NewTransaction(),
		AccountID:   input.AccountID,
		Date:        input.Date,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Merchant:    input.Merchant,
		Notes:       input.Notes,
		Tags:        input.Tags,
		Attachments: input.Attachments,
		Recurring:   input.Recurring,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.transactions = append(s.transactions, txn)
	if err := s.persist(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// TransactionPatch holds optional replacement values for Update. Nil fields
// are left untouched.
type TransactionPatch struct {
	AccountID   *string
	Date        *time.Time
	Description *string
	Amount      *decimal.Decimal
	Type        *model.TransactionType
	Category    *model.Category
	Subcategory *string
	Merchant    *string
	Notes       *string
	Tags        *[]string
	Recurring   *model.RecurringInfo
	Status      *model.TransactionStatus
}

// Update merges patch into the transaction with the given id, refreshes
// UpdatedAt, and persists. Returns model.ErrNotFound for an unknown id.
func (s *Service) Update(txnID string, patch TransactionPatch) (model.Transaction, error) {
	idx := s.indexOf(txnID)
	if idx < 0 {
		return model.Transaction{}, model.ErrNotFound
	}

	txn := s.transactions[idx]
	if patch.AccountID != nil {
		txn.AccountID = *patch.AccountID
	}
	if patch.Date != nil {
		txn.Date = *patch.Date
	}
	if patch.Description != nil {
		txn.Description = *patch.Description
	}
	if patch.Amount != nil {
		txn.Amount = *patch.Amount
	}
	if patch.Type != nil {
		txn.Type = *patch.Type
	}
	if patch.Category != nil {
		txn.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		txn.Subcategory = *patch.Subcategory
	}
	if patch.Merchant != nil {
		txn.Merchant = *patch.Merchant
	}
	if patch.Notes != nil {
		txn.Notes = *patch.Notes
	}
	if patch.Tags != nil {
		txn.Tags = *patch.Tags
	}
	if patch.Recurring != nil {
		txn.Recurring = patch.Recurring
	}
	if patch.Status != nil {
		txn.Status = *patch.Status
	}
	txn.UpdatedAt = s.now()

	s.transactions[idx] = txn
	if err := s.persist(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// Delete removes a transaction by id. The bool reports whether a row was
// actually removed.
func (s *Service) Delete(txnID string) (bool, error) {
	idx := s.indexOf(txnID)
	if idx < 0 {
		return false, nil
	}
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// BulkDelete removes all matching ids in one persistence write and returns
// the count removed.
func (s *Service) BulkDelete(ids []string) (int, error) {
	doomed := make(map[string]bool, len(ids))
	for _, txnID := range ids {
		doomed[txnID] = true
	}

	kept := s.transactions[:0]
	removed := 0
	for _, txn := range s.transactions {
		if doomed[txn.ID] {
			removed++
			continue
		}
		kept = append(kept, txn)
	}
	s.transactions = kept

	if removed == 0 {
		return 0, nil
	}
	if err := s.persist(); err != nil {
		return 0, err
	}
	return removed, nil
}

// All returns the full collection.
func (s *Service) All() []model.Transaction {
	return s.transactions
}

// GetByID returns a transaction by id.
func (s *Service) GetByID(txnID string) (model.Transaction, bool) {
	idx := s.indexOf(txnID)
	if idx < 0 {
		return model.Transaction{}, false
	}
	return s.transactions[idx], true
}

// GetByCategory returns all transactions whose category snapshot has the
// given id.
func (s *Service) GetByCategory(categoryID string) []model.Transaction {
	var result []model.Transaction
	for _, txn := range s.transactions {
		if txn.Category.ID == categoryID {
			result = append(result, txn)
		}
	}
	return result
}

// GetByDateRange returns transactions dated within [start, end].
func (s *Service) GetByDateRange(start, end time.Time) []model.Transaction {
	var result []model.Transaction
	for _, txn := range s.transactions {
		if !txn.Date.Before(start) && !txn.Date.After(end) {
			result = append(result, txn)
		}
	}
	return result
}

// DateRange bounds a date filter, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AmountRange bounds an amount filter, inclusive on both ends.
type AmountRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Filters selects transactions. Each field is optional; active filters are
// ANDed together.
type Filters struct {
	DateRange   *DateRange                `json:"dateRange,omitempty"`
	AmountRange *AmountRange              `json:"amountRange,omitempty"`
	Categories  []string                  `json:"categories,omitempty"`
	Accounts    []string                  `json:"accounts,omitempty"`
	Types       []model.TransactionType   `json:"types,omitempty"`
	Statuses    []model.TransactionStatus `json:"status,omitempty"`
	SearchQuery string                    `json:"searchQuery,omitempty"`
}

// Filtered applies the active filters and returns matching transactions.
// The free-text search matches description, merchant, and notes
// case-insensitively.
func (s *Service) Filtered(f Filters) []model.Transaction {
	filtered := s.transactions

	if f.DateRange != nil {
		filtered = keep(filtered, func(t model.Transaction) bool {
			return !t.Date.Before(f.DateRange.Start) && !t.Date.After(f.DateRange.End)
		})
	}
	if f.AmountRange != nil {
		filtered = keep(filtered, func(t model.Transaction) bool {
			return t.Amount.GreaterThanOrEqual(f.AmountRange.Min) && t.Amount.LessThanOrEqual(f.AmountRange.Max)
		})
	}
	if len(f.Categories) > 0 {
		filtered = keep(filtered, func(t model.Transaction) bool {
			return contains(f.Categories, t.Category.ID)
		})
	}
	if len(f.Accounts) > 0 {
		filtered = keep(filtered, func(t model.Transaction) bool {
			return contains(f.Accounts, t.AccountID)
		})
	}
	if len(f.Types) > 0 {
		filtered = keep(filtered, func(t model.Transaction) bool {
			return contains(f.Types, t.Type)
		})
	}
	if len(f.Statuses) > 0 {
		filtered = keep(filtered, func(t model.Transaction) bool {
			return contains(f.Statuses, t.Status)
		})
	}
	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		filtered = keep(filtered, func(t model.Transaction) bool {
			return strings.Contains(strings.ToLower(t.Description), query) ||
				strings.Contains(strings.ToLower(t.Merchant), query) ||
				strings.Contains(strings.ToLower(t.Notes), query)
		})
	}

	return filtered
}

// Recent returns up to limit transactions sorted by date descending.
// Same-day ties keep insertion order.
func (s *Service) Recent(limit int) []model.Transaction {
	sorted := make([]model.Transaction, len(s.transactions))
	copy(sorted, s.transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// DuplicateProbe identifies a candidate row for dedup during CSV import.
type DuplicateProbe struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Type        model.TransactionType
}

// Exists reports whether a transaction matching the probe is already in the
// ledger: same calendar day, amount within 0.01, description equal
// case-insensitively after trimming, and same type.
func (s *Service) Exists(p DuplicateProbe) bool {
	desc := strings.ToLower(strings.TrimSpace(p.Description))
	for _, txn := range s.transactions {
		if !txn.SameDay(p.Date) {
			continue
		}
		if txn.Amount.Sub(p.Amount).Abs().GreaterThanOrEqual(dupTolerance) {
			continue
		}
		if strings.ToLower(strings.TrimSpace(txn.Description)) != desc {
			continue
		}
		if txn.Type == p.Type {
			return true
		}
	}
	return false
}

// TotalIncome sums completed credit transactions.
func (s *Service) TotalIncome() decimal.Decimal {
	return s.sumWhere(model.TypeCredit)
}

// TotalExpenses sums completed debit transactions.
func (s *Service) TotalExpenses() decimal.Decimal {
	return s.sumWhere(model.TypeDebit)
}

// Balance is income minus expenses.
func (s *Service) Balance() decimal.Decimal {
	return s.TotalIncome().Sub(s.TotalExpenses())
}

func (s *Service) sumWhere(typ model.TransactionType) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range s.transactions {
		if txn.Type == typ && txn.Status == model.StatusCompleted {
			sum = sum.Add(txn.Amount)
		}
	}
	return sum
}

// Categories returns the category registry.
func (s *Service) Categories() []model.Category {
	return s.categories
}

// CategoryByID returns a registry entry by id.
func (s *Service) CategoryByID(categoryID string) (model.Category, bool) {
	for _, c := range s.categories {
		if c.ID == categoryID {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryInput holds the caller-supplied fields for a new category.
type CategoryInput struct {
	Name          string
	Icon          string
	Color         string
	Type          model.CategoryType
	Budget        *decimal.Decimal
	Subcategories []string
}

// AddCategory appends a category with a freshly generated id. Duplicate
// names are permitted.
func (s *Service) AddCategory(input CategoryInput) model.Category {
	cat := model.Category{
		ID:            id.NewCategory(),
		Name:          input.Name,
		Icon:          input.Icon,
		Color:         input.Color,
		Type:          input.Type,
		Budget:        input.Budget,
		Subcategories: input.Subcategories,
	}
	s.categories = append(s.categories, cat)
	return cat
}

func (s *Service) indexOf(txnID string) int {
	for i, txn := range s.transactions {
		if txn.ID == txnID {
			return i
		}
	}
	return -1
}

func keep(txns []model.Transaction, pred func(model.Transaction) bool) []model.Transaction {
	var result []model.Transaction
	for _, txn := range txns {
		if pred(txn) {
			result = append(result, txn)
		}
	}
	return result
}

func contains[T comparable](haystack []T, needle T) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
