package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/banklytics/banklytics/internal/model"
	"github.com/banklytics/banklytics/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(storage.NewMemoryStore(), zap.NewNop())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func addTxn(t *testing.T, svc *Service, input TransactionInput) model.Transaction {
	t.Helper()
	txn, err := svc.Add(input)
	require.NoError(t, err)
	return txn
}

func coffee(svc *Service, d time.Time, amount string) TransactionInput {
	cat, _ := svc.CategoryByID("dining")
	return TransactionInput{
		AccountID:   "acc_1",
		Date:        d,
		Description: "Coffee",
		Amount:      dec(amount),
		Type:        model.TypeDebit,
		Category:    cat,
		Status:      model.StatusCompleted,
	}
}

func TestAdd(t *testing.T) {
	svc := newTestService(t)

	txn := addTxn(t, svc, coffee(svc, day(2026, 1, 1), "250"))

	assert.NotEmpty(t, txn.ID)
	assert.True(t, txn.Amount.Equal(dec("250")), "amount must pass through unchanged")
	assert.Equal(t, txn.CreatedAt, txn.UpdatedAt)

	other := addTxn(t, svc, coffee(svc, day(2026, 1, 2), "250"))
	assert.NotEqual(t, txn.ID, other.ID)
}

func TestAdd_PersistsAcrossReload(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, zap.NewNop())
	addTxn(t, svc, coffee(svc, day(2026, 1, 1), "250"))

	reloaded := NewService(store, zap.NewNop())
	require.Len(t, reloaded.All(), 1)
	assert.Equal(t, "Coffee", reloaded.All()[0].Description)
}

func TestLoad_CorruptBlobStartsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(storage.KeyTransactions, "{not json"))

	svc := NewService(store, zap.NewNop())
	assert.Empty(t, svc.All())
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	txn := addTxn(t, svc, coffee(svc, day(2026, 1, 1), "250"))

	notes := "with oat milk"
	amount := dec("275")
	updated, err := svc.Update(txn.ID, TransactionPatch{Notes: &notes, Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, "with oat milk", updated.Notes)
	assert.True(t, updated.Amount.Equal(dec("275")))
	assert.Equal(t, "Coffee", updated.Description, "unpatched fields stay put")
	assert.Equal(t, txn.CreatedAt, updated.CreatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update("txn_missing", TransactionPatch{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	txn := addTxn(t, svc, coffee(svc, day(2026, 1, 1), "250"))

	removed, err := svc.Delete(txn.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, svc.All())

	removed, err = svc.Delete(txn.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBulkDelete(t *testing.T) {
	svc := newTestService(t)
	a := addTxn(t, svc, coffee(svc, day(2026, 1, 1), "1"))
	b := addTxn(t, svc, coffee(svc, day(2026, 1, 2), "2"))
	addTxn(t, svc, coffee(svc, day(2026, 1, 3), "3"))

	count, err := svc.BulkDelete([]string{a.ID, b.ID, "txn_missing"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, svc.All(), 1)
}

func TestFiltered_Search(t *testing.T) {
	svc := newTestService(t)
	transport, _ := svc.CategoryByID("transport")
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 20), Description: "Uber Rides",
		Amount: dec("450"), Type: model.TypeDebit, Category: transport,
		Merchant: "Uber", Status: model.StatusCompleted,
	})
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 21), Description: "Taxi home",
		Amount: dec("300"), Type: model.TypeDebit, Category: transport,
		Notes: "shared UBER with Sam", Status: model.StatusCompleted,
	})
	addTxn(t, svc, coffee(svc, day(2026, 1, 22), "250"))

	got := svc.Filtered(Filters{SearchQuery: "uber"})
	require.Len(t, got, 2, "matches description and notes, case-insensitively")
}

func TestFiltered_CombinedAND(t *testing.T) {
	svc := newTestService(t)
	dining, _ := svc.CategoryByID("dining")
	salary, _ := svc.CategoryByID("salary")

	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 10), Description: "Lunch",
		Amount: dec("500"), Type: model.TypeDebit, Category: dining, Status: model.StatusCompleted,
	})
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_2", Date: day(2026, 1, 10), Description: "Lunch",
		Amount: dec("500"), Type: model.TypeDebit, Category: dining, Status: model.StatusCompleted,
	})
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 2, 10), Description: "Salary",
		Amount: dec("85000"), Type: model.TypeCredit, Category: salary, Status: model.StatusCompleted,
	})

	got := svc.Filtered(Filters{
		DateRange:  &DateRange{Start: day(2026, 1, 1), End: day(2026, 1, 31)},
		Accounts:   []string{"acc_1"},
		Types:      []model.TransactionType{model.TypeDebit},
		Categories: []string{"dining"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "acc_1", got[0].AccountID)
}

func TestFiltered_AmountAndStatus(t *testing.T) {
	svc := newTestService(t)
	dining, _ := svc.CategoryByID("dining")

	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 1), Description: "Small",
		Amount: dec("50"), Type: model.TypeDebit, Category: dining, Status: model.StatusCompleted,
	})
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 2), Description: "Medium",
		Amount: dec("500"), Type: model.TypeDebit, Category: dining, Status: model.StatusPending,
	})
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 3), Description: "Large",
		Amount: dec("5000"), Type: model.TypeDebit, Category: dining, Status: model.StatusCompleted,
	})

	got := svc.Filtered(Filters{
		AmountRange: &AmountRange{Min: dec("100"), Max: dec("1000")},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Medium", got[0].Description)

	got = svc.Filtered(Filters{
		Statuses: []model.TransactionStatus{model.StatusPending},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Medium", got[0].Description)
}

func TestRecent(t *testing.T) {
	svc := newTestService(t)
	addTxn(t, svc, coffee(svc, day(2026, 1, 1), "1"))
	addTxn(t, svc, coffee(svc, day(2026, 1, 5), "2"))
	addTxn(t, svc, coffee(svc, day(2026, 1, 3), "3"))

	got := svc.Recent(2)
	require.Len(t, got, 2)
	assert.True(t, got[0].Amount.Equal(dec("2")))
	assert.True(t, got[1].Amount.Equal(dec("3")))
}

func TestRecent_TiesKeepInsertionOrder(t *testing.T) {
	svc := newTestService(t)
	first := addTxn(t, svc, coffee(svc, day(2026, 1, 5), "1"))
	second := addTxn(t, svc, coffee(svc, day(2026, 1, 5), "2"))

	got := svc.Recent(10)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestExists(t *testing.T) {
	svc := newTestService(t)
	addTxn(t, svc, coffee(svc, time.Date(2026, 1, 1, 9, 30, 0, 0, time.Local), "250"))

	probe := DuplicateProbe{
		Date:        day(2026, 1, 1),
		Amount:      dec("250"),
		Description: "  coffee  ",
		Type:        model.TypeDebit,
	}
	assert.True(t, svc.Exists(probe), "time of day, case, and whitespace are ignored")

	probe.Amount = dec("250.005")
	assert.True(t, svc.Exists(probe), "amounts within 0.01 match")

	probe.Amount = dec("250.02")
	assert.False(t, svc.Exists(probe))

	probe.Amount = dec("250")
	probe.Type = model.TypeCredit
	assert.False(t, svc.Exists(probe), "type must match")

	probe.Type = model.TypeDebit
	probe.Date = day(2026, 1, 2)
	assert.False(t, svc.Exists(probe), "calendar day must match")
}

func TestAggregates(t *testing.T) {
	svc := newTestService(t)
	salary, _ := svc.CategoryByID("salary")
	dining, _ := svc.CategoryByID("dining")

	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 15), Description: "Salary",
		Amount: dec("85000"), Type: model.TypeCredit, Category: salary, Status: model.StatusCompleted,
	})
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 19), Description: "Dinner",
		Amount: dec("1200"), Type: model.TypeDebit, Category: dining, Status: model.StatusCompleted,
	})
	// Pending rows never count toward aggregates.
	addTxn(t, svc, TransactionInput{
		AccountID: "acc_1", Date: day(2026, 1, 20), Description: "Pending refund",
		Amount: dec("999"), Type: model.TypeCredit, Category: salary, Status: model.StatusPending,
	})

	assert.True(t, svc.TotalIncome().Equal(dec("85000")))
	assert.True(t, svc.TotalExpenses().Equal(dec("1200")))
	assert.True(t, svc.Balance().Equal(dec("83800")))
}

func TestAddCategory(t *testing.T) {
	svc := newTestService(t)
	before := len(svc.Categories())

	cat := svc.AddCategory(CategoryInput{Name: "Pets", Icon: "🐕", Color: "#AA33CC", Type: model.CategoryExpense})
	assert.NotEmpty(t, cat.ID)
	assert.Len(t, svc.Categories(), before+1)

	// No uniqueness enforcement on names.
	dup := svc.AddCategory(CategoryInput{Name: "Pets", Icon: "🐈", Color: "#AA33CC", Type: model.CategoryExpense})
	assert.NotEqual(t, cat.ID, dup.ID)
	assert.Len(t, svc.Categories(), before+2)
}

func TestCategorySnapshotDoesNotFollowRegistry(t *testing.T) {
	svc := newTestService(t)
	txn := addTxn(t, svc, coffee(svc, day(2026, 1, 1), "250"))

	// Appending to the registry has no effect on stored snapshots.
	svc.AddCategory(CategoryInput{Name: "Dining Out", Icon: "🍜", Color: "#000000", Type: model.CategoryExpense})

	stored, ok := svc.GetByID(txn.ID)
	require.True(t, ok)
	assert.Equal(t, "dining", stored.Category.ID)
	assert.Equal(t, "🍽️", stored.Category.Icon)
}

func TestGetByCategoryAndDateRange(t *testing.T) {
	svc := newTestService(t)
	addTxn(t, svc, coffee(svc, day(2026, 1, 1), "1"))
	addTxn(t, svc, coffee(svc, day(2026, 2, 1), "2"))

	assert.Len(t, svc.GetByCategory("dining"), 2)
	assert.Empty(t, svc.GetByCategory("rent"))
	assert.Len(t, svc.GetByDateRange(day(2026, 1, 1), day(2026, 1, 31)), 1)
}

func TestSeed(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Seed())
	assert.Len(t, svc.All(), 5)

	// Seeding twice never duplicates.
	require.NoError(t, svc.Seed())
	assert.Len(t, svc.All(), 5)
}
