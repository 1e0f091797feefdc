package budget

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/banklytics/banklytics/internal/id"
	"github.com/banklytics/banklytics/internal/model"
	"github.com/banklytics/banklytics/internal/storage"
)

// Service owns the budget collection: CRUD, spend accumulation, threshold
// alerts, and template generation. Every mutation is written through to the
// store before it returns. Not safe for concurrent use.
type Service struct {
	store   storage.Store
	log     *zap.Logger
	budgets []model.Budget
	now     func() time.Time
}

// NewService creates a Service backed by store, loading any previously
// persisted budgets. A corrupt blob is logged and treated as empty.
func NewService(store storage.Store, logger *zap.Logger) *Service {
	s := &Service{
		store: store,
		log:   logger,
		now:   time.Now,
	}
	s.load()
	return s
}

func (s *Service) load() {
	raw, ok, err := s.store.Get(storage.KeyBudgets)
	if err != nil {
		s.log.Error("loading budgets", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var budgets []model.Budget
	if err := json.Unmarshal([]byte(raw), &budgets); err != nil {
		s.log.Warn("corrupt budgets blob, starting empty", zap.Error(err))
		return
	}
	s.budgets = budgets
}

func (s *Service) persist() error {
	data, err := json.Marshal(s.budgets)
	if err != nil {
		return fmt.Errorf("encoding budgets: %w", err)
	}
	if err := s.store.Set(storage.KeyBudgets, string(data)); err != nil {
		return fmt.Errorf("persisting budgets: %w", err)
	}
	return nil
}

// Input holds the caller-supplied fields for a new budget.
type Input struct {
	UserID    string
	Name      string
	Category  string
	Amount    decimal.Decimal
	Period    model.BudgetPeriod
	StartDate time.Time
	EndDate   time.Time
	Alerts    []model.BudgetAlert
	Rollover  bool
	Active    bool
}

// Create assigns an id and timestamps, initializes spent to zero and
// remaining to the full amount, appends, and persists.
func (s *Service) Create(input Input) (model.Budget, error) {
	now := s.now()
	b := model.Budget{
		ID:        id.NewBudget(),
		UserID:    input.UserID,
		Name:      input.Name,
		Category:  input.Category,
		Amount:    input.Amount,
		Period:    input.Period,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Spent:     decimal.Zero,
		Remaining: input.Amount,
		Alerts:    input.Alerts,
		Rollover:  input.Rollover,
		Active:    input.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.budgets = append(s.budgets, b)
	if err := s.persist(); err != nil {
		return model.Budget{}, err
	}
	return b, nil
}

// Patch holds optional replacement values for Update. Nil fields are left
// untouched. Remaining cannot be patched; it is recomputed whenever Amount
// or Spent changes.
type Patch struct {
	UserID    *string
	Name      *string
	Category  *string
	Amount    *decimal.Decimal
	Period    *model.BudgetPeriod
	StartDate *time.Time
	EndDate   *time.Time
	Spent     *decimal.Decimal
	Alerts    *[]model.BudgetAlert
	Rollover  *bool
	Active    *bool
}

// Update merges patch into the budget with the given id, refreshes
// UpdatedAt, and persists. Returns model.ErrNotFound for an unknown id.
func (s *Service) Update(budgetID string, patch Patch) (model.Budget, error) {
	idx := s.indexOf(budgetID)
	if idx < 0 {
		return model.Budget{}, model.ErrNotFound
	}

	b := s.budgets[idx]
	if patch.UserID != nil {
		b.UserID = *patch.UserID
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Category != nil {
		b.Category = *patch.Category
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if patch.Period != nil {
		b.Period = *patch.Period
	}
	if patch.StartDate != nil {
		b.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		b.EndDate = *patch.EndDate
	}
	if patch.Spent != nil {
		b.Spent = *patch.Spent
	}
	if patch.Alerts != nil {
		b.Alerts = *patch.Alerts
	}
	if patch.Rollover != nil {
		b.Rollover = *patch.Rollover
	}
	if patch.Active != nil {
		b.Active = *patch.Active
	}
	if patch.Amount != nil || patch.Spent != nil {
		b.Remaining = b.Amount.Sub(b.Spent)
	}
	b.UpdatedAt = s.now()

	s.budgets[idx] = b
	if err := s.persist(); err != nil {
		return model.Budget{}, err
	}
	return b, nil
}

// Delete removes a budget by id. The bool reports whether a row was
// actually removed.
func (s *Service) Delete(budgetID string) (bool, error) {
	idx := s.indexOf(budgetID)
	if idx < 0 {
		return false, nil
	}
	s.budgets = append(s.budgets[:idx], s.budgets[idx+1:]...)
	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// AddSpending increments spent by amount, recomputes remaining, and trips
// any alert whose threshold the new spend crosses. Alerts already triggered
// are left untouched, so a later negative correction never untriggers one.
func (s *Service) AddSpending(budgetID string, amount decimal.Decimal) (model.Budget, error) {
	idx := s.indexOf(budgetID)
	if idx < 0 {
		return model.Budget{}, model.ErrNotFound
	}
	b := s.budgets[idx]

	newSpent := b.Spent.Add(amount)

	alerts := make([]model.BudgetAlert, len(b.Alerts))
	copy(alerts, b.Alerts)
	now := s.now()
	for i, alert := range alerts {
		if alert.Triggered {
			continue
		}
		threshold := b.Amount.Mul(decimal.NewFromInt(int64(alert.Threshold))).Div(decimal.NewFromInt(100))
		if newSpent.GreaterThanOrEqual(threshold) {
			alerts[i].Triggered = true
			triggeredAt := now
			alerts[i].TriggeredAt = &triggeredAt
		}
	}

	return s.Update(budgetID, Patch{Spent: &newSpent, Alerts: &alerts})
}

// Progress derives consumption state from the budget snapshot: percentage
// spent, a status tier, days remaining in the period, and a linear
// projection of spend at period end.
func (s *Service) Progress(budgetID string) (model.BudgetProgress, error) {
	idx := s.indexOf(budgetID)
	if idx < 0 {
		return model.BudgetProgress{}, model.ErrNotFound
	}
	b := s.budgets[idx]

	var percentage float64
	if !b.Amount.IsZero() {
		percentage = b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	status := model.ProgressOnTrack
	switch {
	case percentage >= 100:
		status = model.ProgressExceeded
	case percentage >= 75:
		status = model.ProgressWarning
	}

	now := s.now()
	daysRemaining := ceilDays(b.EndDate.Sub(now))
	daysPassed := ceilDays(now.Sub(b.StartDate))

	projected := b.Spent
	if daysPassed > 0 {
		dailyRate := b.Spent.Div(decimal.NewFromInt(int64(daysPassed)))
		projected = b.Spent.Add(dailyRate.Mul(decimal.NewFromInt(int64(daysRemaining))))
	}

	return model.BudgetProgress{
		BudgetID:          budgetID,
		Percentage:        percentage,
		Status:            status,
		DaysRemaining:     daysRemaining,
		ProjectedSpending: projected,
	}, nil
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

// CreateFromTemplate generates one budget per template line, splitting
// totalAmount by the line percentages. Each budget starts now, ends one
// period later, and carries the standard four-tier alert set. An unknown
// template id yields an empty list.
func (s *Service) CreateFromTemplate(templateID string, totalAmount decimal.Decimal, period model.BudgetPeriod, userID string) ([]model.Budget, error) {
	tpl, ok := FindTemplate(templateID)
	if !ok {
		return nil, nil
	}

	start := s.now()
	end := period.EndDate(start)

	budgets := make([]model.Budget, 0, len(tpl.Lines))
	for _, line := range tpl.Lines {
		amount := totalAmount.Mul(decimal.NewFromInt(line.Percentage)).Div(decimal.NewFromInt(100))
		b, err := s.Create(Input{
			UserID:    userID,
			Name:      line.Category + " Budget",
			Category:  line.Category,
			Amount:    amount,
			Period:    period,
			StartDate: start,
			EndDate:   end,
			Alerts:    DefaultAlerts(),
			Rollover:  false,
			Active:    true,
		})
		if err != nil {
			return budgets, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

// TriggeredAlert pairs a budget with one of its alerts.
type TriggeredAlert struct {
	Budget model.Budget
	Alert  model.BudgetAlert
}

// TriggeredAlerts returns all alerts on active budgets that have triggered
// but not yet been marked notified. It is the pull-based queue the
// presentation layer drains.
func (s *Service) TriggeredAlerts() []TriggeredAlert {
	var triggered []TriggeredAlert
	for _, b := range s.Active() {
		for _, alert := range b.Alerts {
			if alert.Triggered && !alert.Notified {
				triggered = append(triggered, TriggeredAlert{Budget: b, Alert: alert})
			}
		}
	}
	return triggered
}

// MarkAlertNotified flips notified on one alert. Unknown budget or alert
// ids are a no-op; calling twice is the same as calling once.
func (s *Service) MarkAlertNotified(budgetID, alertID string) error {
	idx := s.indexOf(budgetID)
	if idx < 0 {
		return nil
	}
	b := s.budgets[idx]

	alerts := make([]model.BudgetAlert, len(b.Alerts))
	copy(alerts, b.Alerts)
	changed := false
	for i, alert := range alerts {
		if alert.ID == alertID && !alert.Notified {
			alerts[i].Notified = true
			changed = true
		}
	}
	if !changed {
		return nil
	}

	_, err := s.Update(budgetID, Patch{Alerts: &alerts})
	return err
}

// All returns the full collection.
func (s *Service) All() []model.Budget {
	return s.budgets
}

// GetByID returns a budget by id.
func (s *Service) GetByID(budgetID string) (model.Budget, bool) {
	idx := s.indexOf(budgetID)
	if idx < 0 {
		return model.Budget{}, false
	}
	return s.budgets[idx], true
}

// Active returns the active budgets.
func (s *Service) Active() []model.Budget {
	var active []model.Budget
	for _, b := range s.budgets {
		if b.Active {
			active = append(active, b)
		}
	}
	return active
}

// GetByCategory returns the active budget for a category, if any.
func (s *Service) GetByCategory(category string) (model.Budget, bool) {
	for _, b := range s.budgets {
		if b.Category == category && b.Active {
			return b, true
		}
	}
	return model.Budget{}, false
}

// TotalBudgeted sums the amounts of active budgets.
func (s *Service) TotalBudgeted() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range s.Active() {
		sum = sum.Add(b.Amount)
	}
	return sum
}

// TotalSpent sums the spend of active budgets.
func (s *Service) TotalSpent() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range s.Active() {
		sum = sum.Add(b.Spent)
	}
	return sum
}

// TotalRemaining sums the remaining headroom of active budgets.
func (s *Service) TotalRemaining() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range s.Active() {
		sum = sum.Add(b.Remaining)
	}
	return sum
}

func (s *Service) indexOf(budgetID string) int {
	for i, b := range s.budgets {
		if b.ID == budgetID {
			return i
		}
	}
	return -1
}
