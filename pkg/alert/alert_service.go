package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/expensebuddy/expensebuddy/internal/event_bus"
	"github.com/expensebuddy/expensebuddy/internal/utils"
	"github.com/expensebuddy/expensebuddy/pkg/budget"
	"github.com/expensebuddy/expensebuddy/pkg/expense"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Summary is the full alert payload for one user.
type Summary struct {
	BudgetAlerts     []Alert
	SpendingInsights []Insight
}

// ExpenseReader provides the aggregates the insight strategies consume.
// Satisfied by the expense repository.
type ExpenseReader interface {
	SumInRange(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]expense.CategoryTotal, error)
}

type Service interface {
	GetAlerts(ctx context.Context) (Summary, error)
}

type ServiceImpl struct {
	budgets    budget.Service
	expenses   ExpenseReader
	thresholds Thresholds
	strategy   InsightStrategy
	clock      utils.Clock
}

func NewAlertService(
	budgets budget.Service,
	expenses ExpenseReader,
	thresholds Thresholds,
	strategy InsightStrategy,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		budgets:    budgets,
		expenses:   expenses,
		thresholds: thresholds,
		strategy:   strategy,
		clock:      clock,
	}
}

func (s *ServiceImpl) GetAlerts(ctx context.Context) (Summary, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	statuses, err := s.budgets.GetAllStatuses(ctx)
	if err != nil {
		return Summary{}, err
	}

	alerts := make([]Alert, 0, len(statuses))
	for _, status := range statuses {
		if a, ok := Classify(status, s.thresholds); ok {
			alerts = append(alerts, a)
		}
	}

	data, err := s.insightData(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		BudgetAlerts:     alerts,
		SpendingInsights: s.strategy.Insights(data),
	}, nil
}

func (s *ServiceImpl) insightData(ctx context.Context, userID string) (InsightData, error) {
	now := s.clock.Now()
	currentFrom, currentTo := budget.MonthWindow(now)
	previousFrom, previousTo := budget.MonthWindow(currentFrom.AddDate(0, 0, -1))

	currentTotal, err := s.expenses.SumInRange(ctx, userID, currentFrom, currentTo)
	if err != nil {
		return InsightData{}, err
	}
	previousTotal, err := s.expenses.SumInRange(ctx, userID, previousFrom, previousTo)
	if err != nil {
		return InsightData{}, err
	}

	data := InsightData{
		CurrentMonthTotal:  currentTotal,
		PreviousMonthTotal: previousTotal,
	}

	totals, err := s.expenses.CategoryTotals(ctx, userID, currentFrom, currentTo)
	if err != nil {
		return InsightData{}, err
	}
	if len(totals) > 0 {
		data.TopCategoryName = totals[0].Name
		data.TopCategoryAmount = totals[0].Amount
	}

	return data, nil
}

// SubscribeToExpenses logs a threshold crossing as soon as an expense lands,
// recomputing the affected category's status on the spot. Returns the
// unsubscribe function.
func (s *ServiceImpl) SubscribeToExpenses(bus *event_bus.EventBus) func() {
	return bus.Subscribe(event_bus.ExpenseCreated, func(e event_bus.Event) error {
		payload, ok := e.Data.(event_bus.ExpenseEvent)
		if !ok {
			return nil
		}

		statuses, err := s.budgets.GetAllStatuses(e.Context())
		if err != nil {
			return fmt.Errorf("failed to check budget status after expense: %w", err)
		}
		for _, status := range statuses {
			if status.CategoryID != payload.CategoryID {
				continue
			}
			if a, ok := Classify(status, s.thresholds); ok {
				log.Warnf("budget alert for user %s: [%s] %s", payload.UserID, a.Type, a.Message)
			}
		}
		return nil
	})
}
