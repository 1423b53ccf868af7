package alert

import (
	"context"
	"testing"
	"time"

	"github.com/expensebuddy/expensebuddy/internal/event_bus"
	"github.com/expensebuddy/expensebuddy/internal/utils"
	"github.com/expensebuddy/expensebuddy/pkg/budget"
	"github.com/expensebuddy/expensebuddy/pkg/category"
	"github.com/expensebuddy/expensebuddy/pkg/expense"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{ID: "user-1", Email: "test@example.com"})

var (
	budgetRepoStub   = budget.NewStubBudgetRepo()
	expenseRepoStub  = expense.NewStubExpenseRepo()
	categoryRepoStub = category.NewStubCategoryRepo(
		category.Category{ID: "cat-food", Name: "Food & Dining"},
		category.Category{ID: "cat-transport", Name: "Transportation"},
	)
	clock = &utils.MockClock{FixedNow: time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)}
)

var (
	budgetService budget.Service
	service       Service
)

func setup(t *testing.T) func() {
	budgetService = budget.NewBudgetService(budgetRepoStub, categoryRepoStub, expenseRepoStub, clock)
	service = NewAlertService(budgetService, expenseRepoStub, DefaultThresholds(), NewMonthOverMonthStrategy(), clock)
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
		expenseRepoStub.Cleanup()
	}
}

func addExpense(t *testing.T, id, categoryID, categoryName, amt string, date time.Time) {
	t.Helper()
	err := expenseRepoStub.Store(context.Background(), expense.Expense{
		ID:           id,
		UserID:       "user-1",
		CategoryID:   categoryID,
		CategoryName: categoryName,
		Amount:       amount(amt),
		Date:         date,
	})
	require.NoError(t, err)
}

func TestServiceImpl_GetAlerts(t *testing.T) {
	t.Run("should raise a danger alert for an exceeded budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := budgetService.Create(ctx, "cat-food", amount("200"))
		require.NoError(t, err)
		addExpense(t, "e1", "cat-food", "Food & Dining", "250", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))

		// when
		summary, err := service.GetAlerts(ctx)

		// then
		assert.NoError(t, err)
		require.Len(t, summary.BudgetAlerts, 1)
		assert.Equal(t, TypeDanger, summary.BudgetAlerts[0].Type)
		assert.Equal(t, "Food & Dining", summary.BudgetAlerts[0].CategoryName)
	})

	t.Run("should not alert on budgets below the warning threshold", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := budgetService.Create(ctx, "cat-food", amount("200"))
		require.NoError(t, err)
		addExpense(t, "e1", "cat-food", "Food & Dining", "100", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))

		// when
		summary, err := service.GetAlerts(ctx)

		// then
		assert.NoError(t, err)
		assert.Empty(t, summary.BudgetAlerts)
	})

	t.Run("should compare current and previous month spending", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		addExpense(t, "e1", "cat-food", "Food & Dining", "150", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
		addExpense(t, "e2", "cat-food", "Food & Dining", "100", time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC))

		// when
		summary, err := service.GetAlerts(ctx)

		// then
		assert.NoError(t, err)
		types := insightTypes(summary.SpendingInsights)
		assert.Contains(t, types, "trending_up")
		assert.Contains(t, types, "top_category")
	})

	t.Run("should report new activity without a previous month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		addExpense(t, "e1", "cat-transport", "Transportation", "60", time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))

		// when
		summary, err := service.GetAlerts(ctx)

		// then
		assert.NoError(t, err)
		assert.Contains(t, insightTypes(summary.SpendingInsights), "new_activity")
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetAlerts(context.Background())

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_SubscribeToExpenses(t *testing.T) {
	t.Run("should log a threshold crossing when an expense lands", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		hook := logtest.NewGlobal()
		defer hook.Reset()

		// given
		_, err := budgetService.Create(ctx, "cat-food", amount("200"))
		require.NoError(t, err)
		addExpense(t, "e1", "cat-food", "Food & Dining", "250", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))

		bus := event_bus.NewEventBus()
		svc := service.(*ServiceImpl)
		unsubscribe := svc.SubscribeToExpenses(bus)
		defer unsubscribe()

		// when
		err = bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseCreated, event_bus.ExpenseEvent{
			ExpenseID:  "e1",
			UserID:     "user-1",
			CategoryID: "cat-food",
			Amount:     amount("250"),
			Date:       time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		}))

		// then
		assert.NoError(t, err)
		require.NotEmpty(t, hook.Entries)
		last := hook.LastEntry()
		assert.Equal(t, log.WarnLevel, last.Level)
		assert.Contains(t, last.Message, "budget alert for user user-1")
		assert.Contains(t, last.Message, "danger")
	})

	t.Run("should stay silent for categories without a budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		hook := logtest.NewGlobal()
		defer hook.Reset()

		// given
		addExpense(t, "e1", "cat-transport", "Transportation", "60", time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))

		bus := event_bus.NewEventBus()
		svc := service.(*ServiceImpl)
		unsubscribe := svc.SubscribeToExpenses(bus)
		defer unsubscribe()

		// when
		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseCreated, event_bus.ExpenseEvent{
			ExpenseID:  "e1",
			UserID:     "user-1",
			CategoryID: "cat-transport",
			Amount:     amount("60"),
			Date:       time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		}))

		// then
		assert.NoError(t, err)
		assert.Empty(t, hook.Entries)
	})
}
