package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/expensebuddy/expensebuddy/internal/utils"
	"github.com/expensebuddy/expensebuddy/pkg/budget"
	"github.com/expensebuddy/expensebuddy/pkg/category"
	"github.com/expensebuddy/expensebuddy/pkg/expense"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/shopspring/decimal"
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
	service = NewDashboardService(expenseRepoStub, budgetService, clock)
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
		expenseRepoStub.Cleanup()
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
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

func TestServiceImpl_GetDashboard(t *testing.T) {
	t.Run("should aggregate totals, breakdown, and budget status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := budgetService.Create(ctx, "cat-food", amount("200"))
		require.NoError(t, err)

		addExpense(t, "e1", "cat-food", "Food & Dining", "120", time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
		addExpense(t, "e2", "cat-transport", "Transportation", "30", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
		addExpense(t, "e3", "cat-food", "Food & Dining", "70", time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC))

		// when
		data, err := service.GetDashboard(ctx)

		// then
		assert.NoError(t, err)
		assert.True(t, amount("220").Equal(data.TotalExpenses), "total = %s", data.TotalExpenses)
		assert.True(t, amount("150").Equal(data.MonthlyExpenses), "monthly = %s", data.MonthlyExpenses)

		require.Len(t, data.CategoriesBreakdown, 2)
		assert.Equal(t, "Food & Dining", data.CategoriesBreakdown[0].Name)
		assert.True(t, amount("120").Equal(data.CategoriesBreakdown[0].Amount))

		require.Len(t, data.BudgetStatus, 1)
		assert.True(t, amount("120").Equal(data.BudgetStatus[0].SpentAmount))
		assert.True(t, amount("60").Equal(data.BudgetStatus[0].Percentage))
	})

	t.Run("should return the five most recent expenses", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		for i := 0; i < 7; i++ {
			addExpense(t, string(rune('a'+i)), "cat-food", "Food & Dining", "10",
				time.Date(2026, time.March, 1+i, 0, 0, 0, 0, time.UTC))
		}

		// when
		data, err := service.GetDashboard(ctx)

		// then
		assert.NoError(t, err)
		require.Len(t, data.RecentExpenses, 5)
		assert.Equal(t, time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), data.RecentExpenses[0].Date)
		assert.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), data.RecentExpenses[4].Date)
	})

	t.Run("budget status matches the budgets endpoint exactly", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := budgetService.Create(ctx, "cat-food", amount("200"))
		require.NoError(t, err)
		addExpense(t, "e1", "cat-food", "Food & Dining", "250", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))

		// when
		data, err := service.GetDashboard(ctx)
		require.NoError(t, err)
		statuses, err := budgetService.GetAllStatuses(ctx)
		require.NoError(t, err)

		// then
		assert.Equal(t, statuses, data.BudgetStatus)
	})

	t.Run("empty account yields zeros and empty lists", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		data, err := service.GetDashboard(ctx)

		// then
		assert.NoError(t, err)
		assert.True(t, data.TotalExpenses.IsZero())
		assert.True(t, data.MonthlyExpenses.IsZero())
		assert.Empty(t, data.CategoriesBreakdown)
		assert.Empty(t, data.RecentExpenses)
		assert.Empty(t, data.BudgetStatus)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetDashboard(context.Background())

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}
