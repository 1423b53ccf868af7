package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/expensebuddy/expensebuddy/internal/utils"
	"github.com/expensebuddy/expensebuddy/pkg/budget"
	"github.com/expensebuddy/expensebuddy/pkg/expense"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/shopspring/decimal"
)

const recentExpensesCount = 5

// Data is the aggregate read model behind the dashboard endpoint. Every field
// is derived on request; nothing here is stored.
type Data struct {
	TotalExpenses       decimal.Decimal
	MonthlyExpenses     decimal.Decimal
	CategoriesBreakdown []expense.CategoryTotal
	RecentExpenses      []expense.Expense
	BudgetStatus        []budget.Status
}

// ExpenseReader provides the expense aggregates the dashboard needs.
// Satisfied by the expense repository.
type ExpenseReader interface {
	TotalByUser(ctx context.Context, userID string) (decimal.Decimal, error)
	SumInRange(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]expense.CategoryTotal, error)
	Recent(ctx context.Context, userID string, limit int) ([]expense.Expense, error)
}

type Service interface {
	GetDashboard(ctx context.Context) (Data, error)
}

type ServiceImpl struct {
	expenses ExpenseReader
	budgets  budget.Service
	clock    utils.Clock
}

func NewDashboardService(expenses ExpenseReader, budgets budget.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{expenses: expenses, budgets: budgets, clock: clock}
}

func (s *ServiceImpl) GetDashboard(ctx context.Context) (Data, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return Data{}, fmt.Errorf("failed to get current user: %w", err)
	}

	from, to := budget.MonthWindow(s.clock.Now())

	total, err := s.expenses.TotalByUser(ctx, userID)
	if err != nil {
		return Data{}, err
	}
	monthly, err := s.expenses.SumInRange(ctx, userID, from, to)
	if err != nil {
		return Data{}, err
	}
	breakdown, err := s.expenses.CategoryTotals(ctx, userID, from, to)
	if err != nil {
		return Data{}, err
	}
	recent, err := s.expenses.Recent(ctx, userID, recentExpensesCount)
	if err != nil {
		return Data{}, err
	}
	// Same status projection as the budgets endpoint; the percentage shown on
	// the dashboard can never drift from the budgets page.
	statuses, err := s.budgets.GetAllStatuses(ctx)
	if err != nil {
		return Data{}, err
	}

	return Data{
		TotalExpenses:       total,
		MonthlyExpenses:     monthly,
		CategoriesBreakdown: breakdown,
		RecentExpenses:      recent,
		BudgetStatus:        statuses,
	}, nil
}
