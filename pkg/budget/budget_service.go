package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expensebuddy/expensebuddy/internal/utils"
	"github.com/expensebuddy/expensebuddy/pkg/category"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidLimit = errors.New("monthly limit must be positive")

// ExpenseSummer provides per-category spending sums for a date window.
// Satisfied by the expense repository.
type ExpenseSummer interface {
	SumByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

type Service interface {
	// GetAllStatuses returns every budget of the current user with its derived
	// status for the current calendar month.
	GetAllStatuses(ctx context.Context) ([]Status, error)
	Create(ctx context.Context, categoryID string, monthlyLimit decimal.Decimal) (Status, error)
	UpdateLimit(ctx context.Context, id string, monthlyLimit decimal.Decimal) (Status, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo       Repo
	categories category.Repo
	expenses   ExpenseSummer
	clock      utils.Clock
}

func NewBudgetService(repo Repo, categories category.Repo, expenses ExpenseSummer, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, categories: categories, expenses: expenses, clock: clock}
}

func (s *ServiceImpl) GetAllStatuses(ctx context.Context) ([]Status, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	budgets, err := s.repo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := MonthWindow(s.clock.Now())
	spentByCategory, err := s.expenses.SumByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, StatusOf(b, spentByCategory[b.CategoryID]))
	}
	return statuses, nil
}

func (s *ServiceImpl) Create(ctx context.Context, categoryID string, monthlyLimit decimal.Decimal) (Status, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !monthlyLimit.IsPositive() {
		return Status{}, ErrInvalidLimit
	}
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return Status{}, err
	}

	budget := Budget{
		ID:           uuid.NewString(),
		UserID:       userID,
		CategoryID:   categoryID,
		CategoryName: cat.Name,
		MonthlyLimit: monthlyLimit,
	}
	if err := s.repo.Store(ctx, budget); err != nil {
		return Status{}, err
	}

	return s.statusFor(ctx, userID, budget)
}

func (s *ServiceImpl) UpdateLimit(ctx context.Context, id string, monthlyLimit decimal.Decimal) (Status, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !monthlyLimit.IsPositive() {
		return Status{}, ErrInvalidLimit
	}

	budget, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Status{}, err
	}
	budget.MonthlyLimit = monthlyLimit

	updated, err := s.repo.UpdateLimit(ctx, budget)
	if err != nil {
		return Status{}, err
	}
	if !updated {
		log.Warnf("budget not updated, probably because it does not exist (%s) or the user (%s) is not the owner", id, userID)
		return Status{}, ErrBudgetNotFound
	}

	return s.statusFor(ctx, userID, budget)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%s) or the user (%s) is not the owner", id, userID)
		return ErrBudgetNotFound
	}
	return nil
}

func (s *ServiceImpl) statusFor(ctx context.Context, userID string, budget Budget) (Status, error) {
	from, to := MonthWindow(s.clock.Now())
	spentByCategory, err := s.expenses.SumByCategory(ctx, userID, from, to)
	if err != nil {
		return Status{}, err
	}
	return StatusOf(budget, spentByCategory[budget.CategoryID]), nil
}
