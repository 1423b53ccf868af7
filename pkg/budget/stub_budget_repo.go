package budget

import (
	"context"
	"sort"
	"time"
)

type StubBudgetRepo struct {
	data map[string]Budget
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[string]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, budget Budget) error {
	for _, existing := range s.data {
		if existing.UserID == budget.UserID && existing.CategoryID == budget.CategoryID {
			return ErrBudgetExists
		}
	}
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now()
	}
	s.data[budget.ID] = budget
	return nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, userID, id string) (Budget, error) {
	budget, ok := s.data[id]
	if !ok || budget.UserID != userID {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context, userID string) ([]Budget, error) {
	var budgets []Budget
	for _, budget := range s.data {
		if budget.UserID == userID {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].CategoryName < budgets[j].CategoryName })
	return budgets, nil
}

func (s *StubBudgetRepo) UpdateLimit(ctx context.Context, budget Budget) (bool, error) {
	existing, ok := s.data[budget.ID]
	if !ok || existing.UserID != budget.UserID {
		return false, nil
	}
	existing.MonthlyLimit = budget.MonthlyLimit
	s.data[budget.ID] = existing
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	budget, ok := s.data[id]
	if !ok || budget.UserID != userID {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[string]Budget{}
}
