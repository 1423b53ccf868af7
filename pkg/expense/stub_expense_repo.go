package expense

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StubExpenseRepo is an in-memory Repo backed by the same Matches/Sort/Paginate
// functions the SQL repository is contracted to.
type StubExpenseRepo struct {
	data map[string]Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[string]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, expense Expense) error {
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	s.data[expense.ID] = expense
	return nil
}

func (s *StubExpenseRepo) Get(ctx context.Context, userID, id string) (Expense, error) {
	expense, ok := s.data[id]
	if !ok || expense.UserID != userID {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, expense Expense) (bool, error) {
	existing, ok := s.data[expense.ID]
	if !ok || existing.UserID != expense.UserID {
		return false, nil
	}
	expense.CreatedAt = existing.CreatedAt
	s.data[expense.ID] = expense
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	expense, ok := s.data[id]
	if !ok || expense.UserID != userID {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubExpenseRepo) Search(ctx context.Context, userID string, filter Filter) (Page, error) {
	filter = filter.Normalized()

	matched := make([]Expense, 0, len(s.data))
	for _, expense := range s.data {
		if expense.UserID == userID && filter.Matches(expense) {
			matched = append(matched, expense)
		}
	}
	Sort(matched, filter.SortBy, filter.SortOrder)

	return Page{
		Expenses:   Paginate(matched, filter.Page, filter.Limit),
		TotalCount: len(matched),
		TotalPages: TotalPages(len(matched), filter.Limit),
	}, nil
}

func (s *StubExpenseRepo) SumInRange(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, expense := range s.data {
		if expense.UserID == userID && inRange(expense.Date, from, to) {
			sum = sum.Add(expense.Amount)
		}
	}
	return sum, nil
}

func (s *StubExpenseRepo) TotalByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, expense := range s.data {
		if expense.UserID == userID {
			sum = sum.Add(expense.Amount)
		}
	}
	return sum, nil
}

func (s *StubExpenseRepo) SumByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	sums := map[string]decimal.Decimal{}
	for _, expense := range s.data {
		if expense.UserID == userID && inRange(expense.Date, from, to) {
			sums[expense.CategoryID] = sums[expense.CategoryID].Add(expense.Amount)
		}
	}
	return sums, nil
}

func (s *StubExpenseRepo) CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]CategoryTotal, error) {
	byName := map[string]decimal.Decimal{}
	for _, expense := range s.data {
		if expense.UserID == userID && inRange(expense.Date, from, to) {
			byName[expense.CategoryName] = byName[expense.CategoryName].Add(expense.Amount)
		}
	}
	totals := make([]CategoryTotal, 0, len(byName))
	for name, amount := range byName {
		totals = append(totals, CategoryTotal{Name: name, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Amount.GreaterThan(totals[j].Amount) })
	return totals, nil
}

func (s *StubExpenseRepo) Recent(ctx context.Context, userID string, limit int) ([]Expense, error) {
	var expenses []Expense
	for _, expense := range s.data {
		if expense.UserID == userID {
			expenses = append(expenses, expense)
		}
	}
	Sort(expenses, SortByDate, SortDesc)
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[string]Expense{}
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && date.Before(to)
}
