package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expensebuddy/expensebuddy/internal/event_bus"
	"github.com/expensebuddy/expensebuddy/pkg/category"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrEmptyDescription = errors.New("description must not be empty")
)

// Input is the full mutable record for create and update. Updates replace the
// whole record; repeating an identical update is a no-op on the stored row.
type Input struct {
	Amount      decimal.Decimal
	CategoryID  string
	Description string
	Date        time.Time
}

type Service interface {
	Search(ctx context.Context, filter Filter) (Page, error)
	Create(ctx context.Context, input Input) (Expense, error)
	Update(ctx context.Context, id string, input Input) (Expense, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo       Repo
	categories category.Repo
	bus        *event_bus.EventBus
}

func NewExpenseService(repo Repo, categories category.Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, categories: categories, bus: bus}
}

func (s *ServiceImpl) Search(ctx context.Context, filter Filter) (Page, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Search(ctx, userID, filter)
}

func (s *ServiceImpl) Create(ctx context.Context, input Input) (Expense, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	cat, err := s.validate(ctx, input)
	if err != nil {
		return Expense{}, err
	}

	expense := Expense{
		ID:           uuid.NewString(),
		UserID:       userID,
		CategoryID:   input.CategoryID,
		CategoryName: cat.Name,
		Amount:       input.Amount,
		Description:  input.Description,
		Date:         toDay(input.Date),
	}
	if err := s.repo.Store(ctx, expense); err != nil {
		return Expense{}, err
	}

	s.publish(ctx, event_bus.ExpenseCreated, expense)
	return expense, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id string, input Input) (Expense, error) {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	cat, err := s.validate(ctx, input)
	if err != nil {
		return Expense{}, err
	}

	expense := Expense{
		ID:           id,
		UserID:       userID,
		CategoryID:   input.CategoryID,
		CategoryName: cat.Name,
		Amount:       input.Amount,
		Description:  input.Description,
		Date:         toDay(input.Date),
	}
	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s) or the user (%s) is not the owner", id, userID)
		return Expense{}, ErrExpenseNotFound
	}

	s.publish(ctx, event_bus.ExpenseUpdated, expense)
	return s.repo.Get(ctx, userID, id)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := user.CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	expense, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%s) or the user (%s) is not the owner", id, userID)
		return ErrExpenseNotFound
	}

	s.publish(ctx, event_bus.ExpenseDeleted, expense)
	return nil
}

func (s *ServiceImpl) validate(ctx context.Context, input Input) (category.Category, error) {
	if !input.Amount.IsPositive() {
		return category.Category{}, ErrInvalidAmount
	}
	if input.Description == "" {
		return category.Category{}, ErrEmptyDescription
	}
	return s.categories.GetByID(ctx, input.CategoryID)
}

// publish notifies subscribers about a mutation. A handler failure never fails
// the mutation itself; the write is already committed.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, expense Expense) {
	event := event_bus.NewEvent(ctx, eventType, event_bus.ExpenseEvent{
		ExpenseID:    expense.ID,
		UserID:       expense.UserID,
		CategoryID:   expense.CategoryID,
		CategoryName: expense.CategoryName,
		Amount:       expense.Amount,
		Date:         expense.Date,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}

// toDay truncates a timestamp to its calendar day in UTC.
func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
