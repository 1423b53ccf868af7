package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExpenseCreated EventType = "expense.created"
	ExpenseUpdated EventType = "expense.updated"
	ExpenseDeleted EventType = "expense.deleted"
)

// ExpenseEvent is the payload published for every expense mutation.
type ExpenseEvent struct {
	ExpenseID    string
	UserID       string
	CategoryID   string
	CategoryName string
	Amount       decimal.Decimal
	Date         time.Time
}
