package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category monthly spending ceiling. At most one budget exists
// per owner and category.
type Budget struct {
	ID           string
	UserID       string
	CategoryID   string
	CategoryName string
	MonthlyLimit decimal.Decimal
	CreatedAt    time.Time
}

// Status is the read-side projection of a budget against the current calendar
// month. SpentAmount is derived from the expense table on every read and is
// never stored.
type Status struct {
	Budget
	SpentAmount  decimal.Decimal
	Percentage   decimal.Decimal
	IsOverBudget bool
}

var hundred = decimal.NewFromInt(100)

// StatusOf computes the projection for one budget given the amount spent in
// the current month. The percentage formula here is the single definition used
// by the budget listing, the dashboard, and alerting. A non-positive limit
// (rejected on write, possible in legacy data) yields 0%.
func StatusOf(b Budget, spent decimal.Decimal) Status {
	percentage := decimal.Zero
	if b.MonthlyLimit.IsPositive() {
		percentage = spent.Div(b.MonthlyLimit).Mul(hundred)
	}
	return Status{
		Budget:       b,
		SpentAmount:  spent,
		Percentage:   percentage,
		IsOverBudget: percentage.GreaterThan(hundred),
	}
}

// MonthWindow returns the half-open [first-of-month, first-of-next-month)
// window containing now, in UTC. Covers every day of the month inclusively.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
