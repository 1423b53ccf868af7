package alert

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Insight is a coarse spending signal derived from aggregate comparisons.
type Insight struct {
	Type    string
	Message string
}

// InsightData is the aggregate input the strategies work from.
type InsightData struct {
	CurrentMonthTotal  decimal.Decimal
	PreviousMonthTotal decimal.Decimal
	TopCategoryName    string
	TopCategoryAmount  decimal.Decimal
}

// InsightStrategy turns aggregates into insights. The formula is deliberately
// pluggable; swap the strategy without touching the alert service.
type InsightStrategy interface {
	Insights(data InsightData) []Insight
}

// MonthOverMonthStrategy compares the current month's total spending with the
// previous month's. Changes within Band percent are reported as steady.
type MonthOverMonthStrategy struct {
	Band decimal.Decimal
}

func NewMonthOverMonthStrategy() *MonthOverMonthStrategy {
	return &MonthOverMonthStrategy{Band: decimal.NewFromInt(10)}
}

func (s *MonthOverMonthStrategy) Insights(data InsightData) []Insight {
	var insights []Insight

	switch {
	case data.PreviousMonthTotal.IsPositive():
		change := data.CurrentMonthTotal.Sub(data.PreviousMonthTotal).
			Div(data.PreviousMonthTotal).Mul(hundred)
		switch {
		case change.GreaterThan(s.Band):
			insights = append(insights, Insight{
				Type: "trending_up",
				Message: fmt.Sprintf("Spending is up %s%% compared to last month (%s vs %s)",
					change.StringFixed(1), data.CurrentMonthTotal.StringFixed(2), data.PreviousMonthTotal.StringFixed(2)),
			})
		case change.LessThan(s.Band.Neg()):
			insights = append(insights, Insight{
				Type: "trending_down",
				Message: fmt.Sprintf("Spending is down %s%% compared to last month (%s vs %s)",
					change.Neg().StringFixed(1), data.CurrentMonthTotal.StringFixed(2), data.PreviousMonthTotal.StringFixed(2)),
			})
		default:
			insights = append(insights, Insight{
				Type: "steady",
				Message: fmt.Sprintf("Spending is steady compared to last month (%s vs %s)",
					data.CurrentMonthTotal.StringFixed(2), data.PreviousMonthTotal.StringFixed(2)),
			})
		}
	case data.CurrentMonthTotal.IsPositive():
		insights = append(insights, Insight{
			Type: "new_activity",
			Message: fmt.Sprintf("Spending of %s this month with no recorded spending last month",
				data.CurrentMonthTotal.StringFixed(2)),
		})
	}

	if data.TopCategoryName != "" && data.TopCategoryAmount.IsPositive() {
		insights = append(insights, Insight{
			Type: "top_category",
			Message: fmt.Sprintf("%s is your biggest spending category this month (%s)",
				data.TopCategoryName, data.TopCategoryAmount.StringFixed(2)),
		})
	}

	return insights
}
