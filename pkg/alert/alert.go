package alert

import (
	"fmt"

	"github.com/expensebuddy/expensebuddy/internal/config"
	"github.com/expensebuddy/expensebuddy/pkg/budget"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeDanger  Type = "danger"
	TypeWarning Type = "warning"
)

// Alert is a derived, threshold-triggered warning about a budget's status.
type Alert struct {
	CategoryName string
	Type         Type
	Message      string
}

// Thresholds holds the alerting policy. Warning is the budget percentage at
// which a warning is raised; anything strictly above 100% is a danger alert.
type Thresholds struct {
	Warning decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{Warning: decimal.NewFromInt(80)}
}

func ThresholdsFromConfig(cfg config.Alerts) Thresholds {
	if cfg.WarningThreshold <= 0 {
		return DefaultThresholds()
	}
	return Thresholds{Warning: decimal.NewFromFloat(cfg.WarningThreshold)}
}

var hundred = decimal.NewFromInt(100)

// Classify maps a budget status to at most one alert. Message text is derived
// from the figures only, so identical numbers always produce identical alerts.
func Classify(status budget.Status, thresholds Thresholds) (Alert, bool) {
	switch {
	case status.Percentage.GreaterThan(hundred):
		over := status.SpentAmount.Sub(status.MonthlyLimit)
		return Alert{
			CategoryName: status.CategoryName,
			Type:         TypeDanger,
			Message: fmt.Sprintf("%s is over budget by %s (%s%% of limit used)",
				status.CategoryName, over.StringFixed(2), status.Percentage.StringFixed(1)),
		}, true
	case status.Percentage.GreaterThanOrEqual(thresholds.Warning):
		remaining := status.MonthlyLimit.Sub(status.SpentAmount)
		return Alert{
			CategoryName: status.CategoryName,
			Type:         TypeWarning,
			Message: fmt.Sprintf("%s has %s remaining (%s%% of limit used)",
				status.CategoryName, remaining.StringFixed(2), status.Percentage.StringFixed(1)),
		}, true
	default:
		return Alert{}, false
	}
}
