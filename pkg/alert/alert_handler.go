package alert

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/expensebuddy/expensebuddy/pkg/user"
)

type AlertDTO struct {
	CategoryName string `json:"category_name"`
	Type         string `json:"type"`
	Message      string `json:"message"`
}

type InsightDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type SummaryDTO struct {
	BudgetAlerts     []AlertDTO   `json:"budget_alerts"`
	SpendingInsights []InsightDTO `json:"spending_insights"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.service.GetAlerts(r.Context())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := SummaryDTO{
		BudgetAlerts:     make([]AlertDTO, 0, len(summary.BudgetAlerts)),
		SpendingInsights: make([]InsightDTO, 0, len(summary.SpendingInsights)),
	}
	for _, a := range summary.BudgetAlerts {
		dto.BudgetAlerts = append(dto.BudgetAlerts, AlertDTO{
			CategoryName: a.CategoryName,
			Type:         string(a.Type),
			Message:      a.Message,
		})
	}
	for _, i := range summary.SpendingInsights {
		dto.SpendingInsights = append(dto.SpendingInsights, InsightDTO{Type: i.Type, Message: i.Message})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
