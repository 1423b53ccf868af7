package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/expensebuddy/expensebuddy/pkg/budget"
	"github.com/expensebuddy/expensebuddy/pkg/expense"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/shopspring/decimal"
)

type CategoryBreakdownDTO struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type DataDTO struct {
	TotalExpenses       decimal.Decimal        `json:"total_expenses"`
	MonthlyExpenses     decimal.Decimal        `json:"monthly_expenses"`
	CategoriesBreakdown []CategoryBreakdownDTO `json:"categories_breakdown"`
	RecentExpenses      []expense.ExpenseDTO   `json:"recent_expenses"`
	BudgetStatus        []budget.StatusDTO     `json:"budget_status"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	data, err := h.service.GetDashboard(r.Context())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := DataDTO{
		TotalExpenses:       data.TotalExpenses,
		MonthlyExpenses:     data.MonthlyExpenses,
		CategoriesBreakdown: make([]CategoryBreakdownDTO, 0, len(data.CategoriesBreakdown)),
		RecentExpenses:      make([]expense.ExpenseDTO, 0, len(data.RecentExpenses)),
		BudgetStatus:        make([]budget.StatusDTO, 0, len(data.BudgetStatus)),
	}
	for _, total := range data.CategoriesBreakdown {
		dto.CategoriesBreakdown = append(dto.CategoriesBreakdown, CategoryBreakdownDTO{Name: total.Name, Amount: total.Amount})
	}
	for _, e := range data.RecentExpenses {
		dto.RecentExpenses = append(dto.RecentExpenses, expense.ExpenseToDTO(e))
	}
	for _, status := range data.BudgetStatus {
		dto.BudgetStatus = append(dto.BudgetStatus, budget.StatusToDTO(status))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
