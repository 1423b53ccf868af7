package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/expensebuddy/expensebuddy/pkg/category"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type StatusDTO struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	SpentAmount  decimal.Decimal `json:"spent_amount"`
	Percentage   decimal.Decimal `json:"percentage"`
	IsOverBudget bool            `json:"is_over_budget"`
	CreatedAt    time.Time       `json:"created_at"`
}

type createRequestDTO struct {
	CategoryID   string          `json:"category_id"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
}

type updateRequestDTO struct {
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	statuses, err := h.service.GetAllStatuses(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]StatusDTO, 0, len(statuses))
	for _, status := range statuses {
		dtos = append(dtos, StatusToDTO(status))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")

	var req createRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), req.CategoryID, req.MonthlyLimit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(StatusToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	var req updateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateLimit(r.Context(), id, req.MonthlyLimit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(StatusToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func StatusToDTO(status Status) StatusDTO {
	return StatusDTO{
		ID:           status.ID,
		CategoryID:   status.CategoryID,
		CategoryName: status.CategoryName,
		MonthlyLimit: status.MonthlyLimit,
		SpentAmount:  status.SpentAmount,
		Percentage:   status.Percentage,
		IsOverBudget: status.IsOverBudget,
		CreatedAt:    status.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidLimit):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrBudgetExists):
		http.Error(w, "Budget already exists for this category", http.StatusBadRequest)
	case errors.Is(err, category.ErrCategoryNotFound):
		http.Error(w, "Category not found", http.StatusNotFound)
	case errors.Is(err, ErrBudgetNotFound):
		http.Error(w, "Budget not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
