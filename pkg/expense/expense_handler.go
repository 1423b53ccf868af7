package expense

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/expensebuddy/expensebuddy/pkg/category"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type ExpenseDTO struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

type PageDTO struct {
	Expenses   []ExpenseDTO `json:"expenses"`
	TotalCount int          `json:"total_count"`
	TotalPages int          `json:"total_pages"`
}

type InputDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.service.Search(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(page.Expenses))
	for _, expense := range page.Expenses {
		dtos = append(dtos, ExpenseToDTO(expense))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PageDTO{
		Expenses:   dtos,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")

	input, err := decodeInput(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	input, err := decodeInput(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(updated)); err != nil {
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

func ExpenseToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:           expense.ID,
		CategoryID:   expense.CategoryID,
		CategoryName: expense.CategoryName,
		Amount:       expense.Amount,
		Description:  expense.Description,
		Date:         expense.Date.Format(dateLayout),
		CreatedAt:    expense.CreatedAt,
	}
}

func decodeInput(r *http.Request) (Input, error) {
	var dto InputDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return Input{}, err
	}
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		// Accept full timestamps too; the date part is what matters.
		date, err = time.Parse(time.RFC3339, dto.Date)
		if err != nil {
			return Input{}, fmt.Errorf("invalid date %q: expected %s", dto.Date, dateLayout)
		}
	}
	return Input{
		Amount:      dto.Amount,
		CategoryID:  dto.CategoryID,
		Description: dto.Description,
		Date:        date,
	}, nil
}

func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	filter := Filter{
		CategoryID: q.Get("category_id"),
		Search:     q.Get("search"),
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid page %q", v)
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid limit %q", v)
		}
		filter.Limit = limit
	}
	if v := q.Get("start_date"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid start_date %q: expected %s", v, dateLayout)
		}
		filter.StartDate = &date
	}
	if v := q.Get("end_date"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid end_date %q: expected %s", v, dateLayout)
		}
		filter.EndDate = &date
	}
	if v := q.Get("min_amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid min_amount %q", v)
		}
		filter.MinAmount = &amount
	}
	if v := q.Get("max_amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid max_amount %q", v)
		}
		filter.MaxAmount = &amount
	}
	if v := q.Get("sort_by"); v != "" {
		switch SortKey(v) {
		case SortByDate, SortByAmount, SortByCategoryName:
			filter.SortBy = SortKey(v)
		default:
			return Filter{}, fmt.Errorf("invalid sort_by %q", v)
		}
	}
	if v := q.Get("sort_order"); v != "" {
		switch SortOrder(v) {
		case SortAsc, SortDesc:
			filter.SortOrder = SortOrder(v)
		default:
			return Filter{}, fmt.Errorf("invalid sort_order %q", v)
		}
	}

	return filter, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrEmptyDescription):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, category.ErrCategoryNotFound):
		http.Error(w, "Category not found", http.StatusNotFound)
	case errors.Is(err, ErrExpenseNotFound):
		http.Error(w, "Expense not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
