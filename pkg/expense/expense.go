package expense

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single dated, categorized monetary outflow record.
// CategoryName is enriched from the categories table on every read.
type Expense struct {
	ID           string
	UserID       string
	CategoryID   string
	CategoryName string
	Amount       decimal.Decimal
	Description  string
	// Date is a calendar day; the time-of-day part is always midnight UTC.
	Date      time.Time
	CreatedAt time.Time
}

type SortKey string

const (
	SortByDate         SortKey = "date"
	SortByAmount       SortKey = "amount"
	SortByCategoryName SortKey = "category_name"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filter is the query specification for listing expenses. Zero/nil fields
// impose no constraint; all supplied constraints must hold (conjunctive).
// Range bounds are inclusive on both ends.
type Filter struct {
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Search     string
	SortBy     SortKey
	SortOrder  SortOrder
	Page       int
	Limit      int
}

// Page is one page of a filtered, sorted expense listing.
type Page struct {
	Expenses   []Expense
	TotalCount int
	TotalPages int
}

// Normalized returns the filter with defaults applied: sort by date descending,
// page 1, limit 10 (capped at 100).
func (f Filter) Normalized() Filter {
	if f.SortBy == "" {
		f.SortBy = SortByDate
	}
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Matches reports whether the expense satisfies every supplied filter
// predicate. This is the authoritative definition of the search semantics;
// the SQL repository must select exactly the expenses for which this holds.
func (f Filter) Matches(e Expense) bool {
	if f.CategoryID != "" && e.CategoryID != f.CategoryID {
		return false
	}
	if f.StartDate != nil && e.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.Date.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Sort orders expenses by the requested key and direction. Ties on the sort
// key always resolve by id ascending so pagination is reproducible across
// requests regardless of direction.
func Sort(expenses []Expense, key SortKey, order SortOrder) {
	sort.Slice(expenses, func(i, j int) bool {
		a, b := expenses[i], expenses[j]
		c := compareByKey(a, b, key)
		if c == 0 {
			return a.ID < b.ID
		}
		if order == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func compareByKey(a, b Expense, key SortKey) int {
	switch key {
	case SortByAmount:
		return a.Amount.Cmp(b.Amount)
	case SortByCategoryName:
		return strings.Compare(a.CategoryName, b.CategoryName)
	default:
		if a.Date.Before(b.Date) {
			return -1
		}
		if a.Date.After(b.Date) {
			return 1
		}
		return 0
	}
}

// TotalPages computes ceil(totalCount / limit).
func TotalPages(totalCount, limit int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}

// Paginate cuts one 1-indexed page out of the already filtered and sorted
// slice. A page past the end yields an empty (non-nil) slice.
func Paginate(expenses []Expense, page, limit int) []Expense {
	start := (page - 1) * limit
	if start >= len(expenses) {
		return []Expense{}
	}
	end := start + limit
	if end > len(expenses) {
		end = len(expenses)
	}
	return expenses[start:end]
}
