package expense

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFilter_Matches(t *testing.T) {
	expense := Expense{
		ID:           "e1",
		UserID:       "user-1",
		CategoryID:   "cat-food",
		CategoryName: "Food & Dining",
		Amount:       amount("12.00"),
		Description:  "Morning Coffee",
		Date:         day(2026, time.March, 15),
	}

	minTen := amount("10")
	maxFifty := amount("50")
	marchFirst := day(2026, time.March, 1)
	marchLast := day(2026, time.March, 31)

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{
			name:   "empty filter matches everything",
			filter: Filter{},
			want:   true,
		},
		{
			name:   "category match",
			filter: Filter{CategoryID: "cat-food"},
			want:   true,
		},
		{
			name:   "category mismatch",
			filter: Filter{CategoryID: "cat-transport"},
			want:   false,
		},
		{
			name:   "date range inclusive on both ends",
			filter: Filter{StartDate: &marchFirst, EndDate: &marchLast},
			want:   true,
		},
		{
			name: "date on start bound is included",
			filter: func() Filter {
				d := day(2026, time.March, 15)
				return Filter{StartDate: &d}
			}(),
			want: true,
		},
		{
			name: "date before start bound is excluded",
			filter: func() Filter {
				d := day(2026, time.March, 16)
				return Filter{StartDate: &d}
			}(),
			want: false,
		},
		{
			name: "date on end bound is included",
			filter: func() Filter {
				d := day(2026, time.March, 15)
				return Filter{EndDate: &d}
			}(),
			want: true,
		},
		{
			name:   "amount range inclusive",
			filter: Filter{MinAmount: &minTen, MaxAmount: &maxFifty},
			want:   true,
		},
		{
			name: "amount on min bound is included",
			filter: func() Filter {
				m := amount("12.00")
				return Filter{MinAmount: &m}
			}(),
			want: true,
		},
		{
			name: "amount above max bound is excluded",
			filter: func() Filter {
				m := amount("11.99")
				return Filter{MaxAmount: &m}
			}(),
			want: false,
		},
		{
			name:   "search is case-insensitive substring",
			filter: Filter{Search: "coffee"},
			want:   true,
		},
		{
			name:   "search mismatch",
			filter: Filter{Search: "groceries"},
			want:   false,
		},
		{
			name:   "all predicates must hold",
			filter: Filter{CategoryID: "cat-food", Search: "tea"},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(expense))
		})
	}
}

func TestFilter_Matches_CombinedAmountAndSearch(t *testing.T) {
	// min 10, max 50, search "coffee"
	minTen := amount("10")
	maxFifty := amount("50")
	filter := Filter{MinAmount: &minTen, MaxAmount: &maxFifty, Search: "coffee"}

	morningCoffee := Expense{Amount: amount("12"), Description: "Morning Coffee", Date: day(2026, time.March, 2)}
	coffeeShop := Expense{Amount: amount("60"), Description: "Coffee shop", Date: day(2026, time.March, 3)}

	assert.True(t, filter.Matches(morningCoffee))
	assert.False(t, filter.Matches(coffeeShop), "amount 60 is outside the range even though the description matches")
}

func TestFilter_Normalized(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		f := Filter{}.Normalized()

		assert.Equal(t, SortByDate, f.SortBy)
		assert.Equal(t, SortDesc, f.SortOrder)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, DefaultLimit, f.Limit)
	})

	t.Run("caps limit", func(t *testing.T) {
		f := Filter{Limit: 500}.Normalized()

		assert.Equal(t, MaxLimit, f.Limit)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		f := Filter{SortBy: SortByAmount, SortOrder: SortAsc, Page: 3, Limit: 25}.Normalized()

		assert.Equal(t, SortByAmount, f.SortBy)
		assert.Equal(t, SortAsc, f.SortOrder)
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 25, f.Limit)
	})
}

func TestSort(t *testing.T) {
	expenses := func() []Expense {
		return []Expense{
			{ID: "e3", Amount: amount("30"), CategoryName: "Food & Dining", Date: day(2026, time.March, 10)},
			{ID: "e1", Amount: amount("10"), CategoryName: "Transportation", Date: day(2026, time.March, 20)},
			{ID: "e2", Amount: amount("20"), CategoryName: "Entertainment", Date: day(2026, time.March, 10)},
		}
	}

	ids := func(expenses []Expense) []string {
		out := make([]string, 0, len(expenses))
		for _, e := range expenses {
			out = append(out, e.ID)
		}
		return out
	}

	t.Run("by date descending with id tiebreak", func(t *testing.T) {
		sorted := expenses()
		Sort(sorted, SortByDate, SortDesc)

		assert.Equal(t, []string{"e1", "e2", "e3"}, ids(sorted))
	})

	t.Run("by date ascending with id tiebreak", func(t *testing.T) {
		sorted := expenses()
		Sort(sorted, SortByDate, SortAsc)

		// e2 and e3 share a date; id ascending resolves the tie in both directions
		assert.Equal(t, []string{"e2", "e3", "e1"}, ids(sorted))
	})

	t.Run("by amount", func(t *testing.T) {
		sorted := expenses()
		Sort(sorted, SortByAmount, SortAsc)

		assert.Equal(t, []string{"e1", "e2", "e3"}, ids(sorted))
	})

	t.Run("by category name", func(t *testing.T) {
		sorted := expenses()
		Sort(sorted, SortByCategoryName, SortAsc)

		assert.Equal(t, []string{"e2", "e3", "e1"}, ids(sorted))
	})
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		totalCount int
		limit      int
		want       int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d items limit %d", tt.totalCount, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.totalCount, tt.limit))
		})
	}
}

func TestPaginate(t *testing.T) {
	expenses := make([]Expense, 25)
	for i := range expenses {
		expenses[i] = Expense{ID: fmt.Sprintf("e%02d", i)}
	}

	t.Run("full page", func(t *testing.T) {
		page := Paginate(expenses, 1, 10)

		assert.Len(t, page, 10)
		assert.Equal(t, "e00", page[0].ID)
	})

	t.Run("last partial page", func(t *testing.T) {
		page := Paginate(expenses, 3, 10)

		assert.Len(t, page, 5)
		assert.Equal(t, "e20", page[0].ID)
		assert.Equal(t, "e24", page[4].ID)
	})

	t.Run("page past the end is empty but not nil", func(t *testing.T) {
		page := Paginate(expenses, 4, 10)

		assert.NotNil(t, page)
		assert.Empty(t, page)
	})
}
