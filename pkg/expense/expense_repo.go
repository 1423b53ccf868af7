package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")

// CategoryTotal is one row of a per-category spending breakdown.
type CategoryTotal struct {
	Name   string
	Amount decimal.Decimal
}

type Repo interface {
	Store(ctx context.Context, expense Expense) error
	Get(ctx context.Context, userID, id string) (Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
	// Search applies the filter, sorts, and paginates, in that order.
	// The selected rows are exactly those for which Filter.Matches holds.
	Search(ctx context.Context, userID string, filter Filter) (Page, error)

	// Aggregates below take a half-open [from, to) window over the date column
	// and are recomputed on every call; nothing derived is stored.
	SumInRange(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	TotalByUser(ctx context.Context, userID string) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error)
	CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]CategoryTotal, error)
	Recent(ctx context.Context, userID string, limit int) ([]Expense, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewExpenseRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

const expenseColumns = `e.id, e.user_id, e.category_id, c.name, e.amount, e.description, e.date, e.created_at`

func (r *RepoImpl) Store(ctx context.Context, expense Expense) error {
	query := `INSERT INTO expenses (id, user_id, category_id, amount, description, date) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.CategoryID,
		expense.Amount,
		expense.Description,
		expense.Date,
	)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) Get(ctx context.Context, userID, id string) (Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses e JOIN categories c ON e.category_id = c.id
				WHERE e.id = $1 AND e.user_id = $2`, expenseColumns)
	expense, err := scanExpense(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		log.Errorf("failed to get expense: %v", err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepoImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query := `UPDATE expenses SET category_id = $1, amount = $2, description = $3, date = $4
				WHERE id = $5 AND user_id = $6`
	tag, err := r.db.Exec(ctx, query,
		expense.CategoryID,
		expense.Amount,
		expense.Description,
		expense.Date,
		expense.ID,
		expense.UserID,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userID, id string) (bool, error) {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Search(ctx context.Context, userID string, filter Filter) (Page, error) {
	filter = filter.Normalized()
	where, args := buildWhere(userID, filter)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM expenses e WHERE %s`, where)
	var totalCount int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		err := fmt.Errorf("could not count expenses: %w", err)
		log.Error(err)
		return Page{}, err
	}

	query := fmt.Sprintf(`SELECT %s FROM expenses e JOIN categories c ON e.category_id = c.id
				WHERE %s ORDER BY %s %s, e.id ASC LIMIT $%d OFFSET $%d`,
		expenseColumns, where, sortColumn(filter.SortBy), sortDirection(filter.SortOrder),
		len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return Page{}, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0, filter.Limit)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return Page{}, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return Page{}, err
	}

	return Page{
		Expenses:   expenses,
		TotalCount: totalCount,
		TotalPages: TotalPages(totalCount, filter.Limit),
	}, nil
}

func (r *RepoImpl) SumInRange(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND date >= $2 AND date < $3`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID, from, to).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *RepoImpl) TotalByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *RepoImpl) SumByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `SELECT category_id, SUM(amount) FROM expenses
				WHERE user_id = $1 AND date >= $2 AND date < $3 GROUP BY category_id`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		err := fmt.Errorf("could not sum expenses by category: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	sums := map[string]decimal.Decimal{}
	for rows.Next() {
		var categoryID string
		var sum decimal.Decimal
		if err := rows.Scan(&categoryID, &sum); err != nil {
			err := fmt.Errorf("could not scan category sum: %w", err)
			log.Error(err)
			return nil, err
		}
		sums[categoryID] = sum
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return sums, nil
}

func (r *RepoImpl) CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]CategoryTotal, error) {
	query := `SELECT c.name, SUM(e.amount) AS amount FROM expenses e JOIN categories c ON e.category_id = c.id
				WHERE e.user_id = $1 AND e.date >= $2 AND e.date < $3
				GROUP BY c.name ORDER BY amount DESC`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		err := fmt.Errorf("could not query category totals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var total CategoryTotal
		if err := rows.Scan(&total.Name, &total.Amount); err != nil {
			err := fmt.Errorf("could not scan category total: %w", err)
			log.Error(err)
			return nil, err
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return totals, nil
}

func (r *RepoImpl) Recent(ctx context.Context, userID string, limit int) ([]Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses e JOIN categories c ON e.category_id = c.id
				WHERE e.user_id = $1 ORDER BY e.date DESC, e.id ASC LIMIT $2`, expenseColumns)
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		err := fmt.Errorf("could not query recent expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func buildWhere(userID string, filter Filter) (string, []any) {
	conditions := []string{"e.user_id = $1"}
	args := []any{userID}

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.CategoryID != "" {
		add("e.category_id = $%d", filter.CategoryID)
	}
	if filter.StartDate != nil {
		add("e.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("e.date <= $%d", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		add("e.amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add("e.amount <= $%d", *filter.MaxAmount)
	}
	if filter.Search != "" {
		add("e.description ILIKE $%d", "%"+escapeLike(filter.Search)+"%")
	}

	return strings.Join(conditions, " AND "), args
}

// escapeLike neutralizes LIKE wildcards in user input so the search term is
// matched as a literal substring.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func sortColumn(key SortKey) string {
	switch key {
	case SortByAmount:
		return "e.amount"
	case SortByCategoryName:
		return "c.name"
	default:
		return "e.date"
	}
}

func sortDirection(order SortOrder) string {
	if order == SortAsc {
		return "ASC"
	}
	return "DESC"
}

func scanExpense(row pgx.Row) (Expense, error) {
	var expense Expense
	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.CategoryID,
		&expense.CategoryName,
		&expense.Amount,
		&expense.Description,
		&expense.Date,
		&expense.CreatedAt,
	)
	return expense, err
}
