package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already exists for this category")
)

type Repo interface {
	Store(ctx context.Context, budget Budget) error
	Get(ctx context.Context, userID, id string) (Budget, error)
	GetAll(ctx context.Context, userID string) ([]Budget, error)
	UpdateLimit(ctx context.Context, budget Budget) (bool, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

const budgetColumns = `b.id, b.user_id, b.category_id, c.name, b.monthly_limit, b.created_at`

func (r *RepoImpl) Store(ctx context.Context, budget Budget) error {
	query := `INSERT INTO budgets (id, user_id, category_id, monthly_limit) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query,
		budget.ID,
		budget.UserID,
		budget.CategoryID,
		budget.MonthlyLimit,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			log.Debugf("budget already exists for user %s and category %s", budget.UserID, budget.CategoryID)
			return ErrBudgetExists
		}
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) Get(ctx context.Context, userID, id string) (Budget, error) {
	query := fmt.Sprintf(`SELECT %s FROM budgets b JOIN categories c ON b.category_id = c.id
				WHERE b.id = $1 AND b.user_id = $2`, budgetColumns)
	var budget Budget
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.CategoryName,
		&budget.MonthlyLimit,
		&budget.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		log.Errorf("failed to get budget: %v", err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userID string) ([]Budget, error) {
	query := fmt.Sprintf(`SELECT %s FROM budgets b JOIN categories c ON b.category_id = c.id
				WHERE b.user_id = $1 ORDER BY c.name`, budgetColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		var budget Budget
		if err := rows.Scan(
			&budget.ID,
			&budget.UserID,
			&budget.CategoryID,
			&budget.CategoryName,
			&budget.MonthlyLimit,
			&budget.CreatedAt,
		); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return budgets, nil
}

func (r *RepoImpl) UpdateLimit(ctx context.Context, budget Budget) (bool, error) {
	query := `UPDATE budgets SET monthly_limit = $1 WHERE id = $2 AND user_id = $3`
	tag, err := r.db.Exec(ctx, query, budget.MonthlyLimit, budget.ID, budget.UserID)
	if err != nil {
		err := fmt.Errorf("could not update budget: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userID, id string) (bool, error) {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
