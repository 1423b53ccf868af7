package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repo interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewCategoryRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (c *RepoImpl) GetAll(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, icon, color FROM categories ORDER BY name`
	rows, err := c.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Icon, &category.Color); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return categories, nil
}

func (c *RepoImpl) GetByID(ctx context.Context, id string) (Category, error) {
	query := `SELECT id, name, icon, color FROM categories WHERE id = $1`
	var category Category
	err := c.db.QueryRow(ctx, query, id).
		Scan(&category.ID, &category.Name, &category.Icon, &category.Color)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		log.Errorf("failed to get category: %v", err)
		return Category{}, err
	}
	return category, nil
}
