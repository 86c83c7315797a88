package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/finance-ledger/internal/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	const query = `
INSERT INTO categories (name, type, color)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		category.Name,
		category.Type,
		category.Color,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	const query = `
SELECT id, name, type, color, created_at, updated_at
FROM categories
WHERE id = $1`

	var category domain.Category
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Type,
		&category.Color,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, domain.ErrRecordNotFound
		}
		return domain.Category{}, fmt.Errorf("get category by id: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `
SELECT id, name, type, color, created_at, updated_at
FROM categories
ORDER BY type, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Type,
			&category.Color,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}
