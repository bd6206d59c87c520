package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/homebudget/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, household_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.HouseholdID,
		category.Name,
		timeToPgTimestamptz(category.CreatedAt),
	)

	return err
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, household_id, name, created_at
		FROM categories
		WHERE id = $1
	`

	var (
		category  domain.Category
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.HouseholdID,
		&category.Name,
		&createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	category.CreatedAt = createdAt.Time

	return &category, nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// ListByHousehold retrieves a household's categories, oldest first.
func (r *CategoryRepository) ListByHousehold(ctx context.Context, householdID string) ([]domain.Category, error) {
	query := `
		SELECT id, household_id, name, created_at
		FROM categories
		WHERE household_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var (
			category  domain.Category
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(&category.ID, &category.HouseholdID, &category.Name, &createdAt)
		if err != nil {
			return nil, err
		}

		category.CreatedAt = createdAt.Time
		categories = append(categories, category)
	}

	return categories, rows.Err()
}
