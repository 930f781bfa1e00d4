package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, category_type, color, created_at, updated_at`

// Create inserts a new category and returns the stored row
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		INSERT INTO categories (user_id, name, category_type, color)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, query, category.UserID, category.Name, string(category.Type), category.Color)
	return scanCategory(row)
}

// CreateBatch inserts several categories in one database transaction. Used by
// the store to seed the default set on an empty first load.
func (r *CategoryRepository) CreateBatch(categories []*domain.Category) ([]*domain.Category, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO categories (user_id, name, category_type, color)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns

	created := make([]*domain.Category, 0, len(categories))
	for _, category := range categories {
		row := tx.QueryRow(ctx, query, category.UserID, category.Name, string(category.Type), category.Color)
		stored, err := scanCategory(row)
		if err != nil {
			return nil, err
		}
		created = append(created, stored)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetAllByUser retrieves every category owned by the user
func (r *CategoryRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Category, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update applies the changed fields to a category
func (r *CategoryRepository) Update(userID uuid.UUID, id int32, update *domain.CategoryUpdate) error {
	ctx, cancel := queryCtx()
	defer cancel()

	var (
		set  []string
		args []any
	)
	if update.Name != nil {
		args = append(args, *update.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Type != nil {
		args = append(args, string(*update.Type))
		set = append(set, fmt.Sprintf("category_type = $%d", len(args)))
	}
	if update.Color != nil {
		args = append(args, *update.Color)
		set = append(set, fmt.Sprintf("color = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, userID, id)
	query := fmt.Sprintf(`UPDATE categories SET %s, updated_at = now() WHERE user_id = $%d AND id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(userID uuid.UUID, id int32) error {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `DELETE FROM categories WHERE user_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}
