package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals the requested category does not exist.
	ErrNotFound = errors.New("category: not found")
	// ErrDuplicateName signals the category name is already taken.
	ErrDuplicateName = errors.New("category: name already exists")
)

// Repository provides data access to categories.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, nom string, description *string) (Category, error) {
	const query = `
		INSERT INTO categories (nom, description)
		VALUES ($1, $2)
		RETURNING id, nom, description, created_at, updated_at
	`

	var cat Category
	err := r.pool.QueryRow(ctx, query, nom, description).
		Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Category{}, ErrDuplicateName
		}
		return Category{}, fmt.Errorf("category: create: %w", err)
	}
	return cat, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (Category, error) {
	const query = `SELECT id, nom, description, created_at, updated_at FROM categories WHERE id = $1`

	var cat Category
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("category: get by id: %w", err)
	}
	return cat, nil
}

func (r *Repository) List(ctx context.Context) ([]Category, error) {
	const query = `SELECT id, nom, description, created_at, updated_at FROM categories ORDER BY nom ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category: list: %w", err)
	}
	defer rows.Close()

	out := make([]Category, 0, 16)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("category: scan: %w", err)
		}
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category: iterate: %w", err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id, nom string, description *string) (Category, error) {
	const query = `
		UPDATE categories
		SET nom = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, nom, description, created_at, updated_at
	`

	var cat Category
	err := r.pool.QueryRow(ctx, query, id, nom, description).
		Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Category{}, ErrDuplicateName
		}
		return Category{}, fmt.Errorf("category: update: %w", err)
	}
	return cat, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("category: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
