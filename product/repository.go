package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals the requested product does not exist.
var ErrNotFound = errors.New("product: not found")

// Repository provides data access to products.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const productColumns = `id, gie_id, category_id, nom, description, prix, stock, image_url, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, params CreateParams) (Product, error) {
	query := `
		INSERT INTO products (gie_id, category_id, nom, description, prix, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns

	rec, err := scanProduct(r.pool.QueryRow(ctx, query,
		params.GieID, params.CategoryID, params.Nom, params.Description, params.Prix, params.Stock, params.ImageURL))
	if err != nil {
		return Product{}, fmt.Errorf("product: create: %w", err)
	}
	return rec, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	rec, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("product: get by id: %w", err)
	}
	return rec, nil
}

// OwnerUserID returns the user account owning the GIE that sells the product.
func (r *Repository) OwnerUserID(ctx context.Context, productID string) (string, error) {
	const query = `
		SELECT g.owner_user_id
		FROM products p
		JOIN gies g ON g.id = p.gie_id
		WHERE p.id = $1
	`

	var owner string
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("product: owner lookup: %w", err)
	}
	return owner, nil
}

func (r *Repository) List(ctx context.Context, filters Filters) ([]Product, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	n := 0
	next := func(v any) string {
		args = append(args, v)
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filters.GieID != "" {
		where += " AND gie_id = " + next(filters.GieID)
	}
	if filters.CategoryID != "" {
		where += " AND category_id = " + next(filters.CategoryID)
	}
	if filters.PrixMin > 0 {
		where += " AND prix >= " + next(filters.PrixMin)
	}
	if filters.PrixMax > 0 {
		where += " AND prix <= " + next(filters.PrixMax)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("product: count: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY created_at DESC LIMIT ` + next(filters.PageSize) +
		` OFFSET ` + next((filters.Page-1)*filters.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("product: list: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0, filters.PageSize)
	for rows.Next() {
		rec, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("product: scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("product: iterate: %w", err)
	}

	return out, total, nil
}

func (r *Repository) Update(ctx context.Context, id string, params UpdateParams) (Product, error) {
	query := `
		UPDATE products
		SET category_id = $2, nom = $3, description = $4, prix = $5, stock = $6, image_url = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	rec, err := scanProduct(r.pool.QueryRow(ctx, query,
		id, params.CategoryID, params.Nom, params.Description, params.Prix, params.Stock, params.ImageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("product: update: %w", err)
	}
	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("product: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var rec Product
	err := row.Scan(
		&rec.ID,
		&rec.GieID,
		&rec.CategoryID,
		&rec.Nom,
		&rec.Description,
		&rec.Prix,
		&rec.Stock,
		&rec.ImageURL,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	return rec, nil
}
