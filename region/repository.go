package region

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals the requested region or address does not exist.
	ErrNotFound = errors.New("region: not found")
	// ErrDuplicateName signals the region name is already taken.
	ErrDuplicateName = errors.New("region: name already exists")
)

// Repository provides data access to regions and addresses.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateRegion(ctx context.Context, nom string) (Region, error) {
	const query = `INSERT INTO regions (nom) VALUES ($1) RETURNING id, nom, created_at`

	var reg Region
	if err := r.pool.QueryRow(ctx, query, nom).Scan(&reg.ID, &reg.Nom, &reg.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Region{}, ErrDuplicateName
		}
		return Region{}, fmt.Errorf("region: create: %w", err)
	}
	return reg, nil
}

func (r *Repository) ListRegions(ctx context.Context) ([]Region, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nom, created_at FROM regions ORDER BY nom ASC`)
	if err != nil {
		return nil, fmt.Errorf("region: list: %w", err)
	}
	defer rows.Close()

	out := make([]Region, 0, 16)
	for rows.Next() {
		var reg Region
		if err := rows.Scan(&reg.ID, &reg.Nom, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("region: scan: %w", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("region: iterate: %w", err)
	}
	return out, nil
}

func (r *Repository) DeleteRegion(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("region: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CreateAddress(ctx context.Context, addr Address) (Address, error) {
	const query = `
		INSERT INTO addresses (user_id, region_id, ligne, ville)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, region_id, ligne, ville, created_at
	`

	var out Address
	err := r.pool.QueryRow(ctx, query, addr.UserID, addr.RegionID, addr.Ligne, addr.Ville).
		Scan(&out.ID, &out.UserID, &out.RegionID, &out.Ligne, &out.Ville, &out.CreatedAt)
	if err != nil {
		return Address{}, fmt.Errorf("region: create address: %w", err)
	}
	return out, nil
}

func (r *Repository) ListAddressesByUser(ctx context.Context, userID string) ([]Address, error) {
	const query = `
		SELECT id, user_id, region_id, ligne, ville, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("region: list addresses: %w", err)
	}
	defer rows.Close()

	out := make([]Address, 0, 8)
	for rows.Next() {
		var addr Address
		if err := rows.Scan(&addr.ID, &addr.UserID, &addr.RegionID, &addr.Ligne, &addr.Ville, &addr.CreatedAt); err != nil {
			return nil, fmt.Errorf("region: scan address: %w", err)
		}
		out = append(out, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("region: iterate addresses: %w", err)
	}
	return out, nil
}

func (r *Repository) GetAddress(ctx context.Context, id string) (Address, error) {
	const query = `SELECT id, user_id, region_id, ligne, ville, created_at FROM addresses WHERE id = $1`

	var addr Address
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&addr.ID, &addr.UserID, &addr.RegionID, &addr.Ligne, &addr.Ville, &addr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Address{}, ErrNotFound
		}
		return Address{}, fmt.Errorf("region: get address: %w", err)
	}
	return addr, nil
}
