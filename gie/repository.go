package gie

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals the requested GIE does not exist.
	ErrNotFound = errors.New("gie: not found")
	// ErrDuplicateRegistre signals the registration number is already taken.
	ErrDuplicateRegistre = errors.New("gie: registration number already exists")
)

// Repository provides data access to GIE records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const gieColumns = `id, nom, numero_registre, region_id, owner_user_id, telephone, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, params CreateParams) (GIE, error) {
	query := `
		INSERT INTO gies (nom, numero_registre, region_id, owner_user_id, telephone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + gieColumns

	rec, err := scanGIE(r.pool.QueryRow(ctx, query,
		params.Nom, params.NumeroRegistre, params.RegionID, params.OwnerUserID, params.Telephone))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return GIE{}, ErrDuplicateRegistre
		}
		return GIE{}, fmt.Errorf("gie: create: %w", err)
	}
	return rec, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (GIE, error) {
	query := `SELECT ` + gieColumns + ` FROM gies WHERE id = $1`

	rec, err := scanGIE(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return GIE{}, ErrNotFound
		}
		return GIE{}, fmt.Errorf("gie: get by id: %w", err)
	}
	return rec, nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]GIE, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := `SELECT ` + gieColumns + ` FROM gies ORDER BY nom ASC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("gie: list: %w", err)
	}
	defer rows.Close()

	out := make([]GIE, 0, limit)
	for rows.Next() {
		rec, err := scanGIE(rows)
		if err != nil {
			return nil, fmt.Errorf("gie: scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gie: iterate: %w", err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id string, params UpdateParams) (GIE, error) {
	query := `
		UPDATE gies
		SET nom = $2, region_id = $3, telephone = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + gieColumns

	rec, err := scanGIE(r.pool.QueryRow(ctx, query, id, params.Nom, params.RegionID, params.Telephone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return GIE{}, ErrNotFound
		}
		return GIE{}, fmt.Errorf("gie: update: %w", err)
	}
	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("gie: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGIE(row pgx.Row) (GIE, error) {
	var rec GIE
	err := row.Scan(
		&rec.ID,
		&rec.Nom,
		&rec.NumeroRegistre,
		&rec.RegionID,
		&rec.OwnerUserID,
		&rec.Telephone,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return GIE{}, err
	}
	return rec, nil
}
