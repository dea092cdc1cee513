package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrOrderNotFound signals the referenced order does not exist.
	ErrOrderNotFound = errors.New("payment: order not found")
	// ErrAlreadyPaid signals the order already carries a payment.
	ErrAlreadyPaid = errors.New("payment: order already paid")
)

// Repository defines the data access required by the service.
type Repository interface {
	OrderTotalAndClient(ctx context.Context, tx pgx.Tx, orderID string) (total int64, clientID string, err error)
	OrderClient(ctx context.Context, orderID string) (clientID string, err error)
	Insert(ctx context.Context, tx pgx.Tx, p Payment) (Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]Payment, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed payment repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) OrderTotalAndClient(ctx context.Context, tx pgx.Tx, orderID string) (int64, string, error) {
	var (
		total    int64
		clientID string
	)
	err := tx.QueryRow(ctx, `SELECT total, client_id FROM orders WHERE id = $1 FOR UPDATE`, orderID).
		Scan(&total, &clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", ErrOrderNotFound
		}
		return 0, "", fmt.Errorf("payment: order lookup: %w", err)
	}
	return total, clientID, nil
}

func (r *PGRepository) OrderClient(ctx context.Context, orderID string) (string, error) {
	var clientID string
	err := r.pool.QueryRow(ctx, `SELECT client_id FROM orders WHERE id = $1`, orderID).Scan(&clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrOrderNotFound
		}
		return "", fmt.Errorf("payment: order lookup: %w", err)
	}
	return clientID, nil
}

func (r *PGRepository) Insert(ctx context.Context, tx pgx.Tx, p Payment) (Payment, error) {
	const query = `
		INSERT INTO payments (id, order_id, amount, method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, amount, method, created_at
	`

	var out Payment
	err := tx.QueryRow(ctx, query, p.ID, p.OrderID, p.Amount, p.Method).
		Scan(&out.ID, &out.OrderID, &out.Amount, &out.Method, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Payment{}, ErrAlreadyPaid
		}
		return Payment{}, fmt.Errorf("payment: insert: %w", err)
	}
	return out, nil
}

func (r *PGRepository) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	const query = `
		SELECT id, order_id, amount, method, created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("payment: list: %w", err)
	}
	defer rows.Close()

	out := make([]Payment, 0, 4)
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("payment: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("payment: iterate: %w", err)
	}
	return out, nil
}
