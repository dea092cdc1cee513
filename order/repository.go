package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals the requested order does not exist.
	ErrNotFound = errors.New("order: not found")
	// ErrProductUnknown signals an order line references a missing product.
	ErrProductUnknown = errors.New("order: unknown product")
	// ErrInsufficientStock signals a line exceeds the available stock.
	ErrInsufficientStock = errors.New("order: insufficient stock")
)

// Repository defines the data access required by the service. Write methods
// run inside a caller-owned transaction.
type Repository interface {
	InsertOrder(ctx context.Context, tx pgx.Tx, ord Order, items []Item) (Order, error)
	ProductForUpdate(ctx context.Context, tx pgx.Tx, productID string) (price int64, stock int, err error)
	DecrementStock(ctx context.Context, tx pgx.Tx, productID string, qty int) error
	GetForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (Order, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, orderID string, status Status, livreurID *string) (Order, error)
	GetByID(ctx context.Context, orderID string) (Order, error)
	ItemsByOrder(ctx context.Context, orderID string) ([]Item, error)
	List(ctx context.Context, filters Filters) ([]Order, int, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed order repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const orderColumns = `id, client_id, livreur_id, address_id, status::text, total, created_at, updated_at`

func (r *PGRepository) InsertOrder(ctx context.Context, tx pgx.Tx, ord Order, items []Item) (Order, error) {
	insertSQL := `
		INSERT INTO orders (id, client_id, address_id, status, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns

	created, err := scanOrder(tx.QueryRow(ctx, insertSQL, ord.ID, ord.ClientID, ord.AddressID, ord.Status, ord.Total))
	if err != nil {
		return Order{}, fmt.Errorf("order: insert: %w", err)
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, created.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return Order{}, fmt.Errorf("order: insert item: %w", err)
		}
	}

	return created, nil
}

func (r *PGRepository) ProductForUpdate(ctx context.Context, tx pgx.Tx, productID string) (int64, int, error) {
	var (
		price int64
		stock int
	)
	err := tx.QueryRow(ctx, `SELECT prix, stock FROM products WHERE id = $1 FOR UPDATE`, productID).
		Scan(&price, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrProductUnknown
		}
		return 0, 0, fmt.Errorf("order: product lookup: %w", err)
	}
	return price, stock, nil
}

func (r *PGRepository) DecrementStock(ctx context.Context, tx pgx.Tx, productID string, qty int) error {
	tag, err := tx.Exec(ctx, `UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`, productID, qty)
	if err != nil {
		return fmt.Errorf("order: decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *PGRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	ord, err := scanOrder(tx.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("order: get for update: %w", err)
	}
	return ord, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, orderID string, status Status, livreurID *string) (Order, error) {
	query := `
		UPDATE orders
		SET status = $2, livreur_id = COALESCE($3, livreur_id), updated_at = now()
		WHERE id = $1
		RETURNING ` + orderColumns

	ord, err := scanOrder(tx.QueryRow(ctx, query, orderID, status, livreurID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("order: update status: %w", err)
	}
	return ord, nil
}

func (r *PGRepository) GetByID(ctx context.Context, orderID string) (Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	ord, err := scanOrder(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("order: get by id: %w", err)
	}
	return ord, nil
}

func (r *PGRepository) ItemsByOrder(ctx context.Context, orderID string) ([]Item, error) {
	const query = `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("order: list items: %w", err)
	}
	defer rows.Close()

	out := make([]Item, 0, 8)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("order: scan item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order: iterate items: %w", err)
	}
	return out, nil
}

func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Order, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	n := 0
	next := func(v any) string {
		args = append(args, v)
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filters.ClientID != "" {
		where += " AND client_id = " + next(filters.ClientID)
	}
	if filters.LivreurID != "" {
		where += " AND livreur_id = " + next(filters.LivreurID)
	}
	if filters.Status != "" {
		where += " AND status = " + next(filters.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("order: count: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		` ORDER BY created_at DESC LIMIT ` + next(filters.PageSize) +
		` OFFSET ` + next((filters.Page-1)*filters.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("order: list: %w", err)
	}
	defer rows.Close()

	out := make([]Order, 0, filters.PageSize)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("order: scan: %w", err)
		}
		out = append(out, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("order: iterate: %w", err)
	}

	return out, total, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		ord       Order
		livreurID *string
		addressID *string
	)
	err := row.Scan(
		&ord.ID,
		&ord.ClientID,
		&livreurID,
		&addressID,
		&ord.Status,
		&ord.Total,
		&ord.CreatedAt,
		&ord.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}

	ord.LivreurID = livreurID
	ord.AddressID = addressID
	return ord, nil
}
