package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jaayma/auth"
)

var (
	// ErrAmountMismatch signals the payment does not match the order total.
	ErrAmountMismatch = errors.New("payment: amount does not match order total")
	// ErrForbidden signals the actor may not pay for this order.
	ErrForbidden = errors.New("payment: forbidden")
)

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Service handles payment business logic.
type Service struct {
	pool        TxBeginner
	repo        Repository
	idGenerator func() string
}

// NewService creates a new payment service.
func NewService(pool TxBeginner, repo Repository) *Service {
	return &Service{
		pool:        pool,
		repo:        repo,
		idGenerator: func() string { return uuid.NewString() },
	}
}

// WithIDGenerator overrides id generation, for tests.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGenerator = gen
	return s
}

// Create records a payment against an order. The amount must equal the order
// total and an order accepts a single payment; both are checked inside one
// transaction. A client may only pay its own orders.
func (s *Service) Create(ctx context.Context, actor auth.Claims, params CreateParams) (Payment, error) {
	if params.OrderID == "" {
		return Payment{}, fmt.Errorf("payment: missing order id")
	}
	if params.Amount <= 0 {
		return Payment{}, fmt.Errorf("payment: invalid amount")
	}
	if !ValidMethod(params.Method) {
		return Payment{}, fmt.Errorf("payment: invalid method %q", params.Method)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Payment{}, fmt.Errorf("payment: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	total, clientID, err := s.repo.OrderTotalAndClient(ctx, tx, params.OrderID)
	if err != nil {
		return Payment{}, err
	}
	if !actor.Role.IsBackOffice() && clientID != actor.Subject {
		return Payment{}, ErrForbidden
	}
	if total != params.Amount {
		return Payment{}, ErrAmountMismatch
	}

	created, err := s.repo.Insert(ctx, tx, Payment{
		ID:      s.idGenerator(),
		OrderID: params.OrderID,
		Amount:  params.Amount,
		Method:  params.Method,
	})
	if err != nil {
		return Payment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Payment{}, fmt.Errorf("payment: commit tx: %w", err)
	}

	return created, nil
}

// ListByOrder returns the payments recorded against an order. Only the order's
// client and back-office roles may read them.
func (s *Service) ListByOrder(ctx context.Context, actor auth.Claims, orderID string) ([]Payment, error) {
	if !actor.Role.IsBackOffice() {
		clientID, err := s.repo.OrderClient(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if clientID != actor.Subject {
			return nil, ErrForbidden
		}
	}
	return s.repo.ListByOrder(ctx, orderID)
}
