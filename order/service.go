package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jaayma/auth"
)

var (
	// ErrForbidden signals the actor may not act on this order.
	ErrForbidden = errors.New("order: forbidden")
	// ErrInvalidTransition signals the lifecycle forbids the requested move.
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Service handles order business logic.
type Service struct {
	pool        TxBeginner
	repo        Repository
	idGenerator func() string
	now         func() time.Time
}

// NewService creates a new order service.
func NewService(pool TxBeginner, repo Repository) *Service {
	return &Service{
		pool:        pool,
		repo:        repo,
		idGenerator: func() string { return uuid.NewString() },
		now:         time.Now,
	}
}

// WithIDGenerator overrides id generation, for tests.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGenerator = gen
	return s
}

// Create places an order for a client: prices are snapshot, stock is
// decremented and the order plus its lines are written in one transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (Order, error) {
	if params.ClientID == "" {
		return Order{}, fmt.Errorf("order: missing client id")
	}
	if len(params.Lines) == 0 {
		return Order{}, fmt.Errorf("order: at least one line required")
	}
	for _, line := range params.Lines {
		if line.ProductID == "" {
			return Order{}, fmt.Errorf("order: line missing product id")
		}
		if line.Quantity <= 0 {
			return Order{}, fmt.Errorf("order: invalid quantity")
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("order: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		total int64
		items []Item
	)
	for _, line := range params.Lines {
		price, _, err := s.repo.ProductForUpdate(ctx, tx, line.ProductID)
		if err != nil {
			return Order{}, err
		}
		if err := s.repo.DecrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return Order{}, err
		}
		total += price * int64(line.Quantity)
		items = append(items, Item{
			ID:        s.idGenerator(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}

	ord := Order{
		ID:        s.idGenerator(),
		ClientID:  params.ClientID,
		AddressID: params.AddressID,
		Status:    StatusEnAttente,
		Total:     total,
	}

	created, err := s.repo.InsertOrder(ctx, tx, ord, items)
	if err != nil {
		return Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("order: commit tx: %w", err)
	}

	return created, nil
}

// Validate moves an EN_ATTENTE order to VALIDEE. Back-office only; the guard
// upstream enforces the role, the service enforces the lifecycle.
func (s *Service) Validate(ctx context.Context, orderID string) (Order, error) {
	return s.transition(ctx, orderID, StatusValidee, nil, nil)
}

// Assign attaches a livreur to a VALIDEE order and moves it to EN_LIVRAISON.
func (s *Service) Assign(ctx context.Context, orderID, livreurID string) (Order, error) {
	if livreurID == "" {
		return Order{}, fmt.Errorf("order: missing livreur id")
	}
	return s.transition(ctx, orderID, StatusEnLivraison, &livreurID, nil)
}

// MarkDelivered moves an EN_LIVRAISON order to LIVREE. A livreur may only
// deliver orders assigned to it; administrators may deliver any.
func (s *Service) MarkDelivered(ctx context.Context, orderID string, actor auth.Claims) (Order, error) {
	check := func(ord Order) error {
		if actor.Role.IsBackOffice() {
			return nil
		}
		if ord.LivreurID == nil || *ord.LivreurID != actor.Subject {
			return ErrForbidden
		}
		return nil
	}
	return s.transition(ctx, orderID, StatusLivree, nil, check)
}

// Cancel moves an EN_ATTENTE order to ANNULEE. A client may only cancel its
// own orders; administrators may cancel any.
func (s *Service) Cancel(ctx context.Context, orderID string, actor auth.Claims) (Order, error) {
	check := func(ord Order) error {
		if actor.Role.IsBackOffice() {
			return nil
		}
		if ord.ClientID != actor.Subject {
			return ErrForbidden
		}
		return nil
	}
	return s.transition(ctx, orderID, StatusAnnulee, nil, check)
}

func (s *Service) transition(ctx context.Context, orderID string, next Status, livreurID *string, check func(Order) error) (Order, error) {
	if orderID == "" {
		return Order{}, fmt.Errorf("order: missing order id")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("order: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := s.repo.GetForUpdate(ctx, tx, orderID)
	if err != nil {
		return Order{}, err
	}
	if check != nil {
		if err := check(current); err != nil {
			return Order{}, err
		}
	}
	if !current.Status.CanTransitionTo(next) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, tx, orderID, next, livreurID)
	if err != nil {
		return Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, fmt.Errorf("order: commit tx: %w", err)
	}

	return updated, nil
}

// GetByID returns an order when the actor may see it: administrators always,
// a client its own, a livreur the ones assigned to it.
func (s *Service) GetByID(ctx context.Context, orderID string, actor auth.Claims) (Order, []Item, error) {
	ord, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, nil, err
	}

	switch {
	case actor.Role.IsBackOffice():
	case actor.Role == auth.RoleClient && ord.ClientID == actor.Subject:
	case actor.Role == auth.RoleLivreur && ord.LivreurID != nil && *ord.LivreurID == actor.Subject:
	default:
		return Order{}, nil, ErrForbidden
	}

	items, err := s.repo.ItemsByOrder(ctx, orderID)
	if err != nil {
		return Order{}, nil, err
	}
	return ord, items, nil
}

type ListResult struct {
	Items []Order
	Total int
}

// List returns orders matching the filters.
func (s *Service) List(ctx context.Context, filters Filters) (ListResult, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}
