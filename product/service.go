package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jaayma/auth"
)

// ErrForbidden signals the actor may not mutate this product.
var ErrForbidden = errors.New("product: forbidden")

// Store abstracts repository operations for the service.
type Store interface {
	Create(ctx context.Context, params CreateParams) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	OwnerUserID(ctx context.Context, productID string) (string, error)
	List(ctx context.Context, filters Filters) ([]Product, int, error)
	Update(ctx context.Context, id string, params UpdateParams) (Product, error)
	Delete(ctx context.Context, id string) error
}

// GieOwnership resolves which user owns a GIE.
type GieOwnership interface {
	OwnerOf(ctx context.Context, gieID string) (string, error)
}

// Service exposes business-level product operations.
type Service struct {
	repo Store
	gies GieOwnership
}

// NewService builds a Service using the provided repository and GIE lookup.
func NewService(repo Store, gies GieOwnership) *Service {
	return &Service{repo: repo, gies: gies}
}

type ListResult struct {
	Items []Product
	Total int
}

// Create inserts a product. A GIE actor may only create products for its own
// GIE; administrators may create for any.
func (s *Service) Create(ctx context.Context, actor auth.Claims, params CreateParams) (Product, error) {
	params.Nom = strings.TrimSpace(params.Nom)
	if params.Nom == "" {
		return Product{}, fmt.Errorf("product: name required")
	}
	if params.GieID == "" {
		return Product{}, fmt.Errorf("product: gie id required")
	}
	if params.Prix <= 0 {
		return Product{}, fmt.Errorf("product: invalid price")
	}
	if params.Stock < 0 {
		return Product{}, fmt.Errorf("product: invalid stock")
	}

	if !actor.Role.IsBackOffice() {
		owner, err := s.gies.OwnerOf(ctx, params.GieID)
		if err != nil {
			return Product{}, err
		}
		if owner != actor.Subject {
			return Product{}, ErrForbidden
		}
	}

	return s.repo.Create(ctx, params)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

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

// Update mutates a product under the ownership rule.
func (s *Service) Update(ctx context.Context, id string, actor auth.Claims, params UpdateParams) (Product, error) {
	params.Nom = strings.TrimSpace(params.Nom)
	if params.Nom == "" {
		return Product{}, fmt.Errorf("product: name required")
	}
	if params.Prix <= 0 {
		return Product{}, fmt.Errorf("product: invalid price")
	}
	if params.Stock < 0 {
		return Product{}, fmt.Errorf("product: invalid stock")
	}

	if err := s.authorize(ctx, id, actor); err != nil {
		return Product{}, err
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes a product under the ownership rule.
func (s *Service) Delete(ctx context.Context, id string, actor auth.Claims) error {
	if err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorize(ctx context.Context, id string, actor auth.Claims) error {
	if actor.Role.IsBackOffice() {
		return nil
	}
	if actor.Role != auth.RoleGIE {
		return ErrForbidden
	}
	owner, err := s.repo.OwnerUserID(ctx, id)
	if err != nil {
		return err
	}
	if owner != actor.Subject {
		return ErrForbidden
	}
	return nil
}
