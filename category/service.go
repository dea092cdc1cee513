package category

import (
	"context"
	"fmt"
	"strings"
)

// Store abstracts repository operations for the service.
type Store interface {
	Create(ctx context.Context, nom string, description *string) (Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id, nom string, description *string) (Category, error)
	Delete(ctx context.Context, id string) error
}

// Service exposes business-level category operations.
type Service struct {
	repo Store
}

// NewService builds a Service using the provided repository.
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, nom string, description *string) (Category, error) {
	nom = strings.TrimSpace(nom)
	if nom == "" {
		return Category{}, fmt.Errorf("category: name required")
	}
	return s.repo.Create(ctx, nom, description)
}

func (s *Service) GetByID(ctx context.Context, id string) (Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id, nom string, description *string) (Category, error) {
	nom = strings.TrimSpace(nom)
	if nom == "" {
		return Category{}, fmt.Errorf("category: name required")
	}
	return s.repo.Update(ctx, id, nom, description)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
