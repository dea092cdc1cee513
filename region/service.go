package region

import (
	"context"
	"fmt"
	"strings"
)

// Store abstracts repository operations for the service.
type Store interface {
	CreateRegion(ctx context.Context, nom string) (Region, error)
	ListRegions(ctx context.Context) ([]Region, error)
	DeleteRegion(ctx context.Context, id string) error
	CreateAddress(ctx context.Context, addr Address) (Address, error)
	ListAddressesByUser(ctx context.Context, userID string) ([]Address, error)
	GetAddress(ctx context.Context, id string) (Address, error)
}

// Service exposes business-level region and address operations.
type Service struct {
	repo Store
}

// NewService builds a Service using the provided repository.
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateRegion(ctx context.Context, nom string) (Region, error) {
	nom = strings.TrimSpace(nom)
	if nom == "" {
		return Region{}, fmt.Errorf("region: name required")
	}
	return s.repo.CreateRegion(ctx, nom)
}

func (s *Service) ListRegions(ctx context.Context) ([]Region, error) {
	return s.repo.ListRegions(ctx)
}

func (s *Service) DeleteRegion(ctx context.Context, id string) error {
	return s.repo.DeleteRegion(ctx, id)
}

func (s *Service) CreateAddress(ctx context.Context, addr Address) (Address, error) {
	if addr.UserID == "" {
		return Address{}, fmt.Errorf("region: address user id required")
	}
	if addr.RegionID == "" {
		return Address{}, fmt.Errorf("region: address region id required")
	}
	addr.Ligne = strings.TrimSpace(addr.Ligne)
	addr.Ville = strings.TrimSpace(addr.Ville)
	if addr.Ligne == "" || addr.Ville == "" {
		return Address{}, fmt.Errorf("region: address line and city required")
	}
	return s.repo.CreateAddress(ctx, addr)
}

func (s *Service) ListAddressesByUser(ctx context.Context, userID string) ([]Address, error) {
	return s.repo.ListAddressesByUser(ctx, userID)
}
