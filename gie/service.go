package gie

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jaayma/auth"
)

// ErrForbidden signals the actor may not mutate this GIE.
var ErrForbidden = errors.New("gie: forbidden")

// Store abstracts repository operations for the service.
type Store interface {
	Create(ctx context.Context, params CreateParams) (GIE, error)
	GetByID(ctx context.Context, id string) (GIE, error)
	List(ctx context.Context, limit int) ([]GIE, error)
	Update(ctx context.Context, id string, params UpdateParams) (GIE, error)
	Delete(ctx context.Context, id string) error
}

// Service exposes business-level GIE operations.
type Service struct {
	repo Store
}

// NewService builds a Service using the provided repository.
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (GIE, error) {
	params.Nom = strings.TrimSpace(params.Nom)
	params.NumeroRegistre = strings.TrimSpace(params.NumeroRegistre)
	if params.Nom == "" {
		return GIE{}, fmt.Errorf("gie: name required")
	}
	if params.NumeroRegistre == "" {
		return GIE{}, fmt.Errorf("gie: registration number required")
	}
	if params.OwnerUserID == "" {
		return GIE{}, fmt.Errorf("gie: owner user id required")
	}
	return s.repo.Create(ctx, params)
}

func (s *Service) GetByID(ctx context.Context, id string) (GIE, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]GIE, error) {
	return s.repo.List(ctx, limit)
}

// Update mutates a GIE. Administrators may update any record; a GIE user only
// its own.
func (s *Service) Update(ctx context.Context, id string, actor auth.Claims, params UpdateParams) (GIE, error) {
	params.Nom = strings.TrimSpace(params.Nom)
	if params.Nom == "" {
		return GIE{}, fmt.Errorf("gie: name required")
	}

	if err := s.authorize(ctx, id, actor); err != nil {
		return GIE{}, err
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes a GIE under the same ownership rule as Update.
func (s *Service) Delete(ctx context.Context, id string, actor auth.Claims) error {
	if err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// OwnerOf returns the owning user id of a GIE.
func (s *Service) OwnerOf(ctx context.Context, gieID string) (string, error) {
	rec, err := s.repo.GetByID(ctx, gieID)
	if err != nil {
		return "", err
	}
	return rec.OwnerUserID, nil
}

func (s *Service) authorize(ctx context.Context, id string, actor auth.Claims) error {
	if actor.Role.IsBackOffice() {
		return nil
	}
	if actor.Role != auth.RoleGIE {
		return ErrForbidden
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.OwnerUserID != actor.Subject {
		return ErrForbidden
	}
	return nil
}
