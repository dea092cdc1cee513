package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"jaayma/auth"
	"jaayma/gie"
)

type fakeStore struct {
	products map[string]Product
	owners   map[string]string // product id -> owner user id
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[string]Product),
		owners:   make(map[string]string),
	}
}

func (f *fakeStore) Create(_ context.Context, params CreateParams) (Product, error) {
	f.nextID++
	p := Product{
		ID:         fmt.Sprintf("p-%d", f.nextID),
		GieID:      params.GieID,
		CategoryID: params.CategoryID,
		Nom:        params.Nom,
		Prix:       params.Prix,
		Stock:      params.Stock,
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (Product, error) {
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) OwnerUserID(_ context.Context, productID string) (string, error) {
	owner, ok := f.owners[productID]
	if !ok {
		return "", ErrNotFound
	}
	return owner, nil
}

func (f *fakeStore) List(_ context.Context, filters Filters) ([]Product, int, error) {
	var out []Product
	for _, p := range f.products {
		if filters.GieID != "" && p.GieID != filters.GieID {
			continue
		}
		if filters.PrixMin > 0 && p.Prix < filters.PrixMin {
			continue
		}
		if filters.PrixMax > 0 && p.Prix > filters.PrixMax {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeStore) Update(_ context.Context, id string, params UpdateParams) (Product, error) {
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	p.Nom = params.Nom
	p.Prix = params.Prix
	p.Stock = params.Stock
	f.products[id] = p
	return p, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeOwnership struct {
	owners map[string]string // gie id -> owner user id
}

func (f *fakeOwnership) OwnerOf(_ context.Context, gieID string) (string, error) {
	owner, ok := f.owners[gieID]
	if !ok {
		return "", gie.ErrNotFound
	}
	return owner, nil
}

func newTestProductService() (*Service, *fakeStore, *fakeOwnership) {
	store := newFakeStore()
	gies := &fakeOwnership{owners: map[string]string{"g1": "owner-1"}}
	return NewService(store, gies), store, gies
}

func TestService_CreateOwnGIE(t *testing.T) {
	svc, _, _ := newTestProductService()

	p, err := svc.Create(context.Background(), auth.Claims{Subject: "owner-1", Role: auth.RoleGIE}, CreateParams{
		GieID: "g1",
		Nom:   "Bissap",
		Prix:  1500,
		Stock: 20,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.GieID != "g1" || p.Prix != 1500 {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestService_CreateForeignGIEForbidden(t *testing.T) {
	svc, _, _ := newTestProductService()

	_, err := svc.Create(context.Background(), auth.Claims{Subject: "intruder", Role: auth.RoleGIE}, CreateParams{
		GieID: "g1",
		Nom:   "Bissap",
		Prix:  1500,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_CreateAdminBypassesOwnership(t *testing.T) {
	svc, _, _ := newTestProductService()

	if _, err := svc.Create(context.Background(), auth.Claims{Subject: "adm", Role: auth.RoleAdmin}, CreateParams{
		GieID: "g1",
		Nom:   "Bissap",
		Prix:  1500,
	}); err != nil {
		t.Fatalf("admin create: %v", err)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestProductService()
	actor := auth.Claims{Subject: "owner-1", Role: auth.RoleGIE}
	ctx := context.Background()

	cases := []CreateParams{
		{GieID: "g1", Prix: 100},                           // no name
		{GieID: "g1", Nom: "  ", Prix: 100},                // blank name
		{Nom: "Bissap", Prix: 100},                         // no gie
		{GieID: "g1", Nom: "Bissap"},                       // no price
		{GieID: "g1", Nom: "Bissap", Prix: -5},             // negative price
		{GieID: "g1", Nom: "Bissap", Prix: 100, Stock: -1}, // negative stock
	}
	for i, params := range cases {
		if _, err := svc.Create(ctx, actor, params); err == nil {
			t.Errorf("case %d: expected error for %+v", i, params)
		}
	}
}

func TestService_UpdateOwnership(t *testing.T) {
	svc, store, _ := newTestProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, auth.Claims{Subject: "owner-1", Role: auth.RoleGIE}, CreateParams{
		GieID: "g1", Nom: "Bissap", Prix: 1500, Stock: 20,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.owners[p.ID] = "owner-1"

	params := UpdateParams{Nom: "Bissap 1L", Prix: 2000, Stock: 15}
	if _, err := svc.Update(ctx, p.ID, auth.Claims{Subject: "owner-1", Role: auth.RoleGIE}, params); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if _, err := svc.Update(ctx, p.ID, auth.Claims{Subject: "other", Role: auth.RoleGIE}, params); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, p.ID, auth.Claims{Subject: "c1", Role: auth.RoleClient}, params); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for client, got %v", err)
	}
	if _, err := svc.Update(ctx, p.ID, auth.Claims{Subject: "adm", Role: auth.RoleSuperAdmin}, params); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestService_DeleteOwnership(t *testing.T) {
	svc, store, _ := newTestProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, auth.Claims{Subject: "owner-1", Role: auth.RoleGIE}, CreateParams{
		GieID: "g1", Nom: "Bissap", Prix: 1500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.owners[p.ID] = "owner-1"

	if err := svc.Delete(ctx, p.ID, auth.Claims{Subject: "other", Role: auth.RoleGIE}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID, auth.Claims{Subject: "owner-1", Role: auth.RoleGIE}); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestService_ListDefaults(t *testing.T) {
	svc, _, _ := newTestProductService()
	ctx := context.Background()
	actor := auth.Claims{Subject: "owner-1", Role: auth.RoleGIE}

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, actor, CreateParams{
			GieID: "g1",
			Nom:   fmt.Sprintf("Produit %d", i),
			Prix:  int64(1000 * (i + 1)),
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	res, err := svc.List(ctx, Filters{GieID: "g1", PrixMin: 2000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("expected 2 products at or above 2000, got %d", res.Total)
	}
}
