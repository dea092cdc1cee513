package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jaayma/category"
	"jaayma/region"
)

// CatalogHandler serves category, region and address routes.
type CatalogHandler struct {
	categories *category.Service
	regions    *region.Service
}

// NewCatalogHandler builds the catalog handler.
func NewCatalogHandler(categories *category.Service, regions *region.Service) *CatalogHandler {
	return &CatalogHandler{categories: categories, regions: regions}
}

type categoryPayload struct {
	Nom         string  `json:"nom" validate:"required"`
	Description *string `json:"description"`
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "catégories", cats)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPayload
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	cat, err := h.categories.Create(r.Context(), req.Nom, req.Description)
	if err != nil {
		failCatalogError(w, err)
		return
	}
	Created(w, "catégorie créée", cat)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPayload
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	cat, err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), req.Nom, req.Description)
	if err != nil {
		failCatalogError(w, err)
		return
	}
	OK(w, "catégorie mise à jour", cat)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		failCatalogError(w, err)
		return
	}
	OK(w, "catégorie supprimée", nil)
}

func (h *CatalogHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.regions.ListRegions(r.Context())
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "régions", regions)
}

func (h *CatalogHandler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nom string `json:"nom" validate:"required"`
	}
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	reg, err := h.regions.CreateRegion(r.Context(), req.Nom)
	if err != nil {
		failCatalogError(w, err)
		return
	}
	Created(w, "région créée", reg)
}

func (h *CatalogHandler) DeleteRegion(w http.ResponseWriter, r *http.Request) {
	if err := h.regions.DeleteRegion(r.Context(), chi.URLParam(r, "id")); err != nil {
		failCatalogError(w, err)
		return
	}
	OK(w, "région supprimée", nil)
}

func (h *CatalogHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req struct {
		RegionID string `json:"region_id" validate:"required"`
		Ligne    string `json:"ligne" validate:"required"`
		Ville    string `json:"ville" validate:"required"`
	}
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	addr, err := h.regions.CreateAddress(r.Context(), region.Address{
		UserID:   claims.Subject,
		RegionID: req.RegionID,
		Ligne:    req.Ligne,
		Ville:    req.Ville,
	})
	if err != nil {
		failCatalogError(w, err)
		return
	}
	Created(w, "adresse créée", addr)
}

func (h *CatalogHandler) ListMyAddresses(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	addrs, err := h.regions.ListAddressesByUser(r.Context(), claims.Subject)
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "adresses", addrs)
}

func failCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrNotFound), errors.Is(err, region.ErrNotFound):
		Fail(w, http.StatusNotFound, "ressource introuvable")
	case errors.Is(err, category.ErrDuplicateName), errors.Is(err, region.ErrDuplicateName):
		Fail(w, http.StatusConflict, "nom déjà utilisé")
	default:
		FailValidation(w, "requête invalide", []string{err.Error()})
	}
}
