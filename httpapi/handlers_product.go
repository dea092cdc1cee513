package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"jaayma/gie"
	"jaayma/product"
)

// ProductHandler serves product routes.
type ProductHandler struct {
	svc *product.Service
}

// NewProductHandler builds the product handler.
func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productPayload struct {
	GieID       string  `json:"gie_id"`
	CategoryID  *string `json:"category_id"`
	Nom         string  `json:"nom" validate:"required"`
	Description *string `json:"description"`
	Prix        int64   `json:"prix" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    *string `json:"image_url"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := product.Filters{
		GieID:      q.Get("gie_id"),
		CategoryID: q.Get("category_id"),
		PrixMin:    parseInt64(q.Get("prix_min")),
		PrixMax:    parseInt64(q.Get("prix_max")),
		Page:       int(parseInt64(q.Get("page"))),
		PageSize:   int(parseInt64(q.Get("page_size"))),
	}

	result, err := h.svc.List(r.Context(), filters)
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "produits", map[string]any{"items": result.Items, "total": result.Total})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failProductError(w, err)
		return
	}
	OK(w, "produit", rec)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req productPayload
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	rec, err := h.svc.Create(r.Context(), claims, product.CreateParams{
		GieID:       req.GieID,
		CategoryID:  req.CategoryID,
		Nom:         req.Nom,
		Description: req.Description,
		Prix:        req.Prix,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		failProductError(w, err)
		return
	}
	Created(w, "produit créé", rec)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req productPayload
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	rec, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), claims, product.UpdateParams{
		CategoryID:  req.CategoryID,
		Nom:         req.Nom,
		Description: req.Description,
		Prix:        req.Prix,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		failProductError(w, err)
		return
	}
	OK(w, "produit mis à jour", rec)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), claims); err != nil {
		failProductError(w, err)
		return
	}
	OK(w, "produit supprimé", nil)
}

func failProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		Fail(w, http.StatusNotFound, "produit introuvable")
	case errors.Is(err, product.ErrForbidden):
		Fail(w, http.StatusForbidden, "accès refusé à ce produit")
	case errors.Is(err, gie.ErrNotFound):
		Fail(w, http.StatusNotFound, "gie introuvable")
	default:
		FailValidation(w, "requête invalide", []string{err.Error()})
	}
}

func parseInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
