package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jaayma/gie"
)

// GIEHandler serves vendor-organization routes.
type GIEHandler struct {
	svc *gie.Service
}

// NewGIEHandler builds the GIE handler.
func NewGIEHandler(svc *gie.Service) *GIEHandler {
	return &GIEHandler{svc: svc}
}

type giePayload struct {
	Nom            string  `json:"nom" validate:"required"`
	NumeroRegistre string  `json:"numero_registre"`
	RegionID       *string `json:"region_id"`
	Telephone      *string `json:"telephone"`
	OwnerUserID    string  `json:"owner_user_id"`
}

func (h *GIEHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context(), 100)
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "gies", records)
}

func (h *GIEHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failGIEError(w, err)
		return
	}
	OK(w, "gie", rec)
}

func (h *GIEHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req giePayload
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	// A GIE user always owns the record it creates; only administrators may
	// create on behalf of another account.
	owner := claims.Subject
	if claims.Role.IsBackOffice() && req.OwnerUserID != "" {
		owner = req.OwnerUserID
	}

	rec, err := h.svc.Create(r.Context(), gie.CreateParams{
		Nom:            req.Nom,
		NumeroRegistre: req.NumeroRegistre,
		RegionID:       req.RegionID,
		OwnerUserID:    owner,
		Telephone:      req.Telephone,
	})
	if err != nil {
		failGIEError(w, err)
		return
	}
	Created(w, "gie créé", rec)
}

func (h *GIEHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req giePayload
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	rec, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), claims, gie.UpdateParams{
		Nom:       req.Nom,
		RegionID:  req.RegionID,
		Telephone: req.Telephone,
	})
	if err != nil {
		failGIEError(w, err)
		return
	}
	OK(w, "gie mis à jour", rec)
}

func (h *GIEHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), claims); err != nil {
		failGIEError(w, err)
		return
	}
	OK(w, "gie supprimé", nil)
}

func failGIEError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gie.ErrNotFound):
		Fail(w, http.StatusNotFound, "gie introuvable")
	case errors.Is(err, gie.ErrForbidden):
		Fail(w, http.StatusForbidden, "accès refusé à ce gie")
	case errors.Is(err, gie.ErrDuplicateRegistre):
		Fail(w, http.StatusConflict, "numéro de registre déjà utilisé")
	default:
		FailValidation(w, "requête invalide", []string{err.Error()})
	}
}
