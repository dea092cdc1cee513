package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jaayma/order"
)

// OrderHandler serves order routes.
type OrderHandler struct {
	svc *order.Service
}

// NewOrderHandler builds the order handler.
func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req struct {
		AddressID *string `json:"address_id"`
		Lines     []struct {
			ProductID string `json:"product_id" validate:"required"`
			Quantity  int    `json:"quantity" validate:"required,gt=0"`
		} `json:"lines" validate:"required,min=1,dive"`
	}
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	lines := make([]order.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, order.Line{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	ord, err := h.svc.Create(r.Context(), order.CreateParams{
		ClientID:  claims.Subject,
		AddressID: req.AddressID,
		Lines:     lines,
	})
	if err != nil {
		failOrderError(w, err)
		return
	}
	Created(w, "commande créée", ord)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	ord, items, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"), claims)
	if err != nil {
		failOrderError(w, err)
		return
	}
	OK(w, "commande", map[string]any{"order": ord, "items": items})
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.svc.List(r.Context(), order.Filters{
		Status:   order.Status(q.Get("status")),
		Page:     int(parseInt64(q.Get("page"))),
		PageSize: int(parseInt64(q.Get("page_size"))),
	})
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "commandes", map[string]any{"items": result.Items, "total": result.Total})
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	result, err := h.svc.List(r.Context(), order.Filters{ClientID: claims.Subject})
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "commandes", map[string]any{"items": result.Items, "total": result.Total})
}

// ListForLivreur serves the strict-guard route carrying the livreur id in the
// path; the guard has already checked it matches the caller (or that the
// caller is an administrator).
func (h *OrderHandler) ListForLivreur(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.List(r.Context(), order.Filters{LivreurID: chi.URLParam(r, "id")})
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "commandes", map[string]any{"items": result.Items, "total": result.Total})
}

// ListDeliveries serves the broad-guard route: every in-delivery order.
func (h *OrderHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.List(r.Context(), order.Filters{Status: order.StatusEnLivraison})
	if err != nil {
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
		return
	}
	OK(w, "commandes", map[string]any{"items": result.Items, "total": result.Total})
}

func (h *OrderHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ord, err := h.svc.Validate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failOrderError(w, err)
		return
	}
	OK(w, "commande validée", ord)
}

func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LivreurID string `json:"livreur_id" validate:"required"`
	}
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	ord, err := h.svc.Assign(r.Context(), chi.URLParam(r, "id"), req.LivreurID)
	if err != nil {
		failOrderError(w, err)
		return
	}
	OK(w, "commande assignée", ord)
}

func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	ord, err := h.svc.MarkDelivered(r.Context(), chi.URLParam(r, "id"), claims)
	if err != nil {
		failOrderError(w, err)
		return
	}
	OK(w, "commande livrée", ord)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	ord, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id"), claims)
	if err != nil {
		failOrderError(w, err)
		return
	}
	OK(w, "commande annulée", ord)
}

func failOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		Fail(w, http.StatusNotFound, "commande introuvable")
	case errors.Is(err, order.ErrForbidden):
		Fail(w, http.StatusForbidden, "accès refusé à cette commande")
	case errors.Is(err, order.ErrInvalidTransition):
		Fail(w, http.StatusConflict, "transition de statut invalide")
	case errors.Is(err, order.ErrProductUnknown):
		Fail(w, http.StatusNotFound, "produit introuvable")
	case errors.Is(err, order.ErrInsufficientStock):
		Fail(w, http.StatusConflict, "stock insuffisant")
	default:
		FailValidation(w, "requête invalide", []string{err.Error()})
	}
}
