package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jaayma/payment"
)

// PaymentHandler serves payment routes.
type PaymentHandler struct {
	svc *payment.Service
}

// NewPaymentHandler builds the payment handler.
func NewPaymentHandler(svc *payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	var req struct {
		OrderID string `json:"order_id" validate:"required"`
		Amount  int64  `json:"amount" validate:"required,gt=0"`
		Method  string `json:"method" validate:"required"`
	}
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	p, err := h.svc.Create(r.Context(), claims, payment.CreateParams{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  payment.Method(req.Method),
	})
	if err != nil {
		failPaymentError(w, err)
		return
	}
	Created(w, "paiement enregistré", p)
}

func (h *PaymentHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	payments, err := h.svc.ListByOrder(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		failPaymentError(w, err)
		return
	}
	OK(w, "paiements", payments)
}

func failPaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, payment.ErrOrderNotFound):
		Fail(w, http.StatusNotFound, "commande introuvable")
	case errors.Is(err, payment.ErrForbidden):
		Fail(w, http.StatusForbidden, "accès refusé à cette commande")
	case errors.Is(err, payment.ErrAlreadyPaid):
		Fail(w, http.StatusConflict, "commande déjà payée")
	case errors.Is(err, payment.ErrAmountMismatch):
		FailValidation(w, "paiement invalide", []string{"le montant ne correspond pas au total de la commande"})
	default:
		FailValidation(w, "requête invalide", []string{err.Error()})
	}
}
