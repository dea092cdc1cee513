package httpapi

import (
	"errors"
	"net/http"

	"jaayma/auth"
	"jaayma/validate"
)

// AuthHandler serves account registration, login and profile routes.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler builds the account handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type userView struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Telephone string  `json:"telephone"`
	Nom       string  `json:"nom"`
	Prenom    string  `json:"prenom"`
	Role      string  `json:"role"`
	RegionID  *string `json:"region_id,omitempty"`
}

func viewUser(u auth.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Telephone: u.Telephone,
		Nom:       u.Nom,
		Prenom:    u.Prenom,
		Role:      string(u.Role),
		RegionID:  u.RegionID,
	}
}

// failAccountError maps account service errors onto the response envelope.
func failAccountError(w http.ResponseWriter, err error) {
	var vErr *validate.RegistrationError
	switch {
	case errors.As(err, &vErr):
		if vErr.Assessment != nil {
			FailAssessment(w, "mot de passe invalide", *vErr.Assessment)
			return
		}
		FailValidation(w, "données d'inscription invalides", vErr.Errors)
	case errors.Is(err, auth.ErrDuplicateEmail):
		Fail(w, http.StatusConflict, "adresse e-mail déjà utilisée")
	case errors.Is(err, auth.ErrDuplicatePhone):
		Fail(w, http.StatusConflict, "numéro de téléphone déjà utilisé")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Fail(w, http.StatusUnauthorized, "identifiants invalides")
	case errors.Is(err, auth.ErrRoleNotAllowed):
		Fail(w, http.StatusForbidden, "rôle non autorisé à l'inscription")
	case errors.Is(err, auth.ErrUserNotFound):
		Fail(w, http.StatusNotFound, "compte introuvable")
	default:
		Fail(w, http.StatusInternalServerError, "erreur interne du serveur")
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		failAccountError(w, err)
		return
	}

	Created(w, "compte créé", viewUser(*user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		failAccountError(w, err)
		return
	}

	OK(w, "connexion réussie", map[string]any{
		"token": result.Token,
		"user":  viewUser(result.User),
	})
}

// LoginDelivery issues a token on the delivery codec path.
func (h *AuthHandler) LoginDelivery(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	result, err := h.svc.LoginDelivery(r.Context(), req)
	if err != nil {
		failAccountError(w, err)
		return
	}

	OK(w, "connexion réussie", map[string]any{
		"token": result.Token,
		"user":  viewUser(result.User),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}

	user, err := h.svc.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		failAccountError(w, err)
		return
	}

	OK(w, "profil", viewUser(*user))
}

// CreateAccount lets a super administrator create an account with any role.
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	user, err := h.svc.CreateAccount(r.Context(), req)
	if err != nil {
		failAccountError(w, err)
		return
	}

	Created(w, "compte créé", viewUser(*user))
}

// ListLivreurs serves the delivery-token back-office listing.
func (h *AuthHandler) ListLivreurs(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListLivreurs(r.Context(), 100)
	if err != nil {
		failAccountError(w, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, viewUser(u))
	}
	OK(w, "livreurs", views)
}

// EvaluatePassword runs the password policy and always returns the full
// assessment, whatever its outcome.
func (h *AuthHandler) EvaluatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := bindJSON(r, &req); err != nil {
		FailValidation(w, "requête invalide", []string{err.Error()})
		return
	}

	assessment := validate.AssessPassword(req.Password)
	if !assessment.Valid {
		FailAssessment(w, "mot de passe invalide", assessment)
		return
	}

	score := assessment.Score
	writeJSON(w, http.StatusOK, Envelope{
		Success:  true,
		Message:  "mot de passe conforme",
		Warnings: assessment.Warnings,
		Strength: assessment.Strength,
		Score:    &score,
	})
}
