package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jaayma/auth"
)

// Operations a delivery agent may always perform under the strict guard.
const (
	OpAssignOrder   = "assign-order"
	OpMarkDelivered = "mark-delivered"
)

// Two guard families cover the delivery-agent routes. RequireLivreurScope is
// the strict one; RequireLivreurOrAdmin is the broad one. Routes pick their
// strictness deliberately, so the two are kept as distinct predicates.

// RequireLivreurScope admits administrators unconditionally. A livreur passes
// when the route operation is one it may always perform, or when the target
// livreur id (path parameter "id", else body field "livreur_id") matches its
// own claim subject.
func (g *Guards) RequireLivreurScope(operation string) func(http.Handler) http.Handler {
	return g.require("accès refusé au livreur pour cette opération", func(c auth.Claims, r *http.Request) bool {
		switch c.Role {
		case auth.RoleAdmin, auth.RoleSuperAdmin:
			return true
		case auth.RoleLivreur:
			if operation == OpAssignOrder || operation == OpMarkDelivered {
				return true
			}
			return livreurTargetID(r) == c.Subject
		default:
			return false
		}
	})
}

// RequireLivreurOrAdmin admits any back-office or delivery role, with no
// ownership check.
func (g *Guards) RequireLivreurOrAdmin() func(http.Handler) http.Handler {
	return g.require("accès réservé aux livreurs et administrateurs", func(c auth.Claims, _ *http.Request) bool {
		switch c.Role {
		case auth.RoleAdmin, auth.RoleSuperAdmin, auth.RoleLivreur:
			return true
		default:
			return false
		}
	})
}

// RequireDeliveryAdmin authenticates against the delivery token codec and
// admits back-office roles only. This is the separate delivery-token path;
// tokens from the main codec do not verify here.
func (g *Guards) RequireDeliveryAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				Fail(w, http.StatusUnauthorized, msgTokenRequired)
				return
			}
			claims, err := g.delivery.Verify(token)
			if err != nil {
				Fail(w, http.StatusUnauthorized, msgTokenInvalid)
				return
			}
			if !claims.Role.IsBackOffice() {
				Fail(w, http.StatusForbidden, "accès réservé aux administrateurs")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithDeliveryClaims(r.Context(), claims)))
		})
	}
}

const maxGuardBody = 1 << 20

// livreurTargetID reads the target livreur id from the path or, failing that,
// from the request body. The body is restored so downstream handlers can
// still decode it.
func livreurTargetID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxGuardBody))
	// Whatever was read is handed back so downstream decoding sees a
	// consistent body even when the read failed partway.
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		LivreurID string `json:"livreur_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.LivreurID
}
