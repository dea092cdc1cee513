package httpapi

import (
	"fmt"
	"net/http"

	"jaayma/auth"
)

const (
	msgTokenRequired = "jeton d'authentification requis"
	msgTokenInvalid  = "jeton invalide ou expiré"
)

// Guards gate requests on a verified bearer token and a per-route predicate.
// Denials terminate the request with the uniform envelope: 401 when
// authentication fails, 403 when the predicate fails. On success the claims
// are attached to the request context and the chain continues.
type Guards struct {
	codec    *auth.Codec
	delivery *auth.DeliveryCodec
}

// NewGuards builds the guard set from the two token codecs.
func NewGuards(codec *auth.Codec, delivery *auth.DeliveryCodec) *Guards {
	return &Guards{codec: codec, delivery: delivery}
}

// authenticate runs the shared extraction and verification steps. It writes
// the denial itself and reports whether the chain may continue.
func (g *Guards) authenticate(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	token, ok := auth.ExtractBearer(r.Header.Get("Authorization"))
	if !ok {
		Fail(w, http.StatusUnauthorized, msgTokenRequired)
		return auth.Claims{}, false
	}
	claims, err := g.codec.Verify(token)
	if err != nil {
		Fail(w, http.StatusUnauthorized, msgTokenInvalid)
		return auth.Claims{}, false
	}
	return claims, true
}

func (g *Guards) require(denyMsg string, pred func(auth.Claims, *http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := g.authenticate(w, r)
			if !ok {
				return
			}
			if !pred(claims, r) {
				Fail(w, http.StatusForbidden, denyMsg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAuthenticated passes any verified identity through.
func (g *Guards) RequireAuthenticated() func(http.Handler) http.Handler {
	return g.require("", func(auth.Claims, *http.Request) bool { return true })
}

// RequireAdmin admits administrators and super administrators.
func (g *Guards) RequireAdmin() func(http.Handler) http.Handler {
	return g.require("accès réservé aux administrateurs", func(c auth.Claims, _ *http.Request) bool {
		return c.Role.IsBackOffice()
	})
}

// RequireSuperAdmin admits super administrators only.
func (g *Guards) RequireSuperAdmin() func(http.Handler) http.Handler {
	return g.require("accès réservé au super administrateur", func(c auth.Claims, _ *http.Request) bool {
		return c.Role == auth.RoleSuperAdmin
	})
}

// RequireRole admits exactly one role.
func (g *Guards) RequireRole(role auth.Role) func(http.Handler) http.Handler {
	return g.require(fmt.Sprintf("accès réservé au rôle %s", role), func(c auth.Claims, _ *http.Request) bool {
		return c.Role == role
	})
}

// RequireAnyRole admits any role in the allow-list.
func (g *Guards) RequireAnyRole(roles ...auth.Role) func(http.Handler) http.Handler {
	allowed := make(map[auth.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return g.require("accès refusé pour ce rôle", func(c auth.Claims, _ *http.Request) bool {
		_, ok := allowed[c.Role]
		return ok
	})
}

// Resource types used by the ownership guard.
const (
	ResourceProduit  = "produit"
	ResourceCommande = "commande"
)

// ownershipTable lists which non-admin role may act on which resource type.
// Every combination absent from this table denies.
var ownershipTable = map[auth.Role]string{
	auth.RoleGIE:    ResourceProduit,
	auth.RoleClient: ResourceCommande,
}

// RequireOwnership admits administrators unconditionally; other roles pass
// only when the (role, resource type) pair is in the ownership table.
func (g *Guards) RequireOwnership(resourceType string) func(http.Handler) http.Handler {
	msg := fmt.Sprintf("accès refusé à la ressource %s", resourceType)
	return g.require(msg, func(c auth.Claims, _ *http.Request) bool {
		if c.Role.IsBackOffice() {
			return true
		}
		return ownershipTable[c.Role] == resourceType
	})
}
