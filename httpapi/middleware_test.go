package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"jaayma/auth"
)

func testGuards(t *testing.T) (*Guards, *auth.Codec, *auth.DeliveryCodec) {
	t.Helper()
	codec, err := auth.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	delivery, err := auth.NewDeliveryCodec("delivery-secret", time.Hour)
	if err != nil {
		t.Fatalf("new delivery codec: %v", err)
	}
	return NewGuards(codec, delivery), codec, delivery
}

func issueToken(t *testing.T, codec *auth.Codec, subject string, role auth.Role) string {
	t.Helper()
	token, err := codec.Issue(auth.Claims{Subject: subject, Contact: subject + "@example.sn", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func doGuarded(guard func(http.Handler) http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, req)
	return rec
}

func authedRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestRequireAuthenticated(t *testing.T) {
	guards, codec, _ := testGuards(t)

	t.Run("missing header", func(t *testing.T) {
		rec := doGuarded(guards.RequireAuthenticated(), authedRequest(http.MethodGet, "/x", ""))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Success || env.Message != msgTokenRequired {
			t.Fatalf("unexpected envelope %+v", env)
		}
	})

	t.Run("lowercase scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "bearer "+issueToken(t, codec, "u1", auth.RoleClient))
		rec := doGuarded(guards.RequireAuthenticated(), req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doGuarded(guards.RequireAuthenticated(), authedRequest(http.MethodGet, "/x", "garbage"))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Message != msgTokenInvalid {
			t.Fatalf("unexpected message %q", env.Message)
		}
	})

	t.Run("valid token passes and attaches claims", func(t *testing.T) {
		var got auth.Claims
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = ClaimsFrom(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
		rec := httptest.NewRecorder()
		req := authedRequest(http.MethodGet, "/x", issueToken(t, codec, "u1", auth.RoleClient))
		guards.RequireAuthenticated()(inner).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if got.Subject != "u1" || got.Role != auth.RoleClient {
			t.Fatalf("unexpected claims %+v", got)
		}
	})
}

func TestRoleGuards(t *testing.T) {
	guards, codec, _ := testGuards(t)

	cases := []struct {
		name  string
		guard func(http.Handler) http.Handler
		role  auth.Role
		code  int
	}{
		{"admin passes admin guard", guards.RequireAdmin(), auth.RoleAdmin, http.StatusNoContent},
		{"super admin passes admin guard", guards.RequireAdmin(), auth.RoleSuperAdmin, http.StatusNoContent},
		{"client fails admin guard", guards.RequireAdmin(), auth.RoleClient, http.StatusForbidden},
		{"super admin passes super guard", guards.RequireSuperAdmin(), auth.RoleSuperAdmin, http.StatusNoContent},
		{"admin fails super guard", guards.RequireSuperAdmin(), auth.RoleAdmin, http.StatusForbidden},
		{"gie passes role guard", guards.RequireRole(auth.RoleGIE), auth.RoleGIE, http.StatusNoContent},
		{"livreur fails gie role guard", guards.RequireRole(auth.RoleGIE), auth.RoleLivreur, http.StatusForbidden},
		{"client passes any-role guard", guards.RequireAnyRole(auth.RoleClient, auth.RoleGIE), auth.RoleClient, http.StatusNoContent},
		{"livreur fails any-role guard", guards.RequireAnyRole(auth.RoleClient, auth.RoleGIE), auth.RoleLivreur, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, "/x", issueToken(t, codec, "u1", tc.role))
			rec := doGuarded(tc.guard, req)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestRequireOwnership(t *testing.T) {
	guards, codec, _ := testGuards(t)

	cases := []struct {
		role     auth.Role
		resource string
		code     int
	}{
		{auth.RoleGIE, ResourceProduit, http.StatusNoContent},
		{auth.RoleGIE, ResourceCommande, http.StatusForbidden},
		{auth.RoleClient, ResourceCommande, http.StatusNoContent},
		{auth.RoleClient, ResourceProduit, http.StatusForbidden},
		{auth.RoleLivreur, ResourceProduit, http.StatusForbidden},
		{auth.RoleAdmin, ResourceProduit, http.StatusNoContent},
		{auth.RoleSuperAdmin, ResourceCommande, http.StatusNoContent},
	}

	for _, tc := range cases {
		req := authedRequest(http.MethodDelete, "/x", issueToken(t, codec, "u1", tc.role))
		rec := doGuarded(guards.RequireOwnership(tc.resource), req)
		if rec.Code != tc.code {
			t.Errorf("%s on %s: expected %d, got %d", tc.role, tc.resource, tc.code, rec.Code)
		}
	}
}

func TestRequireLivreurScope(t *testing.T) {
	guards, codec, _ := testGuards(t)

	t.Run("admin always passes", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/livreurs/liv-2", issueToken(t, codec, "adm-1", auth.RoleAdmin))
		rec := doGuarded(guards.RequireLivreurScope(""), req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("allowed operation passes any livreur", func(t *testing.T) {
		for _, op := range []string{OpAssignOrder, OpMarkDelivered} {
			req := authedRequest(http.MethodPut, "/orders/o-1", issueToken(t, codec, "liv-1", auth.RoleLivreur))
			rec := doGuarded(guards.RequireLivreurScope(op), req)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("op %s: expected 204, got %d", op, rec.Code)
			}
		}
	})

	t.Run("path id must match subject", func(t *testing.T) {
		router := chi.NewRouter()
		router.With(guards.RequireLivreurScope("")).Get("/livreurs/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		req := authedRequest(http.MethodGet, "/livreurs/liv-1", issueToken(t, codec, "liv-1", auth.RoleLivreur))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("own id: expected 204, got %d", rec.Code)
		}

		req = authedRequest(http.MethodGet, "/livreurs/liv-2", issueToken(t, codec, "liv-1", auth.RoleLivreur))
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("other id: expected 403, got %d", rec.Code)
		}
	})

	t.Run("body livreur_id must match and body is restored", func(t *testing.T) {
		var seen string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			seen = string(body)
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{"livreur_id":"liv-1"}`))
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, "liv-1", auth.RoleLivreur))
		rec := httptest.NewRecorder()
		guards.RequireLivreurScope("")(inner).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if seen != `{"livreur_id":"liv-1"}` {
			t.Fatalf("body not restored, handler saw %q", seen)
		}

		req = httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{"livreur_id":"liv-2"}`))
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, "liv-1", auth.RoleLivreur))
		rec = httptest.NewRecorder()
		guards.RequireLivreurScope("")(inner).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("mismatched body id: expected 403, got %d", rec.Code)
		}
	})

	t.Run("client never passes", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/x", issueToken(t, codec, "c-1", auth.RoleClient))
		rec := doGuarded(guards.RequireLivreurScope(OpAssignOrder), req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

type failingReader struct {
	data string
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.done {
		f.done = true
		return copy(p, f.data), nil
	}
	return 0, io.ErrUnexpectedEOF
}

func TestLivreurTargetID_RestoresBodyOnReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/deliveries", nil)
	req.Body = io.NopCloser(&failingReader{data: `{"livreur`})

	if id := livreurTargetID(req); id != "" {
		t.Fatalf("expected empty target id, got %q", id)
	}

	// The bytes read before the failure must be handed back to the request.
	rest, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read restored body: %v", err)
	}
	if string(rest) != `{"livreur` {
		t.Fatalf("expected partial body restored, got %q", rest)
	}
}

func TestRequireLivreurOrAdmin(t *testing.T) {
	guards, codec, _ := testGuards(t)

	cases := []struct {
		role auth.Role
		code int
	}{
		{auth.RoleLivreur, http.StatusNoContent},
		{auth.RoleAdmin, http.StatusNoContent},
		{auth.RoleSuperAdmin, http.StatusNoContent},
		{auth.RoleClient, http.StatusForbidden},
		{auth.RoleGIE, http.StatusForbidden},
	}

	for _, tc := range cases {
		req := authedRequest(http.MethodGet, "/x", issueToken(t, codec, "u1", tc.role))
		rec := doGuarded(guards.RequireLivreurOrAdmin(), req)
		if rec.Code != tc.code {
			t.Errorf("%s: expected %d, got %d", tc.role, tc.code, rec.Code)
		}
	}
}

func TestRequireDeliveryAdmin(t *testing.T) {
	guards, codec, delivery := testGuards(t)

	issueDelivery := func(role auth.Role) string {
		token, err := delivery.Issue(auth.DeliveryClaims{Subject: "u1", Role: role})
		if err != nil {
			t.Fatalf("issue delivery token: %v", err)
		}
		return token
	}

	t.Run("delivery admin passes", func(t *testing.T) {
		var got auth.DeliveryClaims
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = DeliveryClaimsFrom(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
		req := authedRequest(http.MethodGet, "/admin/livreurs", issueDelivery(auth.RoleAdmin))
		rec := httptest.NewRecorder()
		guards.RequireDeliveryAdmin()(inner).ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if got.Role != auth.RoleAdmin {
			t.Fatalf("unexpected claims %+v", got)
		}
	})

	t.Run("delivery livreur token forbidden", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/admin/livreurs", issueDelivery(auth.RoleLivreur))
		rec := doGuarded(guards.RequireDeliveryAdmin(), req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("main codec token rejected", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/admin/livreurs", issueToken(t, codec, "adm-1", auth.RoleAdmin))
		rec := doGuarded(guards.RequireDeliveryAdmin(), req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
