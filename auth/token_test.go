package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	claims := Claims{Subject: "user-1", Contact: "alice@example.com", Role: RoleClient}
	token, err := codec.Issue(claims)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != claims {
		t.Fatalf("expected claims %+v got %+v", claims, got)
	}
}

func TestCodec_EmptySecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if _, err := NewDeliveryCodec("", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	issuedAt := time.Now()
	codec.WithClock(func() time.Time { return issuedAt })

	token, err := codec.Issue(Claims{Subject: "user-1", Role: RoleLivreur})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec.WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) })
	if _, err := codec.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	signer, _ := NewCodec("secret-a", time.Hour)
	verifier, _ := NewCodec("secret-b", time.Hour)

	token, err := signer.Issue(Claims{Subject: "user-1", Role: RoleGIE})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_GarbageToken(t *testing.T) {
	codec, _ := NewCodec("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestCodec_UnknownRoleDenied(t *testing.T) {
	codec, _ := NewCodec("test-secret", time.Hour)

	// A token carrying a role outside the closed set must never verify, even
	// when the signature is valid.
	now := time.Now()
	raw := tokenClaims{
		Role: "PIRATE",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, raw).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_IssueRejectsInvalidRole(t *testing.T) {
	codec, _ := NewCodec("test-secret", time.Hour)
	if _, err := codec.Issue(Claims{Subject: "user-1", Role: Role("client")}); err == nil {
		t.Fatal("expected error for lowercase role")
	}
}

func TestDeliveryCodec_RestrictedRoles(t *testing.T) {
	codec, err := NewDeliveryCodec("delivery-secret", time.Hour)
	if err != nil {
		t.Fatalf("new delivery codec: %v", err)
	}

	if _, err := codec.Issue(DeliveryClaims{Subject: "user-1", Role: RoleClient}); err == nil {
		t.Fatal("expected error issuing delivery token for CLIENT")
	}

	token, err := codec.Issue(DeliveryClaims{Subject: "liv-1", Role: RoleLivreur})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Role != RoleLivreur || got.Subject != "liv-1" {
		t.Fatalf("unexpected claims %+v", got)
	}
}

func TestDeliveryCodec_SeparateSecretPath(t *testing.T) {
	main, _ := NewCodec("main-secret", time.Hour)
	delivery, _ := NewDeliveryCodec("delivery-secret", time.Hour)

	token, err := main.Issue(Claims{Subject: "admin-1", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := delivery.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected main token to fail on delivery codec, got %v", err)
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"Bearer  spaced", " spaced", true},
		{"bearer abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
		{"Basic abc", "", false},
	}

	for _, tc := range cases {
		token, ok := ExtractBearer(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Errorf("header %q: expected (%q, %v) got (%q, %v)", tc.header, tc.token, tc.ok, token, ok)
		}
	}
}
