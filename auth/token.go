package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret signals the codec was built without a signing secret.
	ErrMissingSecret = errors.New("auth: signing secret required")
	// ErrInvalidToken covers bad signatures, malformed payloads and unknown roles.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken signals the token is past its expiry.
	ErrExpiredToken = errors.New("auth: expired token")
)

// DefaultTTL applies when the codec is configured with a zero lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	Subject string
	Contact string
	Role    Role
}

type tokenClaims struct {
	Contact string `json:"contact"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens. The secret is injected at
// construction; nothing here reads the environment.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. An empty secret is a configuration error.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source, for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue produces a signed token for the given claims.
func (c *Codec) Issue(claims Claims) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("auth: issue: missing subject")
	}
	if !ValidRole(claims.Role) {
		return "", fmt.Errorf("auth: issue: invalid role %q", claims.Role)
	}

	now := c.now()
	tc := tokenClaims{
		Contact: claims.Contact,
		Role:    string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Every decode failure other than expiry maps to ErrInvalidToken so a
// malformed token can never surface as a server error.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	var tc tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid || tc.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	role := Role(tc.Role)
	if !ValidRole(role) {
		return Claims{}, ErrInvalidToken
	}

	return Claims{Subject: tc.Subject, Contact: tc.Contact, Role: role}, nil
}

const bearerPrefix = "Bearer "

// ExtractBearer returns the token part of an Authorization header value.
// The prefix match is exact: the literal "Bearer" followed by a single space.
// The remainder is returned verbatim, without trimming.
func ExtractBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}
