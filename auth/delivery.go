package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DeliveryClaims is the narrower claim shape used on the delivery-agent token
// path. Only back-office and livreur roles exist on that path. The type is
// kept distinct from Claims on purpose: routes pick one codec or the other
// and the two must not be interchangeable.
type DeliveryClaims struct {
	Subject string
	Contact string
	Role    Role
}

func deliveryRoleAllowed(r Role) bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleLivreur:
		return true
	default:
		return false
	}
}

// DeliveryCodec signs and verifies delivery-agent tokens with its own secret.
type DeliveryCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewDeliveryCodec builds a DeliveryCodec. An empty secret is a configuration error.
func NewDeliveryCodec(secret string, ttl time.Duration) (*DeliveryCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DeliveryCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock overrides the time source, for tests.
func (c *DeliveryCodec) WithClock(now func() time.Time) *DeliveryCodec {
	c.now = now
	return c
}

// Issue produces a signed delivery token for the given claims.
func (c *DeliveryCodec) Issue(claims DeliveryClaims) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("auth: issue delivery token: missing subject")
	}
	if !deliveryRoleAllowed(claims.Role) {
		return "", fmt.Errorf("auth: issue delivery token: invalid role %q", claims.Role)
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
		return "", fmt.Errorf("auth: sign delivery token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and the restricted role set.
func (c *DeliveryCodec) Verify(tokenString string) (DeliveryClaims, error) {
	var tc tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return DeliveryClaims{}, ErrExpiredToken
		}
		return DeliveryClaims{}, ErrInvalidToken
	}
	if !token.Valid || tc.Subject == "" {
		return DeliveryClaims{}, ErrInvalidToken
	}

	role := Role(tc.Role)
	if !deliveryRoleAllowed(role) {
		return DeliveryClaims{}, ErrInvalidToken
	}

	return DeliveryClaims{Subject: tc.Subject, Contact: tc.Contact, Role: role}, nil
}
