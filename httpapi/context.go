package httpapi

import (
	"context"

	"jaayma/auth"
)

type ctxKey struct{ name string }

var (
	claimsKey         = ctxKey{"claims"}
	deliveryClaimsKey = ctxKey{"delivery_claims"}
)

// WithClaims attaches the authenticated identity to the request context.
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom returns the authenticated identity attached by a guard.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}

// WithDeliveryClaims attaches a delivery-token identity to the request context.
func WithDeliveryClaims(ctx context.Context, claims auth.DeliveryClaims) context.Context {
	return context.WithValue(ctx, deliveryClaimsKey, claims)
}

// DeliveryClaimsFrom returns the delivery-token identity attached by a guard.
func DeliveryClaimsFrom(ctx context.Context) (auth.DeliveryClaims, bool) {
	claims, ok := ctx.Value(deliveryClaimsKey).(auth.DeliveryClaims)
	return claims, ok
}
