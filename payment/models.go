package payment

import "time"

// Method is the closed set of accepted payment methods.
type Method string

const (
	MethodEspeces     Method = "ESPECES"
	MethodOrangeMoney Method = "ORANGE_MONEY"
	MethodWave        Method = "WAVE"
	MethodCarte       Method = "CARTE"
)

// ValidMethod reports whether m belongs to the closed method set.
func ValidMethod(m Method) bool {
	switch m {
	case MethodEspeces, MethodOrangeMoney, MethodWave, MethodCarte:
		return true
	default:
		return false
	}
}

// Payment mirrors the payments table.
type Payment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Method    Method    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateParams contains write parameters for recording a payment.
type CreateParams struct {
	OrderID string
	Amount  int64
	Method  Method
	ActorID string
}
