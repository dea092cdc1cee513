package order

// Status is the order lifecycle state.
type Status string

const (
	StatusEnAttente   Status = "EN_ATTENTE"
	StatusValidee     Status = "VALIDEE"
	StatusEnLivraison Status = "EN_LIVRAISON"
	StatusLivree      Status = "LIVREE"
	StatusAnnulee     Status = "ANNULEE"
)

// ValidStatus reports whether s belongs to the closed status set.
func ValidStatus(s Status) bool {
	switch s {
	case StatusEnAttente, StatusValidee, StatusEnLivraison, StatusLivree, StatusAnnulee:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// The forward path is EN_ATTENTE → VALIDEE → EN_LIVRAISON → LIVREE;
// cancellation is only possible while EN_ATTENTE.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusEnAttente:
		return next == StatusValidee || next == StatusAnnulee
	case StatusValidee:
		return next == StatusEnLivraison
	case StatusEnLivraison:
		return next == StatusLivree
	case StatusLivree, StatusAnnulee:
		return false
	default:
		return false
	}
}
