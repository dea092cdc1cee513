package gie

import "time"

// GIE is a vendor organization (groupement d'intérêt économique) selling
// products through the marketplace. Each GIE is owned by one user account
// holding the GIE role.
type GIE struct {
	ID             string    `json:"id"`
	Nom            string    `json:"nom"`
	NumeroRegistre string    `json:"numero_registre"`
	RegionID       *string   `json:"region_id,omitempty"`
	OwnerUserID    string    `json:"owner_user_id"`
	Telephone      *string   `json:"telephone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateParams contains write parameters for creating a GIE.
type CreateParams struct {
	Nom            string
	NumeroRegistre string
	RegionID       *string
	OwnerUserID    string
	Telephone      *string
}

// UpdateParams contains the mutable GIE fields.
type UpdateParams struct {
	Nom       string
	RegionID  *string
	Telephone *string
}
