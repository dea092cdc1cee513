package auth

import "time"

// Role is the closed set of actor roles. Matching is exact and case-sensitive;
// any value outside this set fails token verification.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleGIE        Role = "GIE"
	RoleClient     Role = "CLIENT"
	RoleLivreur    Role = "LIVREUR"
)

// ValidRole reports whether r belongs to the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleGIE, RoleClient, RoleLivreur:
		return true
	default:
		return false
	}
}

// IsBackOffice reports whether r is an administrator role.
func (r Role) IsBackOffice() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the domain representation of an account. It mirrors the users table
// and carries no JSON annotations so it can be reused by different
// presentation layers.
type User struct {
	ID           string
	Email        string
	Telephone    string
	Nom          string
	Prenom       string
	PasswordHash string
	Role         Role
	RegionID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest contains account registration data supplied by callers.
type RegisterRequest struct {
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
}

// LoginRequest contains account login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
