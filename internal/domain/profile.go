package domain

import "time"

// Role enumerates account privilege levels.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role grants access to admin surfaces.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Profile is the domain model for wallet account holders.
type Profile struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	KYCTier      int
	Banned       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
