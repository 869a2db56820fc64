package dto

// SetRoleRequest payload.
type SetRoleRequest struct {
	Role string `json:"role"`
}
