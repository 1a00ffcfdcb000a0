package api

// UpdateUserRequest merges only the supplied fields onto the stored user.
// There is deliberately no password field here; password changes go
// through the dedicated password endpoint.
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Rut      *string    `json:"rut"`
	Name     *string    `json:"name"`
	Username *string    `json:"username"`
	Email    *string    `json:"email" validate:"omitempty,email"`
	Phone    *string    `json:"phone"`
	Address  *string    `json:"address"`
	IsActive *bool      `json:"is_active"`
	IsAdmin  *bool      `json:"is_admin"`
	Roles    *[]RoleRef `json:"roles"`
}

// RoleIDs returns nil when the payload did not mention roles, so the
// caller can tell "leave associations alone" from "replace with empty".
func (r UpdateUserRequest) RoleIDs() []int {
	if r.Roles == nil {
		return nil
	}
	ids := make([]int, 0, len(*r.Roles))
	for _, ref := range *r.Roles {
		ids = append(ids, ref.ID)
	}
	return ids
}
