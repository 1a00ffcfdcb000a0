package api

// RoleRef references an existing role by id, matching the payload shape
// the frontend sends for role assignment.
// swagger:model api.RoleRef
type RoleRef struct {
	ID int `json:"id" validate:"required" example:"2"`
}

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Rut      string    `json:"rut" validate:"required" example:"12.345.678-9"`
	Name     string    `json:"name" validate:"required" example:"Juana Perez"`
	Username string    `json:"username" validate:"required" example:"jperez"`
	Email    string    `json:"email" validate:"required,email" example:"jperez@example.com"`
	Password string    `json:"password" validate:"required" example:"Secret123!"`
	Phone    *string   `json:"phone"`
	Address  *string   `json:"address"`
	IsAdmin  bool      `json:"is_admin"`
	Roles    []RoleRef `json:"roles"`
}

func (r CreateUserRequest) RoleIDs() []int {
	ids := make([]int, len(r.Roles))
	for i, ref := range r.Roles {
		ids[i] = ref.ID
	}
	return ids
}
