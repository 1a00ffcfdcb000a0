package api

import (
	"time"

	"labdic-inventory/internal/model"
)

// UserResponse is the outward user shape; the password hash never leaves
// the service.
// swagger:model api.UserResponse
type UserResponse struct {
	ID        int            `json:"id" example:"1"`
	Rut       string         `json:"rut" example:"12.345.678-9"`
	Name      string         `json:"name" example:"Juana Perez"`
	Username  string         `json:"username" example:"jperez"`
	Email     string         `json:"email" example:"jperez@example.com"`
	Phone     *string        `json:"phone,omitempty"`
	Address   *string        `json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	IsActive  bool           `json:"is_active" example:"true"`
	IsAdmin   bool           `json:"is_admin" example:"false"`
	Roles     []RoleResponse `json:"roles"`
}

func NewUserResponse(u model.User) UserResponse {
	roles := make([]RoleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, NewRoleResponse(r))
	}
	return UserResponse{
		ID:        u.ID,
		Rut:       u.Rut,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		Roles:     roles,
	}
}
