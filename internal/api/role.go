package api

import "labdic-inventory/internal/model"

// swagger:model api.RoleResponse
type RoleResponse struct {
	ID          int     `json:"id" example:"1"`
	Name        string  `json:"name" example:"assistant"`
	Description *string `json:"description,omitempty"`
}

func NewRoleResponse(r model.Role) RoleResponse {
	return RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
}

// swagger:model api.CreateRoleRequest
type CreateRoleRequest struct {
	Name        string  `json:"name" validate:"required" example:"assistant"`
	Description *string `json:"description"`
}

// swagger:model api.UpdateRoleRequest
type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
