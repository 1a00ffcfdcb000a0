package api

// swagger:model api.CreateCatalogItemRequest
type CreateCatalogItemRequest struct {
	Name        string  `json:"name" validate:"required" example:"Laptops"`
	Description *string `json:"description"`
}

// swagger:model api.UpdateCatalogItemRequest
type UpdateCatalogItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
