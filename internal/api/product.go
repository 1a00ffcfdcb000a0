package api

// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	Name           string  `json:"name" validate:"required" example:"Laptop Dell XPS 13"`
	BrandID        *int    `json:"brand_id"`
	ModelID        *int    `json:"model_id"`
	CategoryID     *int    `json:"category_id"`
	Description    *string `json:"description"`
	AvailableStock int     `json:"available_stock" validate:"gte=0"`
}

// swagger:model api.UpdateProductRequest
type UpdateProductRequest struct {
	Name           *string `json:"name"`
	BrandID        *int    `json:"brand_id"`
	ModelID        *int    `json:"model_id"`
	CategoryID     *int    `json:"category_id"`
	Description    *string `json:"description"`
	AvailableStock *int    `json:"available_stock" validate:"omitempty,gte=0"`
	IsActive       *bool   `json:"is_active"`
}
