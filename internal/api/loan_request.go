package api

import "time"

// swagger:model api.CreateLoanRequest
type CreateLoanRequest struct {
	StatusID            int        `json:"status_id" validate:"required"`
	Reason              *string    `json:"reason"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	EstimatedReturnDate *time.Time `json:"estimated_return_date"`
	DeviceIDs           []int      `json:"device_ids" validate:"required,min=1"`
}

// swagger:model api.UpdateLoanRequest
type UpdateLoanRequest struct {
	StatusID            *int       `json:"status_id"`
	Reason              *string    `json:"reason"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	EstimatedReturnDate *time.Time `json:"estimated_return_date"`
	ActualReturnDate    *time.Time `json:"actual_return_date"`
}
