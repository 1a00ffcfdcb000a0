package model

import "time"

// CatalogItem is the shared shape of the simple lookup tables
// (brands, models, categories, statuses, ubications).
type CatalogItem struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}

type Product struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	BrandID        *int      `db:"brand_id" json:"brand_id,omitempty"`
	ModelID        *int      `db:"model_id" json:"model_id,omitempty"`
	CategoryID     *int      `db:"category_id" json:"category_id,omitempty"`
	Description    *string   `db:"description" json:"description,omitempty"`
	AvailableStock int       `db:"available_stock" json:"available_stock"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type Device struct {
	ID           int       `db:"id" json:"id"`
	ProductID    int       `db:"product_id" json:"product_id"`
	InternalCode *string   `db:"internal_code" json:"internal_code,omitempty"`
	SerialNumber *string   `db:"serial_number" json:"serial_number,omitempty"`
	StatusID     int       `db:"status_id" json:"status_id"`
	UbicationID  *int      `db:"ubication_id" json:"ubication_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type LoanRequest struct {
	ID                  int        `db:"id" json:"id"`
	UserID              int        `db:"user_id" json:"user_id"`
	RequestDate         time.Time  `db:"request_date" json:"request_date"`
	StatusID            int        `db:"status_id" json:"status_id"`
	Reason              *string    `db:"reason" json:"reason,omitempty"`
	DeliveryDate        *time.Time `db:"delivery_date" json:"delivery_date,omitempty"`
	EstimatedReturnDate *time.Time `db:"estimated_return_date" json:"estimated_return_date,omitempty"`
	ActualReturnDate    *time.Time `db:"actual_return_date" json:"actual_return_date,omitempty"`

	Items []LoanRequestItem `json:"items,omitempty"`
}

type LoanRequestItem struct {
	ID            int `db:"id" json:"id"`
	LoanRequestID int `db:"loan_request_id" json:"loan_request_id"`
	DeviceID      int `db:"device_id" json:"device_id"`
}

// DeviceStatusLog records a device status change and who made it.
type DeviceStatusLog struct {
	ID        int       `db:"id" json:"id"`
	DeviceID  int       `db:"device_id" json:"device_id"`
	StatusID  int       `db:"status_id" json:"status_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Comment   *string   `db:"comment" json:"comment,omitempty"`
}
