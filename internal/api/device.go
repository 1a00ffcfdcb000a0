package api

// swagger:model api.CreateDeviceRequest
type CreateDeviceRequest struct {
	ProductID    int     `json:"product_id" validate:"required"`
	InternalCode *string `json:"internal_code"`
	SerialNumber *string `json:"serial_number"`
	StatusID     int     `json:"status_id" validate:"required"`
	UbicationID  *int    `json:"ubication_id"`
}

// swagger:model api.UpdateDeviceRequest
type UpdateDeviceRequest struct {
	ProductID    *int    `json:"product_id"`
	InternalCode *string `json:"internal_code"`
	SerialNumber *string `json:"serial_number"`
	UbicationID  *int    `json:"ubication_id"`
}

// UpdateDeviceStatusRequest moves a device to a new status; the change is
// recorded in the device status log together with the acting user.
// swagger:model api.UpdateDeviceStatusRequest
type UpdateDeviceStatusRequest struct {
	StatusID int     `json:"status_id" validate:"required"`
	Comment  *string `json:"comment"`
}
