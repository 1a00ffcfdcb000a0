package inventory

import (
	"context"
	"net/http"
	"strconv"

	"labdic-inventory/internal/api"
	"labdic-inventory/internal/database"
	"labdic-inventory/internal/handler"
	"labdic-inventory/internal/middleware"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"
	"labdic-inventory/internal/worker"

	"github.com/labstack/echo/v4"
)

// Indirections for tests.
var (
	getDeviceByID        = store.GetDeviceByID
	listDevices          = store.ListDevices
	createDevice         = store.CreateDevice
	updateDevice         = store.UpdateDevice
	updateDeviceStatus   = store.UpdateDeviceStatus
	deleteDevice         = store.DeleteDevice
	createStatusLog      = store.CreateDeviceStatusLog
	listDeviceStatusLogs = store.ListDeviceStatusLogs
)

// @Summary     List devices
// @Tags        devices
// @Produce     json
// @Success     200 {array} model.Device
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /devices [get]
func ListDevicesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		devices, err := listDevices(c.Request().Context(), db)
		if err != nil {
			return handler.StoreError(c, err)
		}
		if devices == nil {
			devices = []model.Device{}
		}
		return c.JSON(http.StatusOK, devices)
	}
}

// @Summary     Get a device by ID
// @Tags        devices
// @Produce     json
// @Param       device_id path int true "Device ID"
// @Success     200 {object} model.Device
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /devices/{device_id} [get]
func GetDeviceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("device_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid device ID"})
		}
		device, err := getDeviceByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, device)
	}
}

// @Summary     Create a device
// @Tags        devices
// @Accept      json
// @Produce     json
// @Param       device body api.CreateDeviceRequest true "Device fields"
// @Success     201 {object} model.Device
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /devices [post]
func CreateDeviceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateDeviceRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		device, err := createDevice(c.Request().Context(), db, &model.Device{
			ProductID:    req.ProductID,
			InternalCode: req.InternalCode,
			SerialNumber: req.SerialNumber,
			StatusID:     req.StatusID,
			UbicationID:  req.UbicationID,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusCreated, device)
	}
}

// @Summary     Update a device by ID
// @Tags        devices
// @Accept      json
// @Produce     json
// @Param       device_id path int true "Device ID"
// @Param       device body api.UpdateDeviceRequest true "Fields to update"
// @Success     200 {object} model.Device
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /devices/{device_id} [patch]
func UpdateDeviceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("device_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid device ID"})
		}
		var req api.UpdateDeviceRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		device, err := updateDevice(c.Request().Context(), db, id, store.DevicePatch{
			ProductID:    req.ProductID,
			InternalCode: req.InternalCode,
			SerialNumber: req.SerialNumber,
			UbicationID:  req.UbicationID,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, device)
	}
}

// UpdateDeviceStatusHandler moves a device to a new status and hands the
// audit-log write to the worker pool so the response does not wait on it.
// @Summary     Change a device's status
// @Tags        devices
// @Accept      json
// @Produce     json
// @Param       device_id path int true "Device ID"
// @Param       body body api.UpdateDeviceStatusRequest true "New status"
// @Success     200 {object} model.Device
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /devices/{device_id}/status [patch]
func UpdateDeviceStatusHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("device_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid device ID"})
		}
		var req api.UpdateDeviceStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		actor, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		device, err := updateDeviceStatus(c.Request().Context(), db, id, req.StatusID)
		if err != nil {
			return handler.StoreError(c, err)
		}

		// The request context ends with the response; the log write gets
		// its own.
		entry := model.DeviceStatusLog{
			DeviceID: device.ID,
			StatusID: device.StatusID,
			UserID:   actor.ID,
			Comment:  req.Comment,
		}
		logger := c.Logger()
		wp.Submit(func() {
			if _, err := createStatusLog(context.Background(), db, &entry); err != nil {
				logger.Errorf("device status log: %v", err)
			}
		})

		return c.JSON(http.StatusOK, device)
	}
}

// @Summary     List a device's status history
// @Tags        devices
// @Produce     json
// @Param       device_id path int true "Device ID"
// @Success     200 {array} model.DeviceStatusLog
// @Failure     400 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /devices/{device_id}/status-logs [get]
func ListDeviceStatusLogsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("device_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid device ID"})
		}
		logs, err := listDeviceStatusLogs(c.Request().Context(), db, id)
		if err != nil {
			return handler.StoreError(c, err)
		}
		if logs == nil {
			logs = []model.DeviceStatusLog{}
		}
		return c.JSON(http.StatusOK, logs)
	}
}

// @Summary     Delete a device by ID
// @Tags        devices
// @Param       device_id path int true "Device ID"
// @Success     204 "No Content"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /devices/{device_id} [delete]
func DeleteDeviceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("device_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid device ID"})
		}
		if err := deleteDevice(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
