package handler

import (
	"errors"
	"net/http"

	"labdic-inventory/internal/api"
	"labdic-inventory/internal/service"
	"labdic-inventory/internal/store"

	"github.com/labstack/echo/v4"
)

// StoreError maps service and store failures to the uniform HTTP shape:
// lookup miss 404, uniqueness conflict 409, unknown role ids 422,
// anything else 500.
func StoreError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "already exists"})
	case errors.Is(err, service.ErrUnknownRole):
		return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
}
