// Package inventory holds the handlers for the inventory-side resources:
// the simple catalogs, products, devices and loan requests.
package inventory

import (
	"net/http"
	"strconv"

	"labdic-inventory/internal/api"
	"labdic-inventory/internal/database"
	"labdic-inventory/internal/handler"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"

	"github.com/labstack/echo/v4"
)

// CatalogHandlers serves one of the lookup tables (brands, models,
// categories, statuses, ubications). The same five handlers are registered
// once per table.
type CatalogHandlers struct {
	Catalog store.Catalog
}

func (h CatalogHandlers) List(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := h.Catalog.List(c.Request().Context(), db)
		if err != nil {
			return handler.StoreError(c, err)
		}
		if items == nil {
			items = []model.CatalogItem{}
		}
		return c.JSON(http.StatusOK, items)
	}
}

func (h CatalogHandlers) Get(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid ID"})
		}
		item, err := h.Catalog.Get(c.Request().Context(), db, id)
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func (h CatalogHandlers) Create(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCatalogItemRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		item, err := h.Catalog.Create(c.Request().Context(), db, &model.CatalogItem{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusCreated, item)
	}
}

func (h CatalogHandlers) Update(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid ID"})
		}
		var req api.UpdateCatalogItemRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		item, err := h.Catalog.Update(c.Request().Context(), db, id, req.Name, req.Description)
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, item)
	}
}

func (h CatalogHandlers) Delete(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid ID"})
		}
		if err := h.Catalog.Delete(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
