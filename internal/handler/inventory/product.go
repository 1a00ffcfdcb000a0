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

// Indirections for tests.
var (
	getProductByID = store.GetProductByID
	listProducts   = store.ListProducts
	createProduct  = store.CreateProduct
	updateProduct  = store.UpdateProduct
	deleteProduct  = store.DeleteProduct
)

// @Summary     List products
// @Tags        products
// @Produce     json
// @Success     200 {array} model.Product
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products [get]
func ListProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		products, err := listProducts(c.Request().Context(), db)
		if err != nil {
			return handler.StoreError(c, err)
		}
		if products == nil {
			products = []model.Product{}
		}
		return c.JSON(http.StatusOK, products)
	}
}

// @Summary     Get a product by ID
// @Tags        products
// @Produce     json
// @Param       product_id path int true "Product ID"
// @Success     200 {object} model.Product
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [get]
func GetProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		product, err := getProductByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	}
}

// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       product body api.CreateProductRequest true "Product fields"
// @Success     201 {object} model.Product
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products [post]
func CreateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		product, err := createProduct(c.Request().Context(), db, &model.Product{
			Name:           req.Name,
			BrandID:        req.BrandID,
			ModelID:        req.ModelID,
			CategoryID:     req.CategoryID,
			Description:    req.Description,
			AvailableStock: req.AvailableStock,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusCreated, product)
	}
}

// @Summary     Update a product by ID
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       product_id path int true "Product ID"
// @Param       product body api.UpdateProductRequest true "Fields to update"
// @Success     200 {object} model.Product
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [patch]
func UpdateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		var req api.UpdateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		product, err := updateProduct(c.Request().Context(), db, id, store.ProductPatch{
			Name:           req.Name,
			BrandID:        req.BrandID,
			ModelID:        req.ModelID,
			CategoryID:     req.CategoryID,
			Description:    req.Description,
			AvailableStock: req.AvailableStock,
			IsActive:       req.IsActive,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	}
}

// @Summary     Delete a product by ID
// @Tags        products
// @Param       product_id path int true "Product ID"
// @Success     204 "No Content"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [delete]
func DeleteProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		if err := deleteProduct(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
