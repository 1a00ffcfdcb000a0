package inventory

import (
	"net/http"
	"strconv"

	"labdic-inventory/internal/api"
	"labdic-inventory/internal/database"
	"labdic-inventory/internal/handler"
	"labdic-inventory/internal/middleware"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"

	"github.com/labstack/echo/v4"
)

// Indirections for tests.
var (
	getLoanRequestByID   = store.GetLoanRequestByID
	listLoanRequests     = store.ListLoanRequests
	createLoanRequest    = store.CreateLoanRequest
	updateLoanRequest    = store.UpdateLoanRequest
	deleteLoanRequest    = store.DeleteLoanRequest
	listLoanRequestItems = store.ListLoanRequestItems
)

// @Summary     List loan requests
// @Tags        loan-requests
// @Produce     json
// @Success     200 {array} model.LoanRequest
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /loan-requests [get]
func ListLoanRequestsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		requests, err := listLoanRequests(c.Request().Context(), db)
		if err != nil {
			return handler.StoreError(c, err)
		}
		if requests == nil {
			requests = []model.LoanRequest{}
		}
		return c.JSON(http.StatusOK, requests)
	}
}

// @Summary     Get a loan request by ID, items included
// @Tags        loan-requests
// @Produce     json
// @Param       loan_id path int true "Loan request ID"
// @Success     200 {object} model.LoanRequest
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /loan-requests/{loan_id} [get]
func GetLoanRequestHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("loan_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid loan request ID"})
		}
		ctx := c.Request().Context()
		lr, err := getLoanRequestByID(ctx, db, id)
		if err != nil {
			return handler.StoreError(c, err)
		}
		items, err := listLoanRequestItems(ctx, db, lr.ID)
		if err != nil {
			return handler.StoreError(c, err)
		}
		lr.Items = items
		return c.JSON(http.StatusOK, lr)
	}
}

// CreateLoanRequestHandler files a loan request for the calling user. The
// request row and its items are written in one transaction.
// @Summary     Create a loan request
// @Tags        loan-requests
// @Accept      json
// @Produce     json
// @Param       body body api.CreateLoanRequest true "Loan request fields"
// @Success     201 {object} model.LoanRequest
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /loan-requests [post]
func CreateLoanRequestHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateLoanRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		ctx := c.Request().Context()
		tx, err := db.Begin(ctx)
		if err != nil {
			return handler.StoreError(c, err)
		}
		defer tx.Rollback(ctx)

		lr, err := createLoanRequest(ctx, tx, &model.LoanRequest{
			UserID:              user.ID,
			StatusID:            req.StatusID,
			Reason:              req.Reason,
			DeliveryDate:        req.DeliveryDate,
			EstimatedReturnDate: req.EstimatedReturnDate,
		}, req.DeviceIDs)
		if err != nil {
			return handler.StoreError(c, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusCreated, lr)
	}
}

// @Summary     Update a loan request by ID
// @Tags        loan-requests
// @Accept      json
// @Produce     json
// @Param       loan_id path int true "Loan request ID"
// @Param       body body api.UpdateLoanRequest true "Fields to update"
// @Success     200 {object} model.LoanRequest
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /loan-requests/{loan_id} [patch]
func UpdateLoanRequestHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("loan_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid loan request ID"})
		}
		var req api.UpdateLoanRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		lr, err := updateLoanRequest(c.Request().Context(), db, id, store.LoanRequestPatch{
			StatusID:            req.StatusID,
			Reason:              req.Reason,
			DeliveryDate:        req.DeliveryDate,
			EstimatedReturnDate: req.EstimatedReturnDate,
			ActualReturnDate:    req.ActualReturnDate,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, lr)
	}
}

// @Summary     Delete a loan request by ID
// @Tags        loan-requests
// @Param       loan_id path int true "Loan request ID"
// @Success     204 "No Content"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /loan-requests/{loan_id} [delete]
func DeleteLoanRequestHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("loan_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid loan request ID"})
		}
		if err := deleteLoanRequest(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
