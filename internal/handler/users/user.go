package users

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"labdic-inventory/internal/api"
	"labdic-inventory/internal/database"
	"labdic-inventory/internal/handler"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"

	"github.com/labstack/echo/v4"
)

// Indirections for tests.
var (
	getUserByID   = store.GetUserByID
	listUsers     = store.ListUsers
	listUserRoles = store.ListUserRoles
)

// @Summary     Create a new user
// @Description Create a user with a hashed password and validated role set
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user body api.CreateUserRequest true "User fields"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB, accounts accountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		user, err := accounts.Create(c.Request().Context(), db, model.User{
			Rut:      req.Rut,
			Name:     req.Name,
			Username: req.Username,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
			IsAdmin:  req.IsAdmin,
		}, req.Password, req.RoleIDs())
		if err != nil {
			return handler.StoreError(c, err)
		}

		return c.JSON(http.StatusCreated, api.NewUserResponse(*user))
	}
}

// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200 {array} api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		users, err := listUsers(ctx, db)
		if err != nil {
			return handler.StoreError(c, err)
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			roles, err := listUserRoles(ctx, db, u.ID)
			if err != nil {
				return handler.StoreError(c, err)
			}
			u.Roles = roles
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a user by ID
// @Tags        users
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, id)
		if err != nil {
			return handler.StoreError(c, err)
		}
		roles, err := listUserRoles(ctx, db, user.ID)
		if err != nil {
			return handler.StoreError(c, err)
		}
		user.Roles = roles
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// @Summary     Update a user by ID
// @Description Merge the supplied fields onto the stored user; the password
// @Description cannot be changed through this endpoint
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       user body api.UpdateUserRequest true "Fields to update"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [patch]
func UpdateUserHandler(db database.DB, accounts accountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.Email != nil {
			lowered := strings.ToLower(*req.Email)
			if _, err := mail.ParseAddress(lowered); err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
			}
			req.Email = &lowered
		}

		user, err := accounts.Update(c.Request().Context(), db, id, store.UserPatch{
			Rut:      req.Rut,
			Name:     req.Name,
			Username: req.Username,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
			IsActive: req.IsActive,
			IsAdmin:  req.IsAdmin,
		}, req.RoleIDs())
		if err != nil {
			return handler.StoreError(c, err)
		}

		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// @Summary     Delete a user by ID
// @Tags        users
// @Param       user_id path int true "User ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(db database.DB, accounts accountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if err := accounts.Delete(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
