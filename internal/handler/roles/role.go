package roles

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
	getRoleByID = store.GetRoleByID
	listRoles   = store.ListRoles
	createRole  = store.CreateRole
	updateRole  = store.UpdateRole
	deleteRole  = store.DeleteRole
)

// @Summary     List roles
// @Tags        roles
// @Produce     json
// @Success     200 {array} api.RoleResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles [get]
func ListRolesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		found, err := listRoles(c.Request().Context(), db)
		if err != nil {
			return handler.StoreError(c, err)
		}
		resp := make([]api.RoleResponse, 0, len(found))
		for _, r := range found {
			resp = append(resp, api.NewRoleResponse(r))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a role by ID
// @Tags        roles
// @Produce     json
// @Param       role_id path int true "Role ID"
// @Success     200 {object} api.RoleResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles/{role_id} [get]
func GetRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("role_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid role ID"})
		}
		role, err := getRoleByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewRoleResponse(*role))
	}
}

// @Summary     Create a role
// @Tags        roles
// @Accept      json
// @Produce     json
// @Param       role body api.CreateRoleRequest true "Role fields"
// @Success     201 {object} api.RoleResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles [post]
func CreateRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		role, err := createRole(c.Request().Context(), db, &model.Role{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewRoleResponse(*role))
	}
}

// @Summary     Update a role by ID
// @Tags        roles
// @Accept      json
// @Produce     json
// @Param       role_id path int true "Role ID"
// @Param       role body api.UpdateRoleRequest true "Fields to update"
// @Success     200 {object} api.RoleResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles/{role_id} [patch]
func UpdateRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("role_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid role ID"})
		}
		var req api.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		role, err := updateRole(c.Request().Context(), db, id, store.RolePatch{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return handler.StoreError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewRoleResponse(*role))
	}
}

// @Summary     Delete a role by ID
// @Tags        roles
// @Param       role_id path int true "Role ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /roles/{role_id} [delete]
func DeleteRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("role_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid role ID"})
		}
		if err := deleteRole(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
