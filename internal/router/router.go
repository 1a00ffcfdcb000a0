// Package router wires every route to its handler and guard.
package router

import (
	"github.com/labstack/echo/v4"

	"labdic-inventory/internal/cache"
	"labdic-inventory/internal/database"
	"labdic-inventory/internal/handler"
	"labdic-inventory/internal/handler/auth"
	"labdic-inventory/internal/handler/inventory"
	"labdic-inventory/internal/handler/roles"
	"labdic-inventory/internal/handler/users"
	"labdic-inventory/internal/middleware"
	"labdic-inventory/internal/policy"
	"labdic-inventory/internal/service"
	"labdic-inventory/internal/store"
	"labdic-inventory/internal/worker"
)

// Setup registers all routes under /api. Guards come from the policy
// table; each route names its resource and action once, here.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, tokens *service.Tokens, accounts *service.Accounts) {
	guard := &middleware.Auth{DB: db, Tokens: tokens}
	api := e.Group("/api")

	api.GET("/ping", handler.PingHandler(db, rdb), guard.RequireAuth)

	api.POST("/auth/login", auth.LoginHandler(db, accounts, tokens))

	// Self-service routes need identity only, no policy check.
	apiMe := api.Group("/users/me", guard.RequireAuth)
	apiMe.GET("", users.GetMeHandler())
	apiMe.PATCH("/password", users.UpdateMyPasswordHandler(db, accounts))

	apiUsers := api.Group("/users")
	apiUsers.GET("", users.ListUsersHandler(db), guard.Require(policy.Users, policy.Read))
	apiUsers.POST("", users.CreateUserHandler(db, accounts), guard.Require(policy.Users, policy.Create))
	apiUsers.GET("/:user_id", users.GetUserHandler(db), guard.Require(policy.Users, policy.Read))
	apiUsers.PATCH("/:user_id", users.UpdateUserHandler(db, accounts), guard.Require(policy.Users, policy.Update))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db, accounts), guard.Require(policy.Users, policy.Delete))

	apiRoles := api.Group("/roles")
	apiRoles.GET("", roles.ListRolesHandler(db), guard.Require(policy.Roles, policy.Read))
	apiRoles.POST("", roles.CreateRoleHandler(db), guard.Require(policy.Roles, policy.Create))
	apiRoles.GET("/:role_id", roles.GetRoleHandler(db), guard.Require(policy.Roles, policy.Read))
	apiRoles.PATCH("/:role_id", roles.UpdateRoleHandler(db), guard.Require(policy.Roles, policy.Update))
	apiRoles.DELETE("/:role_id", roles.DeleteRoleHandler(db), guard.Require(policy.Roles, policy.Delete))

	// The five lookup tables share one handler set.
	catalogs := map[string]store.Catalog{
		"/brands":     store.Brands,
		"/models":     store.Models,
		"/categories": store.Categories,
		"/statuses":   store.Statuses,
		"/ubications": store.Ubications,
	}
	for prefix, cat := range catalogs {
		h := inventory.CatalogHandlers{Catalog: cat}
		g := api.Group(prefix)
		g.GET("", h.List(db), guard.Require(policy.Catalogs, policy.Read))
		g.POST("", h.Create(db), guard.Require(policy.Catalogs, policy.Create))
		g.GET("/:id", h.Get(db), guard.Require(policy.Catalogs, policy.Read))
		g.PATCH("/:id", h.Update(db), guard.Require(policy.Catalogs, policy.Update))
		g.DELETE("/:id", h.Delete(db), guard.Require(policy.Catalogs, policy.Delete))
	}

	apiProducts := api.Group("/products")
	apiProducts.GET("", inventory.ListProductsHandler(db), guard.Require(policy.Products, policy.Read))
	apiProducts.POST("", inventory.CreateProductHandler(db), guard.Require(policy.Products, policy.Create))
	apiProducts.GET("/:product_id", inventory.GetProductHandler(db), guard.Require(policy.Products, policy.Read))
	apiProducts.PATCH("/:product_id", inventory.UpdateProductHandler(db), guard.Require(policy.Products, policy.Update))
	apiProducts.DELETE("/:product_id", inventory.DeleteProductHandler(db), guard.Require(policy.Products, policy.Delete))

	apiDevices := api.Group("/devices")
	apiDevices.GET("", inventory.ListDevicesHandler(db), guard.Require(policy.Devices, policy.Read))
	apiDevices.POST("", inventory.CreateDeviceHandler(db), guard.Require(policy.Devices, policy.Create))
	apiDevices.GET("/:device_id", inventory.GetDeviceHandler(db), guard.Require(policy.Devices, policy.Read))
	apiDevices.PATCH("/:device_id", inventory.UpdateDeviceHandler(db), guard.Require(policy.Devices, policy.Update))
	apiDevices.PATCH("/:device_id/status", inventory.UpdateDeviceStatusHandler(db, wp), guard.Require(policy.Devices, policy.Update))
	apiDevices.GET("/:device_id/status-logs", inventory.ListDeviceStatusLogsHandler(db), guard.Require(policy.Devices, policy.Read))
	apiDevices.DELETE("/:device_id", inventory.DeleteDeviceHandler(db), guard.Require(policy.Devices, policy.Delete))

	apiLoans := api.Group("/loan-requests")
	apiLoans.GET("", inventory.ListLoanRequestsHandler(db), guard.Require(policy.Loans, policy.Read))
	apiLoans.POST("", inventory.CreateLoanRequestHandler(db), guard.Require(policy.Loans, policy.Create))
	apiLoans.GET("/:loan_id", inventory.GetLoanRequestHandler(db), guard.Require(policy.Loans, policy.Read))
	apiLoans.PATCH("/:loan_id", inventory.UpdateLoanRequestHandler(db), guard.Require(policy.Loans, policy.Update))
	apiLoans.DELETE("/:loan_id", inventory.DeleteLoanRequestHandler(db), guard.Require(policy.Loans, policy.Delete))
}
