package middleware

import (
	"net/http"
	"strings"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/policy"
	"labdic-inventory/internal/service"
	"labdic-inventory/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// Indirections for tests.
var (
	getUserByUsername = store.GetUserByUsername
	listUserRoles     = store.ListUserRoles
)

// Auth resolves the request identity from the bearer token. The subject is
// looked up on every request with roles eagerly attached, so a token whose
// subject no longer resolves is rejected.
type Auth struct {
	DB     database.DB
	Tokens *service.Tokens
}

func (a *Auth) resolve(c echo.Context) (*model.User, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}

	ctx := c.Request().Context()
	claims, err := a.Tokens.Verify(ctx, parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := getUserByUsername(ctx, a.DB, claims.Subject)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	roles, err := listUserRoles(ctx, a.DB, user.ID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve roles")
	}
	user.Roles = roles
	return user, nil
}

// Require authenticates the request and enforces the policy table for the
// given resource/action pair. It is the single guard call site per route.
func (a *Auth) Require(res policy.Resource, act policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := a.resolve(c)
			if err != nil {
				return err
			}
			if policy.Required(res, act) == policy.Admin && !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAuth authenticates without a policy check, for routes that only
// need a valid identity (health, self-service).
func (a *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := a.resolve(c)
		if err != nil {
			return err
		}
		c.Set(ContextUserKey, user)
		return next(c)
	}
}

// CurrentUser returns the identity attached by Require/RequireAuth.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}
