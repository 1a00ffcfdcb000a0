package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/policy"
	"labdic-inventory/internal/service"
	"labdic-inventory/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	getUserByUsername = store.GetUserByUsername
	listUserRoles = store.ListUserRoles
}

func newCtx(e *echo.Echo, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func testAuth() (*Auth, string) {
	tokens := &service.Tokens{Secret: []byte("test-secret"), TTL: time.Hour}
	raw, err := tokens.Issue("jperez", false)
	if err != nil {
		panic(err)
	}
	return &Auth{DB: &database.FakeDB{}, Tokens: tokens}, raw
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()

	t.Run("missing header", func(t *testing.T) {
		t.Cleanup(restore)
		a, _ := testAuth()
		ctx, _ := newCtx(e, "")
		err := a.RequireAuth(okHandler)(ctx)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Cleanup(restore)
		a, _ := testAuth()
		ctx, _ := newCtx(e, "Basic abc")
		err := a.RequireAuth(okHandler)(ctx)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Cleanup(restore)
		a, _ := testAuth()
		ctx, _ := newCtx(e, "Bearer not.a.token")
		err := a.RequireAuth(okHandler)(ctx)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("subject no longer resolves", func(t *testing.T) {
		t.Cleanup(restore)
		a, raw := testAuth()
		getUserByUsername = func(_ context.Context, _ database.Querier, _ string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		ctx, _ := newCtx(e, "Bearer "+raw)
		err := a.RequireAuth(okHandler)(ctx)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("valid token attaches user with roles", func(t *testing.T) {
		t.Cleanup(restore)
		a, raw := testAuth()
		getUserByUsername = func(_ context.Context, _ database.Querier, username string) (*model.User, error) {
			require.Equal(t, "jperez", username)
			return &model.User{ID: 5, Username: username, IsActive: true}, nil
		}
		listUserRoles = func(_ context.Context, _ database.Querier, userID int) ([]model.Role, error) {
			require.Equal(t, 5, userID)
			return []model.Role{{ID: 2, Name: "assistant"}}, nil
		}
		ctx, rec := newCtx(e, "Bearer "+raw)
		require.NoError(t, a.RequireAuth(okHandler)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		user, ok := CurrentUser(ctx)
		require.True(t, ok)
		require.Equal(t, 5, user.ID)
		require.Len(t, user.Roles, 1)
	})

	t.Run("case insensitive bearer", func(t *testing.T) {
		t.Cleanup(restore)
		a, raw := testAuth()
		getUserByUsername = func(_ context.Context, _ database.Querier, username string) (*model.User, error) {
			return &model.User{ID: 5, Username: username}, nil
		}
		listUserRoles = func(_ context.Context, _ database.Querier, _ int) ([]model.Role, error) {
			return nil, nil
		}
		ctx, rec := newCtx(e, "bearer "+raw)
		require.NoError(t, a.RequireAuth(okHandler)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequire(t *testing.T) {
	e := echo.New()

	resolveAs := func(isAdmin bool) {
		getUserByUsername = func(_ context.Context, _ database.Querier, username string) (*model.User, error) {
			return &model.User{ID: 5, Username: username, IsAdmin: isAdmin}, nil
		}
		listUserRoles = func(_ context.Context, _ database.Querier, _ int) ([]model.Role, error) {
			return nil, nil
		}
	}

	t.Run("admin action rejected for plain user", func(t *testing.T) {
		t.Cleanup(restore)
		a, raw := testAuth()
		resolveAs(false)
		ctx, _ := newCtx(e, "Bearer "+raw)
		err := a.Require(policy.Users, policy.Create)(okHandler)(ctx)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("admin action allowed for admin", func(t *testing.T) {
		t.Cleanup(restore)
		a, raw := testAuth()
		resolveAs(true)
		ctx, rec := newCtx(e, "Bearer "+raw)
		require.NoError(t, a.Require(policy.Users, policy.Create)(okHandler)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("authenticated action allowed for plain user", func(t *testing.T) {
		t.Cleanup(restore)
		a, raw := testAuth()
		resolveAs(false)
		ctx, rec := newCtx(e, "Bearer "+raw)
		require.NoError(t, a.Require(policy.Loans, policy.Create)(okHandler)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated request never reaches the policy", func(t *testing.T) {
		t.Cleanup(restore)
		a, _ := testAuth()
		ctx, _ := newCtx(e, "")
		err := a.Require(policy.Loans, policy.Read)(okHandler)(ctx)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	})
}
