package roles

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	getRoleByID = store.GetRoleByID
	listRoles = store.ListRoles
	createRole = store.CreateRole
	updateRole = store.UpdateRole
	deleteRole = store.DeleteRole
}

func newCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/roles", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newParamCtx(e *echo.Echo, method, val, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/roles/"+val, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/roles/:role_id")
	c.SetParamNames("role_id")
	c.SetParamValues(val)
	return c, rec
}

func TestListRolesHandler(t *testing.T) {
	e := echo.New()

	t.Run("empty list is an empty array", func(t *testing.T) {
		t.Cleanup(restore)
		listRoles = func(_ context.Context, _ database.Querier) ([]model.Role, error) {
			return nil, nil
		}
		ctx, rec := newCtx(e, http.MethodGet, "")
		require.NoError(t, ListRolesHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		listRoles = func(_ context.Context, _ database.Querier) ([]model.Role, error) {
			return []model.Role{{ID: 1, Name: "assistant"}}, nil
		}
		ctx, rec := newCtx(e, http.MethodGet, "")
		require.NoError(t, ListRolesHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "assistant")
	})
}

func TestGetRoleHandler(t *testing.T) {
	e := echo.New()

	t.Run("bad id", func(t *testing.T) {
		ctx, rec := newParamCtx(e, http.MethodGet, "x", "")
		require.NoError(t, GetRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getRoleByID = func(_ context.Context, _ database.Querier, _ int) (*model.Role, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "99", "")
		require.NoError(t, GetRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getRoleByID = func(_ context.Context, _ database.Querier, roleID int) (*model.Role, error) {
			return &model.Role{ID: roleID, Name: "assistant"}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "2", "")
		require.NoError(t, GetRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "assistant")
	})
}

func TestCreateRoleHandler(t *testing.T) {
	e := echo.New()

	t.Run("validate error", func(t *testing.T) {
		e.Validator = &stubValidator{err: errors.New("name required")}
		ctx, rec := newCtx(e, http.MethodPost, `{}`)
		require.NoError(t, CreateRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createRole = func(_ context.Context, _ database.Querier, _ *model.Role) (*model.Role, error) {
			return nil, store.ErrConflict
		}
		ctx, rec := newCtx(e, http.MethodPost, `{"name":"assistant"}`)
		require.NoError(t, CreateRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createRole = func(_ context.Context, _ database.Querier, r *model.Role) (*model.Role, error) {
			r.ID = 3
			return r, nil
		}
		ctx, rec := newCtx(e, http.MethodPost, `{"name":"technician"}`)
		require.NoError(t, CreateRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":3`)
	})
}

func TestUpdateRoleHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateRole = func(_ context.Context, _ database.Querier, _ int, _ store.RolePatch) (*model.Role, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodPatch, "99", `{"name":"x"}`)
		require.NoError(t, UpdateRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateRole = func(_ context.Context, _ database.Querier, roleID int, p store.RolePatch) (*model.Role, error) {
			require.NotNil(t, p.Name)
			return &model.Role{ID: roleID, Name: *p.Name}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodPatch, "2", `{"name":"lead"}`)
		require.NoError(t, UpdateRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "lead")
	})
}

func TestDeleteRoleHandler(t *testing.T) {
	e := echo.New()

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		deleteRole = func(_ context.Context, _ database.Querier, roleID int) error {
			require.Equal(t, 2, roleID)
			return nil
		}
		ctx, rec := newParamCtx(e, http.MethodDelete, "2", "")
		require.NoError(t, DeleteRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		deleteRole = func(_ context.Context, _ database.Querier, _ int) error {
			return store.ErrNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodDelete, "99", "")
		require.NoError(t, DeleteRoleHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
