package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	getProductByID = store.GetProductByID
	listProducts = store.ListProducts
	createProduct = store.CreateProduct
	updateProduct = store.UpdateProduct
	deleteProduct = store.DeleteProduct

	getDeviceByID = store.GetDeviceByID
	listDevices = store.ListDevices
	createDevice = store.CreateDevice
	updateDevice = store.UpdateDevice
	updateDeviceStatus = store.UpdateDeviceStatus
	deleteDevice = store.DeleteDevice
	createStatusLog = store.CreateDeviceStatusLog
	listDeviceStatusLogs = store.ListDeviceStatusLogs

	getLoanRequestByID = store.GetLoanRequestByID
	listLoanRequests = store.ListLoanRequests
	createLoanRequest = store.CreateLoanRequest
	updateLoanRequest = store.UpdateLoanRequest
	deleteLoanRequest = store.DeleteLoanRequest
	listLoanRequestItems = store.ListLoanRequestItems
}

func newCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withParam(c echo.Context, name, val string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(val)
	return c
}

// rowScan implements pgx.Row for the catalog tests, which stub at the
// database instead of a seam.
type rowScan struct {
	scanErr error
	fill    func(dest []any)
}

func (r *rowScan) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if r.fill != nil {
		r.fill(dest)
	}
	return nil
}

func TestCatalogHandlers(t *testing.T) {
	e := echo.New()
	h := CatalogHandlers{Catalog: store.Brands}

	t.Run("List empty is an empty array", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return emptyRows{}, nil
			},
		}
		ctx, rec := newCtx(e, http.MethodGet, "/brands", "")
		require.NoError(t, h.List(db)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("Get bad id", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodGet, "/brands/x", "")
		withParam(ctx, "id", "x")
		require.NoError(t, h.Get(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Get not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &rowScan{scanErr: pgx.ErrNoRows}
			},
		}
		ctx, rec := newCtx(e, http.MethodGet, "/brands/99", "")
		withParam(ctx, "id", "99")
		require.NoError(t, h.Get(db)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Create duplicate", func(t *testing.T) {
		e.Validator = &stubValidator{}
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &rowScan{scanErr: &pgconn.PgError{Code: "23505"}}
			},
		}
		ctx, rec := newCtx(e, http.MethodPost, "/brands", `{"name":"Dell"}`)
		require.NoError(t, h.Create(db)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Create success", func(t *testing.T) {
		e.Validator = &stubValidator{}
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &rowScan{fill: func(dest []any) { *dest[0].(*int) = 4 }}
			},
		}
		ctx, rec := newCtx(e, http.MethodPost, "/brands", `{"name":"Dell"}`)
		require.NoError(t, h.Create(db)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":4`)
	})

	t.Run("Update success", func(t *testing.T) {
		e.Validator = &stubValidator{}
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &rowScan{fill: func(dest []any) {
					*dest[0].(*int) = 4
					*dest[1].(*string) = "HP"
				}}
			},
		}
		ctx, rec := newCtx(e, http.MethodPatch, "/brands/4", `{"name":"HP"}`)
		withParam(ctx, "id", "4")
		require.NoError(t, h.Update(db)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "HP")
	})

	t.Run("Delete miss", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		ctx, rec := newCtx(e, http.MethodDelete, "/brands/99", "")
		withParam(ctx, "id", "99")
		require.NoError(t, h.Delete(db)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// emptyRows is a pgx.Rows with no rows.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(_ ...any) error                          { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }
