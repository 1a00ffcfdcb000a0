package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

// fakeUserRow feeds a user through the store's scan path.
type fakeUserRow struct {
	scanErr error
	user    model.User
}

func (r *fakeUserRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.user
	*dest[0].(*int) = u.ID
	*dest[1].(*string) = u.Rut
	*dest[2].(*string) = u.Name
	*dest[3].(*string) = u.Username
	*dest[4].(*string) = u.Email
	*dest[5].(*string) = u.PasswordHash
	*dest[6].(**string) = u.Phone
	*dest[7].(**string) = u.Address
	*dest[8].(*time.Time) = u.CreatedAt
	*dest[9].(*bool) = u.IsActive
	*dest[10].(*bool) = u.IsAdmin
	return nil
}

func userDB(row *fakeUserRow) *database.FakeDB {
	return &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return row
		},
	}
}

func newLoginCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginHandler(t *testing.T) {
	e := echo.New()
	tokens := &service.Tokens{Secret: []byte("test-secret"), TTL: time.Hour}
	hasher := service.BcryptHasher{Cost: 4}
	accounts := &service.Accounts{Hasher: hasher, Tokens: tokens}

	storedHash, err := hasher.Hash("Secret123!")
	require.NoError(t, err)
	active := model.User{ID: 5, Username: "jperez", IsActive: true, IsAdmin: true, PasswordHash: storedHash}

	t.Run("validate error", func(t *testing.T) {
		e.Validator = &stubValidator{err: echo.NewHTTPError(http.StatusBadRequest, "missing password")}
		ctx, rec := newLoginCtx(e, "username=jperez")
		require.NoError(t, LoginHandler(nil, accounts, tokens)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user and wrong password share one message", func(t *testing.T) {
		e.Validator = &stubValidator{}
		cases := []*fakeUserRow{
			{scanErr: pgx.ErrNoRows},
			{user: active},
		}
		for _, row := range cases {
			ctx, rec := newLoginCtx(e, "username=jperez&password=wrong")
			require.NoError(t, LoginHandler(userDB(row), accounts, tokens)(ctx))
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), "invalid credentials")
		}
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		e.Validator = &stubValidator{}
		inactive := active
		inactive.IsActive = false
		ctx, rec := newLoginCtx(e, "username=jperez&password=Secret123!")
		require.NoError(t, LoginHandler(userDB(&fakeUserRow{user: inactive}), accounts, tokens)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid credentials")
	})

	t.Run("success returns a verifiable bearer token", func(t *testing.T) {
		e.Validator = &stubValidator{}
		ctx, rec := newLoginCtx(e, "username=jperez&password=Secret123!")
		require.NoError(t, LoginHandler(userDB(&fakeUserRow{user: active}), accounts, tokens)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"token_type":"Bearer"`)
		require.Contains(t, rec.Body.String(), `"expires_in":3600`)

		var resp struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		claims, err := tokens.Verify(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "jperez", claims.Subject)
		require.True(t, claims.IsAdmin)
	})
}
