package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"labdic-inventory/internal/cache"
	"labdic-inventory/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func pingCtx(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func stringCmd(err error) func(ctx context.Context, key string) *redis.StringCmd {
	return func(ctx context.Context, _ string) *redis.StringCmd {
		cmd := redis.NewStringCmd(ctx)
		if err != nil {
			cmd.SetErr(err)
		}
		return cmd
	}
}

func TestPingHandler(t *testing.T) {
	e := echo.New()

	t.Run("pong", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(_ context.Context) error { return nil }}
		rdb := &cache.FakeCache{GetFn: stringCmd(redis.Nil)}
		ctx, rec := pingCtx(e)
		require.NoError(t, PingHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "pong")
	})

	t.Run("database down", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(_ context.Context) error { return errors.New("down") }}
		ctx, rec := pingCtx(e)
		require.NoError(t, PingHandler(db, nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "database unhealthy")
	})

	t.Run("cache down", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(_ context.Context) error { return nil }}
		rdb := &cache.FakeCache{GetFn: stringCmd(errors.New("refused"))}
		ctx, rec := pingCtx(e)
		require.NoError(t, PingHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "cache unhealthy")
	})
}
