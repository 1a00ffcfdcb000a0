package database

import (
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func restoreMigrate() {
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = func(f fs.FS, path string) (src.Driver, error) { return iofs.New(f, path) }
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		return migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
	}
}

type fakeMigrate struct {
	upErr   error
	downErr error
	upCalls int
}

func (f *fakeMigrate) Up() error {
	f.upCalls++
	return f.upErr
}

func (f *fakeMigrate) Down() error { return f.downErr }

// stubMigrateSeams leaves the iofs source real, since the embedded
// migrations are always present, and fakes the rest.
func stubMigrateSeams(m *fakeMigrate) {
	sqlOpenDB = func(driverName, dsn string) (*sql.DB, error) {
		return sql.Open(driverName, dsn)
	}
	postgresWithInstanceFn = func(_ *sql.DB, _ *postgres.Config) (dbdriver.Driver, error) {
		return nil, nil
	}
	migrateNewWithInstance = func(_ string, _ src.Driver, _ string, _ dbdriver.Driver) (migrateInstance, error) {
		return m, nil
	}
}

func TestRunMigrations(t *testing.T) {
	t.Run("applies pending migrations", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		m := &fakeMigrate{}
		stubMigrateSeams(m)
		require.NoError(t, RunMigrations("postgres://localhost/labdic"))
		require.Equal(t, 1, m.upCalls)
	})

	t.Run("no change is not an error", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		stubMigrateSeams(&fakeMigrate{upErr: migrate.ErrNoChange})
		require.NoError(t, RunMigrations("postgres://localhost/labdic"))
	})

	t.Run("migration failure surfaces", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		stubMigrateSeams(&fakeMigrate{upErr: errors.New("dirty database")})
		require.Error(t, RunMigrations("postgres://localhost/labdic"))
	})

	t.Run("open failure surfaces", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		sqlOpenDB = func(_, _ string) (*sql.DB, error) {
			return nil, errors.New("unknown driver")
		}
		require.Error(t, RunMigrations("postgres://localhost/labdic"))
	})

	t.Run("driver failure surfaces", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		stubMigrateSeams(&fakeMigrate{})
		postgresWithInstanceFn = func(_ *sql.DB, _ *postgres.Config) (dbdriver.Driver, error) {
			return nil, errors.New("connection refused")
		}
		require.Error(t, RunMigrations("postgres://localhost/labdic"))
	})
}

func TestRollbackAll(t *testing.T) {
	t.Run("reverts everything", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		stubMigrateSeams(&fakeMigrate{})
		require.NoError(t, RollbackAll("postgres://localhost/labdic"))
	})

	t.Run("no change is not an error", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		stubMigrateSeams(&fakeMigrate{downErr: migrate.ErrNoChange})
		require.NoError(t, RollbackAll("postgres://localhost/labdic"))
	})

	t.Run("failure surfaces", func(t *testing.T) {
		t.Cleanup(restoreMigrate)
		stubMigrateSeams(&fakeMigrate{downErr: errors.New("dirty database")})
		require.Error(t, RollbackAll("postgres://localhost/labdic"))
	})
}
