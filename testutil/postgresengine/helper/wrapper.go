// Package helper wires a disposable Postgres-backed Store for engine tests.
package helper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/circulib/lending-ledger-go/lending/postgresengine"
	"github.com/circulib/lending-ledger-go/testutil/postgresengine/config"
)

// Adapter type constants, selected with the ADAPTER_TYPE environment variable.
const (
	adapterTypeEnvVar = "ADAPTER_TYPE"

	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const createSchemaDDL = `
CREATE TABLE IF NOT EXISTS items (
    id        text PRIMARY KEY,
    title     text NOT NULL,
    creator   text NOT NULL,
    available boolean NOT NULL
);

CREATE TABLE IF NOT EXISTS borrowers (
    id          text PRIMARY KEY,
    name        text NOT NULL,
    contact     jsonb NOT NULL,
    canceled_at timestamptz
);

CREATE TABLE IF NOT EXISTS staff (
    id   text PRIMARY KEY,
    name text NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
    loan_number bigint PRIMARY KEY,
    item_id     text NOT NULL,
    borrower_id text NOT NULL,
    issued_by   text NOT NULL,
    issued_at   timestamptz NOT NULL,
    returned_at timestamptz
);`

const truncateTablesSQL = `TRUNCATE TABLE items, borrowers, staff, loans;`

// Wrapper abstracts over the three supported database adapters.
type Wrapper interface {
	Store() postgresengine.Store
	Close()
}

// pgxPoolWrapper wraps pgxpool-based testing.
type pgxPoolWrapper struct {
	pool  *pgxpool.Pool
	store postgresengine.Store
}

func (w *pgxPoolWrapper) Store() postgresengine.Store {
	return w.store
}

func (w *pgxPoolWrapper) Close() {
	w.pool.Close()
}

// sqlDBWrapper wraps sql.DB-based testing.
type sqlDBWrapper struct {
	db    *sql.DB
	store postgresengine.Store
}

func (w *sqlDBWrapper) Store() postgresengine.Store {
	return w.store
}

func (w *sqlDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// sqlxWrapper wraps sqlx.DB-based testing.
type sqlxWrapper struct {
	db    *sqlx.DB
	store postgresengine.Store
}

func (w *sqlxWrapper) Store() postgresengine.Store {
	return w.store
}

func (w *sqlxWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SetupPostgresStore connects to the configured test database with the
// adapter selected by ADAPTER_TYPE (pgx.pool when unset), ensures an empty
// schema and returns a wrapper around a fresh Store.
// The test is skipped when no test database is configured.
func SetupPostgresStore(t testing.TB) Wrapper {
	t.Helper()

	skipWithoutTestDatabase(t)

	ctx := context.Background()

	switch adapterTypeFromEnv() {
	case typePGXPool:
		pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolTestConfig())
		require.NoError(t, err)

		_, err = pool.Exec(ctx, createSchemaDDL)
		require.NoError(t, err)

		_, err = pool.Exec(ctx, truncateTablesSQL)
		require.NoError(t, err)

		store, err := postgresengine.NewStoreFromPGXPool(pool)
		require.NoError(t, err)

		wrapper := &pgxPoolWrapper{pool: pool, store: store}
		t.Cleanup(wrapper.Close)

		return wrapper

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		_, err := db.ExecContext(ctx, createSchemaDDL)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, truncateTablesSQL)
		require.NoError(t, err)

		store, err := postgresengine.NewStoreFromSQLDB(db)
		require.NoError(t, err)

		wrapper := &sqlDBWrapper{db: db, store: store}
		t.Cleanup(wrapper.Close)

		return wrapper

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()

		_, err := db.ExecContext(ctx, createSchemaDDL)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, truncateTablesSQL)
		require.NoError(t, err)

		store, err := postgresengine.NewStoreFromSQLX(db)
		require.NoError(t, err)

		wrapper := &sqlxWrapper{db: db, store: store}
		t.Cleanup(wrapper.Close)

		return wrapper

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", os.Getenv(adapterTypeEnvVar)))
	}
}

// TryCreateStoreWithTableNames creates a Store with the given table names on
// the adapter selected by ADAPTER_TYPE and returns the construction error.
func TryCreateStoreWithTableNames(t testing.TB, tables postgresengine.TableNames) error {
	t.Helper()

	skipWithoutTestDatabase(t)

	options := []postgresengine.Option{postgresengine.WithTableNames(tables)}

	switch adapterTypeFromEnv() {
	case typePGXPool:
		pool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		require.NoError(t, err)
		defer pool.Close()

		_, err = postgresengine.NewStoreFromPGXPool(pool, options...)

		return err

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()
		defer func(db *sql.DB) {
			_ = db.Close() // ignore error
		}(db)

		_, err := postgresengine.NewStoreFromSQLDB(db, options...)

		return err

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()
		defer func(db *sqlx.DB) {
			_ = db.Close() // ignore error
		}(db)

		_, err := postgresengine.NewStoreFromSQLX(db, options...)

		return err

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", os.Getenv(adapterTypeEnvVar)))
	}
}

func skipWithoutTestDatabase(t testing.TB) {
	t.Helper()

	if !config.PostgresTestDSNConfigured() {
		t.Skipf("set %s to run the Postgres engine tests", config.PostgresDSNEnvVar)
	}
}

func adapterTypeFromEnv() string {
	adapterType := strings.ToLower(os.Getenv(adapterTypeEnvVar))
	if adapterType == "" {
		return typePGXPool
	}

	return adapterType
}
