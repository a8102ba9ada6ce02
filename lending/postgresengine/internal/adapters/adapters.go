// Package adapters wraps the supported database client libraries behind a
// minimal query/exec interface so the engine can build SQL once and run it
// against pgx pools, database/sql or sqlx connections alike.
package adapters

import "context"

// DBAdapter defines the database operations needed by the lending store.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
