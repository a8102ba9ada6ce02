package postgresengine

import (
	"github.com/circulib/lending-ledger-go/lending"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithTableNames overrides the default table names for the Store.
func WithTableNames(tables TableNames) Option {
	return func(s *Store) error {
		if tables.Items == "" || tables.Borrowers == "" || tables.Staff == "" || tables.Loans == "" {
			return lending.ErrEmptyTableName
		}

		s.tables = tables

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Row counts, durations, stale state detections (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}
