package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/circulib/lending-ledger-go/lending"
	"github.com/circulib/lending-ledger-go/lending/postgresengine/internal/adapters"
)

const (
	defaultItemsTableName     = "items"
	defaultBorrowersTableName = "borrowers"
	defaultStaffTableName     = "staff"
	defaultLoansTableName     = "loans"

	logMsgBuildQueryFailed   = "failed to build query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgStaleItemState     = "stale item availability state detected"
	logMsgQueryCompleted     = "query completed"
	logMsgLoanAppended       = "loan record appended"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "lending store operation: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrTable             = "table"
	logAttrRowCount          = "row_count"
	logAttrDurationMS        = "duration_ms"
	logAttrLoanNumber        = "loan_number"
	logAttrItemID            = "item_id"

	colID           = "id"
	colTitle        = "title"
	colCreator      = "creator"
	colAvailable    = "available"
	colName         = "name"
	colContact      = "contact"
	colCanceledAt   = "canceled_at"
	colLoanNumber   = "loan_number"
	colItemID       = "item_id"
	colBorrowerID   = "borrower_id"
	colIssuedBy     = "issued_by"
	colIssuedAt     = "issued_at"
	colReturnedAt   = "returned_at"
	cteNext         = "next"
	aliasMaxNumber  = "max_number"
	dialectPostgres = "postgres"
	castJsonb       = "?::jsonb"
	matchAnything   = "%"

	logActionQuery = "query"
	logActionExec  = "exec"
)

// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// TableNames holds the names of the four tables the engine works on.
type TableNames struct {
	Items     string
	Borrowers string
	Staff     string
	Loans     string
}

func defaultTableNames() TableNames {
	return TableNames{
		Items:     defaultItemsTableName,
		Borrowers: defaultBorrowersTableName,
		Staff:     defaultStaffTableName,
		Loans:     defaultLoansTableName,
	}
}

// Store is the PostgreSQL-backed implementation of the lending repositories.
// It leverages a database adapter and supports customizable logging and
// table name configuration.
//
// Store implements lending.ItemRepository, lending.BorrowerRepository,
// lending.StaffRepository and lending.LoanRepository.
type Store struct {
	db     adapters.DBAdapter
	tables TableNames
	logger Logger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lending.ErrNilDatabaseConnection
	}

	return applyOptions(Store{db: adapters.NewPGXAdapter(db), tables: defaultTableNames()}, options)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lending.ErrNilDatabaseConnection
	}

	return applyOptions(Store{db: adapters.NewSQLAdapter(db), tables: defaultTableNames()}, options)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lending.ErrNilDatabaseConnection
	}

	return applyOptions(Store{db: adapters.NewSQLXAdapter(db), tables: defaultTableNames()}, options)
}

func applyOptions(store Store, options []Option) (Store, error) {
	for _, option := range options {
		if err := option(&store); err != nil {
			return Store{}, err
		}
	}

	return store, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (s Store) executeQuery(ctx context.Context, sqlQuery string) (adapters.DBRows, time.Duration, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)

		return nil, duration, errors.Join(lending.ErrQueryingStoreFailed, queryErr)
	}

	return rows, duration, nil
}

// executeStatement executes a SQL statement and returns the affected row count with timing information.
func (s Store) executeStatement(ctx context.Context, sqlQuery string) (int64, time.Duration, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionExec, duration)

	if execErr != nil {
		s.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)

		return 0, duration, errors.Join(lending.ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())

		return 0, duration, errors.Join(lending.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (s Store) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs critical failures at error level if the logger is configured.
func (s Store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
