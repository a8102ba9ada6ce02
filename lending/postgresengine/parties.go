package postgresengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/circulib/lending-ledger-go/lending"
)

const pgUniqueViolationCode = "23505"

// InsertBorrower appends a borrower, rejecting duplicate identifiers.
func (s Store) InsertBorrower(ctx context.Context, borrower lending.Borrower) error {
	contactJSON, marshalErr := jsoniter.ConfigFastest.Marshal(borrower.Contact)
	if marshalErr != nil {
		return errors.Join(lending.ErrMarshalingContactFailed, marshalErr)
	}

	record := goqu.Record{
		colID:      borrower.ID.String(),
		colName:    borrower.Name,
		colContact: goqu.L(castJsonb, string(contactJSON)),
	}

	if borrower.IsCanceled() {
		record[colCanceledAt] = borrower.CanceledAt
	} else {
		record[colCanceledAt] = nil
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Borrowers).
		Rows(record)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Borrowers)

		return errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	_, _, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		if isUniqueViolation(execErr) {
			return lending.ErrDuplicateBorrower
		}

		return execErr
	}

	return nil
}

// BorrowerByID returns the borrower with the given identifier.
func (s Store) BorrowerByID(ctx context.Context, borrowerID uuid.UUID) (lending.Borrower, error) {
	var none lending.Borrower

	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tables.Borrowers).
		Select(colID, colName, colContact, colCanceledAt).
		Where(goqu.Ex{colID: borrowerID.String()})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Borrowers)

		return none, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	borrowers, err := s.queryBorrowers(ctx, sqlQuery)
	if err != nil {
		return none, err
	}

	if len(borrowers) == 0 {
		return none, lending.ErrBorrowerNotFound
	}

	return borrowers[0], nil
}

// UpdateBorrower replaces the stored borrower with the same identifier.
func (s Store) UpdateBorrower(ctx context.Context, borrower lending.Borrower) error {
	contactJSON, marshalErr := jsoniter.ConfigFastest.Marshal(borrower.Contact)
	if marshalErr != nil {
		return errors.Join(lending.ErrMarshalingContactFailed, marshalErr)
	}

	record := goqu.Record{
		colName:    borrower.Name,
		colContact: goqu.L(castJsonb, string(contactJSON)),
	}

	if borrower.IsCanceled() {
		record[colCanceledAt] = borrower.CanceledAt
	} else {
		record[colCanceledAt] = nil
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.tables.Borrowers).
		Set(record).
		Where(goqu.Ex{colID: borrower.ID.String()})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Borrowers)

		return errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, _, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return lending.ErrBorrowerNotFound
	}

	return nil
}

// AllBorrowers returns every registered borrower ordered by name.
func (s Store) AllBorrowers(ctx context.Context) ([]lending.Borrower, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tables.Borrowers).
		Select(colID, colName, colContact, colCanceledAt).
		Order(goqu.I(colName).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Borrowers)

		return nil, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	return s.queryBorrowers(ctx, sqlQuery)
}

// InsertStaff appends a staff member, rejecting duplicate identifiers.
func (s Store) InsertStaff(ctx context.Context, staff lending.StaffMember) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Staff).
		Rows(goqu.Record{
			colID:   staff.ID.String(),
			colName: staff.Name,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Staff)

		return errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	_, _, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		if isUniqueViolation(execErr) {
			return lending.ErrDuplicateStaff
		}

		return execErr
	}

	return nil
}

// StaffByID returns the staff member with the given identifier.
func (s Store) StaffByID(ctx context.Context, staffID uuid.UUID) (lending.StaffMember, error) {
	var none lending.StaffMember

	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tables.Staff).
		Select(colID, colName).
		Where(goqu.Ex{colID: staffID.String()})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Staff)

		return none, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	staff, err := s.queryStaff(ctx, sqlQuery)
	if err != nil {
		return none, err
	}

	if len(staff) == 0 {
		return none, lending.ErrStaffNotFound
	}

	return staff[0], nil
}

// AllStaff returns every registered staff member ordered by name.
func (s Store) AllStaff(ctx context.Context) ([]lending.StaffMember, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tables.Staff).
		Select(colID, colName).
		Order(goqu.I(colName).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Staff)

		return nil, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	return s.queryStaff(ctx, sqlQuery)
}

// queryBorrowers runs a select against the borrowers table and scans the result rows.
func (s Store) queryBorrowers(ctx context.Context, sqlQuery string) ([]lending.Borrower, error) {
	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	borrowers := make([]lending.Borrower, 0)

	for rows.Next() {
		var idRaw string
		var contactJSON []byte
		var canceledAt sql.NullTime
		borrower := lending.Borrower{}

		if scanErr := rows.Scan(&idRaw, &borrower.Name, &contactJSON, &canceledAt); scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error(), logAttrTable, s.tables.Borrowers)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, scanErr)
		}

		id, parseErr := uuid.Parse(idRaw)
		if parseErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, parseErr.Error(), logAttrTable, s.tables.Borrowers)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, parseErr)
		}

		if unmarshalErr := jsoniter.ConfigFastest.Unmarshal(contactJSON, &borrower.Contact); unmarshalErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, unmarshalErr.Error(), logAttrTable, s.tables.Borrowers)

			return nil, errors.Join(lending.ErrUnmarshalingContactFailed, unmarshalErr)
		}

		borrower.ID = id

		if canceledAt.Valid {
			borrower.CanceledAt = lending.ToTimestamp(canceledAt.Time)
		}

		borrowers = append(borrowers, borrower)
	}

	s.logOperation(logMsgQueryCompleted, logAttrTable, s.tables.Borrowers, logAttrRowCount, len(borrowers), logAttrDurationMS, durationToMilliseconds(duration))

	return borrowers, nil
}

// queryStaff runs a select against the staff table and scans the result rows.
func (s Store) queryStaff(ctx context.Context, sqlQuery string) ([]lending.StaffMember, error) {
	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	staff := make([]lending.StaffMember, 0)

	for rows.Next() {
		var idRaw string
		member := lending.StaffMember{}

		if scanErr := rows.Scan(&idRaw, &member.Name); scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error(), logAttrTable, s.tables.Staff)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, scanErr)
		}

		id, parseErr := uuid.Parse(idRaw)
		if parseErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, parseErr.Error(), logAttrTable, s.tables.Staff)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, parseErr)
		}

		member.ID = id
		staff = append(staff, member)
	}

	s.logOperation(logMsgQueryCompleted, logAttrTable, s.tables.Staff, logAttrRowCount, len(staff), logAttrDurationMS, durationToMilliseconds(duration))

	return staff, nil
}

// isUniqueViolation detects a primary key conflict across the supported drivers.
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolationCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolationCode
	}

	return false
}
