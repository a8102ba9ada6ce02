package postgresengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/circulib/lending-ledger-go/lending"
)

// AppendLoan appends a record, assigning the next monotonically increasing
// loan number inside the insert statement: a CTE computes the current
// maximum and the insert selects max+1, so numbering stays gapless and
// monotonic without a separate sequence.
func (s Store) AppendLoan(ctx context.Context, record lending.LoanRecord) (lending.LoanRecord, error) {
	var none lending.LoanRecord

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(s.tables.Loans).
		Select(goqu.COALESCE(goqu.MAX(colLoanNumber), 0).As(aliasMaxNumber))

	// Define the SELECT for the INSERT
	selectStmt := builder.
		From(cteNext).
		Select(
			goqu.L("? + 1", goqu.C(aliasMaxNumber)),
			goqu.V(record.ItemID.String()),
			goqu.V(record.BorrowerID.String()),
			goqu.V(record.IssuedBy.String()),
			goqu.V(record.IssuedAt),
		)

	// Finalize the full INSERT query
	insertStmt := builder.
		Insert(s.tables.Loans).
		Cols(colLoanNumber, colItemID, colBorrowerID, colIssuedBy, colIssuedAt).
		FromQuery(selectStmt).
		With(cteNext, cteStmt).
		Returning(goqu.C(colLoanNumber))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Loans)

		return none, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return none, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return none, lending.ErrAppendingLoanFailed
	}

	var assignedNumber int64
	if scanErr := rows.Scan(&assignedNumber); scanErr != nil {
		s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error(), logAttrTable, s.tables.Loans)

		return none, errors.Join(lending.ErrScanningDBRowFailed, scanErr)
	}

	record.Number = lending.LoanNumberUint(assignedNumber)

	s.logOperation(logMsgLoanAppended, logAttrLoanNumber, record.Number, logAttrDurationMS, durationToMilliseconds(duration))

	return record, nil
}

// LoanByNumber returns the record with the given number.
func (s Store) LoanByNumber(ctx context.Context, number lending.LoanNumberUint) (lending.LoanRecord, error) {
	var none lending.LoanRecord

	records, err := s.queryLoans(ctx, s.loansSelect().Where(goqu.Ex{colLoanNumber: number}))
	if err != nil {
		return none, err
	}

	if len(records) == 0 {
		return none, lending.ErrLoanNotFound
	}

	return records[0], nil
}

// UpdateLoan replaces the stored record with the same number.
func (s Store) UpdateLoan(ctx context.Context, record lending.LoanRecord) error {
	updateRecord := goqu.Record{
		colItemID:     record.ItemID.String(),
		colBorrowerID: record.BorrowerID.String(),
		colIssuedBy:   record.IssuedBy.String(),
		colIssuedAt:   record.IssuedAt,
	}

	if record.IsActive() {
		updateRecord[colReturnedAt] = nil
	} else {
		updateRecord[colReturnedAt] = record.ReturnedAt
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.tables.Loans).
		Set(updateRecord).
		Where(goqu.Ex{colLoanNumber: record.Number})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Loans)

		return errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, _, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return lending.ErrLoanNotFound
	}

	return nil
}

// ActiveLoans returns all active records, ascending by number.
func (s Store) ActiveLoans(ctx context.Context) (lending.LoanRecords, error) {
	return s.queryLoans(ctx, s.loansSelect().Where(goqu.C(colReturnedAt).IsNull()))
}

// CompletedLoans returns all completed records, ascending by number.
func (s Store) CompletedLoans(ctx context.Context) (lending.LoanRecords, error) {
	return s.queryLoans(ctx, s.loansSelect().Where(goqu.C(colReturnedAt).IsNotNull()))
}

// LoansForBorrower returns all records referencing the borrower, ascending by number.
func (s Store) LoansForBorrower(ctx context.Context, borrowerID uuid.UUID) (lending.LoanRecords, error) {
	return s.queryLoans(ctx, s.loansSelect().Where(goqu.Ex{colBorrowerID: borrowerID.String()}))
}

// ActiveLoanForItem returns the single active record referencing the item.
func (s Store) ActiveLoanForItem(ctx context.Context, itemID uuid.UUID) (lending.LoanRecord, error) {
	var none lending.LoanRecord

	records, err := s.queryLoans(ctx, s.loansSelect().Where(
		goqu.Ex{colItemID: itemID.String()},
		goqu.C(colReturnedAt).IsNull(),
	))

	if err != nil {
		return none, err
	}

	if len(records) == 0 {
		return none, lending.ErrLoanNotFound
	}

	return records[0], nil
}

func (s Store) loansSelect() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(s.tables.Loans).
		Select(colLoanNumber, colItemID, colBorrowerID, colIssuedBy, colIssuedAt, colReturnedAt).
		Order(goqu.I(colLoanNumber).Asc())
}

// queryLoans finalizes a select against the loans table and scans the result rows.
func (s Store) queryLoans(ctx context.Context, selectStmt *goqu.SelectDataset) (lending.LoanRecords, error) {
	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Loans)

		return nil, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	records := make(lending.LoanRecords, 0)

	for rows.Next() {
		var number int64
		var itemIDRaw, borrowerIDRaw, issuedByRaw string
		var returnedAt sql.NullTime
		record := lending.LoanRecord{}

		scanErr := rows.Scan(&number, &itemIDRaw, &borrowerIDRaw, &issuedByRaw, &record.IssuedAt, &returnedAt)
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error(), logAttrTable, s.tables.Loans)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, scanErr)
		}

		itemID, itemIDErr := uuid.Parse(itemIDRaw)
		borrowerID, borrowerIDErr := uuid.Parse(borrowerIDRaw)
		issuedBy, issuedByErr := uuid.Parse(issuedByRaw)

		if parseErr := errors.Join(itemIDErr, borrowerIDErr, issuedByErr); parseErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, parseErr.Error(), logAttrTable, s.tables.Loans)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, parseErr)
		}

		record.Number = lending.LoanNumberUint(number)
		record.ItemID = itemID
		record.BorrowerID = borrowerID
		record.IssuedBy = issuedBy
		record.IssuedAt = lending.ToTimestamp(record.IssuedAt)

		if returnedAt.Valid {
			record.ReturnedAt = lending.ToTimestamp(returnedAt.Time)
		}

		records = append(records, record)
	}

	s.logOperation(logMsgQueryCompleted, logAttrTable, s.tables.Loans, logAttrRowCount, len(records), logAttrDurationMS, durationToMilliseconds(duration))

	return records, nil
}
