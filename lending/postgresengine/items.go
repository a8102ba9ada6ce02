package postgresengine

import (
	"context"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/circulib/lending-ledger-go/lending"
)

// InsertItem appends an item to the catalog table. No duplicate check beyond
// the primary key is performed.
func (s Store) InsertItem(ctx context.Context, item lending.Item) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Items).
		Rows(goqu.Record{
			colID:        item.ID.String(),
			colTitle:     item.Title,
			colCreator:   item.Creator,
			colAvailable: item.Available,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Items)

		return errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	_, _, execErr := s.executeStatement(ctx, sqlQuery)

	return execErr
}

// RemoveItem removes an item by identity.
func (s Store) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.tables.Items).
		Where(goqu.Ex{colID: itemID.String()})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Items)

		return errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, _, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return lending.ErrItemNotFound
	}

	return nil
}

// ItemByID returns the item with the given identifier.
func (s Store) ItemByID(ctx context.Context, itemID uuid.UUID) (lending.Item, error) {
	var none lending.Item

	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tables.Items).
		Select(colID, colTitle, colCreator, colAvailable).
		Where(goqu.Ex{colID: itemID.String()})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Items)

		return none, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	items, err := s.queryItems(ctx, sqlQuery)
	if err != nil {
		return none, err
	}

	if len(items) == 0 {
		return none, lending.ErrItemNotFound
	}

	return items[0], nil
}

// SearchItems returns all items matching the search, full catalog for an
// empty search, ordered by title. Substring matching is delegated to ILIKE.
func (s Store) SearchItems(ctx context.Context, search lending.ItemSearch) ([]lending.Item, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tables.Items).
		Select(colID, colTitle, colCreator, colAvailable).
		Order(goqu.I(colTitle).Asc())

	if search.TitleTerm() != "" {
		selectStmt = selectStmt.Where(goqu.C(colTitle).ILike(matchAnything + escapeLikeTerm(search.TitleTerm()) + matchAnything))
	}

	if search.CreatorTerm() != "" {
		selectStmt = selectStmt.Where(goqu.C(colCreator).ILike(matchAnything + escapeLikeTerm(search.CreatorTerm()) + matchAnything))
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Items)

		return nil, errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	return s.queryItems(ctx, sqlQuery)
}

// SetItemAvailability transitions the availability flag with a conditional
// update. Zero affected rows mean the item is unknown or the flag already
// had the requested value; both surface as lending.ErrStaleItemState.
func (s Store) SetItemAvailability(ctx context.Context, itemID uuid.UUID, available bool) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.tables.Items).
		Set(goqu.Record{colAvailable: available}).
		Where(goqu.Ex{
			colID:        itemID.String(),
			colAvailable: !available,
		})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrTable, s.tables.Items)

		return errors.Join(lending.ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, _, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		s.logOperation(logMsgStaleItemState, logAttrItemID, itemID.String())

		return lending.ErrStaleItemState
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikeTerm escapes LIKE metacharacters so search terms match literally,
// the same way the in-memory engine matches them.
func escapeLikeTerm(term string) string {
	return likeEscaper.Replace(term)
}

// queryItems runs a select against the items table and scans the result rows.
func (s Store) queryItems(ctx context.Context, sqlQuery string) ([]lending.Item, error) {
	rows, duration, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	items := make([]lending.Item, 0)

	for rows.Next() {
		var idRaw string
		item := lending.Item{}

		if scanErr := rows.Scan(&idRaw, &item.Title, &item.Creator, &item.Available); scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error(), logAttrTable, s.tables.Items)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, scanErr)
		}

		id, parseErr := uuid.Parse(idRaw)
		if parseErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, parseErr.Error(), logAttrTable, s.tables.Items)

			return nil, errors.Join(lending.ErrScanningDBRowFailed, parseErr)
		}

		item.ID = id
		items = append(items, item)
	}

	s.logOperation(logMsgQueryCompleted, logAttrTable, s.tables.Items, logAttrRowCount, len(items), logAttrDurationMS, durationToMilliseconds(duration))

	return items, nil
}
