package lending

import (
	"errors"
	"time"
)

// Construction-time errors.
var ErrNilID = errors.New("nil uuid supplied as identifier")
var ErrEmptyItemTitle = errors.New("empty item title supplied")
var ErrEmptyItemCreator = errors.New("empty item creator supplied")
var ErrEmptyBorrowerName = errors.New("empty borrower name supplied")
var ErrEmptyStaffName = errors.New("empty staff member name supplied")

// Not-found errors, returned by repositories and surfaced by the components.
var ErrItemNotFound = errors.New("item not found in catalog")
var ErrBorrowerNotFound = errors.New("borrower not found in membership")
var ErrStaffNotFound = errors.New("staff member not found in membership")
var ErrLoanNotFound = errors.New("loan record not found in ledger")

// Invalid-state errors.
var ErrItemUnavailable = errors.New("item is not available for lending")
var ErrItemOnLoan = errors.New("item is referenced by an active loan")
var ErrMembershipCanceled = errors.New("borrower membership is canceled")

// Engine errors.
var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableName = errors.New("empty table name supplied")
var ErrStaleItemState = errors.New("item availability did not match the expected state, no rows were affected")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingStoreFailed = errors.New("querying the lending store failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrExecutingStatementFailed = errors.New("executing statement failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")
var ErrMarshalingContactFailed = errors.New("marshaling contact details failed")
var ErrUnmarshalingContactFailed = errors.New("unmarshaling contact details failed")
var ErrAppendingLoanFailed = errors.New("appending loan record failed")

// Duplicate registration errors.
var ErrDuplicateBorrower = errors.New("borrower identifier is already registered")
var ErrDuplicateStaff = errors.New("staff member identifier is already registered")

// LoanNumberUint is a type alias for uint64, representing the monotonically
// increasing number that identifies a loan record within the ledger.
type LoanNumberUint = uint64

// ToTimestamp normalizes a time for storage with UTC normalization and microsecond precision.
func ToTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
