package lending

import (
	"context"

	"github.com/google/uuid"
)

// The repository interfaces are the pluggable persistence boundary of the
// service. The components only ever talk to these; the memoryengine and
// postgresengine packages provide the implementations.
//
// All not-found conditions are reported with the sentinel errors from this
// package so callers can test with errors.Is.

// ItemRepository stores the catalog's items.
type ItemRepository interface {
	// InsertItem appends an item. No duplicate check is performed.
	InsertItem(ctx context.Context, item Item) error

	// RemoveItem removes an item by identity.
	// Returns ErrItemNotFound when no such item is stored.
	RemoveItem(ctx context.Context, itemID uuid.UUID) error

	// ItemByID returns the item with the given identifier.
	// Returns ErrItemNotFound when no such item is stored.
	ItemByID(ctx context.Context, itemID uuid.UUID) (Item, error)

	// SearchItems returns all items matching the search, full catalog for an empty search.
	SearchItems(ctx context.Context, search ItemSearch) ([]Item, error)

	// SetItemAvailability transitions the availability flag.
	// Returns ErrStaleItemState when the item is unknown or the flag
	// already has the requested value.
	SetItemAvailability(ctx context.Context, itemID uuid.UUID, available bool) error
}

// BorrowerRepository stores the membership's borrowers.
type BorrowerRepository interface {
	// InsertBorrower appends a borrower.
	// Returns ErrDuplicateBorrower when the identifier is already registered.
	InsertBorrower(ctx context.Context, borrower Borrower) error

	// BorrowerByID returns the borrower with the given identifier.
	// Returns ErrBorrowerNotFound when no such borrower is registered.
	BorrowerByID(ctx context.Context, borrowerID uuid.UUID) (Borrower, error)

	// UpdateBorrower replaces the stored borrower with the same identifier.
	// Returns ErrBorrowerNotFound when no such borrower is registered.
	UpdateBorrower(ctx context.Context, borrower Borrower) error

	// AllBorrowers returns every registered borrower.
	AllBorrowers(ctx context.Context) ([]Borrower, error)
}

// StaffRepository stores the membership's staff.
type StaffRepository interface {
	// InsertStaff appends a staff member.
	// Returns ErrDuplicateStaff when the identifier is already registered.
	InsertStaff(ctx context.Context, staff StaffMember) error

	// StaffByID returns the staff member with the given identifier.
	// Returns ErrStaffNotFound when no such staff member is registered.
	StaffByID(ctx context.Context, staffID uuid.UUID) (StaffMember, error)

	// AllStaff returns every registered staff member.
	AllStaff(ctx context.Context) ([]StaffMember, error)
}

// LoanRepository stores the ledger's loan records.
type LoanRepository interface {
	// AppendLoan appends a record, assigning the next monotonically
	// increasing loan number, and returns the record with its number set.
	AppendLoan(ctx context.Context, record LoanRecord) (LoanRecord, error)

	// LoanByNumber returns the record with the given number.
	// Returns ErrLoanNotFound when no such record exists.
	LoanByNumber(ctx context.Context, number LoanNumberUint) (LoanRecord, error)

	// UpdateLoan replaces the stored record with the same number.
	// Returns ErrLoanNotFound when no such record exists.
	UpdateLoan(ctx context.Context, record LoanRecord) error

	// ActiveLoans returns all active records, ascending by number.
	ActiveLoans(ctx context.Context) (LoanRecords, error)

	// CompletedLoans returns all completed records, ascending by number.
	CompletedLoans(ctx context.Context) (LoanRecords, error)

	// LoansForBorrower returns all records referencing the borrower, ascending by number.
	LoansForBorrower(ctx context.Context, borrowerID uuid.UUID) (LoanRecords, error)

	// ActiveLoanForItem returns the single active record referencing the item.
	// Returns ErrLoanNotFound when the item is not on loan.
	ActiveLoanForItem(ctx context.Context, itemID uuid.UUID) (LoanRecord, error)
}
