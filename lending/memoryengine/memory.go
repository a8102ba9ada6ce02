// Package memoryengine provides the in-memory storage engine for the
// lending service. It keeps all entities in plain single-process slices
// and scans them linearly; data is lost on process exit.
//
// A Store is NOT safe for concurrent use. All operations expect to run
// under a single logical owner; callers that introduce multi-threaded
// access must provide external mutual exclusion.
package memoryengine

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/circulib/lending-ledger-go/lending"
)

// Store implements all repository interfaces of the lending package
// on in-memory collections.
type Store struct {
	items     []lending.Item
	borrowers []lending.Borrower
	staff     []lending.StaffMember
	loans     lending.LoanRecords

	nextLoanNumber lending.LoanNumberUint
}

// NewStore creates an empty in-memory Store.
func NewStore() *Store {
	return &Store{nextLoanNumber: 1}
}

/***** lending.ItemRepository *****/

// InsertItem appends an item. No duplicate check is performed.
func (s *Store) InsertItem(_ context.Context, item lending.Item) error {
	s.items = append(s.items, item)

	return nil
}

// RemoveItem removes an item by identity.
func (s *Store) RemoveItem(_ context.Context, itemID uuid.UUID) error {
	for idx, item := range s.items {
		if item.ID == itemID {
			s.items = slices.Delete(s.items, idx, idx+1)

			return nil
		}
	}

	return lending.ErrItemNotFound
}

// ItemByID returns the item with the given identifier.
func (s *Store) ItemByID(_ context.Context, itemID uuid.UUID) (lending.Item, error) {
	for _, item := range s.items {
		if item.ID == itemID {
			return item, nil
		}
	}

	return lending.Item{}, lending.ErrItemNotFound
}

// SearchItems returns all items matching the search, in insertion order.
func (s *Store) SearchItems(_ context.Context, search lending.ItemSearch) ([]lending.Item, error) {
	matches := make([]lending.Item, 0)

	for _, item := range s.items {
		if search.Matches(item) {
			matches = append(matches, item)
		}
	}

	return matches, nil
}

// SetItemAvailability transitions the availability flag.
func (s *Store) SetItemAvailability(_ context.Context, itemID uuid.UUID, available bool) error {
	for idx, item := range s.items {
		if item.ID == itemID && item.Available != available {
			s.items[idx].Available = available

			return nil
		}
	}

	return lending.ErrStaleItemState
}

/***** lending.BorrowerRepository *****/

// InsertBorrower appends a borrower, rejecting duplicate identifiers.
func (s *Store) InsertBorrower(_ context.Context, borrower lending.Borrower) error {
	for _, known := range s.borrowers {
		if known.ID == borrower.ID {
			return lending.ErrDuplicateBorrower
		}
	}

	s.borrowers = append(s.borrowers, borrower)

	return nil
}

// BorrowerByID returns the borrower with the given identifier.
func (s *Store) BorrowerByID(_ context.Context, borrowerID uuid.UUID) (lending.Borrower, error) {
	for _, borrower := range s.borrowers {
		if borrower.ID == borrowerID {
			return borrower, nil
		}
	}

	return lending.Borrower{}, lending.ErrBorrowerNotFound
}

// UpdateBorrower replaces the stored borrower with the same identifier.
func (s *Store) UpdateBorrower(_ context.Context, borrower lending.Borrower) error {
	for idx, known := range s.borrowers {
		if known.ID == borrower.ID {
			s.borrowers[idx] = borrower

			return nil
		}
	}

	return lending.ErrBorrowerNotFound
}

// AllBorrowers returns every registered borrower in registration order.
func (s *Store) AllBorrowers(_ context.Context) ([]lending.Borrower, error) {
	return slices.Clone(s.borrowers), nil
}

/***** lending.StaffRepository *****/

// InsertStaff appends a staff member, rejecting duplicate identifiers.
func (s *Store) InsertStaff(_ context.Context, staff lending.StaffMember) error {
	for _, known := range s.staff {
		if known.ID == staff.ID {
			return lending.ErrDuplicateStaff
		}
	}

	s.staff = append(s.staff, staff)

	return nil
}

// StaffByID returns the staff member with the given identifier.
func (s *Store) StaffByID(_ context.Context, staffID uuid.UUID) (lending.StaffMember, error) {
	for _, staff := range s.staff {
		if staff.ID == staffID {
			return staff, nil
		}
	}

	return lending.StaffMember{}, lending.ErrStaffNotFound
}

// AllStaff returns every registered staff member in registration order.
func (s *Store) AllStaff(_ context.Context) ([]lending.StaffMember, error) {
	return slices.Clone(s.staff), nil
}

/***** lending.LoanRepository *****/

// AppendLoan appends a record with the next monotonically increasing number.
func (s *Store) AppendLoan(_ context.Context, record lending.LoanRecord) (lending.LoanRecord, error) {
	record.Number = s.nextLoanNumber
	s.nextLoanNumber++
	s.loans = append(s.loans, record)

	return record, nil
}

// LoanByNumber returns the record with the given number.
func (s *Store) LoanByNumber(_ context.Context, number lending.LoanNumberUint) (lending.LoanRecord, error) {
	for _, record := range s.loans {
		if record.Number == number {
			return record, nil
		}
	}

	return lending.LoanRecord{}, lending.ErrLoanNotFound
}

// UpdateLoan replaces the stored record with the same number.
func (s *Store) UpdateLoan(_ context.Context, record lending.LoanRecord) error {
	for idx, known := range s.loans {
		if known.Number == record.Number {
			s.loans[idx] = record

			return nil
		}
	}

	return lending.ErrLoanNotFound
}

// ActiveLoans returns all active records. Records are appended in number
// order, so the result is ascending by number.
func (s *Store) ActiveLoans(_ context.Context) (lending.LoanRecords, error) {
	return s.filterLoans(func(record lending.LoanRecord) bool {
		return record.IsActive()
	}), nil
}

// CompletedLoans returns all completed records, ascending by number.
func (s *Store) CompletedLoans(_ context.Context) (lending.LoanRecords, error) {
	return s.filterLoans(func(record lending.LoanRecord) bool {
		return !record.IsActive()
	}), nil
}

// LoansForBorrower returns all records referencing the borrower, ascending by number.
func (s *Store) LoansForBorrower(_ context.Context, borrowerID uuid.UUID) (lending.LoanRecords, error) {
	return s.filterLoans(func(record lending.LoanRecord) bool {
		return record.BorrowerID == borrowerID
	}), nil
}

// ActiveLoanForItem returns the single active record referencing the item.
func (s *Store) ActiveLoanForItem(_ context.Context, itemID uuid.UUID) (lending.LoanRecord, error) {
	for _, record := range s.loans {
		if record.ItemID == itemID && record.IsActive() {
			return record, nil
		}
	}

	return lending.LoanRecord{}, lending.ErrLoanNotFound
}

func (s *Store) filterLoans(keep func(lending.LoanRecord) bool) lending.LoanRecords {
	matches := make(lending.LoanRecords, 0)

	for _, record := range s.loans {
		if keep(record) {
			matches = append(matches, record)
		}
	}

	return matches
}
