// Package membership holds the set of registered borrowers and staff.
package membership

import (
	"context"

	"github.com/google/uuid"

	"github.com/circulib/lending-ledger-go/lending"
)

// Membership manages the registered parties of the library.
//
// Borrower identifiers are unique within the membership; registering a
// taken identifier fails. Borrowers are never deleted, a membership can
// only be canceled so loan records keep resolvable references.
type Membership struct {
	borrowers lending.BorrowerRepository
	staff     lending.StaffRepository
	clock     lending.Clock
}

// New creates a Membership backed by the given repositories.
func New(borrowers lending.BorrowerRepository, staff lending.StaffRepository, clock lending.Clock) Membership {
	return Membership{
		borrowers: borrowers,
		staff:     staff,
		clock:     clock,
	}
}

// RegisterBorrower adds a borrower to the membership.
// Returns lending.ErrDuplicateBorrower when the identifier is already registered.
func (m Membership) RegisterBorrower(ctx context.Context, borrower lending.Borrower) error {
	return m.borrowers.InsertBorrower(ctx, borrower)
}

// BorrowerByID returns a registered borrower.
func (m Membership) BorrowerByID(ctx context.Context, borrowerID uuid.UUID) (lending.Borrower, error) {
	return m.borrowers.BorrowerByID(ctx, borrowerID)
}

// CancelBorrower marks a borrower's membership as canceled.
// Canceled borrowers can no longer be issued loans.
// Canceling an already canceled membership is a no-op.
func (m Membership) CancelBorrower(ctx context.Context, borrowerID uuid.UUID) error {
	borrower, err := m.borrowers.BorrowerByID(ctx, borrowerID)
	if err != nil {
		return err
	}

	if borrower.IsCanceled() {
		return nil
	}

	borrower.CanceledAt = lending.ToTimestamp(m.clock.Now())

	return m.borrowers.UpdateBorrower(ctx, borrower)
}

// ListBorrowers returns every registered borrower.
func (m Membership) ListBorrowers(ctx context.Context) ([]lending.Borrower, error) {
	return m.borrowers.AllBorrowers(ctx)
}

// RegisterStaff adds a staff member to the membership.
// Returns lending.ErrDuplicateStaff when the identifier is already registered.
func (m Membership) RegisterStaff(ctx context.Context, staff lending.StaffMember) error {
	return m.staff.InsertStaff(ctx, staff)
}

// StaffByID returns a registered staff member.
func (m Membership) StaffByID(ctx context.Context, staffID uuid.UUID) (lending.StaffMember, error) {
	return m.staff.StaffByID(ctx, staffID)
}

// Roster returns everyone registered with the library,
// staff first, then borrowers.
func (m Membership) Roster(ctx context.Context) ([]lending.Party, error) {
	staff, err := m.staff.AllStaff(ctx)
	if err != nil {
		return nil, err
	}

	borrowers, err := m.borrowers.AllBorrowers(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]lending.Party, 0, len(staff)+len(borrowers))

	for _, member := range staff {
		roster = append(roster, member)
	}

	for _, borrower := range borrowers {
		roster = append(roster, borrower)
	}

	return roster, nil
}
