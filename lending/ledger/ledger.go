// Package ledger holds the loan records and coordinates availability transitions.
package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/circulib/lending-ledger-go/lending"
)

// Ledger owns the loan record lifetime. Issue and Complete are the only
// operations that transition an item's availability flag.
//
// Business rules for Issue:
//
//	GIVEN: An item, a borrower and a mediating staff member
//	WHEN: Issue is called
//	THEN: An active LoanRecord with the next loan number is appended
//	      and the item becomes unavailable
//	ERROR: lending.ErrItemNotFound / ErrBorrowerNotFound / ErrStaffNotFound
//	       if any of the three is unknown
//	ERROR: lending.ErrItemUnavailable if the item is currently lent out
//	ERROR: lending.ErrMembershipCanceled if the borrower's membership is canceled
//
// Business rules for Complete:
//
//	GIVEN: A loan number
//	WHEN: Complete is called
//	THEN: The record's return timestamp is set and the item becomes available
//	ERROR: lending.ErrLoanNotFound if the number is unknown to the ledger
//	IDEMPOTENCY: Completing an already completed loan is a no-op
type Ledger struct {
	items     lending.ItemRepository
	borrowers lending.BorrowerRepository
	staff     lending.StaffRepository
	loans     lending.LoanRepository
	clock     lending.Clock
}

// New creates a Ledger backed by the given repositories and clock.
func New(
	items lending.ItemRepository,
	borrowers lending.BorrowerRepository,
	staff lending.StaffRepository,
	loans lending.LoanRepository,
	clock lending.Clock,
) Ledger {

	return Ledger{
		items:     items,
		borrowers: borrowers,
		staff:     staff,
		loans:     loans,
		clock:     clock,
	}
}

// Issue lends an item to a borrower, mediated by a staff member.
// On success the item is unavailable and exactly one active record references it.
func (l Ledger) Issue(ctx context.Context, itemID uuid.UUID, borrowerID uuid.UUID, staffID uuid.UUID) (lending.LoanRecord, error) {
	var none lending.LoanRecord

	item, err := l.items.ItemByID(ctx, itemID)
	if err != nil {
		return none, err
	}

	if !item.Available {
		return none, lending.ErrItemUnavailable
	}

	borrower, err := l.borrowers.BorrowerByID(ctx, borrowerID)
	if err != nil {
		return none, err
	}

	if borrower.IsCanceled() {
		return none, lending.ErrMembershipCanceled
	}

	if _, err = l.staff.StaffByID(ctx, staffID); err != nil {
		return none, err
	}

	// The conditional flag update is the concurrency guard and must come
	// first. The append is a separate statement; if it fails the item stays
	// unavailable and the error surfaces to the caller, nothing is rolled
	// back internally.
	if err = l.items.SetItemAvailability(ctx, itemID, false); err != nil {
		return none, err
	}

	record := lending.BuildLoanRecord(itemID, borrowerID, staffID, l.clock.Now())

	return l.loans.AppendLoan(ctx, record)
}

// Complete finishes the loan with the given number and makes the item
// available again. Completing an already completed loan returns the record
// unchanged without touching the item.
func (l Ledger) Complete(ctx context.Context, number lending.LoanNumberUint) (lending.LoanRecord, error) {
	var none lending.LoanRecord

	record, err := l.loans.LoanByNumber(ctx, number)
	if err != nil {
		return none, err
	}

	if !record.IsActive() {
		return record, nil
	}

	record = record.Completed(l.clock.Now())

	// The record is written first and is the source of truth; if the flag
	// update below fails the loan is already completed and the error
	// surfaces to the caller without internal recovery.
	if err = l.loans.UpdateLoan(ctx, record); err != nil {
		return none, err
	}

	if err = l.items.SetItemAvailability(ctx, record.ItemID, true); err != nil {
		return none, err
	}

	return record, nil
}

// LoanByNumber returns a single record by its number.
func (l Ledger) LoanByNumber(ctx context.Context, number lending.LoanNumberUint) (lending.LoanRecord, error) {
	return l.loans.LoanByNumber(ctx, number)
}
