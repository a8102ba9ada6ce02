package membership_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulib/lending-ledger-go/lending"
	"github.com/circulib/lending-ledger-go/lending/membership"
	"github.com/circulib/lending-ledger-go/lending/memoryengine"
	"github.com/circulib/lending-ledger-go/testutil/fixtures"
)

func newMembership(clock lending.Clock) membership.Membership {
	store := memoryengine.NewStore()

	return membership.New(store, store, clock)
}

func Test_Membership_RegisterBorrower_RejectsDuplicateIdentifier(t *testing.T) {
	// arrange
	ctx := context.Background()
	members := newMembership(lending.NewSystemClock())
	borrower := fixtures.Borrower(t, "nora")

	// act
	require.NoError(t, members.RegisterBorrower(ctx, borrower))
	err := members.RegisterBorrower(ctx, borrower)

	// assert
	assert.ErrorIs(t, err, lending.ErrDuplicateBorrower)
}

func Test_Membership_BorrowerByID_UnknownBorrower_FailsWithNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	members := newMembership(lending.NewSystemClock())

	// act
	_, err := members.BorrowerByID(ctx, uuid.New())

	// assert
	assert.ErrorIs(t, err, lending.ErrBorrowerNotFound)
}

func Test_Membership_CancelBorrower_MarksAndIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	canceledAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	members := newMembership(lending.NewFixedClock(canceledAt))

	borrower := fixtures.Borrower(t, "nora")
	require.NoError(t, members.RegisterBorrower(ctx, borrower))

	// act
	require.NoError(t, members.CancelBorrower(ctx, borrower.ID))

	// assert
	stored, err := members.BorrowerByID(ctx, borrower.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCanceled())
	assert.Equal(t, canceledAt, stored.CanceledAt)

	// act - canceling again is a no-op
	require.NoError(t, members.CancelBorrower(ctx, borrower.ID))

	storedAgain, err := members.BorrowerByID(ctx, borrower.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, storedAgain)
}

func Test_Membership_RegisterStaff_RejectsDuplicateIdentifier(t *testing.T) {
	// arrange
	ctx := context.Background()
	members := newMembership(lending.NewSystemClock())
	staff := fixtures.StaffMember(t, "leopold")

	// act
	require.NoError(t, members.RegisterStaff(ctx, staff))
	err := members.RegisterStaff(ctx, staff)

	// assert
	assert.ErrorIs(t, err, lending.ErrDuplicateStaff)
}

func Test_Membership_Roster_ListsStaffThenBorrowers(t *testing.T) {
	// arrange
	ctx := context.Background()
	members := newMembership(lending.NewSystemClock())

	staff := fixtures.StaffMember(t, "leopold")
	borrower := fixtures.Borrower(t, "nora")
	require.NoError(t, members.RegisterStaff(ctx, staff))
	require.NoError(t, members.RegisterBorrower(ctx, borrower))

	// act
	roster, err := members.Roster(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, staff.ID, roster[0].PartyID())
	assert.Equal(t, borrower.ID, roster[1].PartyID())
}
