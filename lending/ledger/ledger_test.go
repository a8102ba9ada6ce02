package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulib/lending-ledger-go/lending"
	"github.com/circulib/lending-ledger-go/lending/ledger"
	"github.com/circulib/lending-ledger-go/lending/memoryengine"
	"github.com/circulib/lending-ledger-go/testutil/fixtures"
)

func Test_Issue_AvailableItem_MakesItemUnavailableWithOneActiveRecord(t *testing.T) {
	// arrange
	ctx := context.Background()
	issuedAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	store, ledg := givenLedger(t, lending.NewFixedClock(issuedAt))
	item, borrower, staff := givenRegisteredParties(t, store)

	// act
	record, err := ledg.Issue(ctx, item.ID, borrower.ID, staff.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, lending.LoanNumberUint(1), record.Number)
	assert.True(t, record.IsActive())
	assert.Equal(t, issuedAt, record.IssuedAt)
	assert.Equal(t, staff.ID, record.IssuedBy)

	stored, err := store.ItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, stored.Available)

	active, err := ledg.ActiveLoans(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, item.ID, active[0].ItemID)
}

func Test_Issue_UnavailableItem_FailsWithInvalidState(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, ledg := givenLedger(t, lending.NewSystemClock())
	item, borrower, staff := givenRegisteredParties(t, store)

	_, err := ledg.Issue(ctx, item.ID, borrower.ID, staff.ID)
	require.NoError(t, err)

	otherBorrower := fixtures.Borrower(t, "molly")
	require.NoError(t, store.InsertBorrower(ctx, otherBorrower))

	// act
	_, err = ledg.Issue(ctx, item.ID, otherBorrower.ID, staff.ID)

	// assert
	assert.ErrorIs(t, err, lending.ErrItemUnavailable)
}

func Test_Issue_UnknownReferences_FailWithNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, ledg := givenLedger(t, lending.NewSystemClock())
	item, borrower, staff := givenRegisteredParties(t, store)

	tests := []struct {
		name        string
		itemID      uuid.UUID
		borrowerID  uuid.UUID
		staffID     uuid.UUID
		expectedErr error
	}{
		{
			name:        "unknown item",
			itemID:      uuid.New(),
			borrowerID:  borrower.ID,
			staffID:     staff.ID,
			expectedErr: lending.ErrItemNotFound,
		},
		{
			name:        "unknown borrower",
			itemID:      item.ID,
			borrowerID:  uuid.New(),
			staffID:     staff.ID,
			expectedErr: lending.ErrBorrowerNotFound,
		},
		{
			name:        "unknown staff member",
			itemID:      item.ID,
			borrowerID:  borrower.ID,
			staffID:     uuid.New(),
			expectedErr: lending.ErrStaffNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := ledg.Issue(ctx, tc.itemID, tc.borrowerID, tc.staffID)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_Issue_CanceledMembership_Fails(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, ledg := givenLedger(t, lending.NewSystemClock())
	item, borrower, staff := givenRegisteredParties(t, store)

	borrower.CanceledAt = lending.ToTimestamp(time.Now())
	require.NoError(t, store.UpdateBorrower(ctx, borrower))

	// act
	_, err := ledg.Issue(ctx, item.ID, borrower.ID, staff.ID)

	// assert
	assert.ErrorIs(t, err, lending.ErrMembershipCanceled)
}

func Test_Complete_ActiveLoan_RestoresAvailabilityAndIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	returnedAt := time.Date(2025, 3, 15, 17, 0, 0, 0, time.UTC)
	store, ledg := givenLedger(t, lending.NewFixedClock(returnedAt))
	item, borrower, staff := givenRegisteredParties(t, store)

	record, err := ledg.Issue(ctx, item.ID, borrower.ID, staff.ID)
	require.NoError(t, err)

	// act
	completed, err := ledg.Complete(ctx, record.Number)

	// assert
	require.NoError(t, err)
	assert.False(t, completed.IsActive())
	assert.Equal(t, returnedAt, completed.ReturnedAt)

	stored, err := store.ItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available)

	// act - completing again is a no-op
	completedAgain, err := ledg.Complete(ctx, record.Number)

	// assert
	require.NoError(t, err)
	assert.Equal(t, completed, completedAgain)

	active, err := ledg.ActiveLoans(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func Test_Complete_UnknownLoan_FailsWithNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	_, ledg := givenLedger(t, lending.NewSystemClock())

	// act
	_, err := ledg.Complete(ctx, 42)

	// assert
	assert.ErrorIs(t, err, lending.ErrLoanNotFound)
}

func Test_Issue_AfterCompletion_AssignsMonotonicallyIncreasingNumbers(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, ledg := givenLedger(t, lending.NewSystemClock())
	item, borrower, staff := givenRegisteredParties(t, store)

	first, err := ledg.Issue(ctx, item.ID, borrower.ID, staff.ID)
	require.NoError(t, err)

	_, err = ledg.Complete(ctx, first.Number)
	require.NoError(t, err)

	// act
	second, err := ledg.Issue(ctx, item.ID, borrower.ID, staff.ID)

	// assert
	require.NoError(t, err)
	assert.Greater(t, second.Number, first.Number)
}

func Test_LoansForBorrower_CountsActiveAndCompleted(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, ledg := givenLedger(t, lending.NewSystemClock())
	item, borrower, staff := givenRegisteredParties(t, store)

	otherItem := fixtures.Item(t, "East of Eden", "John Steinbeck")
	require.NoError(t, store.InsertItem(ctx, otherItem))

	first, err := ledg.Issue(ctx, item.ID, borrower.ID, staff.ID)
	require.NoError(t, err)

	_, err = ledg.Complete(ctx, first.Number)
	require.NoError(t, err)

	_, err = ledg.Issue(ctx, otherItem.ID, borrower.ID, staff.ID)
	require.NoError(t, err)

	// act
	result, err := ledg.LoansForBorrower(ctx, borrower.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, borrower.ID, result.Borrower.ID)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.ActiveCount)
	assert.Equal(t, 1, result.CompletedCount)

	completed, err := ledg.CompletedLoans(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.Number, completed[0].Number)
}

func givenLedger(t *testing.T, clock lending.Clock) (*memoryengine.Store, ledger.Ledger) {
	t.Helper()

	store := memoryengine.NewStore()

	return store, ledger.New(store, store, store, store, clock)
}

func givenRegisteredParties(t *testing.T, store *memoryengine.Store) (lending.Item, lending.Borrower, lending.StaffMember) {
	t.Helper()

	ctx := context.Background()

	item := fixtures.Item(t, "The Old Man and the Sea", "Ernest Hemingway")
	borrower := fixtures.Borrower(t, "nora")
	staff := fixtures.StaffMember(t, "leopold")

	require.NoError(t, store.InsertItem(ctx, item))
	require.NoError(t, store.InsertBorrower(ctx, borrower))
	require.NoError(t, store.InsertStaff(ctx, staff))

	return item, borrower, staff
}
