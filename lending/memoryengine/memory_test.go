package memoryengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulib/lending-ledger-go/lending"
	"github.com/circulib/lending-ledger-go/lending/memoryengine"
	"github.com/circulib/lending-ledger-go/testutil/fixtures"
)

func Test_AppendLoan_AssignsMonotonicallyIncreasingNumbers(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	item := fixtures.Item(t, "Beloved", "Toni Morrison")
	borrower := fixtures.Borrower(t, "denver")
	staff := fixtures.StaffMember(t, "paul")

	// act
	first, err := store.AppendLoan(ctx, lending.BuildLoanRecord(item.ID, borrower.ID, staff.ID, time.Now()))
	require.NoError(t, err)
	second, err := store.AppendLoan(ctx, lending.BuildLoanRecord(item.ID, borrower.ID, staff.ID, time.Now()))
	require.NoError(t, err)

	// assert
	assert.Equal(t, lending.LoanNumberUint(1), first.Number)
	assert.Equal(t, lending.LoanNumberUint(2), second.Number)
}

func Test_SetItemAvailability_RejectsStaleTransitions(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	item := fixtures.Item(t, "Beloved", "Toni Morrison")
	require.NoError(t, store.InsertItem(ctx, item))

	tests := []struct {
		name        string
		itemID      uuid.UUID
		available   bool
		expectedErr error
	}{
		{
			name:        "unknown item",
			itemID:      uuid.New(),
			available:   false,
			expectedErr: lending.ErrStaleItemState,
		},
		{
			name:        "flag already set",
			itemID:      item.ID,
			available:   true,
			expectedErr: lending.ErrStaleItemState,
		},
		{
			name:      "valid transition",
			itemID:    item.ID,
			available: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := store.SetItemAvailability(ctx, tc.itemID, tc.available)

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_SearchItems_ReturnsMatchesInInsertionOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()

	first := fixtures.Item(t, "The Sound and the Fury", "William Faulkner")
	second := fixtures.Item(t, "Light in August", "William Faulkner")
	third := fixtures.Item(t, "Mrs Dalloway", "Virginia Woolf")

	for _, item := range []lending.Item{first, second, third} {
		require.NoError(t, store.InsertItem(ctx, item))
	}

	search := lending.BuildItemSearch().Matching().CreatorContains("faulkner").Finalize()

	// act
	matches, err := store.SearchItems(ctx, search)

	// assert
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].ID)
	assert.Equal(t, second.ID, matches[1].ID)
}

func Test_ActiveLoanForItem_SkipsCompletedRecords(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	item := fixtures.Item(t, "Beloved", "Toni Morrison")
	borrower := fixtures.Borrower(t, "denver")
	staff := fixtures.StaffMember(t, "paul")

	first, err := store.AppendLoan(ctx, lending.BuildLoanRecord(item.ID, borrower.ID, staff.ID, time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.UpdateLoan(ctx, first.Completed(time.Now())))

	second, err := store.AppendLoan(ctx, lending.BuildLoanRecord(item.ID, borrower.ID, staff.ID, time.Now()))
	require.NoError(t, err)

	// act
	active, err := store.ActiveLoanForItem(ctx, item.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, second.Number, active.Number)

	// act - no active record left once the second is completed
	require.NoError(t, store.UpdateLoan(ctx, second.Completed(time.Now())))
	_, err = store.ActiveLoanForItem(ctx, item.ID)

	// assert
	assert.ErrorIs(t, err, lending.ErrLoanNotFound)
}

func Test_InsertBorrower_RejectsDuplicateIdentifier(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	borrower := fixtures.Borrower(t, "denver")
	require.NoError(t, store.InsertBorrower(ctx, borrower))

	// act
	err := store.InsertBorrower(ctx, borrower)

	// assert
	assert.ErrorIs(t, err, lending.ErrDuplicateBorrower)
}
