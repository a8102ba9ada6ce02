package lending_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/circulib/lending-ledger-go/lending"
)

func Test_BuildLoanRecord_StartsActive(t *testing.T) {
	// arrange
	itemID := uuid.New()
	borrowerID := uuid.New()
	staffID := uuid.New()
	issuedAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	// act
	record := lending.BuildLoanRecord(itemID, borrowerID, staffID, issuedAt)

	// assert
	assert.True(t, record.IsActive())
	assert.Equal(t, lending.LoanNumberUint(0), record.Number, "number is assigned by the repository")
	assert.Equal(t, itemID, record.ItemID)
	assert.Equal(t, borrowerID, record.BorrowerID)
	assert.Equal(t, staffID, record.IssuedBy)
	assert.Equal(t, issuedAt, record.IssuedAt)
	assert.True(t, record.ReturnedAt.IsZero())
}

func Test_LoanRecord_Completed_IsTerminal(t *testing.T) {
	// arrange
	issuedAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	returnedAt := issuedAt.Add(14 * 24 * time.Hour)
	record := lending.BuildLoanRecord(uuid.New(), uuid.New(), uuid.New(), issuedAt)

	// act
	completed := record.Completed(returnedAt)

	// assert
	assert.False(t, completed.IsActive())
	assert.Equal(t, returnedAt, completed.ReturnedAt)

	// act - completing again must not move the return timestamp
	completedAgain := completed.Completed(returnedAt.Add(time.Hour))

	// assert
	assert.Equal(t, completed, completedAgain)
}

func Test_LoanRecord_Timestamps_AreNormalized(t *testing.T) {
	// arrange
	loc := time.FixedZone("UTC+2", 2*60*60)
	issuedAt := time.Date(2025, 3, 1, 11, 30, 0, 999, loc)

	// act
	record := lending.BuildLoanRecord(uuid.New(), uuid.New(), uuid.New(), issuedAt)

	// assert
	assert.Equal(t, time.UTC, record.IssuedAt.Location())
	assert.Equal(t, lending.ToTimestamp(issuedAt), record.IssuedAt)
}
