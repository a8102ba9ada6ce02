// Package fixtures builds valid entities for tests.
package fixtures

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/circulib/lending-ledger-go/lending"
)

// Item builds an available catalog item with a fresh identifier.
func Item(t *testing.T, title string, creator string) lending.Item {
	t.Helper()

	item, err := lending.BuildItem(uuid.New(), title, creator)
	require.NoError(t, err)

	return item
}

// Borrower builds a borrower with a fresh identifier and empty contact details.
func Borrower(t *testing.T, name string) lending.Borrower {
	t.Helper()

	borrower, err := lending.BuildBorrower(uuid.New(), name, lending.ContactDetails{})
	require.NoError(t, err)

	return borrower
}

// StaffMember builds a staff member with a fresh identifier.
func StaffMember(t *testing.T, name string) lending.StaffMember {
	t.Helper()

	staff, err := lending.BuildStaffMember(uuid.New(), name)
	require.NoError(t, err)

	return staff
}
