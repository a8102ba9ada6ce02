package lending

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactDetails holds how a borrower can be reached.
// It is persisted as a single JSON document by the Postgres engine.
type ContactDetails struct {
	Email string
	Phone string
}

// Borrower represents a registered borrower.
//
// CanceledAt is zero while the membership is active. Borrowers are never
// deleted; canceling a membership only marks it, so completed loan records
// keep a resolvable reference.
type Borrower struct {
	ID         uuid.UUID
	Name       string
	Contact    ContactDetails
	CanceledAt time.Time
}

// BuildBorrower is a factory method for Borrower.
//
// Returns an error if the identifier is the nil uuid or the name is blank.
func BuildBorrower(id uuid.UUID, name string, contact ContactDetails) (Borrower, error) {
	if id == uuid.Nil {
		return Borrower{}, ErrNilID
	}

	if strings.TrimSpace(name) == "" {
		return Borrower{}, ErrEmptyBorrowerName
	}

	return Borrower{
		ID:      id,
		Name:    name,
		Contact: contact,
	}, nil
}

// IsCanceled reports whether the membership has been canceled.
func (b Borrower) IsCanceled() bool {
	return !b.CanceledAt.IsZero()
}

// PartyID returns the borrower's identifier.
func (b Borrower) PartyID() uuid.UUID {
	return b.ID
}

// DisplayName returns the borrower's name.
func (b Borrower) DisplayName() string {
	return b.Name
}
