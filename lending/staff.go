package lending

import (
	"strings"

	"github.com/google/uuid"
)

// Party is the shared capability of everyone registered with the library,
// borrower or staff. Flat structs implement it instead of a common
// person base type; nothing here depends on anything beyond identity.
type Party interface {
	PartyID() uuid.UUID
	DisplayName() string
}

// StaffMember represents a library staff member who mediates
// issue and return actions against the ledger.
type StaffMember struct {
	ID   uuid.UUID
	Name string
}

// BuildStaffMember is a factory method for StaffMember.
//
// Returns an error if the identifier is the nil uuid or the name is blank.
func BuildStaffMember(id uuid.UUID, name string) (StaffMember, error) {
	if id == uuid.Nil {
		return StaffMember{}, ErrNilID
	}

	if strings.TrimSpace(name) == "" {
		return StaffMember{}, ErrEmptyStaffName
	}

	return StaffMember{
		ID:   id,
		Name: name,
	}, nil
}

// PartyID returns the staff member's identifier.
func (s StaffMember) PartyID() uuid.UUID {
	return s.ID
}

// DisplayName returns the staff member's name.
func (s StaffMember) DisplayName() string {
	return s.Name
}
