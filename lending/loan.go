package lending

import (
	"time"

	"github.com/google/uuid"
)

// LoanRecords is an alias type for a slice of LoanRecord.
type LoanRecords = []LoanRecord

// LoanRecord represents one loan of an item to a borrower, mediated by a
// staff member. The record is identified by a monotonically increasing
// Number assigned by the loan repository on append.
//
// ReturnedAt is zero exactly while the loan is active. The only transition
// is Active -> Completed via Completed(); there is no reverse transition
// and records are never deleted.
//
// ItemID, BorrowerID and IssuedBy are non-owning references; the catalog
// owns the item, membership owns the parties.
type LoanRecord struct {
	Number     LoanNumberUint
	ItemID     uuid.UUID
	BorrowerID uuid.UUID
	IssuedBy   uuid.UUID
	IssuedAt   time.Time
	ReturnedAt time.Time
}

// BuildLoanRecord is a factory method for an active LoanRecord.
// The Number is left zero; the loan repository assigns it on append.
func BuildLoanRecord(itemID uuid.UUID, borrowerID uuid.UUID, issuedBy uuid.UUID, issuedAt time.Time) LoanRecord {
	return LoanRecord{
		ItemID:     itemID,
		BorrowerID: borrowerID,
		IssuedBy:   issuedBy,
		IssuedAt:   ToTimestamp(issuedAt),
	}
}

// IsActive reports whether the loan has not been completed yet.
func (r LoanRecord) IsActive() bool {
	return r.ReturnedAt.IsZero()
}

// Completed returns a copy of the record with ReturnedAt set.
// Completing an already completed record returns it unchanged.
func (r LoanRecord) Completed(returnedAt time.Time) LoanRecord {
	if !r.IsActive() {
		return r
	}

	r.ReturnedAt = ToTimestamp(returnedAt)

	return r
}
