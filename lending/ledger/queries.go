package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/circulib/lending-ledger-go/lending"
)

// BorrowerLoans represents the query result for one borrower's lending history.
type BorrowerLoans struct {
	Borrower       lending.Borrower
	Records        lending.LoanRecords
	ActiveCount    int
	CompletedCount int
}

// ActiveLoans returns all currently active records, ascending by loan number.
func (l Ledger) ActiveLoans(ctx context.Context) (lending.LoanRecords, error) {
	return l.loans.ActiveLoans(ctx)
}

// CompletedLoans returns all finished records, ascending by loan number.
func (l Ledger) CompletedLoans(ctx context.Context) (lending.LoanRecords, error) {
	return l.loans.CompletedLoans(ctx)
}

// LoansForBorrower returns a borrower's full lending history with
// active/completed counts. The borrower must be registered.
func (l Ledger) LoansForBorrower(ctx context.Context, borrowerID uuid.UUID) (BorrowerLoans, error) {
	var none BorrowerLoans

	borrower, err := l.borrowers.BorrowerByID(ctx, borrowerID)
	if err != nil {
		return none, err
	}

	records, err := l.loans.LoansForBorrower(ctx, borrowerID)
	if err != nil {
		return none, err
	}

	result := BorrowerLoans{
		Borrower: borrower,
		Records:  records,
	}

	for _, record := range records {
		if record.IsActive() {
			result.ActiveCount++
		} else {
			result.CompletedCount++
		}
	}

	return result, nil
}
