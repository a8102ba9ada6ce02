// Package lending provides core types and abstractions for a library
// lending service: catalog items, borrowers, staff and loan records.
//
// This package defines the entities, their construction rules, the common
// error definitions and the repository interfaces implemented by the
// storage engines. It contains no storage or coordination logic itself;
// the components live in the catalog, membership and ledger subpackages,
// the storage engines in memoryengine and postgresengine.
//
// Key types:
//   - Item: a loanable catalog item with an availability flag
//   - Borrower / StaffMember: registered parties of the library
//   - LoanRecord: an issued loan, active until completed
//   - ItemSearch: criteria for searching the catalog
//
// Common usage pattern:
//
//	search := lending.BuildItemSearch().
//		Matching().
//		TitleContains("sea").
//		AndCreatorContains("hemingway").
//		Finalize()
//
//	items, err := cat.Find(ctx, search)
//	if err != nil {
//		// handle error
//	}
package lending
