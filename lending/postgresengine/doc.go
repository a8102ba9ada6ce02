// Package postgresengine provides the PostgreSQL storage engine for the
// lending service. It implements every repository interface of the lending
// package on a small relational schema, making persistence a pluggable
// collaborator of the catalog, membership and ledger components.
//
// The engine supports three database client libraries through internal
// adapters; pick the constructor matching your connection type:
//   - NewStoreFromPGXPool for pgxpool.Pool
//   - NewStoreFromSQLDB for database/sql
//   - NewStoreFromSQLX for sqlx.DB
//
// Expected schema (table names are configurable with WithTableNames):
//
//	CREATE TABLE items (
//	    id        text PRIMARY KEY,
//	    title     text NOT NULL,
//	    creator   text NOT NULL,
//	    available boolean NOT NULL
//	);
//
//	CREATE TABLE borrowers (
//	    id          text PRIMARY KEY,
//	    name        text NOT NULL,
//	    contact     jsonb NOT NULL,
//	    canceled_at timestamptz
//	);
//
//	CREATE TABLE staff (
//	    id   text PRIMARY KEY,
//	    name text NOT NULL
//	);
//
//	CREATE TABLE loans (
//	    loan_number bigint PRIMARY KEY,
//	    item_id     text NOT NULL,
//	    borrower_id text NOT NULL,
//	    issued_by   text NOT NULL,
//	    issued_at   timestamptz NOT NULL,
//	    returned_at timestamptz
//	);
//
// Loan numbers are assigned inside the insert statement with a CTE that
// computes MAX(loan_number)+1, which keeps them monotonically increasing
// without a separate sequence. The availability transition is a conditional
// update; zero affected rows surface as lending.ErrStaleItemState.
package postgresengine
