// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the SQL implementation of ledger.Store.

# Drivers

Three database/sql drivers are supported, selected by Dialect:

  - sqlite: modernc.org/sqlite (pure Go, file or :memory:)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

Open connects, pings and creates the schema:

	store, err := db.Open(ctx, db.DialectSQLite, "file:ledger.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

Queries are written with ? placeholders and rebound to $N for PostgreSQL.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes. Timestamps are BIGINT Unix nanoseconds on both engines.

# Tables

  - election: Election metadata, lifecycle status and total_votes
  - candidate: One row per applicant per election, with vote_count
  - vote: One row per voter per election

# Relationships

	election 1──* candidate
	election 1──* vote
	candidate 1──* vote

All foreign keys use ON DELETE CASCADE.

# Vote Admission

AdmitVote runs in a single transaction:

 1. INSERT the vote (UNIQUE (election_id, voter_identity) rejects duplicates)
 2. increment election.total_votes, guarded by status = 'active'
 3. increment candidate.vote_count, guarded by election_id

Any failure rolls the whole transaction back, so total_votes always equals
the sum of vote_count and the number of vote rows.

# Errors

Driver errors are mapped onto the models sentinels:

  - unique violation on vote: models.ErrDuplicateVote
  - unique violation on candidate: models.ErrConflict
  - foreign key violation: models.ErrNotFound
  - guarded update matching no row: models.ErrElectionNotActive or models.ErrNotFound
*/
package db
