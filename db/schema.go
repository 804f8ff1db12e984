// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the ledger.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are portable between SQLite and PostgreSQL.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Timestamps are stored as Unix nanoseconds. Candidate order comes from
// apply_seq, assigned per election while the election row is locked.
var schema = []string{
	// Elections
	`CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    start_time BIGINT NOT NULL,
    end_time BIGINT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('upcoming', 'active', 'completed')),
    total_votes INTEGER NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    CHECK (end_time > start_time)
)`,
	`CREATE INDEX IF NOT EXISTS idx_election_status ON election(status)`,

	// Candidates
	`CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    applicant_identity TEXT NOT NULL,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    manifesto TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    applied_at BIGINT NOT NULL,
    apply_seq INTEGER NOT NULL,
    UNIQUE (election_id, applicant_identity),
    UNIQUE (election_id, apply_seq)
)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_applicant ON candidate(applicant_identity)`,

	// Votes: one per voter per election
	`CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    voter_identity TEXT NOT NULL,
    cast_at BIGINT NOT NULL,
    identity_verified BOOLEAN NOT NULL,
    assertion_confidence REAL,
    UNIQUE (election_id, voter_identity)
)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_voter_identity ON vote(voter_identity)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id)`,
}
