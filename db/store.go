// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/models"
)

// Store is a ledger.Store backed by SQLite or PostgreSQL
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects, verifies the connection and creates the schema
func Open(ctx context.Context, dialect Dialect, url string) (*Store, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("database URL is required")
	}

	conn, err := sql.Open(dialect.driverName(), dialect.dsn(url))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// One writer at a time; transactions queue on the pool instead of failing with SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return New(conn, dialect), nil
}

// New wraps an existing connection. The schema must already exist.
func New(conn *sql.DB, dialect Dialect) *Store {
	return &Store{db: conn, dialect: dialect}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) CreateElection(ctx context.Context, e models.Election) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO election (id, title, description, start_time, end_time, status, total_votes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
	`), e.ID, e.Title, e.Description, toNanos(e.StartTime), toNanos(e.EndTime), string(e.Status),
		toNanos(e.CreatedAt), toNanos(e.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: election %s already exists", models.ErrConflict, e.ID)
		}
		return fmt.Errorf("failed to insert election: %w", err)
	}
	return nil
}

const electionColumns = `
	e.id, e.title, e.description, e.start_time, e.end_time, e.status, e.total_votes, e.created_at, e.updated_at,
	c.id, c.applicant_identity, c.name, c.party, c.manifesto, c.vote_count, c.applied_at`

// GetElection loads the election and its candidates in one statement, so the
// totals and the per-candidate counts come from the same snapshot.
func (s *Store) GetElection(ctx context.Context, id string) (models.Election, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(`
		SELECT`+electionColumns+`
		FROM election e
		LEFT JOIN candidate c ON c.election_id = e.id
		WHERE e.id = ?
		ORDER BY c.apply_seq
	`), id)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}
	defer rows.Close()

	elections, err := scanElections(rows)
	if err != nil {
		return models.Election{}, err
	}
	if len(elections) == 0 {
		return models.Election{}, fmt.Errorf("%w: election %s", models.ErrNotFound, id)
	}
	return elections[0], nil
}

func (s *Store) ListElections(ctx context.Context, filter models.ElectionFilter) ([]models.Election, error) {
	query := `SELECT` + electionColumns + `
		FROM election e
		LEFT JOIN candidate c ON c.election_id = e.id`
	var args []any
	if filter.Status != "" {
		query += ` WHERE e.status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY e.created_at, e.id, c.apply_seq`

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	return scanElections(rows)
}

func (s *Store) UpdateElectionStatus(ctx context.Context, id string, status models.Status, at time.Time) (models.Election, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`
		UPDATE election SET status = ?, updated_at = ? WHERE id = ?
	`), string(status), toNanos(at), id)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to update election status: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Election{}, fmt.Errorf("failed to update election status: %w", err)
	} else if n == 0 {
		return models.Election{}, fmt.Errorf("%w: election %s", models.ErrNotFound, id)
	}
	return s.GetElection(ctx, id)
}

// AddCandidate locks the election row while it checks the status and takes
// the next apply_seq, so a concurrent switch to completed cannot slip in
// between check and insert and candidates read back in application order.
func (s *Store) AddCandidate(ctx context.Context, c models.Candidate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.dialect.rebind(`
		UPDATE election SET status = status WHERE id = ? AND status <> 'completed'
	`), c.ElectionID)
	if err != nil {
		return fmt.Errorf("failed to lock election: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to lock election: %w", err)
	} else if n == 0 {
		return s.electionRejection(ctx, tx, c.ElectionID)
	}

	// The election row lock above serializes sequence allocation
	var seq int
	err = tx.QueryRowContext(ctx, s.dialect.rebind(`
		SELECT COALESCE(MAX(apply_seq), 0) + 1 FROM candidate WHERE election_id = ?
	`), c.ElectionID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to allocate candidate sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO candidate (id, election_id, applicant_identity, name, party, manifesto, vote_count, applied_at, apply_seq)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
	`), c.ID, c.ElectionID, c.ApplicantIdentity, c.Name, c.Party, c.Manifesto, toNanos(c.AppliedAt), seq)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s already applied to election %s", models.ErrConflict, c.ApplicantIdentity, c.ElectionID)
		}
		return fmt.Errorf("failed to insert candidate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AdmitVote inserts the vote and bumps both counters in one transaction.
// UNIQUE (election_id, voter_identity) decides races between duplicate submissions.
func (s *Store) AdmitVote(ctx context.Context, v models.Vote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var confidence sql.NullFloat64
	if v.AssertionConfidence > 0 {
		confidence = sql.NullFloat64{Float64: v.AssertionConfidence, Valid: true}
	}
	_, err = tx.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO vote (id, election_id, candidate_id, voter_identity, cast_at, identity_verified, assertion_confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), v.ID, v.ElectionID, v.CandidateID, v.VoterIdentity, toNanos(v.Timestamp), v.IdentityVerified, confidence)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateVote
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: candidate %s in election %s", models.ErrNotFound, v.CandidateID, v.ElectionID)
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err := tx.ExecContext(ctx, s.dialect.rebind(`
		UPDATE election SET total_votes = total_votes + 1 WHERE id = ? AND status = 'active'
	`), v.ElectionID)
	if err != nil {
		return fmt.Errorf("failed to update election total: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update election total: %w", err)
	} else if n == 0 {
		return s.electionRejection(ctx, tx, v.ElectionID)
	}

	res, err = tx.ExecContext(ctx, s.dialect.rebind(`
		UPDATE candidate SET vote_count = vote_count + 1 WHERE id = ? AND election_id = ?
	`), v.CandidateID, v.ElectionID)
	if err != nil {
		return fmt.Errorf("failed to update candidate count: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update candidate count: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: candidate %s in election %s", models.ErrNotFound, v.CandidateID, v.ElectionID)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateVote
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) GetVote(ctx context.Context, electionID, voterIdentity string) (models.Vote, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`
		SELECT id, election_id, candidate_id, voter_identity, cast_at, identity_verified, assertion_confidence
		FROM vote
		WHERE election_id = ? AND voter_identity = ?
	`), electionID, voterIdentity)

	v, err := scanVote(row)
	if err == sql.ErrNoRows {
		return models.Vote{}, fmt.Errorf("%w: no vote by %s in election %s", models.ErrNotFound, voterIdentity, electionID)
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query vote: %w", err)
	}
	return v, nil
}

func (s *Store) ListVotesByVoter(ctx context.Context, voterIdentity string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(`
		SELECT id, election_id, candidate_id, voter_identity, cast_at, identity_verified, assertion_confidence
		FROM vote
		WHERE voter_identity = ?
		ORDER BY cast_at DESC, id
	`), voterIdentity)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	return votes, nil
}

func (s *Store) ListCandidaciesByApplicant(ctx context.Context, applicantIdentity string) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(`
		SELECT c.id, c.election_id, c.applicant_identity, c.name, c.party, c.manifesto, c.vote_count, c.applied_at
		FROM candidate c
		JOIN election e ON e.id = c.election_id
		WHERE c.applicant_identity = ?
		ORDER BY e.created_at, e.id
	`), applicantIdentity)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidacies: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var appliedAt int64
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.ApplicantIdentity, &c.Name, &c.Party, &c.Manifesto, &c.VoteCount, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.AppliedAt = fromNanos(appliedAt)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query candidacies: %w", err)
	}
	return candidates, nil
}

// electionRejection explains why a guarded UPDATE on the election matched no row
func (s *Store) electionRejection(ctx context.Context, tx *sql.Tx, electionID string) error {
	var status string
	err := tx.QueryRowContext(ctx, s.dialect.rebind(`SELECT status FROM election WHERE id = ?`), electionID).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: election %s", models.ErrNotFound, electionID)
	}
	if err != nil {
		return fmt.Errorf("failed to query election: %w", err)
	}
	return fmt.Errorf("%w: election %s is %s", models.ErrElectionNotActive, electionID, status)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVote(row rowScanner) (models.Vote, error) {
	var v models.Vote
	var castAt int64
	var confidence sql.NullFloat64
	if err := row.Scan(&v.ID, &v.ElectionID, &v.CandidateID, &v.VoterIdentity, &castAt, &v.IdentityVerified, &confidence); err != nil {
		return models.Vote{}, err
	}
	v.Timestamp = fromNanos(castAt)
	v.AssertionConfidence = confidence.Float64
	return v, nil
}

// scanElections folds joined election/candidate rows, keeping row order
func scanElections(rows *sql.Rows) ([]models.Election, error) {
	elections := []models.Election{}
	index := make(map[string]int)

	for rows.Next() {
		var (
			e                                    models.Election
			status                               string
			startTime, endTime, created, updated int64
			cID, cApplicant, cName, cParty       sql.NullString
			cManifesto                           sql.NullString
			cVotes, cApplied                     sql.NullInt64
		)
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &startTime, &endTime, &status, &e.TotalVotes, &created, &updated,
			&cID, &cApplicant, &cName, &cParty, &cManifesto, &cVotes, &cApplied,
		); err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}

		i, seen := index[e.ID]
		if !seen {
			e.Status = models.Status(status)
			e.StartTime = fromNanos(startTime)
			e.EndTime = fromNanos(endTime)
			e.CreatedAt = fromNanos(created)
			e.UpdatedAt = fromNanos(updated)
			e.Candidates = []models.Candidate{}
			elections = append(elections, e)
			i = len(elections) - 1
			index[e.ID] = i
		}

		if cID.Valid {
			elections[i].Candidates = append(elections[i].Candidates, models.Candidate{
				ID:                cID.String,
				ElectionID:        e.ID,
				ApplicantIdentity: cApplicant.String,
				Name:              cName.String,
				Party:             cParty.String,
				Manifesto:         cManifesto.String,
				VoteCount:         int(cVotes.Int64),
				AppliedAt:         fromNanos(cApplied.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read elections: %w", err)
	}
	return elections, nil
}

var _ ledger.Store = (*Store)(nil)
