// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"time"

	"github.com/danielhkuo/ballot-ledger/auth"
	"github.com/danielhkuo/ballot-ledger/models"
)

// Store is the persistent record keeper behind the ledger.
//
// AdmitVote must be atomic: insert the vote, increment the candidate's
// vote_count and the election's total_votes, or do nothing. It returns
// models.ErrDuplicateVote when (election, voter) already has a vote and
// models.ErrElectionNotActive when the election left the active state.
//
// AddCandidate returns models.ErrConflict for a second application by the
// same applicant and models.ErrElectionNotActive for completed elections.
//
// GetElection returns candidates in application order.
type Store interface {
	CreateElection(ctx context.Context, e models.Election) error
	GetElection(ctx context.Context, id string) (models.Election, error)
	ListElections(ctx context.Context, filter models.ElectionFilter) ([]models.Election, error)
	UpdateElectionStatus(ctx context.Context, id string, status models.Status, at time.Time) (models.Election, error)
	AddCandidate(ctx context.Context, c models.Candidate) error
	AdmitVote(ctx context.Context, v models.Vote) error
	GetVote(ctx context.Context, electionID, voterIdentity string) (models.Vote, error)
	ListVotesByVoter(ctx context.Context, voterIdentity string) ([]models.Vote, error)
	ListCandidaciesByApplicant(ctx context.Context, applicantIdentity string) ([]models.Candidate, error)
}

// Assertion is the outcome of an identity check
type Assertion struct {
	Success    bool
	Confidence float64
}

// IdentityAssertionProvider proves that a voter is who they claim to be.
// Anything other than a nil error with Success=true rejects the vote.
type IdentityAssertionProvider interface {
	Verify(ctx context.Context, voterIdentity string) (Assertion, error)
}

// Clock supplies the current time for statuses and timestamps
type Clock interface {
	Now() time.Time
}

// IDGenerator allocates ids for elections, candidates and votes
type IDGenerator interface {
	NewID() string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return auth.NewID() }
