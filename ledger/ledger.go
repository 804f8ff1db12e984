// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/ballot-ledger/models"
)

// DefaultAssertionTimeout bounds a single identity check
const DefaultAssertionTimeout = 10 * time.Second

// Ledger is the single authority for election, candidacy and vote state
type Ledger struct {
	store            Store
	identity         IdentityAssertionProvider
	clock            Clock
	ids              IDGenerator
	logger           *slog.Logger
	assertionTimeout time.Duration
}

// Option configures a Ledger built by New
type Option func(*Ledger)

// WithClock replaces the wall clock used for statuses and timestamps
func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// WithIDGenerator replaces the UUID generator for record ids
func WithIDGenerator(g IDGenerator) Option {
	return func(l *Ledger) { l.ids = g }
}

// WithLogger sets the logger; nil falls back to slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithAssertionTimeout sets the identity check deadline; zero disables it
func WithAssertionTimeout(d time.Duration) Option {
	return func(l *Ledger) { l.assertionTimeout = d }
}

func New(store Store, provider IdentityAssertionProvider, opts ...Option) *Ledger {
	l := &Ledger{
		store:            store,
		identity:         provider,
		clock:            systemClock{},
		ids:              uuidGenerator{},
		assertionTimeout: DefaultAssertionTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

type CreateElectionInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

type ApplyCandidacyInput struct {
	ElectionID string
	Name       string
	Party      string
	Manifesto  string
}

type SubmitVoteInput struct {
	ElectionID  string
	CandidateID string
}

// CreateElection allocates a new election. Status is upcoming when the start
// time is still ahead, active otherwise.
func (l *Ledger) CreateElection(ctx context.Context, actor models.Actor, in CreateElectionInput) (models.Election, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.Election{}, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if err := requireFields("title", title, "description", description); err != nil {
		return models.Election{}, err
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return models.Election{}, fmt.Errorf("%w: start_time and end_time are required", models.ErrValidation)
	}
	if !in.EndTime.After(in.StartTime) {
		return models.Election{}, fmt.Errorf("%w: end_time must be after start_time", models.ErrValidation)
	}

	now := l.clock.Now()
	status := models.StatusActive
	if in.StartTime.After(now) {
		status = models.StatusUpcoming
	}

	election := models.Election{
		ID:          l.ids.NewID(),
		Title:       title,
		Description: description,
		StartTime:   in.StartTime.UTC(),
		EndTime:     in.EndTime.UTC(),
		Status:      status,
		Candidates:  []models.Candidate{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := l.store.CreateElection(ctx, election); err != nil {
		return models.Election{}, fmt.Errorf("failed to create election: %w", err)
	}

	l.logger.Info("election created", "election_id", election.ID, "status", status, "actor", actor.Identity)
	return election, nil
}

// ApplyCandidacy registers the calling candidate-role actor for an election
// that has not completed. One application per applicant per election.
func (l *Ledger) ApplyCandidacy(ctx context.Context, actor models.Actor, in ApplyCandidacyInput) (models.Candidate, error) {
	if err := requireRole(actor, models.RoleCandidate); err != nil {
		return models.Candidate{}, err
	}

	candidate := models.Candidate{
		ElectionID:        strings.TrimSpace(in.ElectionID),
		ApplicantIdentity: normalizeIdentity(actor.Identity),
		Name:              strings.TrimSpace(in.Name),
		Party:             strings.TrimSpace(in.Party),
		Manifesto:         strings.TrimSpace(in.Manifesto),
	}
	if err := requireFields(
		"election_id", candidate.ElectionID,
		"name", candidate.Name,
		"party", candidate.Party,
		"manifesto", candidate.Manifesto,
	); err != nil {
		return models.Candidate{}, err
	}

	election, err := l.store.GetElection(ctx, candidate.ElectionID)
	if err != nil {
		return models.Candidate{}, err
	}
	if election.Status == models.StatusCompleted {
		return models.Candidate{}, fmt.Errorf("%w: election %s is completed", models.ErrElectionNotActive, election.ID)
	}

	candidate.ID = l.ids.NewID()
	candidate.AppliedAt = l.clock.Now()
	if err := l.store.AddCandidate(ctx, candidate); err != nil {
		return models.Candidate{}, err
	}

	l.logger.Info("candidacy accepted",
		"election_id", candidate.ElectionID,
		"candidate_id", candidate.ID,
		"applicant", candidate.ApplicantIdentity,
	)
	return candidate, nil
}

// SubmitVote admits one vote for the calling voter. The identity assertion runs
// before any mutation; admission itself is a single atomic store call, so a
// racing duplicate loses with models.ErrDuplicateVote.
func (l *Ledger) SubmitVote(ctx context.Context, actor models.Actor, in SubmitVoteInput) (models.Vote, error) {
	if err := requireRole(actor, models.RoleVoter); err != nil {
		return models.Vote{}, err
	}

	electionID := strings.TrimSpace(in.ElectionID)
	candidateID := strings.TrimSpace(in.CandidateID)
	voter := normalizeIdentity(actor.Identity)
	if err := requireFields("election_id", electionID, "candidate_id", candidateID); err != nil {
		return models.Vote{}, err
	}

	election, err := l.store.GetElection(ctx, electionID)
	if err != nil {
		return models.Vote{}, err
	}
	if election.Status != models.StatusActive {
		return models.Vote{}, fmt.Errorf("%w: election %s is %s", models.ErrElectionNotActive, electionID, election.Status)
	}
	if _, ok := election.Candidate(candidateID); !ok {
		return models.Vote{}, fmt.Errorf("%w: candidate %s in election %s", models.ErrNotFound, candidateID, electionID)
	}

	// Cheap early rejection; the store enforces uniqueness regardless.
	_, err = l.store.GetVote(ctx, electionID, voter)
	switch {
	case err == nil:
		return models.Vote{}, models.ErrDuplicateVote
	case !errors.Is(err, models.ErrNotFound):
		return models.Vote{}, err
	}

	assertion, err := l.verify(ctx, voter)
	if err != nil {
		l.logger.Warn("identity assertion rejected", "election_id", electionID, "voter", voter, "error", err)
		return models.Vote{}, err
	}

	vote := models.Vote{
		ID:                  l.ids.NewID(),
		ElectionID:          electionID,
		CandidateID:         candidateID,
		VoterIdentity:       voter,
		Timestamp:           l.clock.Now(),
		IdentityVerified:    assertion.Success,
		AssertionConfidence: assertion.Confidence,
	}
	if err := l.store.AdmitVote(ctx, vote); err != nil {
		if errors.Is(err, models.ErrDuplicateVote) {
			l.logger.Warn("duplicate vote rejected", "election_id", electionID, "voter", voter)
		}
		return models.Vote{}, err
	}

	l.logger.Info("vote admitted", "election_id", electionID, "vote_id", vote.ID, "candidate_id", candidateID)
	return vote, nil
}

// UpdateElectionStatus sets the status unconditionally; any transition is allowed
func (l *Ledger) UpdateElectionStatus(ctx context.Context, actor models.Actor, electionID string, status models.Status) (models.Election, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.Election{}, err
	}
	status, err := models.ParseStatus(string(status))
	if err != nil {
		return models.Election{}, err
	}

	election, err := l.store.UpdateElectionStatus(ctx, strings.TrimSpace(electionID), status, l.clock.Now())
	if err != nil {
		return models.Election{}, err
	}

	l.logger.Info("election status updated", "election_id", election.ID, "status", status, "actor", actor.Identity)
	return election, nil
}

func (l *Ledger) GetElection(ctx context.Context, electionID string) (models.Election, error) {
	return l.store.GetElection(ctx, strings.TrimSpace(electionID))
}

func (l *Ledger) ListElections(ctx context.Context, filter models.ElectionFilter) ([]models.Election, error) {
	if filter.Status != "" {
		status, err := models.ParseStatus(string(filter.Status))
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	return l.store.ListElections(ctx, filter)
}

// HasVoted reports whether the voter already has a vote in the election
func (l *Ledger) HasVoted(ctx context.Context, electionID, voterIdentity string) (bool, error) {
	_, err := l.store.GetVote(ctx, strings.TrimSpace(electionID), normalizeIdentity(voterIdentity))
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Ledger) verify(ctx context.Context, voter string) (Assertion, error) {
	if l.identity == nil {
		return Assertion{}, fmt.Errorf("%w: no identity provider configured", models.ErrIdentityAssertionFailed)
	}
	if l.assertionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.assertionTimeout)
		defer cancel()
	}

	assertion, err := l.identity.Verify(ctx, voter)
	if err != nil {
		return Assertion{}, fmt.Errorf("%w: %w", models.ErrIdentityAssertionFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return Assertion{}, fmt.Errorf("%w: %w", models.ErrIdentityAssertionFailed, err)
	}
	if !assertion.Success {
		return Assertion{}, models.ErrIdentityAssertionFailed
	}
	return assertion, nil
}

func requireRole(actor models.Actor, role models.Role) error {
	if strings.TrimSpace(actor.Identity) == "" {
		return fmt.Errorf("%w: actor identity is required", models.ErrAuthorization)
	}
	if actor.Role != role {
		return fmt.Errorf("%w: %s role required, got %q", models.ErrAuthorization, role, actor.Role)
	}
	return nil
}

// normalizeIdentity folds identities so "Alice@x" and "alice@x " are one voter
func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// requireFields takes name/value pairs and rejects the first empty value
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s is required", models.ErrValidation, pairs[i])
		}
	}
	return nil
}
