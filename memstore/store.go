// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/models"
)

type voteKey struct {
	electionID string
	voter      string
}

type candidacyKey struct {
	electionID string
	applicant  string
}

// Store keeps ledger state in process memory. One mutex guards everything, so
// AdmitVote's check-insert-increment is atomic and readers see whole votes.
type Store struct {
	mu sync.RWMutex

	elections  map[string]*models.Election
	order      []string // election IDs in creation order
	votes      map[voteKey]models.Vote
	candidacy  map[candidacyKey]string // -> candidate ID
	candidates map[string]*models.Candidate
}

func New() *Store {
	return &Store{
		elections:  make(map[string]*models.Election),
		votes:      make(map[voteKey]models.Vote),
		candidacy:  make(map[candidacyKey]string),
		candidates: make(map[string]*models.Candidate),
	}
}

func (s *Store) CreateElection(ctx context.Context, e models.Election) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.elections[e.ID]; exists {
		return fmt.Errorf("%w: election %s already exists", models.ErrConflict, e.ID)
	}
	stored := e
	stored.Candidates = nil
	stored.TotalVotes = 0
	s.elections[e.ID] = &stored
	s.order = append(s.order, e.ID)
	return nil
}

func (s *Store) GetElection(ctx context.Context, id string) (models.Election, error) {
	if err := ctx.Err(); err != nil {
		return models.Election{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.elections[id]
	if !ok {
		return models.Election{}, fmt.Errorf("%w: election %s", models.ErrNotFound, id)
	}
	return s.snapshot(e), nil
}

func (s *Store) ListElections(ctx context.Context, filter models.ElectionFilter) ([]models.Election, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Election{}
	for _, id := range s.order {
		e := s.elections[id]
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, s.snapshot(e))
	}
	return out, nil
}

func (s *Store) UpdateElectionStatus(ctx context.Context, id string, status models.Status, at time.Time) (models.Election, error) {
	if err := ctx.Err(); err != nil {
		return models.Election{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.elections[id]
	if !ok {
		return models.Election{}, fmt.Errorf("%w: election %s", models.ErrNotFound, id)
	}
	e.Status = status
	e.UpdatedAt = at
	return s.snapshot(e), nil
}

func (s *Store) AddCandidate(ctx context.Context, c models.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.elections[c.ElectionID]
	if !ok {
		return fmt.Errorf("%w: election %s", models.ErrNotFound, c.ElectionID)
	}
	if e.Status == models.StatusCompleted {
		return fmt.Errorf("%w: election %s is completed", models.ErrElectionNotActive, c.ElectionID)
	}
	key := candidacyKey{electionID: c.ElectionID, applicant: strings.ToLower(c.ApplicantIdentity)}
	if _, dup := s.candidacy[key]; dup {
		return fmt.Errorf("%w: %s already applied to election %s", models.ErrConflict, c.ApplicantIdentity, c.ElectionID)
	}

	stored := c
	stored.VoteCount = 0
	s.candidates[c.ID] = &stored
	s.candidacy[key] = c.ID
	e.Candidates = append(e.Candidates, stored)
	return nil
}

func (s *Store) AdmitVote(ctx context.Context, v models.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{electionID: v.ElectionID, voter: strings.ToLower(v.VoterIdentity)}
	if _, dup := s.votes[key]; dup {
		return models.ErrDuplicateVote
	}
	e, ok := s.elections[v.ElectionID]
	if !ok {
		return fmt.Errorf("%w: election %s", models.ErrNotFound, v.ElectionID)
	}
	if e.Status != models.StatusActive {
		return fmt.Errorf("%w: election %s is %s", models.ErrElectionNotActive, v.ElectionID, e.Status)
	}
	idx := -1
	for i := range e.Candidates {
		if e.Candidates[i].ID == v.CandidateID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: candidate %s in election %s", models.ErrNotFound, v.CandidateID, v.ElectionID)
	}

	// All checks passed; nothing below can fail.
	s.votes[key] = v
	e.Candidates[idx].VoteCount++
	s.candidates[v.CandidateID].VoteCount++
	e.TotalVotes++
	return nil
}

func (s *Store) GetVote(ctx context.Context, electionID, voterIdentity string) (models.Vote, error) {
	if err := ctx.Err(); err != nil {
		return models.Vote{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.votes[voteKey{electionID: electionID, voter: strings.ToLower(voterIdentity)}]
	if !ok {
		return models.Vote{}, fmt.Errorf("%w: no vote by %s in election %s", models.ErrNotFound, voterIdentity, electionID)
	}
	return v, nil
}

func (s *Store) ListVotesByVoter(ctx context.Context, voterIdentity string) ([]models.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	voter := strings.ToLower(voterIdentity)
	out := []models.Vote{}
	for key, v := range s.votes {
		if key.voter == voter {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *Store) ListCandidaciesByApplicant(ctx context.Context, applicantIdentity string) ([]models.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	applicant := strings.ToLower(applicantIdentity)
	out := []models.Candidate{}
	for _, id := range s.order {
		if cid, ok := s.candidacy[candidacyKey{electionID: id, applicant: applicant}]; ok {
			out = append(out, *s.candidates[cid])
		}
	}
	return out, nil
}

// snapshot deep-copies an election; caller holds the lock
func (s *Store) snapshot(e *models.Election) models.Election {
	out := *e
	out.Candidates = make([]models.Candidate, len(e.Candidates))
	copy(out.Candidates, e.Candidates)
	return out
}

var _ ledger.Store = (*Store)(nil)
