// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"

	"github.com/danielhkuo/ballot-ledger/models"
)

// VoterHistory lists the calling voter's votes, newest first
func (l *Ledger) VoterHistory(ctx context.Context, actor models.Actor) ([]models.Vote, error) {
	if err := requireRole(actor, models.RoleVoter); err != nil {
		return nil, err
	}
	votes, err := l.store.ListVotesByVoter(ctx, normalizeIdentity(actor.Identity))
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

// CandidateDashboard collects every candidacy of the calling candidate along
// with its election. A candidacy is won when the election is completed and the
// candidate holds the maximum, non-zero vote count (shared maxima all win).
func (l *Ledger) CandidateDashboard(ctx context.Context, actor models.Actor) (models.CandidateDashboard, error) {
	if err := requireRole(actor, models.RoleCandidate); err != nil {
		return models.CandidateDashboard{}, err
	}

	candidacies, err := l.store.ListCandidaciesByApplicant(ctx, normalizeIdentity(actor.Identity))
	if err != nil {
		return models.CandidateDashboard{}, fmt.Errorf("failed to list candidacies: %w", err)
	}

	dash := models.CandidateDashboard{Candidacies: []models.Candidacy{}}
	for _, c := range candidacies {
		election, err := l.store.GetElection(ctx, c.ElectionID)
		if err != nil {
			return models.CandidateDashboard{}, fmt.Errorf("failed to load election %s: %w", c.ElectionID, err)
		}
		// Prefer the count from the same snapshot as the rest of the election
		if fresh, ok := election.Candidate(c.ID); ok {
			c = fresh
		}

		entry := models.Candidacy{
			Candidate: c,
			Election:  election,
			Won:       hasWon(election, c),
		}
		dash.Candidacies = append(dash.Candidacies, entry)
		dash.TotalVotes += c.VoteCount
		if entry.Won {
			dash.ElectionsWon++
		}
		if election.Status == models.StatusActive {
			dash.ActiveEntries++
		}
	}
	return dash, nil
}

// Summary aggregates every election for the admin overview
func (l *Ledger) Summary(ctx context.Context, actor models.Actor) (models.Summary, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.Summary{}, err
	}

	elections, err := l.store.ListElections(ctx, models.ElectionFilter{})
	if err != nil {
		return models.Summary{}, fmt.Errorf("failed to list elections: %w", err)
	}

	summary := models.Summary{
		TotalElections: len(elections),
		ByStatus: map[models.Status]int{
			models.StatusUpcoming:  0,
			models.StatusActive:    0,
			models.StatusCompleted: 0,
		},
	}
	for _, e := range elections {
		summary.ByStatus[e.Status]++
		summary.TotalVotes += e.TotalVotes
		summary.TotalCandidates += len(e.Candidates)
	}
	return summary, nil
}

func hasWon(election models.Election, c models.Candidate) bool {
	if election.Status != models.StatusCompleted {
		return false
	}
	top := 0
	for _, other := range election.Candidates {
		if other.VoteCount > top {
			top = other.VoteCount
		}
	}
	return top > 0 && c.VoteCount == top
}
