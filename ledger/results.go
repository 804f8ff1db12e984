// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"sort"
	"strings"

	"github.com/danielhkuo/ballot-ledger/models"
)

// ComputeResults ranks the candidates of an election by vote count.
// An election without votes yields an empty slice.
func (l *Ledger) ComputeResults(ctx context.Context, electionID string) ([]models.Result, error) {
	election, err := l.store.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return nil, err
	}
	return Rank(election), nil
}

// Winner returns the top-ranked result; ok is false while nobody has voted
func (l *Ledger) Winner(ctx context.Context, electionID string) (models.Result, bool, error) {
	results, err := l.ComputeResults(ctx, electionID)
	if err != nil {
		return models.Result{}, false, err
	}
	if len(results) == 0 {
		return models.Result{}, false, nil
	}
	return results[0], true, nil
}

// Rank orders an election snapshot's candidates by vote count, descending.
// Ties keep application order. Percentages are of TotalVotes.
func Rank(election models.Election) []models.Result {
	if election.TotalVotes == 0 {
		return []models.Result{}
	}

	results := make([]models.Result, len(election.Candidates))
	total := float64(election.TotalVotes)
	for i, c := range election.Candidates {
		results[i] = models.Result{
			Candidate:  c,
			Percentage: float64(c.VoteCount) / total * 100,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Candidate.VoteCount > results[j].Candidate.VoteCount
	})

	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}
