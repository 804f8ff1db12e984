// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballot-ledger/models"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func election(status models.Status, counts ...int) models.Election {
	e := models.Election{
		ID:        "e1",
		Title:     "Student Council",
		Status:    status,
		StartTime: now.Add(-48 * time.Hour),
		EndTime:   now.Add(72 * time.Hour),
	}
	for i, n := range counts {
		e.Candidates = append(e.Candidates, models.Candidate{
			ID:        string(rune('a' + i)),
			Name:      string(rune('A' + i)),
			Party:     "Party " + string(rune('A'+i)),
			VoteCount: n,
		})
		e.TotalVotes += n
	}
	return e
}

func results(e models.Election) []models.Result {
	// Candidates are already in descending order in these fixtures
	out := make([]models.Result, len(e.Candidates))
	for i, c := range e.Candidates {
		out[i] = models.Result{Candidate: c, Rank: i + 1, Percentage: float64(c.VoteCount) / float64(e.TotalVotes) * 100}
	}
	return out
}

func TestWriteResults_NoVotes(t *testing.T) {
	e := election(models.StatusActive, 0, 0)
	var b strings.Builder

	require.NoError(t, WriteResults(&b, e, []models.Result{}, now))

	out := b.String()
	assert.Contains(t, out, "Student Council\n===============")
	assert.Contains(t, out, "No votes have been cast yet.")
	assert.Contains(t, out, "2 days ago")
	assert.Contains(t, out, "3 days from now")
}

func TestWriteResults_Table(t *testing.T) {
	e := election(models.StatusActive, 1500, 500)
	var b strings.Builder

	require.NoError(t, WriteResults(&b, e, results(e), now))

	out := b.String()
	assert.Contains(t, out, "Votes:   2,000")
	assert.Contains(t, out, "1st")
	assert.Contains(t, out, "2nd")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "Leading: A")
}

func TestWriteResults_CompletedTie(t *testing.T) {
	e := election(models.StatusCompleted, 5, 5, 3)
	var b strings.Builder

	require.NoError(t, WriteResults(&b, e, results(e), now))

	assert.Contains(t, b.String(), "Winner: A, B (tie)")
	assert.Contains(t, b.String(), "38.46%")
}
