// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballot-ledger/memstore"
	"github.com/danielhkuo/ballot-ledger/models"
	"github.com/danielhkuo/ballot-ledger/testutil"
)

func TestCandidateDashboard(t *testing.T) {
	l, _ := newLedger(t, memstore.New(), approve())
	ctx := context.Background()
	ada := testutil.Candidate("ada@example.com")

	// Won outright
	e1 := testutil.CreateTestElection(t, l, "Won", models.StatusActive)
	a1 := testutil.AddTestCandidate(t, l, e1.ID, ada.Identity, "Ada")
	b1 := testutil.AddTestCandidate(t, l, e1.ID, "bob@example.com", "Bob")
	testutil.CastTestVotes(t, l, e1.ID, a1.ID, "e1a", 3)
	testutil.CastTestVotes(t, l, e1.ID, b1.ID, "e1b", 1)

	// Shared first place still counts as a win
	e2 := testutil.CreateTestElection(t, l, "Tied", models.StatusActive)
	a2 := testutil.AddTestCandidate(t, l, e2.ID, ada.Identity, "Ada")
	b2 := testutil.AddTestCandidate(t, l, e2.ID, "bob@example.com", "Bob")
	testutil.CastTestVotes(t, l, e2.ID, a2.ID, "e2a", 2)
	testutil.CastTestVotes(t, l, e2.ID, b2.ID, "e2b", 2)

	// Completed with no votes at all is not a win
	e3 := testutil.CreateTestElection(t, l, "Empty", models.StatusActive)
	testutil.AddTestCandidate(t, l, e3.ID, ada.Identity, "Ada")

	// Leading an active election is not a win yet
	e4 := testutil.CreateTestElection(t, l, "Running", models.StatusActive)
	a4 := testutil.AddTestCandidate(t, l, e4.ID, ada.Identity, "Ada")
	testutil.CastTestVotes(t, l, e4.ID, a4.ID, "e4a", 1)

	for _, id := range []string{e1.ID, e2.ID, e3.ID} {
		_, err := l.UpdateElectionStatus(ctx, testutil.Admin, id, models.StatusCompleted)
		require.NoError(t, err)
	}

	dash, err := l.CandidateDashboard(ctx, ada)
	require.NoError(t, err)
	require.Len(t, dash.Candidacies, 4)

	won := make([]bool, len(dash.Candidacies))
	for i, c := range dash.Candidacies {
		won[i] = c.Won
		assert.Equal(t, c.Election.ID, c.Candidate.ElectionID)
	}
	assert.Equal(t, []bool{true, true, false, false}, won)
	assert.Equal(t, 6, dash.TotalVotes)
	assert.Equal(t, 2, dash.ElectionsWon)
	assert.Equal(t, 1, dash.ActiveEntries)
	assert.Equal(t, 3, dash.Candidacies[0].Candidate.VoteCount, "counts are current, not as applied")

	empty, err := l.CandidateDashboard(ctx, testutil.Candidate("nobody@example.com"))
	require.NoError(t, err)
	assert.NotNil(t, empty.Candidacies)
	assert.Empty(t, empty.Candidacies)

	_, err = l.CandidateDashboard(ctx, testutil.Voter("v@example.com"))
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestSummary(t *testing.T) {
	l, _ := newLedger(t, memstore.New(), approve())
	ctx := context.Background()

	s, err := l.Summary(ctx, testutil.Admin)
	require.NoError(t, err)
	assert.Zero(t, s.TotalElections)
	assert.Len(t, s.ByStatus, 3, "every status is reported even when zero")

	e := testutil.CreateTestElection(t, l, "One", models.StatusActive)
	a := testutil.AddTestCandidate(t, l, e.ID, "a@example.com", "A")
	testutil.AddTestCandidate(t, l, e.ID, "b@example.com", "B")
	testutil.CastTestVotes(t, l, e.ID, a.ID, "v", 4)
	testutil.CreateTestElection(t, l, "Two", models.StatusCompleted)

	s, err = l.Summary(ctx, testutil.Admin)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalElections)
	assert.Equal(t, 4, s.TotalVotes)
	assert.Equal(t, 2, s.TotalCandidates)
	assert.Equal(t, 1, s.ByStatus[models.StatusActive])
	assert.Equal(t, 1, s.ByStatus[models.StatusCompleted])
	assert.Equal(t, 0, s.ByStatus[models.StatusUpcoming])

	_, err = l.Summary(ctx, testutil.Voter("v@example.com"))
	assert.ErrorIs(t, err, models.ErrAuthorization)
}
