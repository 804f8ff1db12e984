// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballot-ledger/memstore"
	"github.com/danielhkuo/ballot-ledger/models"
	"github.com/danielhkuo/ballot-ledger/testutil"
)

func TestMyCandidacies(t *testing.T) {
	l := testutil.NewLedger(t, memstore.New())
	h := NewDashboardHandler(l)

	won := testutil.CreateTestElection(t, l, "Won", models.StatusActive)
	ada := testutil.AddTestCandidate(t, l, won.ID, "ada@example.com", "Ada")
	testutil.AddTestCandidate(t, l, won.ID, "bob@example.com", "Bob")
	testutil.CastTestVotes(t, l, won.ID, ada.ID, "voter", 2)
	testutil.CreateTestElection(t, l, "Unrelated", models.StatusActive)

	running := testutil.CreateTestElection(t, l, "Running", models.StatusActive)
	testutil.AddTestCandidate(t, l, running.ID, "ada@example.com", "Ada")

	_, err := l.UpdateElectionStatus(t.Context(), testutil.Admin, won.ID, models.StatusCompleted)
	require.NoError(t, err)

	req := testutil.MakeRequest("GET", "/me/candidacies", nil, testutil.ActorHeaders(testutil.Candidate("ada@example.com")))
	w := serve(h.MyCandidacies, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var dash models.CandidateDashboard
	testutil.AssertJSON(t, w, &dash)
	require.Len(t, dash.Candidacies, 2)
	assert.Equal(t, 2, dash.TotalVotes)
	assert.Equal(t, 1, dash.ElectionsWon)
	assert.Equal(t, 1, dash.ActiveEntries)
	assert.True(t, dash.Candidacies[0].Won)
	assert.False(t, dash.Candidacies[1].Won)

	req = testutil.MakeRequest("GET", "/me/candidacies", nil, testutil.ActorHeaders(testutil.Voter("v@example.com")))
	testutil.AssertStatus(t, serve(h.MyCandidacies, req), http.StatusForbidden)
}

func TestAdminSummary(t *testing.T) {
	l := testutil.NewLedger(t, memstore.New())
	h := NewDashboardHandler(l)

	e := testutil.CreateTestElection(t, l, "One", models.StatusActive)
	c := testutil.AddTestCandidate(t, l, e.ID, "a@example.com", "A")
	testutil.CastTestVotes(t, l, e.ID, c.ID, "voter", 3)
	testutil.CreateTestElection(t, l, "Two", models.StatusCompleted)
	testutil.CreateTestElection(t, l, "Three", models.StatusUpcoming)

	req := testutil.MakeRequest("GET", "/admin/summary", nil, testutil.ActorHeaders(testutil.Admin))
	w := serve(h.AdminSummary, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.Summary
	testutil.AssertJSON(t, w, &summary)
	assert.Equal(t, 3, summary.TotalElections)
	assert.Equal(t, 3, summary.TotalVotes)
	assert.Equal(t, 1, summary.TotalCandidates)
	assert.Equal(t, map[models.Status]int{
		models.StatusUpcoming:  1,
		models.StatusActive:    1,
		models.StatusCompleted: 1,
	}, summary.ByStatus)

	req = testutil.MakeRequest("GET", "/admin/summary", nil, testutil.ActorHeaders(testutil.Candidate("a@example.com")))
	testutil.AssertStatus(t, serve(h.AdminSummary, req), http.StatusForbidden)
}
