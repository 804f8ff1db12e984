// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballot-ledger/models"
	"github.com/danielhkuo/ballot-ledger/testutil"
)

// TestFullElectionWorkflow tests the complete end-to-end workflow on SQLite:
// 1. Admin creates an upcoming election
// 2. Two candidates apply
// 3. Voting before activation is rejected
// 4. Admin activates the election
// 5. V1 votes A, V1 repeats, V2 votes B
// 6. Results split 50/50
// 7. Admin completes the election; late votes are rejected
func TestFullElectionWorkflow(t *testing.T) {
	store := testutil.SetupTestStore(t)
	l := testutil.NewLedger(t, store)

	electionHandler := NewElectionHandler(l)
	votingHandler := NewVotingHandler(l)
	resultsHandler := NewResultsHandler(l)
	admin := testutil.ActorHeaders(testutil.Admin)

	// Step 1: Create an election that starts tomorrow
	now := time.Now().UTC()
	req := testutil.MakeRequest("POST", "/elections", models.CreateElectionRequest{
		Title:       "Integration Election",
		Description: "Testing the full voting workflow",
		StartTime:   now.Add(24 * time.Hour),
		EndTime:     now.Add(48 * time.Hour),
	}, admin)
	w := serve(electionHandler.CreateElection, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var election models.Election
	testutil.AssertJSON(t, w, &election)
	require.Equal(t, models.StatusUpcoming, election.Status)
	t.Logf("Step 1 - Created election: %s", election.ID)

	// Step 2: Candidates apply
	apply := func(identity, name string) models.Candidate {
		req := testutil.MakeRequest("POST", "/elections/"+election.ID+"/candidates", models.ApplyCandidacyRequest{
			Name: name, Party: name + " Party", Manifesto: "Vote " + name,
		}, testutil.ActorHeaders(testutil.Candidate(identity)))
		w := serve(electionHandler.ApplyCandidacy, withPath(req, election.ID))
		testutil.AssertStatus(t, w, http.StatusCreated)
		var c models.Candidate
		testutil.AssertJSON(t, w, &c)
		return c
	}
	a := apply("a@example.com", "A")
	b := apply("b@example.com", "B")

	// Step 3: Too early
	testutil.AssertStatus(t, vote(votingHandler, election.ID, a.ID, "v1@example.com"), http.StatusConflict)

	// Step 4: Activate
	setStatus := func(status models.Status) {
		req := testutil.MakeRequest("POST", "/elections/"+election.ID+"/status",
			models.UpdateStatusRequest{Status: string(status)}, admin)
		testutil.AssertStatus(t, serve(electionHandler.UpdateStatus, withPath(req, election.ID)), http.StatusOK)
	}
	setStatus(models.StatusActive)

	// Step 5: Votes
	testutil.AssertStatus(t, vote(votingHandler, election.ID, a.ID, "v1@example.com"), http.StatusCreated)
	testutil.AssertStatus(t, vote(votingHandler, election.ID, a.ID, "v1@example.com"), http.StatusConflict)
	testutil.AssertStatus(t, vote(votingHandler, election.ID, b.ID, "v2@example.com"), http.StatusCreated)

	// Step 6: Results
	resp := getResults(t, resultsHandler, election.ID)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.TotalVotes)
	assert.Equal(t, a.ID, resp.Results[0].Candidate.ID)
	assert.Equal(t, b.ID, resp.Results[1].Candidate.ID)
	assert.InDelta(t, 50.0, resp.Results[0].Percentage, 1e-9)
	assert.InDelta(t, 50.0, resp.Results[1].Percentage, 1e-9)

	// Step 7: Complete
	setStatus(models.StatusCompleted)
	testutil.AssertStatus(t, vote(votingHandler, election.ID, b.ID, "v3@example.com"), http.StatusConflict)

	resp = getResults(t, resultsHandler, election.ID)
	assert.Equal(t, 2, resp.TotalVotes)
	assert.Equal(t, models.StatusCompleted, resp.Election.Status)
}
