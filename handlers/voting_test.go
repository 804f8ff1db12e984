// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballot-ledger/identity"
	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/memstore"
	"github.com/danielhkuo/ballot-ledger/models"
	"github.com/danielhkuo/ballot-ledger/testutil"
)

func vote(h *VotingHandler, electionID, candidateID, voter string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/votes",
		models.SubmitVoteRequest{CandidateID: candidateID},
		testutil.ActorHeaders(testutil.Voter(voter)))
	return serve(h.SubmitVote, withPath(req, electionID))
}

func TestSubmitVote(t *testing.T) {
	l := testutil.NewLedger(t, memstore.New())
	h := NewVotingHandler(l)

	active := testutil.CreateTestElection(t, l, "Active", models.StatusActive)
	a := testutil.AddTestCandidate(t, l, active.ID, "a@example.com", "A")

	upcoming := testutil.CreateTestElection(t, l, "Upcoming", models.StatusActive)
	u := testutil.AddTestCandidate(t, l, upcoming.ID, "a@example.com", "A")
	_, err := l.UpdateElectionStatus(context.Background(), testutil.Admin, upcoming.ID, models.StatusUpcoming)
	require.NoError(t, err)

	w := vote(h, active.ID, a.ID, "v1@example.com")
	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.SubmitVoteResponse
	testutil.AssertJSON(t, w, &resp)
	assert.NotEmpty(t, resp.VoteID)

	tests := []struct {
		name        string
		electionID  string
		candidateID string
		voter       string
		wantStatus  int
	}{
		{"duplicate", active.ID, a.ID, "v1@example.com", http.StatusConflict},
		{"duplicate other case", active.ID, a.ID, "V1@Example.com", http.StatusConflict},
		{"unknown candidate", active.ID, "nope", "v2@example.com", http.StatusNotFound},
		{"candidate of another election", active.ID, u.ID, "v2@example.com", http.StatusNotFound},
		{"not active", upcoming.ID, u.ID, "v2@example.com", http.StatusConflict},
		{"unknown election", "nope", a.ID, "v2@example.com", http.StatusNotFound},
		{"missing candidate", active.ID, "", "v2@example.com", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertStatus(t, vote(h, tt.electionID, tt.candidateID, tt.voter), tt.wantStatus)
		})
	}

	got, err := l.GetElection(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalVotes)
}

func TestSubmitVote_WrongRole(t *testing.T) {
	l := testutil.NewLedger(t, memstore.New())
	h := NewVotingHandler(l)
	e := testutil.CreateTestElection(t, l, "Roles", models.StatusActive)
	c := testutil.AddTestCandidate(t, l, e.ID, "a@example.com", "A")

	req := testutil.MakeRequest("POST", "/elections/"+e.ID+"/votes",
		models.SubmitVoteRequest{CandidateID: c.ID}, testutil.ActorHeaders(testutil.Admin))
	testutil.AssertStatus(t, serve(h.SubmitVote, withPath(req, e.ID)), http.StatusForbidden)
}

func TestSubmitVote_AssertionFailure(t *testing.T) {
	store := memstore.New()
	setup := testutil.NewLedger(t, store)
	e := testutil.CreateTestElection(t, setup, "Camera", models.StatusActive)
	c := testutil.AddTestCandidate(t, setup, e.ID, "a@example.com", "A")

	providers := map[string]ledger.IdentityAssertionProvider{
		"rejected": identity.Fixed{Success: false},
		"provider error": identity.ProviderFunc(func(ctx context.Context, _ string) (ledger.Assertion, error) {
			return ledger.Assertion{}, errors.New("camera unavailable")
		}),
	}

	for name, p := range providers {
		t.Run(name, func(t *testing.T) {
			l := ledger.New(store, p, ledger.WithLogger(testutil.QuietLogger()))
			h := NewVotingHandler(l)

			testutil.AssertStatus(t, vote(h, e.ID, c.ID, "v@example.com"), http.StatusUnprocessableEntity)

			got, err := l.GetElection(context.Background(), e.ID)
			require.NoError(t, err)
			assert.Zero(t, got.TotalVotes)
		})
	}
}

func TestMyVotes(t *testing.T) {
	l := testutil.NewLedger(t, memstore.New())
	h := NewVotingHandler(l)
	e1 := testutil.CreateTestElection(t, l, "One", models.StatusActive)
	e2 := testutil.CreateTestElection(t, l, "Two", models.StatusActive)
	c1 := testutil.AddTestCandidate(t, l, e1.ID, "a@example.com", "A")
	c2 := testutil.AddTestCandidate(t, l, e2.ID, "a@example.com", "A")

	testutil.AssertStatus(t, vote(h, e1.ID, c1.ID, "v@example.com"), http.StatusCreated)
	testutil.AssertStatus(t, vote(h, e2.ID, c2.ID, "v@example.com"), http.StatusCreated)

	req := testutil.MakeRequest("GET", "/me/votes", nil, testutil.ActorHeaders(testutil.Voter("v@example.com")))
	w := serve(h.MyVotes, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	assert.NotContains(t, w.Body.String(), "v@example.com", "voter identity must not be serialized")
	var votes []models.Vote
	testutil.AssertJSON(t, w, &votes)
	assert.Len(t, votes, 2)

	req = testutil.MakeRequest("GET", "/me/votes", nil, testutil.ActorHeaders(testutil.Admin))
	testutil.AssertStatus(t, serve(h.MyVotes, req), http.StatusForbidden)
}
