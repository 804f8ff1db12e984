// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballot-ledger/memstore"
	"github.com/danielhkuo/ballot-ledger/models"
	"github.com/danielhkuo/ballot-ledger/testutil"
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	l := testutil.NewLedger(t, memstore.New())
	return NewRouter(l, testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newMux(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRootEndpoint(t *testing.T) {
	mux := newMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ballot-ledger API v1", w.Body.String())
}

func TestRouteExistence(t *testing.T) {
	mux := newMux(t)

	// Every route is registered: none falls through to the mux's own 404/405
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/elections"},
		{"GET", "/elections"},
		{"GET", "/elections/e1"},
		{"POST", "/elections/e1/status"},
		{"POST", "/elections/e1/candidates"},
		{"POST", "/elections/e1/votes"},
		{"GET", "/elections/e1/results"},
		{"GET", "/elections/e1/results.txt"},
		{"GET", "/me/votes"},
		{"GET", "/me/candidacies"},
		{"GET", "/admin/summary"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code)
			// Handler 404s are JSON; the mux's are plain text
			if w.Code == http.StatusNotFound {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestAuthenticatedRoutesRequireActor(t *testing.T) {
	mux := newMux(t)

	for _, path := range []string{"/me/votes", "/me/candidacies", "/admin/summary"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	mux := newMux(t)

	req := httptest.NewRequest("GET", "/unknown", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestElectionLifecycle drives one election through the router end to end
func TestElectionLifecycle(t *testing.T) {
	mux := newMux(t)
	now := time.Now().UTC()

	// Create
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections", models.CreateElectionRequest{
		Title:       "Board",
		Description: "Annual board election",
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
	}, testutil.ActorHeaders(testutil.Admin)))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var election models.Election
	testutil.AssertJSON(t, w, &election)
	require.Equal(t, models.StatusActive, election.Status)

	// Apply
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections/"+election.ID+"/candidates", models.ApplyCandidacyRequest{
		Name: "Ada", Party: "Engines", Manifesto: "Compute everything",
	}, testutil.ActorHeaders(testutil.Candidate("ada@example.com"))))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var candidate models.Candidate
	testutil.AssertJSON(t, w, &candidate)

	// Vote
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/elections/"+election.ID+"/votes", models.SubmitVoteRequest{
		CandidateID: candidate.ID,
	}, testutil.ActorHeaders(testutil.Voter("v1@example.com"))))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Results
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/elections/"+election.ID+"/results", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)
	assert.Equal(t, 1, results.TotalVotes)
	require.NotNil(t, results.Winner)
	assert.Equal(t, candidate.ID, results.Winner.Candidate.ID)

	// Text report
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/elections/"+election.ID+"/results.txt", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), "Ada")
}
