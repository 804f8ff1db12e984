// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/ballot-ledger/auth"
	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/db"
	"github.com/danielhkuo/ballot-ledger/identity"
	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/models"
	"github.com/stretchr/testify/require"
)

// TestActorSalt signs actor tokens in handler tests
const TestActorSalt = "test-actor-salt"

// Admin is the actor used to create and manage test elections
var Admin = models.Actor{Identity: "admin@example.com", Role: models.RoleAdmin}

func Voter(identity string) models.Actor {
	return models.Actor{Identity: identity, Role: models.RoleVoter}
}

func Candidate(identity string) models.Actor {
	return models.Actor{Identity: identity, Role: models.RoleCandidate}
}

// SetupTestStore opens a fresh SQLite store in a temp directory with the full schema
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := db.Open(context.Background(), db.DialectSQLite, "file:"+path)
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SetupPostgresStore connects to TEST_DATABASE_URL, or skips the test when unset.
// Tables are dropped first so every test starts empty.
func SetupPostgresStore(t *testing.T, dialect db.Dialect) *db.Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := db.Open(ctx, dialect, url)
	require.NoError(t, err, "failed to open postgres store")
	_, err = store.DB().ExecContext(ctx, `DROP TABLE IF EXISTS vote, candidate, election CASCADE`)
	require.NoError(t, err, "failed to clean database")
	require.NoError(t, db.CreateSchema(ctx, store.DB()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "file::memory:",
		DatabaseType:     "sqlite",
		ActorTokenSalt:   TestActorSalt,
		AssertionMode:    cliparse.AssertionApprove,
		AssertionTimeout: time.Second,
		LogLevel:         "error",
	}
}

// QuietLogger discards everything
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Clock is a settable ledger.Clock
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewLedger builds a ledger over store that approves every identity check
func NewLedger(t *testing.T, store ledger.Store, opts ...ledger.Option) *ledger.Ledger {
	t.Helper()
	opts = append([]ledger.Option{ledger.WithLogger(QuietLogger())}, opts...)
	return ledger.New(store, identity.Fixed{Success: true, Confidence: 0.99}, opts...)
}

// CreateTestElection creates an election whose window contains now, so it starts active.
// Pass models.StatusUpcoming or models.StatusCompleted to move it afterwards.
func CreateTestElection(t *testing.T, l *ledger.Ledger, title string, status models.Status) models.Election {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	election, err := l.CreateElection(ctx, Admin, ledger.CreateElectionInput{
		Title:       title,
		Description: title + " description",
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(24 * time.Hour),
	})
	require.NoError(t, err, "failed to create test election")

	if status != "" && status != election.Status {
		election, err = l.UpdateElectionStatus(ctx, Admin, election.ID, status)
		require.NoError(t, err, "failed to set test election status")
	}
	return election
}

// AddTestCandidate applies for the election as applicant and returns the candidate
func AddTestCandidate(t *testing.T, l *ledger.Ledger, electionID, applicant, name string) models.Candidate {
	t.Helper()

	c, err := l.ApplyCandidacy(context.Background(), Candidate(applicant), ledger.ApplyCandidacyInput{
		ElectionID: electionID,
		Name:       name,
		Party:      name + " Party",
		Manifesto:  "Vote " + name,
	})
	require.NoError(t, err, "failed to add test candidate")
	return c
}

// CastTestVotes submits n votes for candidateID from distinct voters named prefix-0..n-1
func CastTestVotes(t *testing.T, l *ledger.Ledger, electionID, candidateID, prefix string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		_, err := l.SubmitVote(context.Background(), Voter(prefix+"-"+strconv.Itoa(i)), ledger.SubmitVoteInput{
			ElectionID:  electionID,
			CandidateID: candidateID,
		})
		require.NoError(t, err, "failed to cast test vote")
	}
}

// ActorHeaders returns signed actor headers for HTTP tests
func ActorHeaders(actor models.Actor) map[string]string {
	return map[string]string{
		"X-Actor-Identity": actor.Identity,
		"X-Actor-Role":     string(actor.Role),
		"X-Actor-Token":    auth.GenerateActorToken(actor.Identity, actor.Role, TestActorSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	require.Equal(t, expected, w.Code, "unexpected status. Body: %s", w.Body.String())
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "failed to decode JSON response")
}
