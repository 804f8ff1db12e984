// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot-ledger API.

# Handler Types

Each handler is a struct with ledger and config dependencies:

  - ElectionHandler: Election lifecycle and candidacy applications
  - VotingHandler: Vote submission and voter history
  - ResultsHandler: Ranked results as JSON or text
  - DashboardHandler: Candidate dashboard and admin summary

Handlers are created via constructor functions that accept the ledger:

	electionHandler := handlers.NewElectionHandler(l)

Handlers hold no state of their own. All rules (roles, statuses, uniqueness)
live in the ledger; handlers decode requests, call it, and map errors with
middleware.WriteError.

# Election Lifecycle

Elections move between upcoming, active and completed:

	POST /elections             → CreateElection (admin)
	POST /elections/{id}/status → UpdateStatus (admin)

# Candidacy and Voting

	POST /elections/{id}/candidates → ApplyCandidacy (candidate, not completed)
	POST /elections/{id}/votes      → SubmitVote (voter, active only)

SubmitVote returns 409 for a second vote by the same voter, 409 when the
election is not active and 422 when the identity check fails.

# Results

	GET /elections/{id}/results     → GetResults
	GET /elections/{id}/results.txt → GetResultsText

Results are empty until the first vote. Ties keep application order.

# Dashboards

	GET /me/votes       → MyVotes
	GET /me/candidacies → MyCandidacies
	GET /admin/summary  → AdminSummary
*/
package handlers
