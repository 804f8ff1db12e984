// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballot-ledger API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(l, cfg)

# Endpoints

Health:

	GET /health

Election management (admin, requires actor headers):

	POST /elections             - Create election
	POST /elections/{id}/status - Set status (upcoming, active, completed)

Elections (public):

	GET /elections?status= - List elections, optionally by status
	GET /elections/{id}    - Election with candidates

Candidacy and voting (requires actor headers):

	POST /elections/{id}/candidates - Apply (candidate role)
	POST /elections/{id}/votes      - Vote (voter role)

Results (public):

	GET /elections/{id}/results     - Ranked results and winner
	GET /elections/{id}/results.txt - Plain-text report

Dashboards (requires actor headers):

	GET /me/votes       - Voter's own votes
	GET /me/candidacies - Candidate's entries and wins
	GET /admin/summary  - Totals per status

# Handler Initialization

All handlers share one ledger:

	electionHandler := handlers.NewElectionHandler(l)
	votingHandler := handlers.NewVotingHandler(l)
	resultsHandler := handlers.NewResultsHandler(l)
	dashboardHandler := handlers.NewDashboardHandler(l)

Authenticated routes are wrapped with middleware.WithActor using
cfg.ActorTokenSalt; role checks happen in the ledger.
*/
package router
