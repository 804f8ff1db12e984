// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/handlers"
	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/middleware"
)

func NewRouter(l *ledger.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(l)
	votingHandler := handlers.NewVotingHandler(l)
	resultsHandler := handlers.NewResultsHandler(l)
	dashboardHandler := handlers.NewDashboardHandler(l)

	// authed logs the request and requires signed actor headers
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithActor(cfg.ActorTokenSalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management (admin)
	mux.HandleFunc("POST /elections", authed(electionHandler.CreateElection))
	mux.HandleFunc("POST /elections/{id}/status", authed(electionHandler.UpdateStatus))

	// Elections (public)
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))

	// Candidacy and voting
	mux.HandleFunc("POST /elections/{id}/candidates", authed(electionHandler.ApplyCandidacy))
	mux.HandleFunc("POST /elections/{id}/votes", authed(votingHandler.SubmitVote))

	// Results (public)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /elections/{id}/results.txt", middleware.WithLogging(resultsHandler.GetResultsText))

	// Dashboards
	mux.HandleFunc("GET /me/votes", authed(votingHandler.MyVotes))
	mux.HandleFunc("GET /me/candidacies", authed(dashboardHandler.MyCandidacies))
	mux.HandleFunc("GET /admin/summary", authed(dashboardHandler.AdminSummary))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-ledger API v1"))
	})

	return mux
}
