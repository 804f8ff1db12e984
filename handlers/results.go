// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/models"
	"github.com/danielhkuo/ballot-ledger/report"
)

type ResultsHandler struct {
	ledger *ledger.Ledger
}

func NewResultsHandler(l *ledger.Ledger) *ResultsHandler {
	return &ResultsHandler{ledger: l}
}

// GetResults handles GET /elections/{id}/results.
// Results and the election come from one snapshot so the totals agree.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	election, err := h.ledger.GetElection(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	results := ledger.Rank(election)
	resp := models.ResultsResponse{
		Election:   election,
		Results:    results,
		TotalVotes: election.TotalVotes,
	}
	if len(results) > 0 {
		winner := results[0]
		resp.Winner = &winner
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetResultsText handles GET /elections/{id}/results.txt
func (h *ResultsHandler) GetResultsText(w http.ResponseWriter, r *http.Request) {
	election, err := h.ledger.GetElection(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteResults(&buf, election, ledger.Rank(election), time.Now()); err != nil {
		slog.Error("failed to render report", "election_id", election.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
