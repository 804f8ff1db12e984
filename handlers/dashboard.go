// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/middleware"
)

type DashboardHandler struct {
	ledger *ledger.Ledger
}

func NewDashboardHandler(l *ledger.Ledger) *DashboardHandler {
	return &DashboardHandler{ledger: l}
}

// MyCandidacies handles GET /me/candidacies (candidate)
func (h *DashboardHandler) MyCandidacies(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	dash, err := h.ledger.CandidateDashboard(r.Context(), actor)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, dash)
}

// AdminSummary handles GET /admin/summary (admin)
func (h *DashboardHandler) AdminSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	summary, err := h.ledger.Summary(r.Context(), actor)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}
