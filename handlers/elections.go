// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballot-ledger/ledger"
	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/models"
)

type ElectionHandler struct {
	ledger *ledger.Ledger
}

func NewElectionHandler(l *ledger.Ledger) *ElectionHandler {
	return &ElectionHandler{ledger: l}
}

// CreateElection handles POST /elections (admin)
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	election, err := h.ledger.CreateElection(r.Context(), actor, ledger.CreateElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, election)
}

// ListElections handles GET /elections?status=
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	filter := models.ElectionFilter{Status: models.Status(r.URL.Query().Get("status"))}

	elections, err := h.ledger.ListElections(r.Context(), filter)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	election, err := h.ledger.GetElection(r.Context(), electionID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, election)
}

// UpdateStatus handles POST /elections/{id}/status (admin)
func (h *ElectionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	election, err := h.ledger.UpdateElectionStatus(r.Context(), actor, r.PathValue("id"), models.Status(req.Status))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, election)
}

// ApplyCandidacy handles POST /elections/{id}/candidates (candidate)
func (h *ElectionHandler) ApplyCandidacy(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req models.ApplyCandidacyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.ledger.ApplyCandidacy(r.Context(), actor, ledger.ApplyCandidacyInput{
		ElectionID: r.PathValue("id"),
		Name:       req.Name,
		Party:      req.Party,
		Manifesto:  req.Manifesto,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// requireActor fetches the actor placed by middleware.WithActor
func requireActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "actor headers required")
		return models.Actor{}, false
	}
	return actor, true
}
