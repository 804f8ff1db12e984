// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level (method, path, remote) and completion
(status, duration_ms).

# Actor Authentication

Mutating and personal routes require the actor headers issued by the
upstream identity provider:

	X-Actor-Identity: alice@example.com
	X-Actor-Role:     voter
	X-Actor-Token:    HMAC-SHA256(role:identity) under ACTOR_TOKEN_SALT

WithActor validates them and stores the actor in the request context:

	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithActor(salt, h.SubmitVote))

	actor, ok := middleware.ActorFromContext(r.Context())

Missing or forged headers get 401 before the handler runs.

# Error Mapping

WriteError maps ledger errors to status codes:

	models.ErrValidation              → 400
	auth.ErrMissingActor, ErrInvalid… → 401
	models.ErrAuthorization           → 403
	models.ErrNotFound                → 404
	ErrConflict, ErrDuplicateVote,
	ErrElectionNotActive              → 409
	ErrIdentityAssertionFailed        → 422
	anything else                     → 500 (details logged, not returned)

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP; used in request and rejection logs.
*/
package middleware
