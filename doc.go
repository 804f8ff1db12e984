// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballot Ledger API server.

Ballot Ledger runs elections: administrators create them and move them
through upcoming, active and completed; candidates apply; voters cast at
most one vote per election after an identity assertion succeeds. Results
are always derived from the counters the store keeps alongside each vote.

# Starting the Server

SQLite is the default store:

	DATABASE_URL=file:ledger.db ACTOR_TOKEN_SALT=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -actor-salt secret

A throwaway in-memory ledger needs no URL:

	go run . -t memory -actor-salt dev -assertion approve

# Configuration

Required settings:

  - ACTOR_TOKEN_SALT (-actor-salt): Secret for actor token HMAC
  - DATABASE_URL (-d): Connection string, unless DATABASE_TYPE is memory

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres, pgx or memory (default: sqlite)
  - ASSERTION_MODE (-assertion): simulated or approve (default: simulated)
  - ASSERTION_TIMEOUT (-assertion-timeout): Identity check budget (default: 10s)
  - ASSERTION_SUCCESS_RATE: Simulated success probability (default: 0.8)
  - ASSERTION_MIN_CONFIDENCE: Reject successful checks below this confidence
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

Settings may also come from a .env file (-env-file). Values already in
the environment win over the file, and flags win over both.

# Architecture

  - ledger: Election rules, vote admission and result ranking
  - db: SQL store for SQLite and PostgreSQL
  - memstore: In-memory store
  - identity: Identity assertion providers
  - handlers: HTTP request handlers (elections, voting, results, dashboards)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Actor authentication, CORS, logging, JSON helpers
  - report: Plain-text results rendering
  - models: Domain and request/response types
  - auth: Actor token generation and validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
