// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite or PostgreSQL connection string (required unless memory)
  - DatabaseType: sqlite, postgres, pgx or memory (default: sqlite)
  - ActorTokenSalt: Secret for actor token HMAC (required)
  - AssertionMode: simulated or approve (default: simulated)
  - AssertionTimeout: Identity check deadline (default: 10s)
  - AssertionSuccessRate: Simulated check success rate (default: 0.8)
  - AssertionMinConfidence: Minimum accepted confidence (default: 0, off)
  - LogLevel: debug, info, warn or error (default: info)

# Sources

Values are read from, lowest precedence first:

 1. a dotenv file (default .env, skipped when missing), loaded with godotenv
 2. environment variables, parsed with caarlos0/env
 3. CLI flags

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-actor-salt        Actor token salt
	-assertion         Identity assertion mode
	-assertion-timeout Identity assertion timeout
	-log-level         Log level
	-env-file          Dotenv file (empty disables)

# Environment Variables

	PORT                     → -p
	DATABASE_URL             → -d
	DATABASE_TYPE            → -t
	ACTOR_TOKEN_SALT         → -actor-salt
	ASSERTION_MODE           → -assertion
	ASSERTION_TIMEOUT        → -assertion-timeout
	ASSERTION_SUCCESS_RATE
	ASSERTION_MIN_CONFIDENCE
	LOG_LEVEL                → -log-level

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for a SQL database type
  - ACTOR_TOKEN_SALT is missing
  - the database type or assertion mode is unknown
  - a rate or confidence falls outside [0,1]
*/
package cliparse
