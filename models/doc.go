// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request and response types shared by every
other package, plus the ledger error taxonomy.

# Domain Types

  - Election: a voting event with a time window, a status and its candidates
  - Candidate: one applicant of one election, with a running vote count
  - Vote: a single voter's choice in one election
  - Actor: the authenticated caller (identity + role)

# Status

Elections are in one of three states:

	upcoming | active | completed

Transitions are administrative and unrestricted; nothing expires on a timer.
Use ParseStatus to validate user input.

# Roles

	admin      create elections, change status, read the summary
	candidate  apply to elections
	voter      cast votes

ParseRole rejects anything else.

# Errors

All failures a caller can act on are sentinel errors checked with errors.Is:

	ErrValidation              malformed input (400)
	ErrAuthorization           wrong role (403)
	ErrNotFound                unknown election or candidate (404)
	ErrConflict                duplicate candidacy (409)
	ErrDuplicateVote           voter already voted (409)
	ErrElectionNotActive       election not accepting votes / candidates (409)
	ErrIdentityAssertionFailed identity check failed (422)

ErrDuplicateVote does not match ErrConflict.

# JSON Conventions

Field names use snake_case. Vote.VoterIdentity is never serialized.
*/
package models
