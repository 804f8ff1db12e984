// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Ledger error taxonomy. Details are attached with fmt.Errorf("%w: ...").
// ErrDuplicateVote is deliberately separate from ErrConflict.
var (
	ErrValidation              = errors.New("validation failed")
	ErrAuthorization           = errors.New("not authorized")
	ErrNotFound                = errors.New("not found")
	ErrConflict                = errors.New("conflict")
	ErrDuplicateVote           = errors.New("voter has already voted in this election")
	ErrElectionNotActive       = errors.New("election is not active")
	ErrIdentityAssertionFailed = errors.New("identity assertion failed")
)
