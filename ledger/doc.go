// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger owns election, candidacy and vote state.

# Construction

A Ledger is built from a Store and an IdentityAssertionProvider:

	l := ledger.New(store, identity.Simulated{},
		ledger.WithLogger(logger),
		ledger.WithAssertionTimeout(5*time.Second),
	)

Store implementations live in memstore (in-process) and db (SQL).

# Operations

	CreateElection        admin     title, description, end after start
	ApplyCandidacy        candidate election not completed, one per applicant
	SubmitVote            voter     election active, identity asserted, one per voter
	UpdateElectionStatus  admin     any status to any status
	ComputeResults        anyone    ranked by votes, empty while nobody voted

Authorization happens here, not in the transport layer. Every precondition
failure is returned as one of the models sentinel errors.

# Vote Admission

SubmitVote checks role, election status, candidate membership and any prior
vote, then asks the identity provider. Only after a successful assertion does
it call Store.AdmitVote, which inserts the vote and bumps both counters in one
atomic step. Two concurrent submissions for the same voter therefore produce
exactly one vote; the loser gets models.ErrDuplicateVote.

# Results

Rank is a pure function over an election snapshot:

	results := ledger.Rank(election)

Candidates are sorted by vote count with a stable sort, so ties keep
application order.
*/
package ledger
