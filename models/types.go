// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of an election
type Status string

// Election status constants
const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ParseStatus accepts the three known statuses (case-insensitive)
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// Role is the closed set of actor kinds
type Role string

// Role constants
const (
	RoleAdmin     Role = "admin"
	RoleVoter     Role = "voter"
	RoleCandidate Role = "candidate"
)

// ParseRole accepts admin, voter or candidate (case-insensitive)
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleVoter, RoleCandidate:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// Actor is an authenticated caller. Identity is usually an email address.
type Actor struct {
	Identity string `json:"identity"`
	Role     Role   `json:"role"`
}

// Domain types

type Election struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Status      Status      `json:"status"`
	Candidates  []Candidate `json:"candidates"`
	TotalVotes  int         `json:"total_votes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Candidate looks up a candidate of this election by ID
func (e Election) Candidate(id string) (Candidate, bool) {
	for _, c := range e.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}

type Candidate struct {
	ID                string    `json:"id"`
	ElectionID        string    `json:"election_id"`
	ApplicantIdentity string    `json:"applicant_identity"`
	Name              string    `json:"name"`
	Party             string    `json:"party"`
	Manifesto         string    `json:"manifesto"`
	VoteCount         int       `json:"vote_count"`
	AppliedAt         time.Time `json:"applied_at"`
}

type Vote struct {
	ID                  string    `json:"id"`
	ElectionID          string    `json:"election_id"`
	CandidateID         string    `json:"candidate_id"`
	VoterIdentity       string    `json:"-"` // Never expose in JSON
	Timestamp           time.Time `json:"timestamp"`
	IdentityVerified    bool      `json:"identity_verified"`
	AssertionConfidence float64   `json:"assertion_confidence,omitempty"`
}

// ElectionFilter narrows ListElections. Zero value matches everything.
type ElectionFilter struct {
	Status Status
}

// Result types

type Result struct {
	Candidate  Candidate `json:"candidate"`
	Percentage float64   `json:"percentage"`
	Rank       int       `json:"rank"` // 1-indexed ranking
}

type Candidacy struct {
	Candidate Candidate `json:"candidate"`
	Election  Election  `json:"election"`
	Won       bool      `json:"won"`
}

type CandidateDashboard struct {
	Candidacies   []Candidacy `json:"candidacies"`
	TotalVotes    int         `json:"total_votes"`
	ElectionsWon  int         `json:"elections_won"`
	ActiveEntries int         `json:"active_entries"`
}

type Summary struct {
	TotalElections  int            `json:"total_elections"`
	ByStatus        map[Status]int `json:"by_status"`
	TotalVotes      int            `json:"total_votes"`
	TotalCandidates int            `json:"total_candidates"`
}

// Request types

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ApplyCandidacyRequest struct {
	Name      string `json:"name"`
	Party     string `json:"party"`
	Manifesto string `json:"manifesto"`
}

type SubmitVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type SubmitVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type ResultsResponse struct {
	Election   Election `json:"election"`
	Results    []Result `json:"results"`
	Winner     *Result  `json:"winner,omitempty"`
	TotalVotes int      `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
