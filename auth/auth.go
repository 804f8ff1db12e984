// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-ledger/models"
)

var (
	ErrInvalidActorToken = errors.New("invalid actor token")
	ErrMissingActor      = errors.New("actor identity and role required")
)

// NewID returns a random UUID string for election, candidate and vote records
func NewID() string {
	return uuid.NewString()
}

// GenerateActorToken creates an HMAC-based token binding identity and role.
// This is deterministic and verifiable without storage.
func GenerateActorToken(identity string, role models.Role, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(string(role) + ":" + normalizeIdentity(identity)))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateActorToken checks the token and returns the authenticated actor
func ValidateActorToken(identity, role, token, salt string) (models.Actor, error) {
	if strings.TrimSpace(identity) == "" || strings.TrimSpace(role) == "" {
		return models.Actor{}, ErrMissingActor
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return models.Actor{}, ErrInvalidActorToken
	}

	expected := GenerateActorToken(identity, r, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return models.Actor{}, ErrInvalidActorToken
	}
	return models.Actor{Identity: normalizeIdentity(identity), Role: r}, nil
}

// Identities are email addresses; compare them case-insensitively
func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
