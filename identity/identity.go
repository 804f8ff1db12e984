// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/danielhkuo/ballot-ledger/ledger"
)

// Demo defaults for the simulated camera check
const (
	DefaultDelay       = 2 * time.Second
	DefaultSuccessRate = 0.8
	DefaultConfidence  = 0.95
)

// ProviderFunc adapts a plain function to ledger.IdentityAssertionProvider
type ProviderFunc func(ctx context.Context, voterIdentity string) (ledger.Assertion, error)

func (f ProviderFunc) Verify(ctx context.Context, voterIdentity string) (ledger.Assertion, error) {
	return f(ctx, voterIdentity)
}

// Fixed always returns the same outcome. Useful for tests and for deployments
// where identity was already proven upstream.
type Fixed struct {
	Success    bool
	Confidence float64
}

func (f Fixed) Verify(ctx context.Context, _ string) (ledger.Assertion, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Assertion{}, err
	}
	return ledger.Assertion{Success: f.Success, Confidence: f.Confidence}, nil
}

// Simulated stands in for a camera-based check: it waits Delay, then succeeds
// with probability SuccessRate. Zero fields take the Default* values, except
// a SuccessRate set through NewSimulated, which is used as given.
type Simulated struct {
	Delay       time.Duration
	SuccessRate float64
	Confidence  float64
	// Rand returns a value in [0,1); nil uses math/rand/v2
	Rand func() float64

	rateSet bool
}

// NewSimulated returns a Simulated provider with an explicit success rate.
// A rate of 0 rejects every voter.
func NewSimulated(successRate float64) Simulated {
	return Simulated{SuccessRate: successRate, rateSet: true}
}

func (s Simulated) Verify(ctx context.Context, voterIdentity string) (ledger.Assertion, error) {
	delay := s.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	rate := s.SuccessRate
	if rate == 0 && !s.rateSet {
		rate = DefaultSuccessRate
	}
	confidence := s.Confidence
	if confidence == 0 {
		confidence = DefaultConfidence
	}
	draw := s.Rand
	if draw == nil {
		draw = rand.Float64
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ledger.Assertion{}, fmt.Errorf("identity check for %s interrupted: %w", voterIdentity, ctx.Err())
	case <-timer.C:
	}

	if draw() >= rate {
		return ledger.Assertion{Success: false}, nil
	}
	return ledger.Assertion{Success: true, Confidence: confidence}, nil
}

// Threshold downgrades successful assertions below MinConfidence to failures
type Threshold struct {
	Provider      ledger.IdentityAssertionProvider
	MinConfidence float64
}

func (t Threshold) Verify(ctx context.Context, voterIdentity string) (ledger.Assertion, error) {
	a, err := t.Provider.Verify(ctx, voterIdentity)
	if err != nil {
		return ledger.Assertion{}, err
	}
	if a.Success && a.Confidence < t.MinConfidence {
		a.Success = false
	}
	return a, nil
}
