// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package identity provides ledger.IdentityAssertionProvider implementations.
//
// None of them perform biometric verification. Simulated reproduces the demo
// camera flow (2s wait, 80% success, 0.95 confidence); Fixed and ProviderFunc
// plug in a known outcome; Threshold enforces a minimum confidence on top of
// another provider.
package identity
