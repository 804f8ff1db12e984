// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package memstore is an in-memory ledger.Store for tests, demos and the
// DATABASE_TYPE=memory mode. State is lost on restart.
package memstore
