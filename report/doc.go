// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders election results as plain text for terminals and
// the results.txt endpoint. Numbers and relative times go through go-humanize.
package report
