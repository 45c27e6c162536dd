// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package store

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist in the
	// selected store, or is owned by a different user.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail indicates a create collided with an existing email in
	// the same store. The losing side of a concurrent create observes this
	// error too: the database's unique index is the final arbiter.
	ErrDuplicateEmail = errors.New("email already registered")
)
