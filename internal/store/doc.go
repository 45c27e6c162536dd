// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

// Package store provides durable persistence for Fittrackd principals and
// fitness resources.
//
// Users and admins live in two disjoint stores: email uniqueness is enforced
// independently within each, so a user and an admin may share an email without
// collision. Plaintext passwords never reach the storage layer's write path
// unhashed - CreateUser, CreateAdmin and UpdateUserPassword bcrypt-hash the
// secret before persisting, and profile updates never touch the stored hash.
//
// Two implementations are provided: Postgres (pgx/v5) for production, where
// uniqueness is ultimately enforced by the database's unique index, and Memory
// for tests, which reproduces the same semantics behind a mutex.
package store
