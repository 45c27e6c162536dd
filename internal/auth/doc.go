// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

// Package auth implements the authentication and session-authorization
// subsystem: token issuance and verification, the cookie session transport,
// principal resolution across the disjoint user/admin stores, and the
// role-scoped authorization middleware.
//
// Tokens are stateless JWTs. Access tokens (15m) and refresh tokens (7d) are
// signed with independent HS256 secrets, so a leaked access secret does not
// compromise refresh tokens or vice versa. There is no server-side
// revocation: signout only clears the client's cookies, and a previously
// issued token remains cryptographically valid until it expires.
//
// The request pipeline is linear: extract the access cookie, verify the
// token, resolve the claim to a stored principal scoped to the middleware
// variant's acceptance set, and attach the principal to the request context.
// Each request is authenticated independently; there are no intermediate or
// retry states.
package auth
