// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the small amount of identity handling the server needs.

# Operator Key

Admin routes are gated by a single deployment-wide key sent in the
X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

The comparison is constant time. Participants are never authenticated; their
identity is the client network address (the "origin").

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Origins are written to logs only in hashed form:

	hash := auth.HashIP(origin, cfg.LogSalt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
