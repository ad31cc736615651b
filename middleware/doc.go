// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /topics", middleware.WithLogging(handler))

Every request gets an ID (the inbound X-Request-ID, or a fresh UUID) that is
echoed in the response header, stored in the request context (RequestID)
and attached to the start and completion log lines together with the
status code and duration_ms.

# Admin Gate

	mux.HandleFunc("POST /admin/topics",
		middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h.CreateTopic)))

RequireAdmin answers 401 unless X-Admin-Key matches the configured key.
IsAdmin performs the same check for handlers that only change what they
show to an operator.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.CodedErrorResponse(w, http.StatusConflict, "phase_mismatch", "message", nil)

# Client IP Extraction

	ip := middleware.GetClientIP(r, cfg.TrustProxy)

Forwarding headers are honored only when trustProxy is set; otherwise the
RemoteAddr host is used. The returned address is the origin every guard keys its quotas, duplicate
checks and blocklist lookups on.
*/
package middleware
