// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Instrumentation

Instrument wraps the whole mux. It gives each request an ID (echoed in
X-Request-ID) and reports method, route pattern, status and duration to a
RequestObserver such as metrics.Recorder:

	handler := middleware.Instrument(rec, mux)

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request_id, method, path, status, remote and duration_ms on completion.

# Sessions

RequireSession, RequireTeam and RequireAdmin read the session cookie and put
the session on the request context:

	mux.HandleFunc("GET /api/team/badges", middleware.RequireTeam(sessions, h))

	sess, ok := middleware.SessionFrom(r.Context())

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse and validate JSON request bodies (go-playground/validator tags):

	var req models.LoginRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

For logs only. The forwarding headers are set by the client unless a
proxy overwrites them.
*/
package middleware
