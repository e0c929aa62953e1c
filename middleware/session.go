// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/rrex971/pokehunt/auth"
)

// SessionReader is satisfied by *auth.Sessions.
type SessionReader interface {
	Read(r *http.Request) (auth.Session, error)
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(auth.Session)
	return sess, ok
}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// RequireSession rejects requests without a valid session cookie with 401.
func RequireSession(sessions SessionReader, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Read(r)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		next(w, r.WithContext(WithSession(r.Context(), sess)))
	}
}

// RequireTeam is RequireSession restricted to team logins.
func RequireTeam(sessions SessionReader, next http.HandlerFunc) http.HandlerFunc {
	return RequireSession(sessions, func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFrom(r.Context())
		if sess.TeamID == 0 {
			ErrorResponse(w, http.StatusUnauthorized, "Team login required")
			return
		}
		next(w, r)
	})
}

// RequireAdmin is RequireSession restricted to the admin login.
func RequireAdmin(sessions SessionReader, next http.HandlerFunc) http.HandlerFunc {
	return RequireSession(sessions, func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFrom(r.Context())
		if !sess.IsAdmin {
			ErrorResponse(w, http.StatusForbidden, "Admin only")
			return
		}
		next(w, r)
	})
}
