// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rrex971/pokehunt/auth"
	"github.com/rrex971/pokehunt/cliparse"
	"github.com/rrex971/pokehunt/middleware"
	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/store"
)

type AuthHandler struct {
	store    *store.Store
	sessions *auth.Sessions
	throttle *auth.Throttle
	cfg      cliparse.Config
}

func NewAuthHandler(s *store.Store, sessions *auth.Sessions, throttle *auth.Throttle, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{store: s, sessions: sessions, throttle: throttle, cfg: cfg}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}
	teamID := strings.TrimSpace(req.TeamID)

	// Keyed on the account alone. Client addresses and forwarding headers
	// are caller-controlled and would reset the count.
	key := throttleKey(teamID)
	if ok, wait := h.throttle.Allow(key); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many failed attempts, try again later")
		return
	}

	if strings.EqualFold(teamID, models.AdminLoginID) {
		if h.cfg.AdminPIN == "" || !auth.EqualPIN(req.PIN, h.cfg.AdminPIN) {
			h.reject(w, r, key, teamID)
			return
		}
		h.issue(w, key, 0, true)
		return
	}

	id, err := strconv.ParseInt(teamID, 10, 64)
	if err != nil || id <= 0 {
		h.reject(w, r, key, teamID)
		return
	}

	team, err := h.store.GetTeam(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.reject(w, r, key, teamID)
		return
	}
	if err != nil {
		slog.Error("failed to load team", "error", err, "team_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !auth.EqualPIN(req.PIN, team.PIN) {
		h.reject(w, r, key, teamID)
		return
	}

	h.issue(w, key, team.ID, false)
}

// throttleKey canonicalises the login id so "7", "07" and "+7" share one
// failure count.
func throttleKey(teamID string) string {
	if id, err := strconv.ParseInt(teamID, 10, 64); err == nil {
		return "login:" + strconv.FormatInt(id, 10)
	}
	return "login:" + strings.ToLower(teamID)
}

func (h *AuthHandler) reject(w http.ResponseWriter, r *http.Request, key, teamID string) {
	h.throttle.Fail(key)
	slog.Info("login rejected", "team_id", teamID, "remote", r.RemoteAddr)
	middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid team ID or PIN")
}

func (h *AuthHandler) issue(w http.ResponseWriter, key string, teamID int64, isAdmin bool) {
	if _, err := h.sessions.Issue(w, teamID, isAdmin); err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	h.throttle.Succeed(key)
	slog.Info("login", "team_id", teamID, "admin", isAdmin)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{OK: true, IsAdmin: isAdmin})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// MyTeam handles GET /api/me/team
func (h *AuthHandler) MyTeam(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	team, err := h.store.GetTeam(r.Context(), sess.TeamID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		slog.Error("failed to load team", "error", err, "team_id", sess.TeamID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, team)
}
