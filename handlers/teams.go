// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rrex971/pokehunt/auth"
	"github.com/rrex971/pokehunt/middleware"
	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/roster"
	"github.com/rrex971/pokehunt/store"
)

type TeamHandler struct {
	store *store.Store
	gyms  *roster.Roster
}

func NewTeamHandler(s *store.Store, gyms *roster.Roster) *TeamHandler {
	return &TeamHandler{store: s, gyms: gyms}
}

// ListPokemon handles GET /api/pokemon
// Teams see their own catches; the admin picks a team with ?teamId=.
func (h *TeamHandler) ListPokemon(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())

	teamID := sess.TeamID
	if sess.IsAdmin {
		id, err := strconv.ParseInt(r.URL.Query().Get("teamId"), 10, 64)
		if err != nil || id <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "teamId is required")
			return
		}
		teamID = id
	}

	catches, err := h.store.ListCatches(r.Context(), teamID)
	if err != nil {
		slog.Error("failed to list catches", "error", err, "team_id", teamID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, catches)
}

// DeletePokemon handles DELETE /api/pokemon/{id}
func (h *TeamHandler) DeletePokemon(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, "catch", h.store.DeleteCatch)
}

// MyBadges handles GET /api/team/badges
func (h *TeamHandler) MyBadges(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())
	writeBadges(w, r, h.store, h.gyms, sess.TeamID)
}

// ListTeams handles GET /api/teams?q=
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, teams)
}

// CreateTeam handles POST /api/teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeamRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}

	pin := req.PIN
	if !auth.ValidPIN(pin) {
		var err error
		pin, err = auth.GeneratePIN()
		if err != nil {
			slog.Error("failed to generate pin", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create team")
			return
		}
	}

	team, err := h.store.CreateTeam(r.Context(), req.Name, pin)
	if err != nil {
		slog.Error("failed to create team", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	slog.Info("team created", "team_id", team.ID, "name", team.Name)
	middleware.JSONResponse(w, http.StatusCreated, team)
}

// DeleteTeam handles DELETE /api/teams/{id}
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, "team", h.store.DeleteTeam)
}

// ListGyms handles GET /api/gyms
func (h *TeamHandler) ListGyms(w http.ResponseWriter, r *http.Request) {
	entries := h.gyms.All()
	gyms := make([]models.Gym, 0, len(entries))
	for _, e := range entries {
		gyms = append(gyms, models.Gym{ID: e.ID, Slug: e.Key, Name: e.DisplayName, BadgeFilename: e.Badge})
	}
	middleware.JSONResponse(w, http.StatusOK, gyms)
}

// writeBadges responds with a team's badges, named from the gym roster.
func writeBadges(w http.ResponseWriter, r *http.Request, s *store.Store, gyms *roster.Roster, teamID int64) {
	badges, err := s.ListBadges(r.Context(), teamID)
	if err != nil {
		slog.Error("failed to list badges", "error", err, "team_id", teamID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range badges {
		if e, ok := gyms.Get(badges[i].GymID); ok {
			badges[i].Slug = e.Key
			badges[i].Name = e.DisplayName
			badges[i].BadgeFilename = e.Badge
		} else {
			badges[i].Name = unknownGym
		}
	}

	middleware.JSONResponse(w, http.StatusOK, badges)
}

// deleteByID parses the {id} path value and runs del, mapping
// store.ErrNotFound to 404.
func deleteByID(w http.ResponseWriter, r *http.Request, what string, del func(context.Context, int64) error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid id")
		return
	}

	err = del(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, what+" not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete", "what", what, "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("deleted", "what", what, "id", id)
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
