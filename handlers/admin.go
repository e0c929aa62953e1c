// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rrex971/pokehunt/middleware"
	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/pokemeta"
	"github.com/rrex971/pokehunt/roster"
	"github.com/rrex971/pokehunt/store"
)

const unknownGym = "Unknown Gym"

type AdminHandler struct {
	store *store.Store
	gyms  *roster.Roster
	meta  *pokemeta.Service
}

func NewAdminHandler(s *store.Store, gyms *roster.Roster, meta *pokemeta.Service) *AdminHandler {
	return &AdminHandler{store: s, gyms: gyms, meta: meta}
}

// PokemonHistory handles GET /api/admin/pokemon-history?name=
func (h *AdminHandler) PokemonHistory(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))

	rows, err := h.store.CatchHistory(r.Context(), name)
	if err != nil {
		slog.Error("failed to load catch history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range rows {
		rows[i].Ago = humanize.Time(rows[i].CaughtAt)
	}

	middleware.JSONResponse(w, http.StatusOK, rows)
}

// GymHistory handles GET /api/admin/gym-history?name=
// Without a name the most recent captures are returned; with one, every
// capture of a gym whose display name contains it.
func (h *AdminHandler) GymHistory(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("name")))

	limit := store.HistoryLimit
	if name != "" {
		limit = 0
	}

	rows, err := h.store.BadgeHistory(r.Context(), limit)
	if err != nil {
		slog.Error("failed to load badge history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	out := make([]models.BadgeHistoryEntry, 0, len(rows))
	for _, row := range rows {
		row.GymName = h.gyms.DisplayName(row.GymID, unknownGym)
		if name != "" && !strings.Contains(strings.ToLower(row.GymName), name) {
			continue
		}
		row.Ago = humanize.Time(row.CapturedAt)
		out = append(out, row)
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}

// TeamBadges handles GET /api/admin/team-badges?teamId=
func (h *AdminHandler) TeamBadges(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(r.URL.Query().Get("teamId"), 10, 64)
	if err != nil || teamID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "teamId is required")
		return
	}
	writeBadges(w, r, h.store, h.gyms, teamID)
}

// DeleteTeamBadge handles DELETE /api/admin/team-badges/{id}
func (h *AdminHandler) DeleteTeamBadge(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, "badge", h.store.DeleteBadge)
}

// PrefetchPokemon handles POST /api/admin/prefetch-pokemon
// Returns every caught name with whatever metadata is already cached.
func (h *AdminHandler) PrefetchPokemon(w http.ResponseWriter, r *http.Request) {
	resp, err := h.meta.Prefetch(r.Context())
	if err != nil {
		slog.Error("failed to prefetch metadata", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
