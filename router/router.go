// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rrex971/pokehunt/auth"
	"github.com/rrex971/pokehunt/claim"
	"github.com/rrex971/pokehunt/cliparse"
	"github.com/rrex971/pokehunt/handlers"
	"github.com/rrex971/pokehunt/metrics"
	"github.com/rrex971/pokehunt/middleware"
	"github.com/rrex971/pokehunt/pokemeta"
	"github.com/rrex971/pokehunt/roster"
	"github.com/rrex971/pokehunt/store"
)

// Deps is everything the routes need. Metrics may be nil.
type Deps struct {
	Store    *store.Store
	Claims   *claim.Service
	Sessions *auth.Sessions
	Throttle *auth.Throttle
	Meta     *pokemeta.Service
	Gyms     *roster.Roster
	Metrics  *metrics.Recorder
	Config   cliparse.Config
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	throttle := d.Throttle
	if throttle == nil {
		throttle = auth.NewThrottle(auth.DefaultMaxFailures, auth.DefaultLockout)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Store, d.Sessions, throttle, d.Config)
	claimHandler := handlers.NewClaimHandler(d.Claims, d.Sessions)
	teamHandler := handlers.NewTeamHandler(d.Store, d.Gyms)
	adminHandler := handlers.NewAdminHandler(d.Store, d.Gyms, d.Meta)
	metaHandler := handlers.NewMetaHandler(d.Meta)

	team := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireTeam(d.Sessions, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(d.Sessions, h))
	}
	session := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(d.Sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", d.Metrics.Handler())

	// Session
	mux.HandleFunc("POST /api/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /api/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /api/me/team", team(authHandler.MyTeam))

	// Catch and capture
	mux.HandleFunc("POST /api/catch", middleware.WithLogging(claimHandler.Catch))
	mux.HandleFunc("POST /api/gym-capture", middleware.WithLogging(claimHandler.GymCapture))
	mux.HandleFunc("GET /catch", middleware.WithLogging(claimHandler.CatchLanding))
	mux.HandleFunc("GET /gym", middleware.WithLogging(claimHandler.GymLanding))

	// Team views
	mux.HandleFunc("GET /api/pokemon", session(teamHandler.ListPokemon))
	mux.HandleFunc("GET /api/team/badges", team(teamHandler.MyBadges))

	// Admin
	mux.HandleFunc("DELETE /api/pokemon/{id}", admin(teamHandler.DeletePokemon))
	mux.HandleFunc("GET /api/teams", admin(teamHandler.ListTeams))
	mux.HandleFunc("POST /api/teams", admin(teamHandler.CreateTeam))
	mux.HandleFunc("DELETE /api/teams/{id}", admin(teamHandler.DeleteTeam))
	mux.HandleFunc("GET /api/gyms", admin(teamHandler.ListGyms))
	mux.HandleFunc("GET /api/admin/pokemon-history", admin(adminHandler.PokemonHistory))
	mux.HandleFunc("GET /api/admin/gym-history", admin(adminHandler.GymHistory))
	mux.HandleFunc("GET /api/admin/team-badges", admin(adminHandler.TeamBadges))
	mux.HandleFunc("DELETE /api/admin/team-badges/{id}", admin(adminHandler.DeleteTeamBadge))
	mux.HandleFunc("POST /api/admin/prefetch-pokemon", session(adminHandler.PrefetchPokemon))

	// Pokémon metadata
	mux.HandleFunc("GET /api/poke-meta", middleware.WithLogging(metaHandler.Get))
	mux.HandleFunc("POST /api/poke-meta", middleware.WithLogging(metaHandler.Refresh))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pokehunt API v1"))
	})

	return middleware.Instrument(d.Metrics, mux)
}
