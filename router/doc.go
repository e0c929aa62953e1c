// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pokehunt API.

# Route Registration

NewRouter builds an http.ServeMux from its dependencies and wraps it in
middleware.Instrument:

	handler := router.NewRouter(router.Deps{Store: s, Claims: claims, ...})

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Session:

	POST /api/login   - Team or admin login
	POST /api/logout  - Clear the session
	GET  /api/me/team - Current team (team session)

Claims (the session is checked after the token):

	POST /api/catch       - Catch a Pokémon
	POST /api/gym-capture - Capture a gym badge
	GET  /catch?p=        - QR landing, redirects to /login without a session
	GET  /gym?p=          - QR landing for gyms

Team views:

	GET /api/pokemon      - Own catches (admin: ?teamId=)
	GET /api/team/badges  - Own badges

Admin:

	DELETE /api/pokemon/{id}
	GET    /api/teams, POST /api/teams, DELETE /api/teams/{id}
	GET    /api/gyms
	GET    /api/admin/pokemon-history, /api/admin/gym-history
	GET    /api/admin/team-badges, DELETE /api/admin/team-badges/{id}
	POST   /api/admin/prefetch-pokemon

Metadata:

	GET  /api/poke-meta?name= - Cached PokeAPI lookup
	POST /api/poke-meta       - Force a refresh
*/
package router
