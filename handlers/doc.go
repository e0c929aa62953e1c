// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pokehunt API.

# Handler Types

Each handler is a struct holding only the dependencies it uses:

  - AuthHandler: team and admin login, logout, current team
  - ClaimHandler: catch and gym capture, JSON and QR landing forms
  - TeamHandler: a team's catches and badges, team administration, gym list
  - AdminHandler: catch and badge history, team badges, metadata prefetch
  - MetaHandler: cached PokeAPI metadata lookups

# Claims

A scanned code carries a token. The claim service verifies it, checks the
session and records the catch or badge at most once per team:

	POST /api/catch        → Catch        {"pokemon_hash": "..."}
	POST /api/gym-capture  → GymCapture   {"gym_hash": "..."}
	GET  /catch?p=...      → CatchLanding
	GET  /gym?p=...        → GymLanding

Outcomes map to statuses:

	Success         → 200 {"message": "Successfully caught X", "name": "X"}
	AlreadyClaimed  → 409 {"message": "Already caught X", "name": "X"}
	InvalidToken    → 400 "Invalid Pokemon" / "Invalid gym"
	Unauthenticated → 401 "Login required" (landing routes redirect to /login)
	Transient       → 503 with Retry-After

# Sessions

Handlers never parse cookies themselves except ClaimHandler, which must
tell an invalid code from a missing session before either is checked.
Everything else reads the session that middleware.RequireSession placed
on the request context.
*/
package handlers
