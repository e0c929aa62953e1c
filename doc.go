// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pokehunt API server.

pokehunt runs a physical scavenger hunt. Teams scan QR codes hidden around
a venue; each code carries a keyed SHA-256 token naming a Pokémon or a gym.
The server verifies the token and records the catch or badge at most once
per team, no matter how often or how concurrently the code is scanned.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	QR_SECRET_KEY=... SECRET_COOKIE_PASSWORD=... ADMIN_PIN=... \
	DATABASE_URL=./data/pokehunt.db go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - QR_SECRET_KEY (-qr-secret): secret mixed into every QR token
  - SECRET_COOKIE_PASSWORD (-session-secret): session signing key, 32+ chars
  - ADMIN_PIN (-admin-pin): PIN for the "admin" login

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - POKEMON_ROSTER (-pokemon), GYM_ROSTER (-gyms): roster JSON files
  - POKEAPI_BASE_URL, STORE_TIMEOUT, COOKIE_SECURE

# Architecture

  - token: QR token digests and verification against a roster
  - claim: the verify, authenticate, record protocol with its outcomes
  - store: SQL persistence for teams, catches, badges and metadata
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, request IDs, sessions, JSON helpers
  - auth: session cookies, PINs and login throttling
  - pokemeta: cached PokeAPI sprite and type lookups
  - metrics: Prometheus counters and histograms
  - roster, db, cliparse, models: rosters, schema, configuration, wire types

The cmd/qrtoken tool prints the tokens and links to put on the QR codes.

See package documentation for each component.
*/
package main
