// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open supports SQLite (modernc.org/sqlite, pure Go) and PostgreSQL (lib/pq):

	dialect, _ := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(ctx, dialect, cfg.DatabaseURL)

The first ping is retried with exponential backoff for up to MaxConnectWait,
so the server can start before its database container is ready. SQLite is
opened in WAL mode with foreign keys on and a single connection.

# Schema Creation

	if err := db.CreateSchema(conn, dialect); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - team: name and login PIN
  - catch: one row per team and Pokémon name, UNIQUE (team_id, name)
  - badge: one row per team and gym id, UNIQUE (team_id, gym_id)
  - poke_meta: cached PokeAPI sprite and types

The UNIQUE constraints are what make claims idempotent. Catches and badges
cascade when their team is deleted.
*/
package db
