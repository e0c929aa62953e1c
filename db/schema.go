// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == Postgres {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	_, err := db.Exec(strings.ReplaceAll(schema, "{{id}}", idColumn))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Teams
CREATE TABLE IF NOT EXISTS team (
    id {{id}},
    name TEXT NOT NULL,
    pin TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Pokémon catches, one per team and name
CREATE TABLE IF NOT EXISTS catch (
    id {{id}},
    team_id BIGINT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    caught_at TIMESTAMP NOT NULL,
    UNIQUE (team_id, name)
);

CREATE INDEX IF NOT EXISTS idx_catch_caught_at ON catch(caught_at);

-- Gym badges, one per team and gym
CREATE TABLE IF NOT EXISTS badge (
    id {{id}},
    team_id BIGINT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    gym_id INTEGER NOT NULL,
    captured_at TIMESTAMP NOT NULL,
    UNIQUE (team_id, gym_id)
);

CREATE INDEX IF NOT EXISTS idx_badge_captured_at ON badge(captured_at);

-- PokeAPI metadata cache
CREATE TABLE IF NOT EXISTS poke_meta (
    name TEXT PRIMARY KEY,
    sprite TEXT,
    types TEXT NOT NULL DEFAULT '[]',
    fetched_at TIMESTAMP NOT NULL
);
`
