// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"

	"github.com/rrex971/pokehunt/models"
)

// HistoryLimit caps unfiltered admin history queries.
const HistoryLimit = 100

// ListCatches returns a team's catches, newest first.
func (s *Store) ListCatches(ctx context.Context, teamID int64) ([]models.Catch, error) {
	rows, err := s.query(ctx, `
		SELECT id, team_id, name, caught_at FROM catch
		WHERE team_id = ?
		ORDER BY caught_at DESC, id DESC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Catch, 0)
	for rows.Next() {
		var c models.Catch
		if err := rows.Scan(&c.ID, &c.TeamID, &c.Name, &c.CaughtAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CatchHistory returns catches across all teams. With an empty name it
// returns the most recent HistoryLimit rows; otherwise every catch whose
// name contains the query, case-insensitively.
func (s *Store) CatchHistory(ctx context.Context, name string) ([]models.CatchHistoryEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if name == "" {
		rows, err = s.query(ctx, `
			SELECT c.id, c.name, c.team_id, t.name, c.caught_at
			FROM catch c
			JOIN team t ON t.id = c.team_id
			ORDER BY c.caught_at DESC, c.id DESC
			LIMIT ?
		`, HistoryLimit)
	} else {
		rows, err = s.query(ctx, `
			SELECT c.id, c.name, c.team_id, t.name, c.caught_at
			FROM catch c
			JOIN team t ON t.id = c.team_id
			WHERE LOWER(c.name) LIKE LOWER(?) ESCAPE '\'
			ORDER BY c.caught_at DESC, c.id DESC
		`, containsPattern(name))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CatchHistoryEntry, 0)
	for rows.Next() {
		var h models.CatchHistoryEntry
		if err := rows.Scan(&h.ID, &h.Name, &h.TeamID, &h.TeamName, &h.CaughtAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// DistinctCaughtNames lists every Pokémon caught by at least one team.
func (s *Store) DistinctCaughtNames(ctx context.Context) ([]string, error) {
	rows, err := s.query(ctx, `SELECT DISTINCT name FROM catch ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *Store) DeleteCatch(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "catch", id)
}

// ListBadges returns a team's badges in capture order. Gym names are filled
// in by the caller from the roster.
func (s *Store) ListBadges(ctx context.Context, teamID int64) ([]models.Badge, error) {
	rows, err := s.query(ctx, `
		SELECT id, team_id, gym_id, captured_at FROM badge
		WHERE team_id = ?
		ORDER BY captured_at, id
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Badge, 0)
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.TeamID, &b.GymID, &b.CapturedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BadgeHistory returns badges across all teams, newest first. With limit
// <= 0 every row is returned.
func (s *Store) BadgeHistory(ctx context.Context, limit int) ([]models.BadgeHistoryEntry, error) {
	q := `
		SELECT b.id, b.gym_id, b.team_id, t.name, b.captured_at
		FROM badge b
		JOIN team t ON t.id = b.team_id
		ORDER BY b.captured_at DESC, b.id DESC
	`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.BadgeHistoryEntry, 0)
	for rows.Next() {
		var h models.BadgeHistoryEntry
		if err := rows.Scan(&h.ID, &h.GymID, &h.TeamID, &h.TeamName, &h.CapturedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) DeleteBadge(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "badge", id)
}
