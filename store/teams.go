// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/rrex971/pokehunt/models"
)

func (s *Store) CreateTeam(ctx context.Context, name, pin string) (models.Team, error) {
	t := models.Team{Name: name, PIN: pin, CreatedAt: s.now()}
	err := s.queryRow(ctx, `
		INSERT INTO team (name, pin, created_at) VALUES (?, ?, ?)
		RETURNING id
	`, name, pin, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return models.Team{}, err
	}
	return t, nil
}

func (s *Store) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	var t models.Team
	err := s.queryRow(ctx, `
		SELECT id, name, pin, created_at FROM team WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.PIN, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, ErrNotFound
	}
	return t, err
}

// ListTeams returns all teams, or those whose name contains q. A numeric q
// also matches the team id.
func (s *Store) ListTeams(ctx context.Context, q string) ([]models.Team, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch id, convErr := strconv.ParseInt(q, 10, 64); {
	case q == "":
		rows, err = s.query(ctx, `SELECT id, name, pin, created_at FROM team ORDER BY id`)
	case convErr == nil:
		rows, err = s.query(ctx, `
			SELECT id, name, pin, created_at FROM team WHERE id = ? OR LOWER(name) LIKE LOWER(?) ESCAPE '\' ORDER BY id
		`, id, containsPattern(q))
	default:
		rows, err = s.query(ctx, `
			SELECT id, name, pin, created_at FROM team WHERE LOWER(name) LIKE LOWER(?) ESCAPE '\' ORDER BY id
		`, containsPattern(q))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.PIN, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// DeleteTeam removes the team; its catches and badges cascade.
func (s *Store) DeleteTeam(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "team", id)
}
