// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/rrex971/pokehunt/claim"
	"github.com/rrex971/pokehunt/roster"
)

// CatchStore records Pokémon catches keyed by (team_id, name).
func (s *Store) CatchStore() claim.Store { return catchStore{s} }

// BadgeStore records gym badges keyed by (team_id, gym_id).
func (s *Store) BadgeStore() claim.Store { return badgeStore{s} }

type catchStore struct{ s *Store }

func (c catchStore) Claimed(ctx context.Context, teamID int64, e roster.Entry) (bool, error) {
	var exists bool
	err := c.s.queryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM catch WHERE team_id = ? AND name = ?)
	`, teamID, e.Key).Scan(&exists)
	return exists, err
}

func (c catchStore) Insert(ctx context.Context, teamID int64, e roster.Entry) error {
	_, err := c.s.exec(ctx, `
		INSERT INTO catch (team_id, name, caught_at) VALUES (?, ?, ?)
	`, teamID, e.Key, c.s.now())
	return translateInsert(err)
}

type badgeStore struct{ s *Store }

func (b badgeStore) Claimed(ctx context.Context, teamID int64, e roster.Entry) (bool, error) {
	var exists bool
	err := b.s.queryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM badge WHERE team_id = ? AND gym_id = ?)
	`, teamID, e.ID).Scan(&exists)
	return exists, err
}

func (b badgeStore) Insert(ctx context.Context, teamID int64, e roster.Entry) error {
	_, err := b.s.exec(ctx, `
		INSERT INTO badge (team_id, gym_id, captured_at) VALUES (?, ?, ?)
	`, teamID, e.ID, b.s.now())
	return translateInsert(err)
}

func translateInsert(err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", claim.ErrDuplicate, err)
	}
	return err
}
