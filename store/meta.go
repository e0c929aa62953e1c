// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rrex971/pokehunt/models"
)

// GetMeta returns the cached metadata for name or ErrNotFound.
func (s *Store) GetMeta(ctx context.Context, name string) (models.PokeMeta, error) {
	var (
		m      models.PokeMeta
		sprite sql.NullString
		types  string
	)
	err := s.queryRow(ctx, `
		SELECT name, sprite, types, fetched_at FROM poke_meta WHERE name = ?
	`, name).Scan(&m.Name, &sprite, &types, &m.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PokeMeta{}, ErrNotFound
	}
	if err != nil {
		return models.PokeMeta{}, err
	}
	m.Sprite = sprite.String
	m.Types = decodeTypes(types)
	return m, nil
}

// GetMetas returns cached metadata for the names that have an entry.
func (s *Store) GetMetas(ctx context.Context, names []string) (map[string]models.PokeMeta, error) {
	out := make(map[string]models.PokeMeta, len(names))
	if len(names) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	rows, err := s.query(ctx, `
		SELECT name, sprite, types, fetched_at FROM poke_meta WHERE name IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m      models.PokeMeta
			sprite sql.NullString
			types  string
		)
		if err := rows.Scan(&m.Name, &sprite, &types, &m.FetchedAt); err != nil {
			return nil, err
		}
		m.Sprite = sprite.String
		m.Types = decodeTypes(types)
		out[m.Name] = m
	}
	return out, rows.Err()
}

// PutMeta inserts or overwrites the cache entry for m.Name.
func (s *Store) PutMeta(ctx context.Context, m models.PokeMeta) error {
	types := m.Types
	if types == nil {
		types = []string{}
	}
	raw, err := json.Marshal(types)
	if err != nil {
		return err
	}
	if m.FetchedAt.IsZero() {
		m.FetchedAt = s.now()
	}

	var sprite sql.NullString
	if m.Sprite != "" {
		sprite = sql.NullString{String: m.Sprite, Valid: true}
	}

	_, err = s.exec(ctx, `
		INSERT INTO poke_meta (name, sprite, types, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			sprite = excluded.sprite,
			types = excluded.types,
			fetched_at = excluded.fetched_at
	`, m.Name, sprite, string(raw), m.FetchedAt)
	return err
}

// Malformed type lists decode as empty rather than failing the lookup.
func decodeTypes(raw string) []string {
	types := []string{}
	if raw == "" {
		return types
	}
	if err := json.Unmarshal([]byte(raw), &types); err != nil {
		return []string{}
	}
	return types
}
