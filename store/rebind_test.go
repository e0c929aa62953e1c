// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"testing"

	"github.com/rrex971/pokehunt/db"
)

func TestRebind(t *testing.T) {
	q := "SELECT 1 FROM catch WHERE team_id = ? AND name = ?"

	lite := &Store{dialect: db.SQLite}
	if got := lite.rebind(q); got != q {
		t.Errorf("sqlite rebind changed query: %s", got)
	}

	pg := &Store{dialect: db.Postgres}
	want := "SELECT 1 FROM catch WHERE team_id = $1 AND name = $2"
	if got := pg.rebind(q); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"pika":   "%pika%",
		"100%":   `%100\%%`,
		"a_b":    `%a\_b%`,
		`c:\dir`: `%c:\\dir%`,
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}
