// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rrex971/pokehunt/auth"
	"github.com/rrex971/pokehunt/claim"
	"github.com/rrex971/pokehunt/cliparse"
	"github.com/rrex971/pokehunt/db"
	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/roster"
	"github.com/rrex971/pokehunt/store"
	"github.com/rrex971/pokehunt/token"
)

const (
	TestQRSecret      = "test-qr-secret"
	TestSessionSecret = "test-session-secret-0123456789abcdef"
	TestAdminPIN      = "9999"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// per-test temp directory.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pokehunt.db")
	conn, err := db.Open(context.Background(), db.SQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps SetupTestDB in a Store.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t), db.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   string(db.SQLite),
		QRSecretKey:    TestQRSecret,
		SessionSecret:  TestSessionSecret,
		AdminPIN:       TestAdminPIN,
		PokeAPIBaseURL: cliparse.DefaultPokeAPIBaseURL,
		StoreTimeout:   cliparse.DefaultStoreTimeout,
	}
}

// Rosters returns the built-in Pokémon and gym rosters.
func Rosters(t *testing.T) (pokemon, gyms *roster.Roster) {
	t.Helper()

	pokemon, err := roster.Pokemon()
	if err != nil {
		t.Fatalf("Failed to load pokemon roster: %v", err)
	}
	gyms, err = roster.Gyms()
	if err != nil {
		t.Fatalf("Failed to load gym roster: %v", err)
	}
	return pokemon, gyms
}

// NewClaimService wires catch and capture protocols over s with the test
// QR secret.
func NewClaimService(t *testing.T, s *store.Store, pokemon, gyms *roster.Roster) *claim.Service {
	t.Helper()

	pv, err := token.NewVerifier(pokemon, TestQRSecret)
	if err != nil {
		t.Fatalf("Failed to build pokemon verifier: %v", err)
	}
	gv, err := token.NewVerifier(gyms, TestQRSecret)
	if err != nil {
		t.Fatalf("Failed to build gym verifier: %v", err)
	}

	return claim.NewService(
		claim.NewProtocol(models.ProtocolCatch, pv, s.CatchStore()),
		claim.NewProtocol(models.ProtocolCapture, gv, s.BadgeStore()),
	)
}

// QRToken returns the token printed on the QR code for a roster key.
func QRToken(key string) string {
	return token.Digest(key, TestQRSecret)
}

// CreateTestTeam inserts a team and returns it
func CreateTestTeam(t *testing.T, s *store.Store, name, pin string) models.Team {
	t.Helper()

	team, err := s.CreateTeam(context.Background(), name, pin)
	if err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}
	return team
}

// CreateTestCatch records a catch for a team directly, bypassing tokens
func CreateTestCatch(t *testing.T, s *store.Store, teamID int64, name string) {
	t.Helper()

	err := s.CatchStore().Insert(context.Background(), teamID, roster.Entry{Key: name})
	if err != nil {
		t.Fatalf("Failed to create test catch: %v", err)
	}
}

// CreateTestBadge records a badge for a team directly, bypassing tokens
func CreateTestBadge(t *testing.T, s *store.Store, teamID int64, gymID int) {
	t.Helper()

	err := s.BadgeStore().Insert(context.Background(), teamID, roster.Entry{ID: gymID})
	if err != nil {
		t.Fatalf("Failed to create test badge: %v", err)
	}
}

// SessionCookie returns a signed session cookie for a team or the admin.
func SessionCookie(t *testing.T, teamID int64, isAdmin bool) *http.Cookie {
	t.Helper()

	sessions := auth.NewSessions(TestSessionSecret, false)
	value, err := sessions.Encode(auth.Session{
		ID:       "test-session",
		TeamID:   teamID,
		IsAdmin:  isAdmin,
		IssuedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Failed to encode session: %v", err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: value}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
