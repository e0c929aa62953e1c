// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/testutil"
)

// serve runs one request through the router with an optional session cookie.
func serve(t *testing.T, h http.Handler, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.MakeRequest(method, path, body, nil)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected one session cookie, got %d", len(cookies))
	}
	return cookies[0]
}

// TestFullHuntWorkflow tests the complete end-to-end flow:
// 1. Admin logs in and creates a team
// 2. Team logs in with the issued PIN
// 3. A QR landing without a session redirects to login
// 4. Team catches a Pokémon and captures a gym
// 5. Rescans report already claimed
// 6. Team and admin views show exactly one record each
func TestFullHuntWorkflow(t *testing.T) {
	h := newTestRouter(t)

	// Step 1: admin creates a team
	w := serve(t, h, "POST", "/api/login", models.LoginRequest{TeamID: "admin", PIN: testutil.TestAdminPIN}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	adminCookie := sessionCookie(t, w)

	w = serve(t, h, "POST", "/api/teams", models.CreateTeamRequest{Name: "Team Rocket"}, adminCookie)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var team models.Team
	testutil.AssertJSON(t, w, &team)

	// Step 2: team login
	w = serve(t, h, "POST", "/api/login", models.LoginRequest{TeamID: strconv.FormatInt(team.ID, 10), PIN: team.PIN}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	teamCookie := sessionCookie(t, w)

	w = serve(t, h, "GET", "/api/me/team", nil, teamCookie)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 3: scanning before login
	snorlax := testutil.QRToken("Snorlax")
	w = serve(t, h, "GET", "/catch?p="+snorlax, nil, nil)
	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login?next=") {
		t.Fatalf("Expected redirect to login, got %q", loc)
	}

	// Step 4: claims
	w = serve(t, h, "GET", "/catch?p="+snorlax, nil, teamCookie)
	testutil.AssertStatus(t, w, http.StatusOK)
	w = serve(t, h, "POST", "/api/gym-capture", models.GymCaptureRequest{GymHash: testutil.QRToken("ghost")}, teamCookie)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 5: rescans
	w = serve(t, h, "POST", "/api/catch", models.CatchRequest{PokemonHash: snorlax}, teamCookie)
	testutil.AssertStatus(t, w, http.StatusConflict)
	var resp models.ClaimResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Already caught Snorlax" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
	w = serve(t, h, "GET", "/gym?p="+testutil.QRToken("ghost"), nil, teamCookie)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Step 6: views
	w = serve(t, h, "GET", "/api/pokemon", nil, teamCookie)
	testutil.AssertStatus(t, w, http.StatusOK)
	var catches []models.Catch
	testutil.AssertJSON(t, w, &catches)
	if len(catches) != 1 || catches[0].Name != "Snorlax" {
		t.Errorf("Expected only Snorlax, got %+v", catches)
	}

	w = serve(t, h, "GET", "/api/team/badges", nil, teamCookie)
	testutil.AssertStatus(t, w, http.StatusOK)
	var badges []models.Badge
	testutil.AssertJSON(t, w, &badges)
	if len(badges) != 1 || badges[0].Slug != "ghost" {
		t.Errorf("Expected only the ghost badge, got %+v", badges)
	}

	w = serve(t, h, "GET", "/api/admin/pokemon-history?name=snor", nil, adminCookie)
	testutil.AssertStatus(t, w, http.StatusOK)
	var history []models.CatchHistoryEntry
	testutil.AssertJSON(t, w, &history)
	if len(history) != 1 || history[0].TeamName != "Team Rocket" {
		t.Errorf("Unexpected history %+v", history)
	}

	// Logout ends the session for the browser
	w = serve(t, h, "POST", "/api/logout", nil, teamCookie)
	testutil.AssertStatus(t, w, http.StatusOK)
}
