// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rrex971/pokehunt/auth"
	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/testutil"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func TestListPokemon(t *testing.T) {
	s := testutil.SetupTestStore(t)
	_, gyms := testutil.Rosters(t)
	handler := NewTeamHandler(s, gyms)

	ash := testutil.CreateTestTeam(t, s, "Ash", "1234")
	misty := testutil.CreateTestTeam(t, s, "Misty", "4321")
	testutil.CreateTestCatch(t, s, ash.ID, "Eevee")
	testutil.CreateTestCatch(t, s, ash.ID, "Snorlax")
	testutil.CreateTestCatch(t, s, misty.ID, "Starmie")

	tests := []struct {
		name           string
		req            *http.Request
		expectedStatus int
		expectedCount  int
	}{
		{"team sees own catches", withSession(httptest.NewRequest("GET", "/api/pokemon", nil), ash.ID, false), http.StatusOK, 2},
		{"team query param is ignored", withSession(httptest.NewRequest("GET", "/api/pokemon?teamId="+itoa(misty.ID), nil), ash.ID, false), http.StatusOK, 2},
		{"admin picks a team", withSession(httptest.NewRequest("GET", "/api/pokemon?teamId="+itoa(misty.ID), nil), 0, true), http.StatusOK, 1},
		{"admin without team", withSession(httptest.NewRequest("GET", "/api/pokemon", nil), 0, true), http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ListPokemon(w, tt.req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var catches []models.Catch
			testutil.AssertJSON(t, w, &catches)
			if len(catches) != tt.expectedCount {
				t.Errorf("Expected %d catches, got %d", tt.expectedCount, len(catches))
			}
		})
	}
}

func TestDeletePokemon(t *testing.T) {
	s := testutil.SetupTestStore(t)
	_, gyms := testutil.Rosters(t)
	handler := NewTeamHandler(s, gyms)

	team := testutil.CreateTestTeam(t, s, "Ash", "1234")
	testutil.CreateTestCatch(t, s, team.ID, "Lapras")
	catches, _ := s.ListCatches(context.Background(), team.ID)

	del := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/api/pokemon/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.DeletePokemon(w, req)
		return w
	}

	testutil.AssertStatus(t, del(itoa(catches[0].ID)), http.StatusOK)
	testutil.AssertStatus(t, del(itoa(catches[0].ID)), http.StatusNotFound)
	testutil.AssertStatus(t, del("abc"), http.StatusBadRequest)

	// Deleted catches can be caught again
	pokemon, _ := testutil.Rosters(t)
	svc := testutil.NewClaimService(t, s, pokemon, gyms)
	claimHandler := NewClaimHandler(svc, auth.NewSessions(testutil.TestSessionSecret, false))
	req := testutil.MakeRequest("POST", "/api/catch", models.CatchRequest{PokemonHash: testutil.QRToken("Lapras")}, nil)
	req.AddCookie(testutil.SessionCookie(t, team.ID, false))
	w := httptest.NewRecorder()
	claimHandler.Catch(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestMyBadges(t *testing.T) {
	s := testutil.SetupTestStore(t)
	_, gyms := testutil.Rosters(t)
	handler := NewTeamHandler(s, gyms)

	team := testutil.CreateTestTeam(t, s, "Brock", "1111")
	fire, _ := gyms.ByKey("fire")
	testutil.CreateTestBadge(t, s, team.ID, fire.ID)
	testutil.CreateTestBadge(t, s, team.ID, 99)

	w := httptest.NewRecorder()
	handler.MyBadges(w, withSession(httptest.NewRequest("GET", "/api/team/badges", nil), team.ID, false))

	testutil.AssertStatus(t, w, http.StatusOK)
	var badges []models.Badge
	testutil.AssertJSON(t, w, &badges)
	if len(badges) != 2 {
		t.Fatalf("Expected 2 badges, got %d", len(badges))
	}
	if badges[0].Slug != "fire" || badges[0].Name != fire.DisplayName || badges[0].BadgeFilename != fire.Badge {
		t.Errorf("Badge not filled from roster: %+v", badges[0])
	}
	if badges[1].Name != "Unknown Gym" {
		t.Errorf("Expected Unknown Gym for off-roster id, got %q", badges[1].Name)
	}
}

func TestCreateTeam(t *testing.T) {
	s := testutil.SetupTestStore(t)
	_, gyms := testutil.Rosters(t)
	handler := NewTeamHandler(s, gyms)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedPIN    string
	}{
		{"with pin", models.CreateTeamRequest{Name: "Rocket", PIN: "0420"}, http.StatusCreated, "0420"},
		{"generated pin", models.CreateTeamRequest{Name: "Aqua"}, http.StatusCreated, ""},
		{"bad pin is replaced", models.CreateTeamRequest{Name: "Magma", PIN: "12"}, http.StatusCreated, ""},
		{"missing name", models.CreateTeamRequest{PIN: "1234"}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/teams", tt.body, nil)
			w := httptest.NewRecorder()
			handler.CreateTeam(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}
			var team models.Team
			testutil.AssertJSON(t, w, &team)
			if team.ID == 0 {
				t.Error("Expected an id")
			}
			if !auth.ValidPIN(team.PIN) {
				t.Errorf("Expected a 4-digit pin, got %q", team.PIN)
			}
			if tt.expectedPIN != "" && team.PIN != tt.expectedPIN {
				t.Errorf("Expected pin %q, got %q", tt.expectedPIN, team.PIN)
			}
		})
	}
}

func TestListAndDeleteTeams(t *testing.T) {
	s := testutil.SetupTestStore(t)
	_, gyms := testutil.Rosters(t)
	handler := NewTeamHandler(s, gyms)

	ash := testutil.CreateTestTeam(t, s, "Ash", "1234")
	testutil.CreateTestTeam(t, s, "Misty", "4321")

	w := httptest.NewRecorder()
	handler.ListTeams(w, httptest.NewRequest("GET", "/api/teams?q=ash", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var teams []models.Team
	testutil.AssertJSON(t, w, &teams)
	if len(teams) != 1 || teams[0].ID != ash.ID {
		t.Errorf("Expected only Ash, got %+v", teams)
	}

	req := httptest.NewRequest("DELETE", "/api/teams/"+itoa(ash.ID), nil)
	req.SetPathValue("id", itoa(ash.ID))
	w = httptest.NewRecorder()
	handler.DeleteTeam(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.ListTeams(w, httptest.NewRequest("GET", "/api/teams", nil))
	testutil.AssertJSON(t, w, &teams)
	if len(teams) != 1 || teams[0].Name != "Misty" {
		t.Errorf("Expected only Misty left, got %+v", teams)
	}
}

func TestListGyms(t *testing.T) {
	s := testutil.SetupTestStore(t)
	_, gyms := testutil.Rosters(t)
	handler := NewTeamHandler(s, gyms)

	w := httptest.NewRecorder()
	handler.ListGyms(w, httptest.NewRequest("GET", "/api/gyms", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var got []models.Gym
	testutil.AssertJSON(t, w, &got)
	if len(got) != gyms.Len() {
		t.Fatalf("Expected %d gyms, got %d", gyms.Len(), len(got))
	}
	if got[0].Slug != "dark" || got[0].BadgeFilename != "dark.svg" {
		t.Errorf("Unexpected first gym %+v", got[0])
	}
}
