// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/testutil"
)

// TestConcurrentCatchSameTeam verifies that simultaneous scans of the same
// code by one team record exactly one catch
func TestConcurrentCatchSameTeam(t *testing.T) {
	f := setupClaimHandler(t)
	team := testutil.CreateTestTeam(t, f.store, "Ash", "1234")
	cookie := testutil.SessionCookie(t, team.ID, false)
	hash := testutil.QRToken("Gengar")

	const numScans = 10
	var okCount, conflictCount, otherCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numScans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/catch", models.CatchRequest{PokemonHash: hash}, nil)
			req.AddCookie(cookie)
			w := httptest.NewRecorder()

			f.handler.Catch(w, req)

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful catch, got %d", okCount.Load())
	}
	if conflictCount.Load() != numScans-1 {
		t.Errorf("Expected %d conflicts, got %d", numScans-1, conflictCount.Load())
	}
	if otherCount.Load() != 0 {
		t.Errorf("Expected no other statuses, got %d", otherCount.Load())
	}

	catches, err := f.store.ListCatches(context.Background(), team.ID)
	if err != nil {
		t.Fatalf("Failed to list catches: %v", err)
	}
	if len(catches) != 1 {
		t.Errorf("Expected 1 catch row, got %d", len(catches))
	}
}

// TestConcurrentCatchDifferentTeams verifies that teams never block each
// other on the same code
func TestConcurrentCatchDifferentTeams(t *testing.T) {
	f := setupClaimHandler(t)
	hash := testutil.QRToken("Gengar")

	const numTeams = 6
	cookies := make([]*http.Cookie, numTeams)
	for i := 0; i < numTeams; i++ {
		team := testutil.CreateTestTeam(t, f.store, "Team "+string(rune('A'+i)), "1234")
		cookies[i] = testutil.SessionCookie(t, team.ID, false)
	}

	var okCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < numTeams; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/catch", models.CatchRequest{PokemonHash: hash}, nil)
			req.AddCookie(cookies[idx])
			w := httptest.NewRecorder()

			f.handler.Catch(w, req)

			if w.Code == http.StatusOK {
				okCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(okCount.Load()) != numTeams {
		t.Errorf("Expected %d successful catches, got %d", numTeams, okCount.Load())
	}
}
