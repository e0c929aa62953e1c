// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rrex971/pokehunt/auth"
	"github.com/rrex971/pokehunt/claim"
	"github.com/rrex971/pokehunt/middleware"
	"github.com/rrex971/pokehunt/models"
)

// LoginPath is where QR landing routes send visitors without a session.
const LoginPath = "/login"

type submitFunc func(ctx context.Context, tok string, team claim.TeamRef) claim.Result

// claimText holds the user-facing wording for one claim kind.
type claimText struct {
	success string
	already string
	invalid string
}

var (
	catchText   = claimText{success: "Successfully caught", already: "Already caught", invalid: "Invalid Pokemon"}
	captureText = claimText{success: "Successfully captured", already: "Already captured", invalid: "Invalid gym"}
)

type ClaimHandler struct {
	claims   *claim.Service
	sessions *auth.Sessions
}

func NewClaimHandler(claims *claim.Service, sessions *auth.Sessions) *ClaimHandler {
	return &ClaimHandler{claims: claims, sessions: sessions}
}

// teamRef resolves the caller's team. Admin sessions carry no team.
func (h *ClaimHandler) teamRef(r *http.Request) claim.TeamRef {
	sess, err := h.sessions.Read(r)
	if err != nil || sess.TeamID == 0 {
		return claim.NoTeam
	}
	return claim.Team(sess.TeamID)
}

// Catch handles POST /api/catch
func (h *ClaimHandler) Catch(w http.ResponseWriter, r *http.Request) {
	var req models.CatchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	res := h.claims.SubmitCatch(r.Context(), req.PokemonHash, h.teamRef(r))
	writeClaim(w, res, catchText)
}

// GymCapture handles POST /api/gym-capture
func (h *ClaimHandler) GymCapture(w http.ResponseWriter, r *http.Request) {
	var req models.GymCaptureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	res := h.claims.SubmitCapture(r.Context(), req.GymHash, h.teamRef(r))
	writeClaim(w, res, captureText)
}

// CatchLanding handles GET /catch?p=
func (h *ClaimHandler) CatchLanding(w http.ResponseWriter, r *http.Request) {
	h.landing(w, r, h.claims.SubmitCatch, catchText)
}

// GymLanding handles GET /gym?p=
func (h *ClaimHandler) GymLanding(w http.ResponseWriter, r *http.Request) {
	h.landing(w, r, h.claims.SubmitCapture, captureText)
}

// landing is the target of a scanned QR code. Visitors without a team
// session are sent to the login page and brought back afterwards.
func (h *ClaimHandler) landing(w http.ResponseWriter, r *http.Request, submit submitFunc, text claimText) {
	tok := r.URL.Query().Get("p")
	if tok == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing code")
		return
	}

	team := h.teamRef(r)
	if !team.Authenticated {
		http.Redirect(w, r, LoginPath+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
		return
	}

	writeClaim(w, submit(r.Context(), tok, team), text)
}

func writeClaim(w http.ResponseWriter, res claim.Result, text claimText) {
	switch res.Outcome {
	case claim.Success:
		middleware.JSONResponse(w, http.StatusOK, models.ClaimResponse{
			Message: text.success + " " + res.Name,
			Name:    res.Name,
		})
	case claim.AlreadyClaimed:
		middleware.JSONResponse(w, http.StatusConflict, models.ClaimResponse{
			Message: text.already + " " + res.Name,
			Name:    res.Name,
		})
	case claim.InvalidToken:
		middleware.ErrorResponse(w, http.StatusBadRequest, text.invalid)
	case claim.Unauthenticated:
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
	default:
		w.Header().Set("Retry-After", "1")
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Please try again")
	}
}
