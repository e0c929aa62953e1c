// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rrex971/pokehunt/middleware"
	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/pokemeta"
)

type MetaHandler struct {
	meta *pokemeta.Service
}

func NewMetaHandler(meta *pokemeta.Service) *MetaHandler {
	return &MetaHandler{meta: meta}
}

// Get handles GET /api/poke-meta?name=
func (h *MetaHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	h.respond(w, r.Context(), name, h.meta.Get)
}

// Refresh handles POST /api/poke-meta
func (h *MetaHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshMetaRequest
	if !middleware.DecodeAndValidate(w, r, &req) {
		return
	}
	h.respond(w, r.Context(), strings.TrimSpace(req.Name), h.meta.Refresh)
}

func (h *MetaHandler) respond(w http.ResponseWriter, ctx context.Context, name string, lookup func(context.Context, string) (models.PokeMeta, error)) {
	m, err := lookup(ctx, name)
	if errors.Is(err, pokemeta.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown Pokemon")
		return
	}
	if err != nil {
		slog.Error("failed to load metadata", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to fetch metadata")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, m)
}
