// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pokemeta

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/store"
)

// Cache is the metadata table. Losing entries only costs a re-fetch.
type Cache interface {
	GetMeta(ctx context.Context, name string) (models.PokeMeta, error)
	GetMetas(ctx context.Context, names []string) (map[string]models.PokeMeta, error)
	PutMeta(ctx context.Context, m models.PokeMeta) error
	DistinctCaughtNames(ctx context.Context) ([]string, error)
}

// fillTimeout bounds one shared fetch, retries included.
const fillTimeout = 30 * time.Second

type Fetcher interface {
	Fetch(ctx context.Context, name string) (Fetched, error)
}

// Service answers metadata lookups from the cache, filling misses from
// PokeAPI. Concurrent misses for the same name share one upstream call.
type Service struct {
	cache   Cache
	fetcher Fetcher
	group   singleflight.Group
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(cache Cache, fetcher Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cache:   cache,
		fetcher: fetcher,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Get returns cached metadata, fetching and caching it on a miss.
func (s *Service) Get(ctx context.Context, name string) (models.PokeMeta, error) {
	m, err := s.cache.GetMeta(ctx, name)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.PokeMeta{}, err
	}
	return s.fill(ctx, name)
}

// Refresh always goes upstream and overwrites the cache entry.
func (s *Service) Refresh(ctx context.Context, name string) (models.PokeMeta, error) {
	return s.fill(ctx, name)
}

// fill runs the upstream fetch and cache write once per name. The shared
// work is detached from any one caller's context so a disconnecting client
// does not fail the others waiting on it.
func (s *Service) fill(ctx context.Context, name string) (models.PokeMeta, error) {
	ch := s.group.DoChan(name, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()

		f, err := s.fetcher.Fetch(fctx, name)
		if err != nil {
			return models.PokeMeta{}, err
		}
		m := models.PokeMeta{Name: name, Sprite: f.Sprite, Types: f.Types, FetchedAt: s.now()}
		if err := s.cache.PutMeta(fctx, m); err != nil {
			// The fetched data is still good; the next lookup retries the write.
			s.logger.Error("metadata cache write failed", "name", name, "error", err)
		}
		return m, nil
	})

	select {
	case <-ctx.Done():
		return models.PokeMeta{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.PokeMeta{}, res.Err
		}
		return res.Val.(models.PokeMeta), nil
	}
}

// Prefetch returns every caught name with whatever metadata is cached.
func (s *Service) Prefetch(ctx context.Context) (models.PrefetchResponse, error) {
	names, err := s.cache.DistinctCaughtNames(ctx)
	if err != nil {
		return models.PrefetchResponse{}, err
	}
	metas, err := s.cache.GetMetas(ctx, names)
	if err != nil {
		return models.PrefetchResponse{}, err
	}
	return models.PrefetchResponse{Pokemon: names, Metadata: metas}, nil
}
