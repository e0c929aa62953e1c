// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pokemeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var ErrNotFound = errors.New("pokemon not found upstream")

const (
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 3
)

// overrides maps display names that do not normalise cleanly onto their
// PokeAPI resource name.
var overrides = map[string]string{
	"Mega Gardevoir":   "gardevoir-mega",
	"Mega Charizard-X": "charizard-mega-x",
	"Mega Charizard-Y": "charizard-mega-y",
	"Mega Charizard":   "charizard-mega-x",
	"PorygonZ":         "porygon-z",
	"Rotom Frost":      "rotom-frost",
	"Rotom Heat":       "rotom-heat",
	"Rotom Wash":       "rotom-wash",
	"Rotom Fan":        "rotom-fan",
	"Rotom Mow":        "rotom-mow",
	"Mr. Mime":         "mr-mime",
	"Sirfetch'd":       "sirfetchd",
	"Dudunsparce":      "dudunsparce-two-segment",
	"Morpeko":          "morpeko-full-belly",
	"Indeedee":         "indeedee-male",
	"Mimikyu":          "mimikyu-disguised",
	"Meowstic":         "meowstic-female",
	"Minior":           "minior-red-meteor",
	"Lycanroc":         "lycanroc-midday",
	"Darmanitan":       "darmanitan-standard",
}

var (
	quotes   = regexp.MustCompile(`["'.]`)
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug converts a display name into a PokeAPI resource name. "Mega X"
// becomes "x-mega"; everything else is lowercased and hyphenated.
func Slug(name string) string {
	if o, ok := overrides[name]; ok {
		return o
	}
	if rest, ok := strings.CutPrefix(name, "Mega "); ok {
		return normalize(rest) + "-mega"
	}
	return normalize(name)
}

func normalize(s string) string {
	s = quotes.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// ClientConfig controls how the client reaches PokeAPI.
type ClientConfig struct {
	BaseURL     string
	HTTPClient  *http.Client
	MaxAttempts int
}

// Client fetches sprite and type data from PokeAPI.
type Client struct {
	baseURL     string
	httpClient  httpDoer
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

func NewClient(cfg ClientConfig) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  hc,
		maxAttempts: attempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			return b
		},
	}
}

type pokemonResponse struct {
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
			DreamWorld struct {
				FrontDefault string `json:"front_default"`
			} `json:"dream_world"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// Fetched is the upstream data for one Pokémon.
type Fetched struct {
	Sprite string
	Types  []string
}

// Fetch looks name up on PokeAPI. Transport errors and 5xx responses are
// retried; a 404 returns ErrNotFound immediately.
func (c *Client) Fetch(ctx context.Context, name string) (Fetched, error) {
	endpoint := c.baseURL + "/pokemon/" + url.PathEscape(Slug(name))

	var out Fetched
	op := func() error {
		f, err := c.fetchOnce(ctx, endpoint)
		if err != nil {
			return err
		}
		out = f
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxAttempts-1)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return Fetched{}, err
	}
	return out, nil
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) (Fetched, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Fetched{}, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Fetched{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Fetched{}, backoff.Permanent(ErrNotFound)
	case resp.StatusCode >= 500:
		return Fetched{}, fmt.Errorf("pokeapi: unexpected status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Fetched{}, backoff.Permanent(fmt.Errorf("pokeapi: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Fetched{}, backoff.Permanent(fmt.Errorf("pokeapi: decode: %w", err))
	}

	return mapPokemon(payload), nil
}

// Prefer official artwork, then dream_world, then front_default.
func mapPokemon(p pokemonResponse) Fetched {
	sprite := p.Sprites.Other.OfficialArtwork.FrontDefault
	if sprite == "" {
		sprite = p.Sprites.Other.DreamWorld.FrontDefault
	}
	if sprite == "" {
		sprite = p.Sprites.FrontDefault
	}

	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		if t.Type.Name != "" {
			types = append(types, t.Type.Name)
		}
	}
	return Fetched{Sprite: sprite, Types: types}
}
