// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

//go:embed pokemon.json gyms.json
var defaults embed.FS

var ErrEmptyRoster = errors.New("roster is empty")

// Entry is one collectible: a Pokémon name or a gym slug.
type Entry struct {
	ID          int
	Key         string // the plaintext the QR token is derived from
	DisplayName string
	Badge       string // gyms only
}

type entryJSON struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Badge string `json:"badge"`
}

// Roster is an immutable set of entries. It is safe for concurrent reads.
type Roster struct {
	entries []Entry
	byID    map[int]int
	byKey   map[string]int
}

// LoadJSON reads a roster file. An empty path selects the embedded default
// named by fallback ("pokemon.json" or "gyms.json").
func LoadJSON(path, fallback string) (*Roster, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = defaults.ReadFile(fallback)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return ParseJSON(raw)
}

// Pokemon returns the embedded Pokémon roster.
func Pokemon() (*Roster, error) { return LoadJSON("", "pokemon.json") }

// Gyms returns the embedded gym roster.
func Gyms() (*Roster, error) { return LoadJSON("", "gyms.json") }

func ParseJSON(raw []byte) (*Roster, error) {
	var arr []entryJSON
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	entries := make([]Entry, 0, len(arr))
	for _, ej := range arr {
		entries = append(entries, Entry{
			ID:          ej.ID,
			Key:         ej.Key,
			DisplayName: ej.Name,
			Badge:       ej.Badge,
		})
	}
	return New(entries)
}

// New validates entries and builds the lookup indexes.
func New(entries []Entry) (*Roster, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRoster
	}

	r := &Roster{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[int]int, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		if e.ID <= 0 {
			return nil, fmt.Errorf("non-positive id at index %d", i)
		}
		if e.Key == "" {
			return nil, fmt.Errorf("missing key at id %d", e.ID)
		}
		if _, dup := r.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate id %d", e.ID)
		}
		if _, dup := r.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate key %q", e.Key)
		}
		if e.DisplayName == "" {
			e.DisplayName = e.Key
		}

		r.byID[e.ID] = len(r.entries)
		r.byKey[e.Key] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	sort.SliceStable(r.entries, func(i, j int) bool { return r.entries[i].ID < r.entries[j].ID })
	for i, e := range r.entries {
		r.byID[e.ID] = i
		r.byKey[e.Key] = i
	}

	return r, nil
}

// FromNames builds a roster with 1-based ids in the given order.
func FromNames(names ...string) (*Roster, error) {
	entries := make([]Entry, len(names))
	for i, n := range names {
		entries[i] = Entry{ID: i + 1, Key: n}
	}
	return New(entries)
}

func (r *Roster) Get(id int) (Entry, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

func (r *Roster) ByKey(key string) (Entry, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// DisplayName returns the display name for id, or "Unknown Gym"-style
// fallback text when the id is not on the roster.
func (r *Roster) DisplayName(id int, fallback string) string {
	if e, ok := r.Get(id); ok {
		return e.DisplayName
	}
	return fallback
}

func (r *Roster) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Roster) Len() int { return len(r.entries) }
