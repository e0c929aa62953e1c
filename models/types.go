package models

import "time"

// Protocol names
const (
	ProtocolCatch   = "catch"
	ProtocolCapture = "capture"
)

// AdminLoginID is the team_id value that selects admin login.
const AdminLoginID = "admin"

// Request types

type LoginRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	PIN    string `json:"pin" validate:"required"`
}

type CatchRequest struct {
	PokemonHash string `json:"pokemon_hash"`
}

type GymCaptureRequest struct {
	GymHash string `json:"gym_hash"`
}

// PIN is optional; anything but four digits is replaced by a generated one.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
	PIN  string `json:"pin"`
}

type RefreshMetaRequest struct {
	Name string `json:"name" validate:"required"`
}

// Response types

type LoginResponse struct {
	OK      bool `json:"ok"`
	IsAdmin bool `json:"is_admin"`
}

type ClaimResponse struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type PrefetchResponse struct {
	Pokemon  []string            `json:"pokemon"`
	Metadata map[string]PokeMeta `json:"metadata"`
}

// Domain types

type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	PIN       string    `json:"pin"`
	CreatedAt time.Time `json:"created_at"`
}

type Catch struct {
	ID       int64     `json:"id"`
	TeamID   int64     `json:"team_id"`
	Name     string    `json:"name"`
	CaughtAt time.Time `json:"caught_at"`
}

type Badge struct {
	ID            int64     `json:"id"`
	TeamID        int64     `json:"team_id"`
	GymID         int       `json:"gym_id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	BadgeFilename string    `json:"badge_filename"`
	CapturedAt    time.Time `json:"captured_at"`
}

type Gym struct {
	ID            int    `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	BadgeFilename string `json:"badge_filename"`
}

// Admin history rows carry the team name and a human-readable age.

type CatchHistoryEntry struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	TeamID   int64     `json:"team_id"`
	TeamName string    `json:"team_name"`
	CaughtAt time.Time `json:"caught_at"`
	Ago      string    `json:"ago"`
}

type BadgeHistoryEntry struct {
	ID         int64     `json:"id"`
	GymID      int       `json:"gym_id"`
	GymName    string    `json:"gym_name"`
	TeamID     int64     `json:"team_id"`
	TeamName   string    `json:"team_name"`
	CapturedAt time.Time `json:"captured_at"`
	Ago        string    `json:"ago"`
}

// PokeMeta is cached PokeAPI data for one Pokémon name.
type PokeMeta struct {
	Name      string    `json:"name"`
	Sprite    string    `json:"sprite,omitempty"`
	Types     []string  `json:"types"`
	FetchedAt time.Time `json:"-"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
