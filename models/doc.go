// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - LoginRequest: team_id (a number, or "admin"), pin
  - CatchRequest: pokemon_hash
  - GymCaptureRequest: gym_hash
  - CreateTeamRequest: name, pin (optional)
  - RefreshMetaRequest: name

# Response Types

  - LoginResponse: ok, is_admin
  - ClaimResponse: message, name
  - PrefetchResponse: pokemon, metadata
  - ErrorResponse: error, message

# Domain Types

  - Team, Catch, Badge, Gym
  - CatchHistoryEntry, BadgeHistoryEntry: admin history rows
  - PokeMeta: cached sprite and types

# Constants

Protocol names, used in logs and metrics:

	ProtocolCatch   = "catch"
	ProtocolCapture = "capture"
*/
package models
