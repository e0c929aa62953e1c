// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (joho/godotenv).

# CLI Flags

	-p               Server port
	-d               Database URL or SQLite path
	-t               Database type (sqlite or postgres)
	-pokemon, -gyms  Roster JSON files
	-qr-secret       QR token secret
	-session-secret  Session cookie secret
	-admin-pin       Admin PIN

# Environment Variables

Flags fall back to environment variables:

	PORT                   → -p (default 3000)
	DATABASE_URL           → -d
	DATABASE_TYPE          → -t (default sqlite)
	POKEMON_ROSTER         → -pokemon
	GYM_ROSTER             → -gyms
	QR_SECRET_KEY          → -qr-secret
	SECRET_COOKIE_PASSWORD → -session-secret
	ADMIN_PIN              → -admin-pin

Environment only:

	POKEAPI_BASE_URL (default https://pokeapi.co/api/v2)
	STORE_TIMEOUT    (default 5s)
	COOKIE_SECURE    (default false)

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL, QR_SECRET_KEY or ADMIN_PIN is
missing, or if SECRET_COOKIE_PASSWORD is shorter than 32 characters.
*/
package cliparse
