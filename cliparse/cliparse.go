package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = 3000
	DefaultPokeAPIBaseURL = "https://pokeapi.co/api/v2"
	DefaultStoreTimeout   = 5 * time.Second
	MinSessionSecretLen   = 32
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	QRSecretKey       string
	SessionSecret     string
	AdminPIN          string
	PokemonRosterPath string
	GymRosterPath     string
	PokeAPIBaseURL    string
	StoreTimeout      time.Duration
	SecureCookies     bool
}

// ParseFlags reads flags, then falls back to environment variables. A .env
// file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Missing .env is normal in production.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("pokehunt", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Rosters
	fs.StringVar(&cfg.PokemonRosterPath, "pokemon", "", "Pokémon roster JSON (default: embedded)")
	fs.StringVar(&cfg.GymRosterPath, "gyms", "", "Gym roster JSON (default: embedded)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.QRSecretKey, "qr-secret", "", "QR token secret (prefer env)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session cookie secret (prefer env)")
	fs.StringVar(&cfg.AdminPIN, "admin-pin", "", "Admin PIN (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if cfg.PokemonRosterPath == "" {
		cfg.PokemonRosterPath = os.Getenv("POKEMON_ROSTER")
	}
	if cfg.GymRosterPath == "" {
		cfg.GymRosterPath = os.Getenv("GYM_ROSTER")
	}

	cfg.PokeAPIBaseURL = os.Getenv("POKEAPI_BASE_URL")
	if cfg.PokeAPIBaseURL == "" {
		cfg.PokeAPIBaseURL = DefaultPokeAPIBaseURL
	}

	cfg.StoreTimeout = DefaultStoreTimeout
	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid STORE_TIMEOUT %q", v)
		}
		cfg.StoreTimeout = d
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.New("invalid COOKIE_SECURE env variable")
		}
		cfg.SecureCookies = secure
	}

	// Secrets - MUST be provided
	if cfg.QRSecretKey == "" {
		cfg.QRSecretKey = os.Getenv("QR_SECRET_KEY")
	}
	if cfg.QRSecretKey == "" {
		return Config{}, errors.New("QR_SECRET_KEY required")
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SECRET_COOKIE_PASSWORD")
	}
	if len(cfg.SessionSecret) < MinSessionSecretLen {
		return Config{}, fmt.Errorf("SECRET_COOKIE_PASSWORD must be at least %d characters", MinSessionSecretLen)
	}

	if cfg.AdminPIN == "" {
		cfg.AdminPIN = os.Getenv("ADMIN_PIN")
	}
	if cfg.AdminPIN == "" {
		return Config{}, errors.New("ADMIN_PIN required")
	}

	return cfg, nil
}
