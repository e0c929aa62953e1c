package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rrex971/pokehunt/auth"
	"github.com/rrex971/pokehunt/claim"
	"github.com/rrex971/pokehunt/cliparse"
	"github.com/rrex971/pokehunt/db"
	"github.com/rrex971/pokehunt/metrics"
	"github.com/rrex971/pokehunt/models"
	"github.com/rrex971/pokehunt/pokemeta"
	"github.com/rrex971/pokehunt/roster"
	"github.com/rrex971/pokehunt/router"
	"github.com/rrex971/pokehunt/store"
	"github.com/rrex971/pokehunt/token"
)

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		fatal("Error parsing flags", err)
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		fatal("invalid database type", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect, retrying until the database answers
	dbConn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		fatal("database connection failed", err)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, dialect); err != nil {
		fatal("schema creation failed", err)
	}
	slog.Info("Database schema ready", "dialect", dialect)

	// Rosters and token verifiers
	pokemon, err := roster.LoadJSON(cfg.PokemonRosterPath, "pokemon.json")
	if err != nil {
		fatal("pokemon roster", err)
	}
	gyms, err := roster.LoadJSON(cfg.GymRosterPath, "gyms.json")
	if err != nil {
		fatal("gym roster", err)
	}
	pokemonTokens, err := token.NewVerifier(pokemon, cfg.QRSecretKey)
	if err != nil {
		fatal("pokemon tokens", err)
	}
	gymTokens, err := token.NewVerifier(gyms, cfg.QRSecretKey)
	if err != nil {
		fatal("gym tokens", err)
	}
	slog.Info("Rosters loaded", "pokemon", pokemon.Len(), "gyms", gyms.Len())

	s := store.New(dbConn, dialect)
	rec := metrics.NewRecorder()

	opts := []claim.Option{
		claim.WithTimeout(cfg.StoreTimeout),
		claim.WithLogger(logger),
		claim.WithObserver(rec),
	}
	claims := claim.NewService(
		claim.NewProtocol(models.ProtocolCatch, pokemonTokens, s.CatchStore(), opts...),
		claim.NewProtocol(models.ProtocolCapture, gymTokens, s.BadgeStore(), opts...),
	)

	meta := pokemeta.NewService(s, pokemeta.NewClient(pokemeta.ClientConfig{BaseURL: cfg.PokeAPIBaseURL}), logger)

	// Create router
	handler := router.NewRouter(router.Deps{
		Store:    s,
		Claims:   claims,
		Sessions: auth.NewSessions(cfg.SessionSecret, cfg.SecureCookies),
		Throttle: auth.NewThrottle(auth.DefaultMaxFailures, auth.DefaultLockout),
		Meta:     meta,
		Gyms:     gyms,
		Metrics:  rec,
		Config:   cfg,
	})

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
