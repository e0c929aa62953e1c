// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package claim

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rrex971/pokehunt/roster"
	"github.com/rrex971/pokehunt/token"
)

// ErrDuplicate is returned (wrapped) by Store.Insert when the storage
// uniqueness constraint rejects a second record for the same pair.
var ErrDuplicate = errors.New("already claimed")

const DefaultStoreTimeout = 5 * time.Second

// Outcome is the result class of a submission.
type Outcome int

const (
	Success Outcome = iota
	AlreadyClaimed
	InvalidToken
	Unauthenticated
	TransientFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case AlreadyClaimed:
		return "already_claimed"
	case InvalidToken:
		return "invalid_token"
	case Unauthenticated:
		return "unauthenticated"
	case TransientFailure:
		return "transient_failure"
	default:
		return "unknown"
	}
}

// Retryable reports whether the caller may resubmit the same token.
func (o Outcome) Retryable() bool { return o == TransientFailure }

// Result is what Submit returns. Name is set for Success and AlreadyClaimed.
type Result struct {
	Outcome Outcome
	Name    string
}

// TeamRef identifies the authenticated team, if any.
type TeamRef struct {
	ID            int64
	Authenticated bool
}

// Team returns a reference to an authenticated team.
func Team(id int64) TeamRef { return TeamRef{ID: id, Authenticated: true} }

// NoTeam is the reference used when a request carries no team session.
var NoTeam = TeamRef{}

// Store records ownership of roster entries per team.
type Store interface {
	// Claimed is a fast-path check. It is never the only duplicate guard.
	Claimed(ctx context.Context, teamID int64, e roster.Entry) (bool, error)
	// Insert writes the ownership record. A uniqueness-constraint rejection
	// must be reported as an error wrapping ErrDuplicate.
	Insert(ctx context.Context, teamID int64, e roster.Entry) error
}

// Observer receives one call per finished submission.
type Observer interface {
	ObserveClaim(protocol string, outcome Outcome)
}

// Protocol verifies tokens against one roster and records first-time claims.
type Protocol struct {
	name     string
	verifier *token.Verifier
	store    Store
	timeout  time.Duration
	logger   *slog.Logger
	observer Observer
}

type Option func(*Protocol)

// WithTimeout bounds every storage call made by Submit.
func WithTimeout(d time.Duration) Option {
	return func(p *Protocol) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Protocol) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(p *Protocol) { p.observer = o }
}

func NewProtocol(name string, v *token.Verifier, s Store, opts ...Option) *Protocol {
	p := &Protocol{
		name:     name,
		verifier: v,
		store:    s,
		timeout:  DefaultStoreTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Protocol) Name() string { return p.name }

// Submit runs verify, authenticate, pre-check, insert. The insert is the
// authority on uniqueness; the pre-check only saves a write on rescans.
func (p *Protocol) Submit(ctx context.Context, tok string, team TeamRef) Result {
	res := p.submit(ctx, tok, team)
	if p.observer != nil {
		p.observer.ObserveClaim(p.name, res.Outcome)
	}
	return res
}

func (p *Protocol) submit(ctx context.Context, tok string, team TeamRef) Result {
	entry, ok := p.verifier.Verify(tok)
	if !ok {
		p.logger.Info("token matched no roster entry", "protocol", p.name)
		return Result{Outcome: InvalidToken}
	}

	if !team.Authenticated {
		return Result{Outcome: Unauthenticated}
	}

	claimed, err := p.claimed(ctx, team.ID, entry)
	if err != nil {
		p.logger.Error("claim pre-check failed",
			"protocol", p.name, "team_id", team.ID, "entity", entry.Key, "error", err)
		return Result{Outcome: TransientFailure}
	}
	if claimed {
		return Result{Outcome: AlreadyClaimed, Name: entry.DisplayName}
	}

	err = p.insert(ctx, team.ID, entry)
	switch {
	case err == nil:
		p.logger.Info("claim recorded", "protocol", p.name, "team_id", team.ID, "entity", entry.Key)
		return Result{Outcome: Success, Name: entry.DisplayName}
	case errors.Is(err, ErrDuplicate):
		return Result{Outcome: AlreadyClaimed, Name: entry.DisplayName}
	default:
		p.logger.Error("claim insert failed",
			"protocol", p.name, "team_id", team.ID, "entity", entry.Key, "error", err)
		return Result{Outcome: TransientFailure}
	}
}

func (p *Protocol) claimed(ctx context.Context, teamID int64, e roster.Entry) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.store.Claimed(ctx, teamID, e)
}

func (p *Protocol) insert(ctx context.Context, teamID int64, e roster.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.store.Insert(ctx, teamID, e)
}

// Service exposes the catch and gym-capture protocols.
type Service struct {
	catch   *Protocol
	capture *Protocol
}

func NewService(catch, capture *Protocol) *Service {
	return &Service{catch: catch, capture: capture}
}

// SubmitCatch verifies a Pokémon QR token and records the catch for team.
func (s *Service) SubmitCatch(ctx context.Context, tok string, team TeamRef) Result {
	return s.catch.Submit(ctx, tok, team)
}

// SubmitCapture verifies a gym QR token and records the badge for team.
func (s *Service) SubmitCapture(ctx context.Context, tok string, team TeamRef) Result {
	return s.capture.Submit(ctx, tok, team)
}
