// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "pokehunt-session"
	SessionTTL = 14 * 24 * time.Hour
	PINLength  = 4
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// Session is what the cookie carries. A zero TeamID with IsAdmin false is
// never issued.
type Session struct {
	ID       string    `json:"sid"`
	TeamID   int64     `json:"tid,omitempty"`
	IsAdmin  bool      `json:"adm,omitempty"`
	IssuedAt time.Time `json:"iat"`
}

// Sessions issues and reads HMAC-signed session cookies.
type Sessions struct {
	secret []byte
	secure bool
	now    func() time.Time
}

func NewSessions(secret string, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), secure: secure, now: time.Now}
}

// Issue writes a fresh session cookie for a team or the admin.
func (s *Sessions) Issue(w http.ResponseWriter, teamID int64, isAdmin bool) (Session, error) {
	sess := Session{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		IsAdmin:  isAdmin,
		IssuedAt: s.now().UTC(),
	}
	value, err := s.Encode(sess)
	if err != nil {
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// Read returns the session carried by r, if its signature and age are valid.
func (s *Sessions) Read(r *http.Request) (Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}
	return s.Decode(c.Value)
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Encode produces base64url(payload) + "." + base64url(hmac).
func (s *Sessions) Encode(sess Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + s.sign(body), nil
}

func (s *Sessions) Decode(value string) (Session, error) {
	body, sig, ok := strings.Cut(value, ".")
	if !ok || body == "" || sig == "" {
		return Session{}, ErrInvalidSession
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(body))) {
		return Session{}, ErrInvalidSession
	}

	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Session{}, ErrInvalidSession
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, ErrInvalidSession
	}
	if sess.TeamID == 0 && !sess.IsAdmin {
		return Session{}, ErrInvalidSession
	}
	if s.now().Sub(sess.IssuedAt) > SessionTTL {
		return Session{}, ErrExpiredSession
	}
	return sess, nil
}

func (s *Sessions) sign(body string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// GeneratePIN returns a random four digit PIN in 1000-9999.
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate PIN: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

// ValidPIN reports whether pin is exactly four ASCII digits.
func ValidPIN(pin string) bool {
	if len(pin) != PINLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// EqualPIN compares two PINs without short-circuiting.
func EqualPIN(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
