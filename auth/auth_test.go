// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndRead(t *testing.T) {
	s := NewSessions(testSecret, false)

	w := httptest.NewRecorder()
	issued, err := s.Issue(w, 42, false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if issued.ID == "" {
		t.Error("Issue() should assign a session ID")
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected one %s cookie, got %v", CookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])

	got, err := s.Read(req)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.TeamID != 42 || got.IsAdmin {
		t.Errorf("Read() = %+v, want team 42 non-admin", got)
	}
	if got.ID != issued.ID {
		t.Errorf("Read() session ID = %s, want %s", got.ID, issued.ID)
	}
}

func TestReadWithoutCookie(t *testing.T) {
	s := NewSessions(testSecret, false)

	_, err := s.Read(httptest.NewRequest("GET", "/", nil))
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Read() error = %v, want ErrNoSession", err)
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	s := NewSessions(testSecret, false)
	value, err := s.Encode(Session{ID: "x", TeamID: 1, IssuedAt: time.Now()})
	if err != nil {
		t.Fatal(err)
	}

	// Payload for a different team, signed by someone else
	forged, _ := NewSessions("another-secret-another-secret-xx", false).Encode(Session{ID: "x", TeamID: 2, IssuedAt: time.Now()})
	body, _, _ := strings.Cut(forged, ".")
	_, sig, _ := strings.Cut(value, ".")

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no signature", body},
		{"swapped body", body + "." + sig},
		{"foreign secret", forged},
		{"garbage", "!!!.???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Decode(tt.value); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidSession", tt.value, err)
			}
		})
	}
}

func TestDecodeRejectsEmptyIdentity(t *testing.T) {
	s := NewSessions(testSecret, false)
	value, _ := s.Encode(Session{ID: "x", IssuedAt: time.Now()})

	if _, err := s.Decode(value); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Decode() error = %v, want ErrInvalidSession", err)
	}
}

func TestDecodeExpired(t *testing.T) {
	s := NewSessions(testSecret, false)
	value, _ := s.Encode(Session{ID: "x", TeamID: 1, IssuedAt: time.Now().Add(-SessionTTL - time.Hour)})

	if _, err := s.Decode(value); !errors.Is(err, ErrExpiredSession) {
		t.Errorf("Decode() error = %v, want ErrExpiredSession", err)
	}
}

func TestClear(t *testing.T) {
	s := NewSessions(testSecret, true)
	w := httptest.NewRecorder()
	s.Clear(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected negative MaxAge, got %d", cookies[0].MaxAge)
	}
	if !cookies[0].Secure {
		t.Error("expected Secure cookie when configured")
	}
	if cookies[0].SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax, got %v", cookies[0].SameSite)
	}
}

func TestGeneratePIN(t *testing.T) {
	for i := 0; i < 100; i++ {
		pin, err := GeneratePIN()
		if err != nil {
			t.Fatalf("GeneratePIN() error = %v", err)
		}
		if !ValidPIN(pin) {
			t.Fatalf("GeneratePIN() = %q, not a valid PIN", pin)
		}
		if pin[0] == '0' {
			t.Fatalf("GeneratePIN() = %q, should not start with 0", pin)
		}
	}
}

func TestValidPIN(t *testing.T) {
	tests := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"0000", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidPIN(tt.pin); got != tt.want {
			t.Errorf("ValidPIN(%q) = %v, want %v", tt.pin, got, tt.want)
		}
	}
}

func TestEqualPIN(t *testing.T) {
	if !EqualPIN("1234", "1234") {
		t.Error("EqualPIN should match identical PINs")
	}
	if EqualPIN("1234", "1235") {
		t.Error("EqualPIN should reject different PINs")
	}
}
