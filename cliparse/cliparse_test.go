// cliparse/cliparse_test.go
package cliparse

import (
	"strings"
	"testing"
	"time"
)

const testSessionSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "data/test.db")
	t.Setenv("QR_SECRET_KEY", "qr-secret")
	t.Setenv("SECRET_COOKIE_PASSWORD", testSessionSecret)
	t.Setenv("ADMIN_PIN", "9999")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("POKEAPI_BASE_URL", "")
	t.Setenv("STORE_TIMEOUT", "")
	t.Setenv("COOKIE_SECURE", "")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Errorf("expected store timeout 2s, got %v", cfg.StoreTimeout)
	}
	if !cfg.SecureCookies {
		t.Error("expected secure cookies")
	}
	if cfg.PokeAPIBaseURL != DefaultPokeAPIBaseURL {
		t.Errorf("expected default PokeAPI URL, got %q", cfg.PokeAPIBaseURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-qr-secret", "s1", "-t", "postgres"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.QRSecretKey != "s1" {
		t.Errorf("expected QR secret from flag, got %q", cfg.QRSecretKey)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_DefaultPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{"qr secret", "QR_SECRET_KEY", "QR_SECRET_KEY"},
		{"session secret", "SECRET_COOKIE_PASSWORD", "SECRET_COOKIE_PASSWORD"},
		{"admin pin", "ADMIN_PIN", "ADMIN_PIN"},
		{"database", "DATABASE_URL", "database URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := ParseFlags(nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseFlags_ShortSessionSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SECRET_COOKIE_PASSWORD", "short")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("expected error for short session secret")
	}
}

func TestParseFlags_InvalidStoreTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORE_TIMEOUT", "soon")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("expected error for invalid STORE_TIMEOUT")
	}
}
