package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.App.Port)
	}
	if cfg.App.RequestTimeout != 10*time.Second {
		t.Errorf("request timeout = %v, want 10s", cfg.App.RequestTimeout)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Errorf("access expiry = %v, want 15m", cfg.JWT.AccessExpiry)
	}
	if cfg.JWT.RefreshExpiry != 168*time.Hour {
		t.Errorf("refresh expiry = %v, want 168h", cfg.JWT.RefreshExpiry)
	}
	if cfg.Booking.SlotLockTTL != 10*time.Second {
		t.Errorf("slot lock ttl = %v, want 10s", cfg.Booking.SlotLockTTL)
	}
	if cfg.Booking.NotifyChannel != "portal:notifications" {
		t.Errorf("notify channel = %q", cfg.Booking.NotifyChannel)
	}
	if cfg.DB.MaxOpenConns != 100 {
		t.Errorf("max open conns = %d, want 100", cfg.DB.MaxOpenConns)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_REQUEST_TIMEOUT", "3s")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")

	cfg, err := load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.App.Port)
	}
	if cfg.App.RequestTimeout != 3*time.Second {
		t.Errorf("request timeout = %v, want 3s", cfg.App.RequestTimeout)
	}
	if !cfg.DB.AutoMigrate {
		t.Errorf("auto migrate should be enabled")
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Errorf("invalid duration should fall back to 15m, got %v", cfg.JWT.AccessExpiry)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "JWT_SECRET=from-file\nDB_NAME=clinic\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWT.Secret != "from-file" {
		t.Errorf("secret = %q, want from-file", cfg.JWT.Secret)
	}
	if cfg.DB.Name != "clinic" {
		t.Errorf("db name = %q, want clinic", cfg.DB.Name)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := load(""); err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
}

func TestMigrateURL(t *testing.T) {
	db := DBConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss", Name: "portal", SSLMode: "disable"}
	want := "pgx5://app:p%40ss@db:5432/portal?sslmode=disable"
	if got := db.MigrateURL(); got != want {
		t.Fatalf("MigrateURL = %q, want %q", got, want)
	}
}
