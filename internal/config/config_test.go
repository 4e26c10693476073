package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 0 {
		t.Errorf("Expected write timeout 0 so SSE connections stay open, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Database.Name != "slide_cms" {
		t.Errorf("Expected default database name slide_cms, got %s", cfg.Database.Name)
	}
	if cfg.Broadcast.BufferSize != 16 {
		t.Errorf("Expected default buffer size 16, got %d", cfg.Broadcast.BufferSize)
	}
	if cfg.Reset.Schedule != "0 0 * * *" {
		t.Errorf("Expected daily midnight schedule, got %s", cfg.Reset.Schedule)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "cms_test")
	t.Setenv("BROADCAST_BUFFER_SIZE", "64")
	t.Setenv("SSE_HEARTBEAT_INTERVAL", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.Name != "cms_test" {
		t.Errorf("Expected database cms_test, got %s", cfg.Database.Name)
	}
	if cfg.Broadcast.BufferSize != 64 {
		t.Errorf("Expected buffer size 64, got %d", cfg.Broadcast.BufferSize)
	}
	if cfg.Server.SSEHeartbeat != 5*time.Second {
		t.Errorf("Expected 5s heartbeat, got %v", cfg.Server.SSEHeartbeat)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database:  DatabaseConfig{Host: "localhost", Name: "cms"},
			Broadcast: BroadcastConfig{BufferSize: 16},
			Reset:     ResetConfig{Timezone: "UTC"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	cfg := base()
	cfg.Database.Host = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected missing DB_HOST to be rejected")
	}

	cfg = base()
	cfg.Broadcast.BufferSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected zero buffer size to be rejected")
	}

	cfg = base()
	cfg.Reset.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "RESET_TIMEZONE") {
		t.Errorf("Expected timezone rejection, got %v", err)
	}
}

func TestGetDSN(t *testing.T) {
	db := &DatabaseConfig{
		Host: "dbhost", Port: "5433", User: "u", Password: "p", Name: "cms", SSLMode: "disable",
	}
	want := "host=dbhost port=5433 user=u password=p dbname=cms sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
