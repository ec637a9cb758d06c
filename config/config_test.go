package config

import (
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.StoreDriver != DriverMemory {
		t.Fatalf("store driver = %q, want %q", cfg.StoreDriver, DriverMemory)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("log = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected missing JWT_SECRET error")
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "redis")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected unknown driver error")
	}
}

func TestLoadConfigPostgresNeedsDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", DriverPostgres)
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected missing database settings error")
	}

	t.Setenv("DB_USER", "ticketmint")
	t.Setenv("DB_NAME", "ticketmint")
	t.Setenv("DB_PORT", "6543")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	dsn := cfg.DSN()
	for _, part := range []string{"user=ticketmint", "dbname=ticketmint", "port=6543", "host=localhost"} {
		if !strings.Contains(dsn, part) {
			t.Fatalf("dsn %q missing %q", dsn, part)
		}
	}
}

func TestInitStoreMemory(t *testing.T) {
	st, err := InitStore(&Config{StoreDriver: DriverMemory})
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if st == nil {
		t.Fatal("nil store")
	}
}
