package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"PORT", "GIN_MODE", "SESSION_SECRET", "SESSION_MAX_AGE_SECONDS", "SESSION_REDIS_URL",
		"BCRYPT_COST", "USER_STORE", "DATABASE_DSN", "CATALOG_PATH", "CATALOG_PAGE_SIZE",
		"CATALOG_RELOAD_MINUTES", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SessionMaxAge() != time.Hour {
		t.Fatalf("SessionMaxAge = %v, want 1h", cfg.SessionMaxAge())
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.UserStore != UserStoreMemory {
		t.Fatalf("UserStore = %q", cfg.UserStore)
	}
	if cfg.CatalogPath != "dist/exercises.json" || cfg.CatalogPageSize != 10 {
		t.Fatalf("unexpected catalog settings: %+v", cfg)
	}
	if cfg.CatalogReloadInterval() != 0 {
		t.Fatalf("reload should be disabled by default")
	}
	if !cfg.MetricsEnabled {
		t.Fatal("metrics should be enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("SESSION_MAX_AGE_SECONDS", "120")
	t.Setenv("CATALOG_RELOAD_MINUTES", "5")
	t.Setenv("CATALOG_PAGE_SIZE", "not-a-number")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SessionMaxAge() != 2*time.Minute {
		t.Fatalf("SessionMaxAge = %v", cfg.SessionMaxAge())
	}
	if cfg.CatalogReloadInterval() != 5*time.Minute {
		t.Fatalf("CatalogReloadInterval = %v", cfg.CatalogReloadInterval())
	}
	if cfg.CatalogPageSize != 10 {
		t.Fatalf("invalid page size should fall back to default, got %d", cfg.CatalogPageSize)
	}
	if cfg.MetricsEnabled {
		t.Fatal("metrics should be disabled")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			GinMode:              "debug",
			SessionMaxAgeSeconds: 3600,
			CatalogPageSize:      10,
			UserStore:            UserStoreMemory,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "debug defaults", mutate: func(*Config) {}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.UserStore = UserStorePostgres }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.UserStore = UserStorePostgres
			c.DatabaseDSN = "postgres://localhost/db"
		}},
		{name: "unknown store", mutate: func(c *Config) { c.UserStore = "mongo" }, wantErr: true},
		{name: "zero max age", mutate: func(c *Config) { c.SessionMaxAgeSeconds = 0 }, wantErr: true},
		{name: "release without secret", mutate: func(c *Config) {
			c.GinMode = "release"
			c.SessionRedisURL = "redis://localhost:6379/0"
		}, wantErr: true},
		{name: "release without redis", mutate: func(c *Config) {
			c.GinMode = "release"
			c.SessionSecret = "s3cret"
		}, wantErr: true},
		{name: "release complete", mutate: func(c *Config) {
			c.GinMode = "release"
			c.SessionSecret = "s3cret"
			c.SessionRedisURL = "redis://localhost:6379/0"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
