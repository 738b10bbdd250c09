package postgres

import (
	"testing"

	"github.com/fastygo/tidydo/internal/config"
)

func TestDSN(t *testing.T) {
	parts := config.DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		Name:     "tidydo",
		User:     "app",
		Password: "pw",
		SSLMode:  "disable",
	}
	if got, want := DSN(parts), "postgres://app:pw@db:5433/tidydo?sslmode=disable"; got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}

	parts.URL = "postgres://override/db"
	if got := DSN(parts); got != parts.URL {
		t.Fatalf("DATABASE_URL ignored: %q", got)
	}
}

func TestRunMigrationsDisabled(t *testing.T) {
	cfg := &config.Config{Migrations: config.MigrationsConfig{Enabled: false}}
	if err := RunMigrations(cfg, nil); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
}

func TestRunMigrationsMissingDirectory(t *testing.T) {
	cfg := &config.Config{Migrations: config.MigrationsConfig{Enabled: true, Path: t.TempDir() + "/absent"}}
	if err := RunMigrations(cfg, nil); err == nil {
		t.Fatal("expected an error for a missing migrations directory")
	}
}
