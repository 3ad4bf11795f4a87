package database

import (
	"strings"
	"testing"

	"health-connect-api/config"
)

func TestMigrationURL(t *testing.T) {
	cfg := config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "p@ss word",
		Name:     "healthconnect",
		SSLMode:  "disable",
	}

	got := MigrationURL(cfg)

	if !strings.HasPrefix(got, "pgx5://app:") {
		t.Errorf("MigrationURL() = %q, want pgx5 scheme with user", got)
	}
	if !strings.Contains(got, "@db:5432/healthconnect?sslmode=disable") {
		t.Errorf("MigrationURL() = %q, want host, db name and sslmode", got)
	}
	if strings.Contains(got, "p@ss word") {
		t.Errorf("MigrationURL() = %q, password must be escaped", got)
	}
}

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{
		Host: "localhost", Port: "5432", User: "postgres", Password: "secret",
		Name: "hc", SSLMode: "require", TimeZone: "UTC",
	}

	want := "host=localhost user=postgres password=secret dbname=hc port=5432 sslmode=require TimeZone=UTC"
	if got := DSN(cfg); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
