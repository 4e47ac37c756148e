package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigrationFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}
}

func TestLoadMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFiles(t, dir, map[string]string{
		"001_billing.sql":  "CREATE TABLE bill (id UUID PRIMARY KEY);",
		"002_services.sql": "CREATE TABLE billable_service (id UUID PRIMARY KEY);",
		"003_events.sql":   "CREATE TABLE billing_event (id UUID PRIMARY KEY);",
	})

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	if migrations[0].Version != 1 {
		t.Errorf("expected version 1, got %d", migrations[0].Version)
	}
	if migrations[0].Name != "001_billing.sql" {
		t.Errorf("expected name 001_billing.sql, got %s", migrations[0].Name)
	}
	if migrations[0].SQL != "CREATE TABLE bill (id UUID PRIMARY KEY);" {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}
	if migrations[1].Version != 2 || migrations[2].Version != 3 {
		t.Errorf("migrations out of order: %d, %d", migrations[1].Version, migrations[2].Version)
	}
}

func TestLoadMigrations_SortOrder(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFiles(t, dir, map[string]string{
		"010_late.sql":  "-- ten",
		"002_mid.sql":   "-- two",
		"001_early.sql": "-- one",
	})

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	want := []int{1, 2, 10}
	if len(migrations) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(migrations))
	}
	for i, v := range want {
		if migrations[i].Version != v {
			t.Errorf("position %d: expected version %d, got %d", i, v, migrations[i].Version)
		}
	}
}

func TestLoadMigrations_SkipsNonNumericAndNonSQL(t *testing.T) {
	dir := t.TempDir()
	writeMigrationFiles(t, dir, map[string]string{
		"001_billing.sql": "CREATE TABLE bill (id UUID PRIMARY KEY);",
		"README.md":       "notes",
		"notes_xyz.sql":   "-- no numeric prefix",
		"rollback.sql":    "-- no prefix at all",
	})

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	migrator := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := migrator.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
