package repository_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"icecream_controller/internal/models"
	"icecream_controller/internal/repository"
	"icecream_controller/internal/repository/db"
)

func TestSettingsSQLite_RoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	repo := repository.NewSettingsSQLite(conn, repository.SettingsNamespace)
	ctx := context.Background()

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty db: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Fatalf("empty db: got %+v, want defaults", got)
	}

	for _, s := range []models.Settings{
		models.DefaultSettings(),
		{TargetTempC: -12.3, UseTimer: true, TimerMinutes: 45},
		{TargetTempC: 0.1 + 0.2, UseTimer: false, TimerMinutes: 1440},
		{TargetTempC: -math.SmallestNonzeroFloat64, UseTimer: true, TimerMinutes: 0},
	} {
		if err := repo.Save(ctx, s); err != nil {
			t.Fatalf("Save(%+v): %v", s, err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != s {
			t.Fatalf("round trip: got %+v, want %+v", got, s)
		}
	}
}

func TestSettingsSQLite_NamespacesAreIsolated(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	ctx := context.Background()

	a := repository.NewSettingsSQLite(conn, "icecream")
	b := repository.NewSettingsSQLite(conn, "other")
	if err := a.Save(ctx, models.Settings{TargetTempC: -9, UseTimer: true, TimerMinutes: 3}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Fatalf("namespace leak: %+v", got)
	}
}
