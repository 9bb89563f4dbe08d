package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"icecream_controller/internal/models"
)

// SettingsNamespace groups the controller keys in the preferences table.
const SettingsNamespace = "icecream"

// Preference keys.
const (
	keyUseTimer     = "use_timer"
	keyTimerMinutes = "timer_minutes"
	keyTargetTemp   = "target_temp"
)

const (
	upsertPreferenceSQL = `
		INSERT INTO preferences (namespace, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value=excluded.value
	`

	selectPreferencesSQL = `SELECT key, value FROM preferences WHERE namespace = ?`
)

// SettingsSQLite stores settings as string values in the preferences table.
type SettingsSQLite struct {
	db        *sql.DB
	namespace string
}

func NewSettingsSQLite(db *sql.DB, namespace string) *SettingsSQLite {
	return &SettingsSQLite{db: db, namespace: namespace}
}

var _ SettingsRepo = (*SettingsSQLite)(nil)

// Save upserts all three keys in a single transaction.
func (r *SettingsSQLite) Save(ctx context.Context, s models.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, kv := range encodeSettings(s) {
		if _, err := tx.ExecContext(ctx, upsertPreferenceSQL, r.namespace, kv[0], kv[1]); err != nil {
			return fmt.Errorf("upsert %s.%s: %w", r.namespace, kv[0], err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

// Load reads the namespace. Missing keys keep their defaults; an
// unparsable value is an error.
func (r *SettingsSQLite) Load(ctx context.Context) (models.Settings, error) {
	rows, err := r.db.QueryContext(ctx, selectPreferencesSQL, r.namespace)
	if err != nil {
		return models.DefaultSettings(), fmt.Errorf("select %s preferences: %w", r.namespace, err)
	}
	defer rows.Close()

	s := models.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.DefaultSettings(), err
		}
		if err := decodeSetting(&s, key, value); err != nil {
			return models.DefaultSettings(), err
		}
	}
	if err := rows.Err(); err != nil {
		return models.DefaultSettings(), err
	}
	return s, nil
}

func encodeSettings(s models.Settings) [][2]string {
	return [][2]string{
		{keyUseTimer, strconv.FormatBool(s.UseTimer)},
		{keyTimerMinutes, strconv.FormatUint(uint64(s.TimerMinutes), 10)},
		{keyTargetTemp, strconv.FormatFloat(s.TargetTempC, 'g', -1, 64)},
	}
}

func decodeSetting(s *models.Settings, key, value string) error {
	switch key {
	case keyUseTimer:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %s=%q: %w", key, value, err)
		}
		s.UseTimer = v
	case keyTimerMinutes:
		v, err := strconv.ParseUint(value, 10, 0)
		if err != nil {
			return fmt.Errorf("parse %s=%q: %w", key, value, err)
		}
		s.TimerMinutes = uint(v)
	case keyTargetTemp:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parse %s=%q: %w", key, value, err)
		}
		s.TargetTempC = v
	}
	// unknown keys belong to newer firmware; ignore them
	return nil
}
