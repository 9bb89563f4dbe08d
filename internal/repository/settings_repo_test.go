package repository

import (
	"errors"
	"regexp"
	"testing"

	"icecream_controller/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newSettingsMock(t *testing.T) (*SettingsSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSettingsSQLite(db, SettingsNamespace), mock
}

func TestSettingsSave_WritesAllKeysInOneTransaction(t *testing.T) {
	repo, mock := newSettingsMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertPreferenceSQL)).
		WithArgs("icecream", "use_timer", "true").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertPreferenceSQL)).
		WithArgs("icecream", "timer_minutes", "45").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertPreferenceSQL)).
		WithArgs("icecream", "target_temp", "-7.5").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Save(ctx(t), models.Settings{TargetTempC: -7.5, UseTimer: true, TimerMinutes: 45})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSettingsSave_RollsBackOnPartialFailure(t *testing.T) {
	repo, mock := newSettingsMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertPreferenceSQL)).
		WithArgs("icecream", "use_timer", "false").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertPreferenceSQL)).
		WithArgs("icecream", "timer_minutes", "0").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	if err := repo.Save(ctx(t), models.DefaultSettings()); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSettingsLoad(t *testing.T) {
	cases := []struct {
		name    string
		rows    [][2]string
		want    models.Settings
		wantErr bool
	}{
		{
			name: "nothing saved yields defaults",
			want: models.DefaultSettings(),
		},
		{
			name: "all keys",
			rows: [][2]string{{"use_timer", "true"}, {"timer_minutes", "30"}, {"target_temp", "-8.25"}},
			want: models.Settings{TargetTempC: -8.25, UseTimer: true, TimerMinutes: 30},
		},
		{
			name: "partial keys keep defaults",
			rows: [][2]string{{"timer_minutes", "12"}, {"wifi_ssid", "ignored"}},
			want: models.Settings{TargetTempC: models.DefaultTargetTempC, TimerMinutes: 12},
		},
		{
			name:    "malformed value",
			rows:    [][2]string{{"timer_minutes", "-3"}},
			want:    models.DefaultSettings(),
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newSettingsMock(t)
			rows := sqlmock.NewRows([]string{"key", "value"})
			for _, kv := range tc.rows {
				rows.AddRow(kv[0], kv[1])
			}
			mock.ExpectQuery(regexp.QuoteMeta(selectPreferencesSQL)).
				WithArgs("icecream").
				WillReturnRows(rows)

			got, err := repo.Load(ctx(t))
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
