package repository

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"icecream_controller/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newOperatorMock(t *testing.T) (*OperatorSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewOperatorSQLite(db), mock
}

func TestOperatorSQLite_Create(t *testing.T) {
	cases := []struct {
		name    string
		result  func(*sqlmock.ExpectedExec)
		wantID  int
		wantErr error
		errText string
	}{
		{
			name:   "registered",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(3, 1)) },
			wantID: 3,
		},
		{
			name:    "name taken",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(errors.New("UNIQUE constraint failed: users.username")) },
			wantErr: ErrUsernameTaken,
		},
		{
			name:    "disk full",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(errors.New("database or disk is full")) },
			errText: `insert operator "night-shift"`,
		},
		{
			name:    "no row id",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewErrorResult(errors.New("no id"))) },
			errText: "id: no id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newOperatorMock(t)
			tc.result(mock.ExpectExec(regexp.QuoteMeta(insertOperatorSQL)).WithArgs("night-shift", "$2a$hash"))

			id, err := repo.Create("night-shift", "$2a$hash")
			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err=%v, want %v", err, tc.wantErr)
				}
			case tc.errText != "":
				if err == nil || !strings.Contains(err.Error(), tc.errText) {
					t.Fatalf("err=%v, want containing %q", err, tc.errText)
				}
			case err != nil:
				t.Fatalf("Create: %v", err)
			}
			if id != tc.wantID {
				t.Fatalf("id=%d, want %d", id, tc.wantID)
			}
		})
	}
}

func TestOperatorSQLite_Lookups(t *testing.T) {
	cols := []string{"id", "username", "password_hash"}
	operator := &models.User{ID: 7, Username: "Morning-Shift", PasswordHash: "$2a$h"}

	cases := []struct {
		name   string
		query  string
		arg    any
		rows   *sqlmock.Rows
		err    error
		lookup func(*OperatorSQLite) (*models.User, error)
		want   *models.User
	}{
		{
			name:   "by name",
			query:  selectOperatorByNameSQL,
			arg:    "morning-shift",
			rows:   sqlmock.NewRows(cols).AddRow(7, "Morning-Shift", "$2a$h"),
			lookup: func(r *OperatorSQLite) (*models.User, error) { return r.GetByUsername("morning-shift") },
			want:   operator,
		},
		{
			name:   "by id",
			query:  selectOperatorByIDSQL,
			arg:    7,
			rows:   sqlmock.NewRows(cols).AddRow(7, "Morning-Shift", "$2a$h"),
			lookup: func(r *OperatorSQLite) (*models.User, error) { return r.GetByID(7) },
			want:   operator,
		},
		{
			name:   "unknown name",
			query:  selectOperatorByNameSQL,
			arg:    "ghost",
			rows:   sqlmock.NewRows(cols),
			lookup: func(r *OperatorSQLite) (*models.User, error) { return r.GetByUsername("ghost") },
		},
		{
			name:   "deleted account",
			query:  selectOperatorByIDSQL,
			arg:    99,
			rows:   sqlmock.NewRows(cols),
			lookup: func(r *OperatorSQLite) (*models.User, error) { return r.GetByID(99) },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newOperatorMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(tc.query)).WithArgs(tc.arg).WillReturnRows(tc.rows)

			got, err := tc.lookup(repo)
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if tc.want == nil {
				if got != nil {
					t.Fatalf("got %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestOperatorSQLite_QueryError(t *testing.T) {
	repo, mock := newOperatorMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectOperatorByIDSQL)).WithArgs(4).WillReturnError(errors.New("database is locked"))

	u, err := repo.GetByID(4)
	if err == nil || !strings.Contains(err.Error(), "select operator 4") || u != nil {
		t.Fatalf("u=%v err=%v", u, err)
	}
}
