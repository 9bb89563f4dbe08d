package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"icecream_controller/internal/models"
)

// ErrUsernameTaken is returned by Create when the name is already registered.
var ErrUsernameTaken = errors.New("username already taken")

// OperatorSQLite stores the operator accounts allowed to use /api/v1.
// Usernames compare case-insensitively (COLLATE NOCASE in the schema).
type OperatorSQLite struct {
	db *sql.DB
}

func NewOperatorSQLite(db *sql.DB) *OperatorSQLite {
	return &OperatorSQLite{db: db}
}

var _ Authorization = (*OperatorSQLite)(nil)

const (
	insertOperatorSQL = `INSERT INTO users (username, password_hash) VALUES (?, ?)`

	selectOperatorSQL       = `SELECT id, username, password_hash FROM users`
	selectOperatorByNameSQL = selectOperatorSQL + ` WHERE username = ?`
	selectOperatorByIDSQL   = selectOperatorSQL + ` WHERE id = ?`
)

// Create registers an operator and returns its id.
func (r *OperatorSQLite) Create(username, passwordHash string) (int, error) {
	res, err := r.db.Exec(insertOperatorSQL, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		return 0, fmt.Errorf("insert operator %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("operator %q id: %w", username, err)
	}
	return int(id), nil
}

// GetByUsername returns (nil, nil) when no operator has that name.
func (r *OperatorSQLite) GetByUsername(username string) (*models.User, error) {
	return r.getOne(selectOperatorByNameSQL, username)
}

// GetByID resolves a token's subject back to the operator. It returns
// (nil, nil) for a deleted account.
func (r *OperatorSQLite) GetByID(id int) (*models.User, error) {
	return r.getOne(selectOperatorByIDSQL, id)
}

func (r *OperatorSQLite) getOne(query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("select operator %v: %w", arg, err)
	}
	return &u, nil
}

// isUniqueViolation matches sqlite's constraint message.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
