package repository

import (
	"context"
	"database/sql"
	"time"

	"icecream_controller/internal/models"
)

// Authorization stores operator accounts.
type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}

// SettingsRepo is the durable key-value store behind the controller settings.
type SettingsRepo interface {
	// Load returns defaults for any key never saved.
	Load(ctx context.Context) (models.Settings, error)
	// Save writes every field or none of them.
	Save(ctx context.Context, s models.Settings) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.CompressorEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.CompressorEvent, error)
}

type Repository struct {
	SettingsRepo SettingsRepo
	EventRepo    EventRepo
	Auth         Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SettingsRepo: NewSettingsSQLite(db, SettingsNamespace),
		EventRepo:    NewEventSQLite(db),
		Auth:         NewOperatorSQLite(db),
	}
}
