package service

import (
	"context"

	"icecream_controller/internal/config"
	"icecream_controller/internal/models"
	"icecream_controller/internal/repository"
)

// Authorization manages operator accounts and their tokens.
type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	Operator(userID int) (string, error)
}

// Compressor exposes the start/stop commands.
type Compressor interface {
	Start(ctx context.Context, p StartParams) error
	Stop(ctx context.Context) error
}

// Monitoring exposes read-only views of the controller.
type Monitoring interface {
	ReadStatus(ctx context.Context) models.Status
	GetHistory(ctx context.Context) models.History
}

// Configuration changes and reads the persisted settings.
type Configuration interface {
	SetTarget(ctx context.Context, targetC float64) error
	GetSettings(ctx context.Context) (models.Settings, error)
}

// EventLog exposes the append-only compressor event log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.CompressorEvent, error)
}

// Service aggregates everything the HTTP layer needs.
type Service struct {
	Compressor
	Monitoring
	Configuration
	EventLog
	Authorization
}

// NewService wires the controller and repositories into the handler-facing API.
func NewService(repos *repository.Repository, ctrl *ControllerService, auth config.AuthConfig) *Service {
	return &Service{
		Compressor:    ctrl,
		Monitoring:    ctrl,
		Configuration: ctrl,
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, auth.SigningKey, auth.TokenTTL),
	}
}
