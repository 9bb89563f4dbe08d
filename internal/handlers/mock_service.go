package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"icecream_controller/internal/models"
	"icecream_controller/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error
	operatorName  string
	operatorErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
	lastOperatorID     int
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) Operator(userID int) (string, error) {
	m.lastOperatorID = userID
	return m.operatorName, m.operatorErr
}

type mockCompressor struct {
	startErr     error
	stopErr      error
	lastStart    service.StartParams
	lastOperator string
	startCalled  int
	stopCalled   int
}

func (m *mockCompressor) Start(ctx context.Context, p service.StartParams) error {
	m.startCalled++
	m.lastStart = p
	m.lastOperator, _ = service.OperatorFrom(ctx)
	return m.startErr
}
func (m *mockCompressor) Stop(ctx context.Context) error {
	m.stopCalled++
	m.lastOperator, _ = service.OperatorFrom(ctx)
	return m.stopErr
}

type mockMonitoring struct {
	mu      sync.Mutex
	status  models.Status
	history models.History
	reads   int
}

func (m *mockMonitoring) ReadStatus(context.Context) models.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.status
}
func (m *mockMonitoring) GetHistory(context.Context) models.History {
	return m.history
}

type mockConfiguration struct {
	setErr     error
	lastTarget float64
	setCalls   int
	settings   models.Settings
	getErr     error
}

func (m *mockConfiguration) SetTarget(_ context.Context, targetC float64) error {
	m.setCalls++
	m.lastTarget = targetC
	return m.setErr
}
func (m *mockConfiguration) GetSettings(context.Context) (models.Settings, error) {
	return m.settings, m.getErr
}

type mockEventLog struct {
	resp     []models.CompressorEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.CompressorEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
