package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"icecream_controller/internal/models"
	"icecream_controller/internal/service"
)

func getWithAuth(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.CompressorEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventStart, Description: "start"},
		{EventID: "e2", OccurredAt: now.Add(time.Second), Type: models.EventAutoStop, Description: "timer"},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: 99},
		EventLog:      logs,
	})

	if w := getWithAuth(r, "/api/v1/logs?from=notatime"); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid from: status=%d", w.Code)
	}
	if w := getWithAuth(r, "/api/v1/logs?to=31/08/2025"); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid to: status=%d", w.Code)
	}

	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=auto_stop"
	w := getWithAuth(r, q)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                      `json:"count"`
		Events []models.CompressorEvent `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != "auto_stop" {
		t.Fatalf("type forwarded as %q", logs.lastType)
	}
	if !logs.lastFrom.Equal(now) {
		t.Fatalf("from=%v", logs.lastFrom)
	}
}

func TestLogsHandler_DateOnlyToCoversWholeDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})

	if w := getWithAuth(r, "/api/v1/logs?from=2025-08-01&to=2025-08-01"); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	want := time.Date(2025, 8, 1, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(want) {
		t.Fatalf("to=%v, want %v", logs.lastTo, want)
	}
}

func TestLogsHandler_ServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrInvalidTimeRange, http.StatusBadRequest},
		{service.ErrUnknownEventType, http.StatusBadRequest},
		{errors.New("database is locked"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: &mockEventLog{err: tc.err}})
		if w := getWithAuth(r, "/api/v1/logs"); w.Code != tc.code {
			t.Errorf("%v: status=%d, want %d", tc.err, w.Code, tc.code)
		}
	}
}

func TestLogsHandler_RequiresToken(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: &mockEventLog{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}
}
