package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/api/middleware"
	"github.com/genieai/rag-eval-agent/internal/models"
	"github.com/genieai/rag-eval-agent/internal/runner"
	"github.com/genieai/rag-eval-agent/internal/store"
)

// fakeRunService records the options it was invoked with and returns
// canned results.
type fakeRunService struct {
	summary models.RunSummary
	record  models.EvaluationRecord
	runErr  error
	reErr   error

	gotOpts runner.RunOptions
	gotKey  models.TurnKey
}

func (f *fakeRunService) Run(ctx context.Context, opts runner.RunOptions) (models.RunSummary, error) {
	f.gotOpts = opts
	return f.summary, f.runErr
}

func (f *fakeRunService) ReEvaluate(ctx context.Context, key models.TurnKey) (models.EvaluationRecord, error) {
	f.gotKey = key
	return f.record, f.reErr
}

func newTestContainer(svc RunService) *restful.Container {
	logger := zerolog.Nop()
	handler := NewHandler(svc, &logger)
	container := restful.NewContainer()
	container.Filter(middleware.RecoverPanic)
	RegisterRoutes(container, handler)
	return container
}

func doJSON(t *testing.T, container *restful.Container, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	container.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	container := newTestContainer(&fakeRunService{})

	rec := doJSON(t, container, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Expected status ok, got %q", health.Status)
	}
}

func TestRun(t *testing.T) {
	svc := &fakeRunService{summary: models.RunSummary{TurnsSelected: 3, TurnsEvaluated: 3}}
	container := newTestContainer(svc)

	rec := doJSON(t, container, http.MethodPost, "/api/v1/runs", RunRequest{GuestMode: true, Limit: 10, Force: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if !svc.gotOpts.GuestMode || svc.gotOpts.Limit != 10 || !svc.gotOpts.Force {
		t.Errorf("Options not forwarded: %+v", svc.gotOpts)
	}
	if !svc.gotOpts.DateFilter {
		t.Error("API runs must keep the date window on")
	}

	var summary models.RunSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.TurnsEvaluated != 3 {
		t.Errorf("Expected 3 evaluated, got %d", summary.TurnsEvaluated)
	}
}

func TestRun_ExplicitRange(t *testing.T) {
	svc := &fakeRunService{}
	container := newTestContainer(svc)

	rec := doJSON(t, container, http.MethodPost, "/api/v1/runs", RunRequest{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-08",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	wantStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !svc.gotOpts.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, svc.gotOpts.Start)
	}
}

func TestRun_BadDateRange(t *testing.T) {
	container := newTestContainer(&fakeRunService{})

	cases := []RunRequest{
		{StartDate: "junk", EndDate: "2025-06-08"},
		{StartDate: "2025-06-01", EndDate: "junk"},
		{StartDate: "2025-06-08", EndDate: "2025-06-01"},
		{StartDate: "2025-06-01"}, // missing end
	}

	for _, req := range cases {
		rec := doJSON(t, container, http.MethodPost, "/api/v1/runs", req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %+v, got %d", req, rec.Code)
		}
	}
}

func TestReEvaluate(t *testing.T) {
	svc := &fakeRunService{
		record: models.EvaluationRecord{
			Turn: models.Turn{ChatID: "chat-1", MessageID: "m1"},
			Results: map[string]models.JudgeVerdict{
				"accuracy": {Dimension: "accuracy", Score: 1, Judgment: "fully_correct_and_faithful"},
			},
		},
	}
	container := newTestContainer(svc)

	rec := doJSON(t, container, http.MethodPost, "/api/v1/evaluations", ReEvaluateRequest{
		ChatID:    "chat-1",
		MessageID: "m1",
		GuestMode: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if svc.gotKey.ChatID != "chat-1" || svc.gotKey.MessageID != "m1" || !svc.gotKey.GuestMode {
		t.Errorf("Key not forwarded: %+v", svc.gotKey)
	}
}

func TestReEvaluate_Validation(t *testing.T) {
	container := newTestContainer(&fakeRunService{})

	rec := doJSON(t, container, http.MethodPost, "/api/v1/evaluations", ReEvaluateRequest{ChatID: "only-chat"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing message_id, got %d", rec.Code)
	}
}

func TestReEvaluate_NotFound(t *testing.T) {
	svc := &fakeRunService{reErr: store.ErrTurnNotFound}
	container := newTestContainer(svc)

	rec := doJSON(t, container, http.MethodPost, "/api/v1/evaluations", ReEvaluateRequest{
		ChatID:    "chat-x",
		MessageID: "m-x",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
