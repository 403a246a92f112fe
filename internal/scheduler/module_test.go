package scheduler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	apphttp "velden_leads_backend/internal/http"
	"velden_leads_backend/internal/scheduler/refresh"
	"velden_leads_backend/platform/db"
	"velden_leads_backend/platform/logger"
)

func newTestModule(t *testing.T, client *Client) (*gin.Engine, *refresh.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	store, err := refresh.NewStore(conn)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	m := NewModule(client, store, logger.New("development"))
	r := gin.New()
	m.RegisterRoutes(&apphttp.RouterContext{Engine: r, V1: r.Group("/api/v1")})
	return r, store
}

func TestEnqueueRunWithoutQueue(t *testing.T) {
	r, _ := newTestModule(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when no queue is configured", w.Code)
	}
}

func TestEnqueueRunFailureMarksRunFailed(t *testing.T) {
	// Port 1 refuses connections, so the enqueue always fails after the
	// run row has been created.
	client := &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:1"}),
		queue:  "default",
	}
	t.Cleanup(func() { client.Close() })

	r, store := newTestModule(t, client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 on enqueue failure", w.Code)
	}

	runs, err := store.List(req.Context())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %v, want the single created run", runs)
	}
	if runs[0].Status != refresh.RunFailed {
		t.Errorf("Status = %q, want failed so nobody polls a run that will never start", runs[0].Status)
	}
}
