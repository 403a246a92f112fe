package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"velden_leads_backend/internal/validation/service"
	"velden_leads_backend/platform/logger"
	"velden_leads_backend/platform/validator"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.New(2*time.Second, 2*time.Second, logger.New("development"))
	h := New(svc, nil, validator.New())

	r := gin.New()
	r.GET("/contact-assessment", h.AssessContact)
	return r
}

func assess(t *testing.T, r *gin.Engine, query string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contact-assessment"+query, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestAssessContactRequiresInput(t *testing.T) {
	r := newRouter(t)

	w := assess(t, r, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty pair", w.Code)
	}
}

func TestAssessContactRejectsOversizedInput(t *testing.T) {
	r := newRouter(t)

	long := strings.Repeat("a", 300)
	w := assess(t, r, "?website="+long)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for oversized website", w.Code)
	}
	if !strings.Contains(w.Body.String(), msgValidationFailed) {
		t.Errorf("body = %s, want validation failure message", w.Body.String())
	}
}

func TestAssessContactGradesMalformedValues(t *testing.T) {
	r := newRouter(t)

	// A present-but-malformed email is assessed, not rejected.
	w := assess(t, r, "?email=frontdesk")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "No email") || !strings.Contains(body, "No website") {
		t.Errorf("body = %s, want graded statuses for both fields", body)
	}
}
