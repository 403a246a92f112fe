package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velden_leads_backend/internal/validation/cache"
	"velden_leads_backend/internal/validation/service"
	"velden_leads_backend/platform/httpkit"
	"velden_leads_backend/platform/validator"
)

// Handler handles HTTP requests for contact validation.
type Handler struct {
	svc   *service.Service
	cache *cache.Cache
	val   *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Malformed-but-present values are not rejected here; the assessor grades
// them. The tags bound input size only.
type assessmentQuery struct {
	Website string `form:"website" validate:"omitempty,max=255"`
	Email   string `form:"email" validate:"omitempty,max=255"`
}

// New creates a validation handler. cache may be nil when Redis is not
// configured.
func New(svc *service.Service, c *cache.Cache, val *validator.Validator) *Handler {
	return &Handler{svc: svc, cache: c, val: val}
}

// AssessContact validates a website/email pair on demand.
// GET /api/v1/contact-assessment?website=&email=
func (h *Handler) AssessContact(c *gin.Context) {
	var q assessmentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, nil)
		return
	}
	if q.Website == "" && q.Email == "" {
		httpkit.Error(c, http.StatusBadRequest, "website or email required", nil)
		return
	}

	ctx := c.Request.Context()
	if h.cache != nil {
		if a, ok := h.cache.Get(ctx, q.Website, q.Email); ok {
			httpkit.OK(c, a)
			return
		}
	}

	a := h.svc.Assess(ctx, q.Website, q.Email)
	if h.cache != nil {
		h.cache.Set(ctx, q.Website, q.Email, a)
	}
	httpkit.OK(c, a)
}
