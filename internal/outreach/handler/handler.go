package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velden_leads_backend/internal/outreach/service"
	"velden_leads_backend/internal/outreach/transport"
	"velden_leads_backend/platform/httpkit"
	"velden_leads_backend/platform/validator"
)

// Handler handles HTTP requests for outreach tracking.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new outreach handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListRecords returns every outreach record, optionally filtered by status.
// GET /api/v1/outreach?status=
func (h *Handler) ListRecords(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		ids, err := h.svc.ListByStatus(c.Request.Context(), status)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, gin.H{"status": status, "providerIds": ids})
		return
	}

	records, err := h.svc.GetAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, records)
}

// GetRecord returns one outreach record with its history.
// GET /api/v1/outreach/:id
func (h *Handler) GetRecord(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rec)
}

// UpdateStatus moves a record to a new status, creating it on first touch.
// PUT /api/v1/outreach/:id
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	rec, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes, req.ContactDate)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rec)
}

// AddNote appends a timestamped note to an existing record.
// POST /api/v1/outreach/:id/notes
func (h *Handler) AddNote(c *gin.Context) {
	var req transport.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	rec, err := h.svc.AddNote(c.Request.Context(), c.Param("id"), req.Note)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, rec)
}

// PipelineSummary returns counts per status plus totals.
// GET /api/v1/outreach/summary
func (h *Handler) PipelineSummary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}
