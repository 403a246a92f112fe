package handler

import (
	"github.com/gin-gonic/gin"

	"velden_leads_backend/internal/leads/service"
	"velden_leads_backend/platform/httpkit"
)

// Handler handles HTTP requests for the lead table.
type Handler struct {
	svc *service.Service
}

// New creates a new leads handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListLeads returns the full lead table, sorted by region, city, and name.
// GET /api/v1/leads
func (h *Handler) ListLeads(c *gin.Context) {
	httpkit.OK(c, h.svc.List())
}

// GetLead returns one lead by provider id.
// GET /api/v1/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.svc.Get(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}
