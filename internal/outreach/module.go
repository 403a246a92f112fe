// Package outreach provides the outreach tracking bounded context module.
package outreach

import (
	"database/sql"

	apphttp "velden_leads_backend/internal/http"
	"velden_leads_backend/internal/outreach/handler"
	"velden_leads_backend/internal/outreach/repository"
	"velden_leads_backend/internal/outreach/service"
	"velden_leads_backend/platform/logger"
	"velden_leads_backend/platform/validator"
)

// Module is the outreach bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the outreach module on the shared
// SQLite handle.
func NewModule(db *sql.DB, val *validator.Validator, log *logger.Logger) (*Module, error) {
	repo, err := repository.New(db)
	if err != nil {
		return nil, err
	}
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "outreach"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts outreach routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/outreach")
	group.GET("", m.handler.ListRecords)
	group.GET("/summary", m.handler.PipelineSummary)
	group.GET("/:id", m.handler.GetRecord)
	group.PUT("/:id", m.handler.UpdateStatus)
	group.POST("/:id/notes", m.handler.AddNote)
}

var _ apphttp.Module = (*Module)(nil)
