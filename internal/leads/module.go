// Package leads provides the lead table bounded context module.
package leads

import (
	apphttp "velden_leads_backend/internal/http"
	"velden_leads_backend/internal/leads/handler"
	"velden_leads_backend/internal/leads/repository"
	"velden_leads_backend/internal/leads/service"
	"velden_leads_backend/platform/logger"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leads module over the CSV-backed
// repository. The repository must already be loaded.
func NewModule(repo *repository.Repository, checkpointEvery int, log *logger.Logger) *Module {
	svc := service.New(repo, checkpointEvery, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/leads", m.handler.ListLeads)
	ctx.V1.GET("/leads/:id", m.handler.GetLead)
}

var _ apphttp.Module = (*Module)(nil)
