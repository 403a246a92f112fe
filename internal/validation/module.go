// Package validation provides the contact validation bounded context module.
package validation

import (
	"github.com/redis/go-redis/v9"

	"velden_leads_backend/internal/config"
	apphttp "velden_leads_backend/internal/http"
	"velden_leads_backend/internal/validation/cache"
	"velden_leads_backend/internal/validation/handler"
	"velden_leads_backend/internal/validation/service"
	"velden_leads_backend/platform/logger"
	"velden_leads_backend/platform/validator"
)

// Module is the validation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the validation module. rdb may be nil;
// assessments then run uncached.
func NewModule(cfg *config.Config, rdb *redis.Client, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(cfg.HTTPTimeout, cfg.DNSTimeout, log)

	var assessCache *cache.Cache
	if rdb != nil {
		assessCache = cache.New(rdb, cfg.AssessmentCacheTTL, log)
	}

	return &Module{
		handler: handler.New(svc, assessCache, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "validation"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts validation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/contact-assessment", m.handler.AssessContact)
}

var _ apphttp.Module = (*Module)(nil)
