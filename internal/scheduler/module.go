package scheduler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apphttp "velden_leads_backend/internal/http"
	"velden_leads_backend/internal/scheduler/refresh"
	"velden_leads_backend/platform/httpkit"
	"velden_leads_backend/platform/logger"
)

// Module exposes refresh runs over HTTP: enqueue a run, observe its status.
type Module struct {
	client *Client
	store  *refresh.Store
	log    *logger.Logger
}

// NewModule creates the scheduler module. client may be nil when Redis is
// not configured; enqueue requests then fail with a clear error.
func NewModule(client *Client, store *refresh.Store, log *logger.Logger) *Module {
	return &Module{client: client, store: store, log: log.WithComponent("scheduler")}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "scheduler"
}

// RegisterRoutes mounts refresh run routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/refresh", m.enqueueRun)
	ctx.V1.GET("/refresh", m.listRuns)
	ctx.V1.GET("/refresh/:runID", m.getRun)
}

// enqueueRun registers a queued run and hands it to the background worker.
// POST /api/v1/refresh
func (m *Module) enqueueRun(c *gin.Context) {
	if m.client == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "refresh queue not configured", nil)
		return
	}

	ctx := c.Request.Context()
	runID := uuid.NewString()

	if err := m.store.Create(ctx, runID); err != nil {
		m.log.StoreError("create refresh run", err)
		httpkit.Error(c, http.StatusInternalServerError, "could not create refresh run", nil)
		return
	}

	if err := m.client.EnqueueRefreshRun(ctx, RefreshRunPayload{RunID: runID}); err != nil {
		m.log.Error("enqueue refresh run failed", "run_id", runID, "error", err)
		// The run can never start; leaving it queued would mislead anyone
		// polling it.
		if markErr := m.store.MarkFinished(ctx, runID, refresh.RunFailed); markErr != nil {
			m.log.StoreError("mark refresh run failed", markErr)
		}
		httpkit.Error(c, http.StatusInternalServerError, "could not enqueue refresh run", nil)
		return
	}

	m.log.Info("refresh run enqueued", "run_id", runID)
	httpkit.JSON(c, http.StatusAccepted, gin.H{"runId": runID, "status": refresh.RunQueued})
}

// listRuns returns every refresh run, newest first.
// GET /api/v1/refresh
func (m *Module) listRuns(c *gin.Context) {
	runs, err := m.store.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, runs)
}

// getRun returns the status and log of one refresh run.
// GET /api/v1/refresh/:runID
func (m *Module) getRun(c *gin.Context) {
	run, err := m.store.Get(c.Request.Context(), c.Param("runID"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, run)
}

var _ apphttp.Module = (*Module)(nil)
