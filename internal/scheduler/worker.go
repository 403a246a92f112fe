package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"velden_leads_backend/internal/config"
	"velden_leads_backend/internal/scheduler/refresh"
	"velden_leads_backend/platform/logger"
)

// Worker consumes queued refresh runs and executes the pipeline.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	runner *refresh.Runner
	log    *logger.Logger
}

// NewWorker creates the asynq worker bound to the configured queue.
func NewWorker(cfg *config.Config, runner *refresh.Runner, log *logger.Logger) (*Worker, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.AsynqQueue
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.AsynqConcurrency
	if concurrency < 1 {
		// A refresh run saturates the outbound rate limit on its own, so
		// runs are processed one at a time.
		concurrency = 1
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		runner: runner,
		log:    log.WithComponent("scheduler"),
	}

	mux.HandleFunc(TaskRefreshRun, w.handleRefreshRun)

	return w, nil
}

func (w *Worker) handleRefreshRun(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRefreshRunPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("refresh run dequeued", "run_id", payload.RunID)
	return w.runner.Execute(ctx, payload.RunID)
}

// Run starts the worker and blocks until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker, waiting for in-flight tasks.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
