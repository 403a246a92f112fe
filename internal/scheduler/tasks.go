// Package scheduler provides the asynq task definitions, enqueue client, and
// background worker for queued refresh runs.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRefreshRun = "leads.refresh"

type RefreshRunPayload struct {
	RunID string `json:"runId"`
}

func NewRefreshRunTask(payload RefreshRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRefreshRun, data), nil
}

func ParseRefreshRunPayload(task *asynq.Task) (RefreshRunPayload, error) {
	var payload RefreshRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RefreshRunPayload{}, err
	}
	return payload, nil
}
