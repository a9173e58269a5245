package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// GenerateManifiestoTask is scheduled each time a paid session asks for
	// its document.
	GenerateManifiestoTask = "manifiesto:generate"

	defaultMaxRetry = 5
)

// GeneratePayload is serialized into the task payload so the worker can
// render the document without reading the session again.
type GeneratePayload struct {
	DocumentID string            `json:"document_id"`
	SessionID  string            `json:"session_id"`
	ObjectKey  string            `json:"object_key"`
	FileName   string            `json:"file_name"`
	Values     map[string]string `json:"values"`
}

// NewGenerateTask builds the asynq task for payload.
func NewGenerateTask(payload GeneratePayload, maxRetry int) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	if maxRetry < 0 {
		maxRetry = defaultMaxRetry
	}
	return asynq.NewTask(GenerateManifiestoTask, data, asynq.MaxRetry(maxRetry), asynq.TaskID(payload.DocumentID)), nil
}

// ParseGeneratePayload decodes a task produced by NewGenerateTask.
func ParseGeneratePayload(task *asynq.Task) (GeneratePayload, error) {
	var payload GeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GeneratePayload{}, fmt.Errorf("decode payload: %w", err)
	}
	if payload.DocumentID == "" || payload.ObjectKey == "" {
		return GeneratePayload{}, fmt.Errorf("decode payload: missing document_id or object_key")
	}
	return payload, nil
}

// Enqueuer is the part of *asynq.Client the generator needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueueGenerate enqueues a manifiesto generation job.
func EnqueueGenerate(ctx context.Context, client Enqueuer, payload GeneratePayload, maxRetry int) error {
	task, err := NewGenerateTask(payload, maxRetry)
	if err != nil {
		return err
	}
	if _, err := client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue generate task: %w", err)
	}
	return nil
}
