package tasks

import (
	"encoding/json"

	"medibook/models"

	"github.com/hibiken/asynq"
)

const TypeSearchCacheInvalidate = "search:invalidate"

func NewSearchCacheInvalidationTask(payload models.CacheInvalidationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSearchCacheInvalidate, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
