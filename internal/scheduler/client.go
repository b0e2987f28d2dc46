package scheduler

import (
	"context"
	"errors"
	"time"

	"scoutscore_backend/platform/config"

	"github.com/hibiken/asynq"
)

// rescoreDebounce delays signal-triggered rescores so a burst of
// captures on the same prospect collapses into one recompute attempt.
const rescoreDebounce = 30 * time.Second

type Client struct {
	client *asynq.Client
}

// RescoreEnqueuer is the port other modules use to request a rescore.
type RescoreEnqueuer interface {
	EnqueueRescore(ctx context.Context, payload RescoreProspectPayload) error
	EnqueueAdjustWeights(ctx context.Context, payload AdjustWeightsPayload) error
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(redisClientOpt(cfg)),
	}
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueRescore schedules a background rescore. The task is unique per
// prospect within the debounce window; duplicates are dropped.
func (c *Client) EnqueueRescore(ctx context.Context, payload RescoreProspectPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewRescoreProspectTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(rescoreDebounce),
		asynq.TaskID("rescore:"+payload.ProspectID),
		asynq.Retention(time.Minute))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// EnqueueAdjustWeights schedules a weight nudge after an outcome.
func (c *Client) EnqueueAdjustWeights(ctx context.Context, payload AdjustWeightsPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewAdjustWeightsTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task)
	return err
}

func redisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
		DB:       cfg.GetRedisDB(),
	}
}
