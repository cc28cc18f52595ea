package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"tour-booking/services/negotiation"

	"github.com/hibiken/asynq"
)

// TypeQuoteEvent is the task type notification workers subscribe to.
const (
	TypeQuoteEvent    = "quote:event"
	NotificationQueue = "notifications"
)

// NewQuoteEventTask wraps event in an asynq task.
func NewQuoteEventTask(event negotiation.Event) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote event: %w", err)
	}
	return asynq.NewTask(TypeQuoteEvent, payload, asynq.MaxRetry(5), asynq.Queue(NotificationQueue)), nil
}

// ParseQuoteEventTask decodes the payload of a quote:event task.
func ParseQuoteEventTask(task *asynq.Task) (negotiation.Event, error) {
	var event negotiation.Event
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return event, fmt.Errorf("invalid quote event payload: %w", err)
	}
	return event, nil
}

// AsynqSink enqueues events for the notification workers.
type AsynqSink struct {
	client *asynq.Client
}

func NewAsynqSink(redisAddr string) *AsynqSink {
	return &AsynqSink{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

func (s *AsynqSink) Deliver(ctx context.Context, event negotiation.Event) error {
	task, err := NewQuoteEventTask(event)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", event.Type, err)
	}
	return nil
}

func (s *AsynqSink) Close() error {
	return s.client.Close()
}
