package notifier

import (
	"context"
	"fmt"
	"sync"

	"tour-booking/logger"
	"tour-booking/services/negotiation"
)

// Sink delivers one event to wherever alerts are produced from.
type Sink interface {
	Deliver(ctx context.Context, event negotiation.Event) error
}

// Dispatcher implements negotiation.Notifier. Notify only queues the event;
// a background goroutine hands it to the sink, so a slow or failing sink
// never holds up a quote transition.
type Dispatcher struct {
	sink   Sink
	events chan negotiation.Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Dispatcher{
		sink:   sink,
		events: make(chan negotiation.Event, buffer),
		done:   make(chan struct{}),
	}
}

// Start launches the delivery goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.done)
		for event := range d.events {
			if err := d.sink.Deliver(ctx, event); err != nil {
				logger.Error(fmt.Sprintf("Failed to deliver %s for quote %s", event.Type, event.Reference), err)
			}
		}
	}()
}

// Notify queues event and drops it when the queue is full or closed.
func (d *Dispatcher) Notify(event negotiation.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.events <- event:
	default:
		logger.Warningf("Notification queue full, dropping %s for quote %s", event.Type, event.Reference)
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
// Start must have been called.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	<-d.done
}

// LogSink only writes events to the application log. It is used when no
// task queue is configured.
type LogSink struct{}

func (LogSink) Deliver(ctx context.Context, event negotiation.Event) error {
	logger.Info(fmt.Sprintf("Quote event %s on %s (status %s)", event.Type, event.Reference, event.Status))
	return nil
}
