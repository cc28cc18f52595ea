package notifier

import (
	"context"
	"fmt"

	"tour-booking/logger"
	"tour-booking/services/negotiation"

	"github.com/hibiken/asynq"
)

// Alert is the text that goes out to the other party of a quote.
type Alert struct {
	Audience string // "customer" or "operator"
	Subject  string
}

// AlertFor decides who hears about event and what they are told.
// ok is false for events nobody is alerted about.
func AlertFor(event negotiation.Event) (alert Alert, ok bool) {
	ref := event.Reference
	switch event.Type {
	case negotiation.EventSubmitted:
		return Alert{"operator", fmt.Sprintf("New quote request %s", ref)}, true
	case negotiation.EventQuoted:
		return Alert{"customer", fmt.Sprintf("Your quote %s is ready", ref)}, true
	case negotiation.EventRevised:
		return Alert{"customer", fmt.Sprintf("Your quote %s was revised", ref)}, true
	case negotiation.EventAccepted:
		return Alert{"operator", fmt.Sprintf("Quote %s was accepted", ref)}, true
	case negotiation.EventRejected:
		return Alert{"operator", fmt.Sprintf("Quote %s was declined", ref)}, true
	case negotiation.EventCancelled:
		return Alert{"operator", fmt.Sprintf("Quote request %s was cancelled", ref)}, true
	case negotiation.EventPaid:
		return Alert{"operator", fmt.Sprintf("Quote %s has been paid", ref)}, true
	case negotiation.EventExpired:
		return Alert{"customer", fmt.Sprintf("Your quote %s has expired", ref)}, true
	default:
		// message alerts depend on who posted, which the event does not say
		return Alert{}, false
	}
}

// AlertSender hands an alert to email, WhatsApp or whatever is configured.
type AlertSender interface {
	Send(ctx context.Context, event negotiation.Event, alert Alert) error
}

// LogAlertSender writes alerts to the application log.
type LogAlertSender struct{}

func (LogAlertSender) Send(ctx context.Context, event negotiation.Event, alert Alert) error {
	logger.Info(fmt.Sprintf("📣 [%s] %s", alert.Audience, alert.Subject))
	return nil
}

// QuoteEventHandler processes quote:event tasks on the worker.
type QuoteEventHandler struct {
	Sender AlertSender
}

func (h *QuoteEventHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	event, err := ParseQuoteEventTask(task)
	if err != nil {
		// a malformed payload never becomes valid
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	alert, ok := AlertFor(event)
	if !ok {
		return nil
	}
	return h.Sender.Send(ctx, event, alert)
}

// NewServeMux routes notification tasks to their handlers.
func NewServeMux(sender AlertSender) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeQuoteEvent, &QuoteEventHandler{Sender: sender})
	return mux
}
