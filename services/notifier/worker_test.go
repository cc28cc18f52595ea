package notifier

import (
	"context"
	"errors"
	"testing"

	"tour-booking/services/negotiation"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, event negotiation.Event, alert Alert) error {
	return m.Called(event, alert).Error(0)
}

func TestQuoteEventTask_RoundTrip(t *testing.T) {
	actor := uint(20)
	event := quoteEvent(negotiation.EventQuoted)
	event.ActorID = &actor

	task, err := NewQuoteEventTask(event)
	require.NoError(t, err)
	assert.Equal(t, TypeQuoteEvent, task.Type())

	decoded, err := ParseQuoteEventTask(task)
	require.NoError(t, err)
	assert.Equal(t, event.Type, decoded.Type)
	assert.Equal(t, event.Reference, decoded.Reference)
	assert.Equal(t, actor, *decoded.ActorID)
	assert.True(t, event.OccurredAt.Equal(decoded.OccurredAt))
}

func TestAlertFor(t *testing.T) {
	tests := []struct {
		eventType string
		audience  string
	}{
		{negotiation.EventSubmitted, "operator"},
		{negotiation.EventQuoted, "customer"},
		{negotiation.EventRevised, "customer"},
		{negotiation.EventAccepted, "operator"},
		{negotiation.EventPaid, "operator"},
		{negotiation.EventExpired, "customer"},
	}
	for _, tt := range tests {
		alert, ok := AlertFor(quoteEvent(tt.eventType))
		assert.True(t, ok, tt.eventType)
		assert.Equal(t, tt.audience, alert.Audience, tt.eventType)
		assert.Contains(t, alert.Subject, "QR-123456789")
	}

	_, ok := AlertFor(quoteEvent(negotiation.EventMessagePosted))
	assert.False(t, ok)
}

func TestQuoteEventHandler(t *testing.T) {
	sender := new(mockSender)
	event := quoteEvent(negotiation.EventAccepted)
	alert, _ := AlertFor(event)
	sender.On("Send", mock.MatchedBy(func(e negotiation.Event) bool { return e.Type == event.Type }), alert).
		Return(errors.New("smtp timeout")).Once()

	handler := &QuoteEventHandler{Sender: sender}
	task, err := NewQuoteEventTask(event)
	require.NoError(t, err)

	// sender failures are returned so asynq retries the task
	assert.Error(t, handler.ProcessTask(context.Background(), task))
	sender.AssertExpectations(t)
}

func TestQuoteEventHandler_BadPayloadSkipsRetry(t *testing.T) {
	handler := &QuoteEventHandler{Sender: new(mockSender)}

	err := handler.ProcessTask(context.Background(), asynq.NewTask(TypeQuoteEvent, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestQuoteEventHandler_IgnoresSilentEvents(t *testing.T) {
	sender := new(mockSender)
	handler := &QuoteEventHandler{Sender: sender}

	task, err := NewQuoteEventTask(quoteEvent(negotiation.EventMessagePosted))
	require.NoError(t, err)
	assert.NoError(t, handler.ProcessTask(context.Background(), task))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
