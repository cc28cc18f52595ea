package negotiation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	quoteModel "tour-booking/models/quote"
	"tour-booking/types"
)

const maxMessageLength = 5000

// PostMessage appends text to the quote's conversation. The sender type is
// derived from how actor relates to the quote.
func (s *Service) PostMessage(ctx context.Context, actor types.Actor, quoteID uint, text string) (*quoteModel.QuoteMessage, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	sender, err := Authorize(actor, q)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationError("Message cannot be empty")
	}
	if len([]rune(text)) > maxMessageLength {
		return nil, validationError("Message cannot be longer than %d characters", maxMessageLength)
	}

	msg := &quoteModel.QuoteMessage{
		QuoteRequestID: q.ID,
		SenderID:       actor.UserID,
		SenderType:     sender,
		Message:        text,
		CreatedAt:      s.now(),
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, s.internal(fmt.Sprintf("create message on quote %d", q.ID), err)
	}

	s.notifier.Notify(Event{
		Type:       EventMessagePosted,
		QuoteID:    q.ID,
		Reference:  q.Reference,
		Status:     q.Status,
		ActorID:    uintPtr(actor.UserID),
		MessageID:  uintPtr(msg.ID),
		OccurredAt: msg.CreatedAt,
	})
	return msg, nil
}

// ListMessages returns the whole conversation, oldest first.
func (s *Service) ListMessages(ctx context.Context, actor types.Actor, quoteID uint) ([]quoteModel.QuoteMessage, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if _, err := Authorize(actor, q); err != nil {
		return nil, err
	}

	messages, err := s.store.ListMessages(ctx, q.ID)
	if err != nil {
		return nil, s.internal(fmt.Sprintf("list messages of quote %d", q.ID), err)
	}
	return messages, nil
}

// LatestMessage returns the newest message of the conversation, nil when empty.
func (s *Service) LatestMessage(ctx context.Context, actor types.Actor, quoteID uint) (*quoteModel.QuoteMessage, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if _, err := Authorize(actor, q); err != nil {
		return nil, err
	}
	return s.latestMessage(ctx, q.ID)
}

func (s *Service) latestMessage(ctx context.Context, quoteID uint) (*quoteModel.QuoteMessage, error) {
	msg, err := s.store.LatestMessage(ctx, quoteID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.internal(fmt.Sprintf("latest message of quote %d", quoteID), err)
	}
	return msg, nil
}
