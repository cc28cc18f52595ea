package negotiation

import (
	"context"
	"errors"
	"fmt"

	quoteModel "tour-booking/models/quote"
	"tour-booking/models/user"
	"tour-booking/types"
)

// Get returns the quote as the actor is allowed to see it.
func (s *Service) Get(ctx context.Context, actor types.Actor, quoteID uint) (*QuoteView, error) {
	q, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := CanRead(actor, q); err != nil {
		return nil, err
	}

	live, err := s.liveCustomer(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	view := Project(actor, q, live)
	return &view, nil
}

// ListForCustomer lists the actor's own quote requests, newest first.
func (s *Service) ListForCustomer(ctx context.Context, actor types.Actor, status *quoteModel.QuoteStatus) ([]QuoteView, error) {
	if !actor.IsCustomer() {
		return nil, forbiddenError("Only customers have quote requests")
	}
	if err := checkStatusFilter(status); err != nil {
		return nil, err
	}

	quotes, err := s.store.ListQuotesByUser(ctx, actor.UserID, status)
	if err != nil {
		return nil, s.internal("list customer quotes", err)
	}
	return s.summarize(ctx, actor, quotes)
}

// ListForOperator lists quote requests on the operator's tours, newest first.
func (s *Service) ListForOperator(ctx context.Context, actor types.Actor, status *quoteModel.QuoteStatus) ([]QuoteView, error) {
	if !actor.IsOperator() || actor.OperatorProfileID == nil {
		return nil, forbiddenError("Only tour operators can list incoming quote requests")
	}
	if !actor.OperatorApproved {
		return nil, forbiddenError(pendingApprovalMessage)
	}
	if err := checkStatusFilter(status); err != nil {
		return nil, err
	}

	quotes, err := s.store.ListQuotesByOperator(ctx, *actor.OperatorProfileID, status)
	if err != nil {
		return nil, s.internal("list operator quotes", err)
	}
	return s.summarize(ctx, actor, quotes)
}

func checkStatusFilter(status *quoteModel.QuoteStatus) error {
	if status != nil && !status.IsValid() {
		return validationError("Unknown status %q", string(*status))
	}
	return nil
}

// summarize projects each quote and attaches its latest message
func (s *Service) summarize(ctx context.Context, actor types.Actor, quotes []quoteModel.QuoteRequest) ([]QuoteView, error) {
	views := make([]QuoteView, 0, len(quotes))
	for i := range quotes {
		q := &quotes[i]
		live, err := s.liveCustomer(ctx, actor, q)
		if err != nil {
			return nil, err
		}
		view := Project(actor, q, live)
		if view.LatestMessage, err = s.latestMessage(ctx, q.ID); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// liveCustomer loads the customer's profile only when the viewer may see it
func (s *Service) liveCustomer(ctx context.Context, actor types.Actor, q *quoteModel.QuoteRequest) (*user.User, error) {
	if !ContactVisible(actor, q) {
		return nil, nil
	}
	u, err := s.store.GetUser(ctx, q.UserID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.internal(fmt.Sprintf("load customer %d", q.UserID), err)
	}
	return u, nil
}
