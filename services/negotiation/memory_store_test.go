package negotiation

import (
	"context"
	"testing"

	quoteModel "tour-booking/models/quote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	q := &quoteModel.QuoteRequest{Reference: "QR-000000001", UserID: 1, Status: quoteModel.QuoteStatusPending, Version: 1}
	require.NoError(t, store.CreateQuote(ctx, q))

	first, err := store.GetQuote(ctx, q.ID)
	require.NoError(t, err)
	second, err := store.GetQuote(ctx, q.ID)
	require.NoError(t, err)

	first.Status = quoteModel.QuoteStatusCancelled
	require.NoError(t, store.UpdateQuote(ctx, first, quoteModel.QuoteStatusPending, quoteModel.QuoteStatusEvent{QuoteRequestID: q.ID}))
	assert.Equal(t, 2, first.Version)

	second.Status = quoteModel.QuoteStatusQuoted
	err = store.UpdateQuote(ctx, second, quoteModel.QuoteStatusPending, quoteModel.QuoteStatusEvent{QuoteRequestID: q.ID})
	assert.ErrorIs(t, err, ErrStaleRecord)

	stored, err := store.GetQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, quoteModel.QuoteStatusCancelled, stored.Status)
}

func TestMemoryStore_DuplicateReference(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.CreateQuote(ctx, &quoteModel.QuoteRequest{Reference: "QR-000000001", Status: quoteModel.QuoteStatusPending}))
	err := store.CreateQuote(ctx, &quoteModel.QuoteRequest{Reference: "QR-000000001", Status: quoteModel.QuoteStatusPending})
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	q := &quoteModel.QuoteRequest{Reference: "QR-000000001", Status: quoteModel.QuoteStatusPending, ChildAges: quoteModel.IntSlice{4}}
	require.NoError(t, store.CreateQuote(ctx, q))

	loaded, err := store.GetQuote(ctx, q.ID)
	require.NoError(t, err)
	loaded.Status = quoteModel.QuoteStatusPaid
	loaded.ChildAges[0] = 99

	again, err := store.GetQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, quoteModel.QuoteStatusPending, again.Status)
	assert.Equal(t, 4, again.ChildAges[0])
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetQuote(ctx, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = store.GetTour(ctx, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = store.LatestMessage(ctx, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	err = store.CreateMessage(ctx, &quoteModel.QuoteMessage{QuoteRequestID: 1, Message: "hi"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
