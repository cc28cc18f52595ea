package negotiation

import (
	"context"
	"sort"
	"sync"
	"time"

	quoteModel "tour-booking/models/quote"
	"tour-booking/models/tour"
	"tour-booking/models/user"
)

// MemoryStore keeps everything in process. It backs the tests and the
// STORE_DRIVER=memory development mode, and honours the same conditional
// update contract as GormStore.
type MemoryStore struct {
	mu       sync.Mutex
	tours    map[uint]tour.Tour
	users    map[uint]user.User
	quotes   map[uint]quoteModel.QuoteRequest
	messages []quoteModel.QuoteMessage
	events   []quoteModel.QuoteStatusEvent

	nextQuoteID   uint
	nextMessageID uint
	nextEventID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tours:  make(map[uint]tour.Tour),
		users:  make(map[uint]user.User),
		quotes: make(map[uint]quoteModel.QuoteRequest),
	}
}

// AddTour registers a tour; its OperatorProfile must be filled in.
func (m *MemoryStore) AddTour(t tour.Tour) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tours[t.ID] = t
}

func (m *MemoryStore) AddUser(u user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// StatusEvents returns the recorded status history of a quote, oldest first.
func (m *MemoryStore) StatusEvents(quoteID uint) []quoteModel.QuoteStatusEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []quoteModel.QuoteStatusEvent
	for _, ev := range m.events {
		if ev.QuoteRequestID == quoteID {
			events = append(events, ev)
		}
	}
	return events
}

// MessageCount returns how many messages are stored for a quote.
func (m *MemoryStore) MessageCount(quoteID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, msg := range m.messages {
		if msg.QuoteRequestID == quoteID {
			n++
		}
	}
	return n
}

func cloneQuote(q quoteModel.QuoteRequest) quoteModel.QuoteRequest {
	if q.ChildAges != nil {
		q.ChildAges = append(quoteModel.IntSlice(nil), q.ChildAges...)
	}
	if q.QuotedInclusions != nil {
		q.QuotedInclusions = append(quoteModel.LineItems(nil), q.QuotedInclusions...)
	}
	if q.QuotedExclusions != nil {
		q.QuotedExclusions = append(quoteModel.LineItems(nil), q.QuotedExclusions...)
	}
	return q
}

// withTour returns a copy of the stored quote with its tour attached
func (m *MemoryStore) withTour(q quoteModel.QuoteRequest) quoteModel.QuoteRequest {
	q = cloneQuote(q)
	q.Tour = m.tours[q.TourID]
	return q
}

func (m *MemoryStore) GetTour(ctx context.Context, id uint) (*tour.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tours[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &t, nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &u, nil
}

func (m *MemoryStore) CreateQuote(ctx context.Context, q *quoteModel.QuoteRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.quotes {
		if existing.Reference == q.Reference {
			return ErrDuplicateReference
		}
	}

	m.nextQuoteID++
	now := time.Now()
	q.ID = m.nextQuoteID
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	stored := cloneQuote(*q)
	stored.Tour = tour.Tour{}
	stored.User = user.User{}
	m.quotes[q.ID] = stored
	m.appendEvent(quoteModel.QuoteStatusEvent{
		QuoteRequestID: q.ID,
		ToStatus:       q.Status,
		EventType:      "submitted",
		ActorID:        &q.UserID,
	})
	return nil
}

func (m *MemoryStore) GetQuote(ctx context.Context, id uint) (*quoteModel.QuoteRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.quotes[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	q = m.withTour(q)
	return &q, nil
}

func (m *MemoryStore) GetQuoteByReference(ctx context.Context, reference string) (*quoteModel.QuoteRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, q := range m.quotes {
		if q.Reference == reference {
			q = m.withTour(q)
			return &q, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m *MemoryStore) UpdateQuote(ctx context.Context, q *quoteModel.QuoteRequest, expected quoteModel.QuoteStatus, event quoteModel.QuoteStatusEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.quotes[q.ID]
	if !ok {
		return ErrRecordNotFound
	}
	if current.Status != expected || current.Version != q.Version {
		return ErrStaleRecord
	}

	q.Version++
	q.UpdatedAt = time.Now()

	stored := cloneQuote(*q)
	stored.Tour = tour.Tour{}
	stored.User = user.User{}
	// identity and trip parameters never change after submission
	stored.Reference = current.Reference
	stored.UserID = current.UserID
	stored.TourID = current.TourID
	stored.CreatedAt = current.CreatedAt
	m.quotes[q.ID] = stored
	m.appendEvent(event)
	return nil
}

func (m *MemoryStore) appendEvent(ev quoteModel.QuoteStatusEvent) {
	m.nextEventID++
	ev.ID = m.nextEventID
	ev.CreatedAt = time.Now()
	m.events = append(m.events, ev)
}

func (m *MemoryStore) listQuotes(keep func(q quoteModel.QuoteRequest) bool, status *quoteModel.QuoteStatus) []quoteModel.QuoteRequest {
	quotes := make([]quoteModel.QuoteRequest, 0)
	for _, q := range m.quotes {
		if status != nil && q.Status != *status {
			continue
		}
		if keep(q) {
			quotes = append(quotes, m.withTour(q))
		}
	}
	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].CreatedAt.Equal(quotes[j].CreatedAt) {
			return quotes[i].ID > quotes[j].ID
		}
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes
}

func (m *MemoryStore) ListQuotesByUser(ctx context.Context, userID uint, status *quoteModel.QuoteStatus) ([]quoteModel.QuoteRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listQuotes(func(q quoteModel.QuoteRequest) bool {
		return q.UserID == userID
	}, status), nil
}

func (m *MemoryStore) ListQuotesByOperator(ctx context.Context, operatorProfileID uint, status *quoteModel.QuoteStatus) ([]quoteModel.QuoteRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listQuotes(func(q quoteModel.QuoteRequest) bool {
		t, ok := m.tours[q.TourID]
		return ok && t.OperatorProfileID == operatorProfileID
	}, status), nil
}

func (m *MemoryStore) ListExpiredQuotes(ctx context.Context, now time.Time, limit int) ([]quoteModel.QuoteRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	quoted := quoteModel.QuoteStatusQuoted
	quotes := m.listQuotes(func(q quoteModel.QuoteRequest) bool {
		return q.QuoteExpiresAt != nil && q.QuoteExpiresAt.Before(now)
	}, &quoted)
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].QuoteExpiresAt.Before(*quotes[j].QuoteExpiresAt)
	})
	if limit > 0 && len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes, nil
}

func (m *MemoryStore) CreateMessage(ctx context.Context, msg *quoteModel.QuoteMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.quotes[msg.QuoteRequestID]; !ok {
		return ErrRecordNotFound
	}
	m.nextMessageID++
	msg.ID = m.nextMessageID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *MemoryStore) sortedMessages(quoteID uint) []quoteModel.QuoteMessage {
	messages := make([]quoteModel.QuoteMessage, 0)
	for _, msg := range m.messages {
		if msg.QuoteRequestID == quoteID {
			messages = append(messages, msg)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages
}

func (m *MemoryStore) ListMessages(ctx context.Context, quoteID uint) ([]quoteModel.QuoteMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sortedMessages(quoteID), nil
}

func (m *MemoryStore) LatestMessage(ctx context.Context, quoteID uint) (*quoteModel.QuoteMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	messages := m.sortedMessages(quoteID)
	if len(messages) == 0 {
		return nil, ErrRecordNotFound
	}
	latest := messages[len(messages)-1]
	return &latest, nil
}
