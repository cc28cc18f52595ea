package negotiation

import (
	"context"
	"sync"
	"testing"
	"time"

	"tour-booking/constants"
	quoteModel "tour-booking/models/quote"
	"tour-booking/models/tour"
	"tour-booking/models/user"
	"tour-booking/types"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

const (
	tourOpen uint = iota + 1
	tourSmall
	tourInactive
	tourUnapprovedOperator
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	ctx      context.Context
	store    *MemoryStore
	svc      *Service
	clock    *testClock
	notifier *recordingNotifier

	customer        types.Actor
	stranger        types.Actor
	operator        types.Actor
	otherOperator   types.Actor
	pendingOperator types.Actor
	admin           types.Actor
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func uintRef(v uint) *uint    { return &v }

func profile(id, userID uint, status string) user.OperatorProfile {
	return user.OperatorProfile{ID: id, UserID: userID, CompanyName: "Operator", ApprovalStatus: status}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	store := NewMemoryStore()
	store.AddUser(user.User{
		ID:             10,
		Name:           "Rahim Uddin",
		Email:          "rahim.live@example.com",
		Phone:          strPtr("+8801700000010"),
		WhatsAppNumber: strPtr("+8801700000011"),
		Role:           constants.RoleUser,
	})
	store.AddUser(user.User{ID: 11, Name: "Stranger", Email: "stranger@example.com", Role: constants.RoleUser})

	approved := profile(1, 20, constants.ApprovalApproved)
	pending := profile(3, 22, constants.ApprovalPending)
	store.AddTour(tour.Tour{ID: tourOpen, OperatorProfileID: 1, OperatorProfile: approved, Title: "Sundarbans Cruise", IsActive: true, MaxCapacity: intPtr(10)})
	store.AddTour(tour.Tour{ID: tourSmall, OperatorProfileID: 1, OperatorProfile: approved, Title: "Tea Garden Walk", IsActive: true, MaxCapacity: intPtr(4)})
	store.AddTour(tour.Tour{ID: tourInactive, OperatorProfileID: 1, OperatorProfile: approved, Title: "Closed Tour", IsActive: false})
	store.AddTour(tour.Tour{ID: tourUnapprovedOperator, OperatorProfileID: 3, OperatorProfile: pending, Title: "Unapproved", IsActive: true})

	clock := &testClock{now: baseTime}
	notifier := &recordingNotifier{}
	all := append([]Option{WithClock(clock.Now), WithNotifier(notifier)}, opts...)

	return &fixture{
		ctx:             context.Background(),
		store:           store,
		svc:             NewService(store, all...),
		clock:           clock,
		notifier:        notifier,
		customer:        types.Actor{UserID: 10, Name: "Rahim Uddin", Role: constants.RoleUser},
		stranger:        types.Actor{UserID: 11, Name: "Stranger", Role: constants.RoleUser},
		operator:        types.Actor{UserID: 20, Role: constants.RoleOperator, OperatorProfileID: uintRef(1), OperatorApproved: true},
		otherOperator:   types.Actor{UserID: 21, Role: constants.RoleOperator, OperatorProfileID: uintRef(2), OperatorApproved: true},
		pendingOperator: types.Actor{UserID: 22, Role: constants.RoleOperator, OperatorProfileID: uintRef(3), OperatorApproved: false},
		admin:           types.Actor{UserID: 30, Role: constants.RoleAdmin},
	}
}

func (f *fixture) tripParams(tourID uint) TripParams {
	return TripParams{
		TourID:        tourID,
		PreferredDate: f.clock.Now().AddDate(0, 0, 30),
		Adults:        2,
		CustomerName:  "Rahim Uddin",
		CustomerEmail: "rahim@example.com",
		CustomerPhone: strPtr("+8801700000099"),
	}
}

func validTerms() QuoteTerms {
	return QuoteTerms{
		QuotedPrice: 1200000,
		Inclusions: quoteModel.LineItems{
			{Item: "Boat cabin"},
			{Item: "Forest permit", Price: func() *int64 { v := int64(50000); return &v }()},
		},
		Exclusions:    quoteModel.LineItems{{Item: "Flights"}},
		Terms:         "50% refundable until 7 days before departure",
		ValidityHours: intPtr(72),
	}
}

func (f *fixture) submit(t *testing.T) *quoteModel.QuoteRequest {
	t.Helper()
	q, err := f.svc.Submit(f.ctx, f.customer, f.tripParams(tourOpen))
	require.NoError(t, err)
	return q
}

// inStatus drives a fresh quote through the service into status
func (f *fixture) inStatus(t *testing.T, status quoteModel.QuoteStatus) *quoteModel.QuoteRequest {
	t.Helper()
	q := f.submit(t)
	if status == quoteModel.QuoteStatusPending {
		return q
	}

	q, err := f.svc.Respond(f.ctx, f.operator, q.ID, validTerms())
	require.NoError(t, err)

	switch status {
	case quoteModel.QuoteStatusQuoted:
	case quoteModel.QuoteStatusAccepted, quoteModel.QuoteStatusPaid:
		q, err = f.svc.Accept(f.ctx, f.customer, q.ID)
		require.NoError(t, err)
		if status == quoteModel.QuoteStatusPaid {
			q, err = f.svc.MarkPaid(f.ctx, q.ID, *q.QuotedPrice, "PAY-"+q.Reference)
			require.NoError(t, err)
		}
	case quoteModel.QuoteStatusRejected:
		q, err = f.svc.Reject(f.ctx, f.customer, q.ID, "Too expensive")
		require.NoError(t, err)
	case quoteModel.QuoteStatusCancelled:
		q, err = f.svc.Cancel(f.ctx, f.customer, q.ID, "")
		require.NoError(t, err)
	case quoteModel.QuoteStatusExpired:
		f.clock.Advance(73 * time.Hour)
		_, err = f.svc.ExpireStale(f.ctx, 100)
		require.NoError(t, err)
		q, err = f.store.GetQuote(f.ctx, q.ID)
		require.NoError(t, err)
	default:
		t.Fatalf("unsupported status %s", status)
	}
	require.Equal(t, status, q.Status)
	return q
}

func (f *fixture) reload(t *testing.T, id uint) *quoteModel.QuoteRequest {
	t.Helper()
	q, err := f.store.GetQuote(f.ctx, id)
	require.NoError(t, err)
	return q
}
