package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tour-booking/database/seeders"
	"tour-booking/logger"
	"tour-booking/middleware"
	"tour-booking/services/account"
	"tour-booking/services/negotiation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret     = "test-jwt-secret"
	testPaymentSecret = "test-payment-secret"
)

type envelope struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	t        *testing.T
	app      *fiber.App
	customer string
	operator string
	admin    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := negotiation.NewMemoryStore()
	seeders.SeedMemory(store)
	resolver := account.NewStaticResolver(seeders.DemoUsers(), seeders.DemoOperatorProfiles())
	asyncLogger := logger.NewAsyncLogger(nil)
	go asyncLogger.ProcessLog()
	t.Cleanup(asyncLogger.Close)

	app := fiber.New()
	SetupRoutes(app, Deps{
		Service:       negotiation.NewService(store),
		Resolver:      resolver,
		Logger:        asyncLogger,
		JWTSecret:     []byte(testJWTSecret),
		PaymentSecret: testPaymentSecret,
	})

	token := func(uuid string) string {
		signed, err := middleware.SignToken([]byte(testJWTSecret), uuid, time.Hour)
		require.NoError(t, err)
		return signed
	}
	return &harness{
		t:        t,
		app:      app,
		customer: token(seeders.DemoCustomerUUID),
		operator: token(seeders.DemoOperatorUUID),
		admin:    token(seeders.DemoAdminUUID),
	}
}

func (h *harness) do(method, path, token string, body interface{}, headers ...string) (int, envelope) {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

type quoteBody struct {
	ID             uint   `json:"id"`
	Reference      string `json:"reference"`
	Status         string `json:"status"`
	RevisionCount  int    `json:"revision_count"`
	CustomerEmail  string `json:"customer_email"`
	BookingLabel   string `json:"booking_label"`
	QuoteExpiresAt string `json:"quote_expires_at"`
	Customer       struct {
		Name  string  `json:"name"`
		Email *string `json:"email"`
	} `json:"customer"`
}

func decode(t *testing.T, env envelope) quoteBody {
	t.Helper()
	var q quoteBody
	require.NoError(t, json.Unmarshal(env.Data, &q), string(env.Data))
	return q
}

func (h *harness) submit() quoteBody {
	h.t.Helper()
	status, env := h.do(http.MethodPost, "/api/quotes", h.customer, fiber.Map{
		"tour_id":        1,
		"preferred_date": time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		"adults":         2,
		"customer_name":  "Demo Traveller",
		"customer_email": "traveller@example.com",
	})
	require.Equal(h.t, fiber.StatusCreated, status, env.Message)
	return decode(h.t, env)
}

func TestQuoteLifecycleOverHTTP(t *testing.T) {
	h := newHarness(t)

	q := h.submit()
	assert.Equal(t, "pending", q.Status)
	assert.Regexp(t, `^QR-\d{9}$`, q.Reference)
	path := fmt.Sprintf("/api/quotes/%d", q.ID)

	status, env := h.do(http.MethodPost, path+"/respond", h.operator, fiber.Map{
		"quoted_price":         1200000,
		"quoted_inclusions":    []fiber.Map{{"item": "Boat cabin", "price": nil}},
		"quote_validity_hours": 72,
	})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "quoted", decode(t, env).Status)

	status, env = h.do(http.MethodGet, path, h.operator, nil)
	require.Equal(t, fiber.StatusOK, status)
	view := decode(t, env)
	assert.Nil(t, view.Customer.Email)
	assert.Empty(t, view.CustomerEmail)

	status, env = h.do(http.MethodPost, path+"/accept", h.customer, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "accepted", decode(t, env).Status)

	callback := fiber.Map{"reference": q.Reference, "amount": 1200000, "payment_reference": "TXN-1"}
	status, env = h.do(http.MethodPost, "/api/payments/callback", "", callback)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = h.do(http.MethodPost, "/api/payments/callback", "", callback, middleware.PaymentSecretHeader, testPaymentSecret)
	require.Equal(t, fiber.StatusOK, status, env.Message)

	status, env = h.do(http.MethodGet, path, h.operator, nil)
	require.Equal(t, fiber.StatusOK, status)
	view = decode(t, env)
	assert.Equal(t, "paid", view.Status)
	assert.Equal(t, "BK-"+q.Reference[3:], view.BookingLabel)
	require.NotNil(t, view.Customer.Email)
	assert.Equal(t, "traveller@tour-booking.local", *view.Customer.Email)

	status, env = h.do(http.MethodPost, path+"/cancel", h.customer, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "conflict", env.Code)
	assert.Equal(t, "Cannot cancel a paid booking", env.Message)
}

func TestQuoteRoutes_Errors(t *testing.T) {
	h := newHarness(t)
	q := h.submit()
	path := fmt.Sprintf("/api/quotes/%d", q.ID)

	status, _ := h.do(http.MethodGet, path, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = h.do(http.MethodPost, "/api/quotes", h.operator, fiber.Map{})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env := h.do(http.MethodPost, "/api/quotes", h.customer, fiber.Map{"tour_id": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Code)

	status, env = h.do(http.MethodPost, "/api/quotes", h.customer, fiber.Map{
		"tour_id":        3,
		"preferred_date": time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		"adults":         2,
		"customer_name":  "Demo Traveller",
		"customer_email": "traveller@example.com",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Code)

	status, env = h.do(http.MethodPost, "/api/quotes", h.customer, fiber.Map{
		"tour_id":        1,
		"preferred_date": time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		"adults":         10,
		"children":       3,
		"customer_name":  "Demo Traveller",
		"customer_email": "traveller@example.com",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_error", env.Code)

	status, _ = h.do(http.MethodGet, "/api/quotes/abc", h.customer, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = h.do(http.MethodGet, "/api/quotes/9999", h.customer, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Code)

	status, env = h.do(http.MethodPost, path+"/accept", h.customer, nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "conflict", env.Code)

	status, _ = h.do(http.MethodPost, path+"/respond", h.customer, fiber.Map{"quoted_price": 100})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = h.do(http.MethodGet, path, h.admin, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, env = h.do(http.MethodGet, "/api/quotes?status=archived", h.customer, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_error", env.Code)
}

func TestMessageRoutes(t *testing.T) {
	h := newHarness(t)
	q := h.submit()
	path := fmt.Sprintf("/api/quotes/%d/messages", q.ID)

	status, env := h.do(http.MethodGet, path+"/latest", h.customer, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, _ = h.do(http.MethodPost, path, h.customer, fiber.Map{"message": "Can we start a day later?"})
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = h.do(http.MethodPost, path, h.operator, fiber.Map{"message": "Sure."})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = h.do(http.MethodPost, path, h.admin, fiber.Map{"message": "Hi"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = h.do(http.MethodGet, path, h.operator, nil)
	require.Equal(t, fiber.StatusOK, status)
	var messages []struct {
		Message    string `json:"message"`
		SenderType string `json:"sender_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "customer", messages[0].SenderType)
	assert.Equal(t, "operator", messages[1].SenderType)

	status, env = h.do(http.MethodGet, "/api/operator/quotes", h.operator, nil)
	require.Equal(t, fiber.StatusOK, status)
	var listed []struct {
		ID            uint `json:"id"`
		LatestMessage *struct {
			Message string `json:"message"`
		} `json:"latest_message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].LatestMessage)
	assert.Equal(t, "Sure.", listed[0].LatestMessage.Message)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	status, env := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", env.Message)
}
