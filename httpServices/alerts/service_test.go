package httpServices

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tour-booking/services/negotiation"
	"tour-booking/services/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertClient_Send(t *testing.T) {
	var got AlertRequest
	var apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/", r.URL.Path)
		apiKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"al_1","message":"queued"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123")
	event := negotiation.Event{Type: negotiation.EventQuoted, QuoteID: 4, Reference: "QR-123456789", Status: "quoted"}
	alert, ok := notifier.AlertFor(event)
	require.True(t, ok)

	require.NoError(t, client.Send(context.Background(), event, alert))
	assert.Equal(t, "key-123", apiKey)
	assert.Equal(t, "customer", got.Audience)
	assert.Equal(t, "QR-123456789", got.Reference)
	assert.Equal(t, negotiation.EventQuoted, got.EventType)
}

func TestAlertClient_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	err := client.Send(context.Background(), negotiation.Event{Type: negotiation.EventPaid}, notifier.Alert{Audience: "operator"})
	assert.Error(t, err)
}
