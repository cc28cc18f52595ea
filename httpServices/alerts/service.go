package httpServices

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tour-booking/logger"
	"tour-booking/services/negotiation"
	"tour-booking/services/notifier"
)

// AlertClient posts quote alerts to the notification gateway, which fans
// them out over email and WhatsApp.
type AlertClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *AlertClient {
	return &AlertClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Send implements notifier.AlertSender
func (c *AlertClient) Send(ctx context.Context, event negotiation.Event, alert notifier.Alert) error {
	body, err := json.Marshal(AlertRequest{
		Audience:  alert.Audience,
		Subject:   alert.Subject,
		EventType: event.Type,
		QuoteID:   event.QuoteID,
		Reference: event.Reference,
		Status:    string(event.Status),
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/alerts/", bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		return errors.New("Alert API returned non-OK status: " + resp.Status)
	}

	var apiResp AlertResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		// the alert went out; only the receipt is unreadable
		logger.Warning("Unreadable alert gateway response for " + event.Reference)
		return nil
	}
	logger.Debug("Alert " + apiResp.ID + " queued for " + event.Reference)
	return nil
}
