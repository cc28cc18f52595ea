package httpServices

// AlertRequest is the body posted to the alert gateway
type AlertRequest struct {
	Audience  string `json:"audience"`
	Subject   string `json:"subject"`
	EventType string `json:"event_type"`
	QuoteID   uint   `json:"quote_id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type AlertResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
