package quote

// QuoteStatus is the negotiation state of a quote request.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusQuoted    QuoteStatus = "quoted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusPaid      QuoteStatus = "paid"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCancelled QuoteStatus = "cancelled"
	QuoteStatusExpired   QuoteStatus = "expired"
)

// Helper methods for QuoteStatus
func (qs QuoteStatus) String() string {
	return string(qs)
}

func (qs QuoteStatus) IsValid() bool {
	switch qs {
	case QuoteStatusPending, QuoteStatusQuoted, QuoteStatusAccepted, QuoteStatusPaid,
		QuoteStatusRejected, QuoteStatusCancelled, QuoteStatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no customer-driven transition leaves the status
func (qs QuoteStatus) IsTerminal() bool {
	switch qs {
	case QuoteStatusPaid, QuoteStatusRejected, QuoteStatusCancelled, QuoteStatusExpired:
		return true
	default:
		return false
	}
}

// IsOpen returns true while the customer can still walk away from the request
func (qs QuoteStatus) IsOpen() bool {
	return qs == QuoteStatusPending || qs == QuoteStatusQuoted || qs == QuoteStatusAccepted
}

// GetAllQuoteStatuses returns all valid quote statuses
func GetAllQuoteStatuses() []QuoteStatus {
	return []QuoteStatus{
		QuoteStatusPending,
		QuoteStatusQuoted,
		QuoteStatusAccepted,
		QuoteStatusPaid,
		QuoteStatusRejected,
		QuoteStatusCancelled,
		QuoteStatusExpired,
	}
}

// SenderType tags which side of the negotiation wrote a message.
type SenderType string

const (
	SenderCustomer SenderType = "customer"
	SenderOperator SenderType = "operator"
)

func (st SenderType) IsValid() bool {
	return st == SenderCustomer || st == SenderOperator
}
