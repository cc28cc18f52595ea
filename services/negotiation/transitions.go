package negotiation

import quoteModel "tour-booking/models/quote"

// Actions that move a quote request between states
const (
	ActionRespond = "respond"
	ActionAccept  = "accept"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
	ActionPay     = "pay"
	ActionExpire  = "expire"
)

var transitionMap = map[string][]quoteModel.QuoteStatus{
	ActionRespond: {quoteModel.QuoteStatusPending, quoteModel.QuoteStatusQuoted},
	ActionAccept:  {quoteModel.QuoteStatusQuoted},
	ActionReject:  {quoteModel.QuoteStatusQuoted},
	ActionCancel:  {quoteModel.QuoteStatusPending, quoteModel.QuoteStatusQuoted, quoteModel.QuoteStatusAccepted},
	ActionPay:     {quoteModel.QuoteStatusAccepted},
	ActionExpire:  {quoteModel.QuoteStatusQuoted},
}

var targetStatus = map[string]quoteModel.QuoteStatus{
	ActionRespond: quoteModel.QuoteStatusQuoted,
	ActionAccept:  quoteModel.QuoteStatusAccepted,
	ActionReject:  quoteModel.QuoteStatusRejected,
	ActionCancel:  quoteModel.QuoteStatusCancelled,
	ActionPay:     quoteModel.QuoteStatusPaid,
	ActionExpire:  quoteModel.QuoteStatusExpired,
}

// ValidTransition reports whether action may be applied to a quote in fromStatus.
func ValidTransition(action string, fromStatus quoteModel.QuoteStatus) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

// TargetStatus is the status a successful action leaves the quote in.
func TargetStatus(action string) (quoteModel.QuoteStatus, bool) {
	status, ok := targetStatus[action]
	return status, ok
}
