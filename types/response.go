package types

// ApiResponse is the envelope every endpoint answers with. Code is set only
// on failures and names the error kind, e.g. "conflict" or "expired".
type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
