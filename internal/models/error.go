package models

// ErrorResponse is the failure envelope. Error is always a short generic
// message; causes stay in the server logs.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}
