package dto

// Error codes carried in ErrorResponse.Code. Clients map them back to error kinds.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyOpen   = "ALREADY_OPEN"
	CodeAlreadyClosed = "ALREADY_CLOSED"
	CodeSessionClosed = "SESSION_CLOSED"
	CodeForbidden     = "FORBIDDEN"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternal      = "INTERNAL"
)

// ErrorResponse is the body of every non-2xx ledger response.
// SessionID is set with ALREADY_OPEN and names the session to resume.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	SessionID string `json:"sessionID,omitempty"`
}
