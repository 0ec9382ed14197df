package credsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/credmarket/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeValidation             = "validation_error"
	ErrorCodeServerError            = "server_error"
	ErrorCodeInvalidToken           = "invalid_token"
	ErrorCodeForbidden              = "forbidden"
	ErrorCodeRateLimited            = "rate_limit_exceeded"
	ErrorCodeDuplicateEmail         = "duplicate_email"
	ErrorCodeNoPendingVerification  = "no_pending_verification"
	ErrorCodeNoWaitlistRegistration = "no_waitlist_registration"
	ErrorCodeInvalidOTP             = "invalid_otp"
	ErrorCodeOTPExpired             = "otp_expired"
	ErrorCodeAlreadyVerified        = "already_verified"
	ErrorCodeInvalidCredentials     = "invalid_credentials"
	ErrorCodeEmailNotVerified       = "email_not_verified"
	ErrorCodeCompanyUnderReview     = "company_under_review"
	ErrorCodeAccountSuspended       = "account_suspended"
	ErrorCodeAccountRejected        = "account_rejected"
	ErrorCodeMFARequired            = "mfa_required"
	ErrorCodeInvalidTOTP            = "invalid_totp_code"
	ErrorCodeMFAState               = "mfa_state"
	ErrorCodeUserNotFound           = "user_not_found"
	ErrorCodeCompanyNotFound        = "company_not_found"
	ErrorCodeCompanyExists          = "company_exists"
	ErrorCodeInvalidTransition      = "invalid_transition"
)

// APIError is the error body every handler writes. The server builds one and
// calls WriteError; the client parses responses back into one.
type APIError struct {
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`

	// Field names the offending form field for validation errors.
	Field string `json:"field,omitempty"`

	// Next is where the client should go instead, e.g. NextVerify.
	Next string `json:"next,omitempty"`

	// PendingToken is set when a login bounces an unverified user back to
	// the verify step.
	PendingToken string `json:"pending_token,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Description, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e with its status code.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// With returns a copy of e with a different description.
func (e *APIError) With(desc string) *APIError {
	cp := *e
	cp.Description = desc
	return &cp
}

// WithNext returns a copy of e pointing the client at another step.
func (e *APIError) WithNext(next, pendingToken string) *APIError {
	cp := *e
	cp.Next = next
	cp.PendingToken = pendingToken
	return &cp
}

// NewAPIError builds an error response.
func NewAPIError(status int, code, desc string) *APIError {
	return &APIError{StatusCode: status, Code: code, Description: desc}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidFormBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid form body",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid, expired or revoked",
	}

	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "staff access required",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
