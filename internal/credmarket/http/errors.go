package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// serviceErrors maps sentinel errors to their responses. Order matters for
// errors that wrap one another: ErrPendingUserGone wraps ErrUserNotFound and
// must come first.
var serviceErrors = []struct {
	err  error
	resp *credsdk.APIError
}{
	{service.ErrDuplicateEmail, credsdk.NewAPIError(http.StatusConflict, credsdk.ErrorCodeDuplicateEmail,
		"An account with this email already exists.")},
	{service.ErrNoPendingVerification, credsdk.NewAPIError(http.StatusBadRequest, credsdk.ErrorCodeNoPendingVerification,
		"No pending verification found. Please sign up again.").WithNext(credsdk.NextSignup, "")},
	{service.ErrPendingUserGone, credsdk.NewAPIError(http.StatusNotFound, credsdk.ErrorCodeUserNotFound,
		"User not found. Please sign up again.").WithNext(credsdk.NextSignup, "")},
	{service.ErrNoWaitlistRegistration, credsdk.NewAPIError(http.StatusUnauthorized, credsdk.ErrorCodeNoWaitlistRegistration,
		"No waitlist registration found.").WithNext(credsdk.NextSignup, "")},
	{service.ErrInvalidOTP, credsdk.NewAPIError(http.StatusBadRequest, credsdk.ErrorCodeInvalidOTP,
		"Invalid OTP code. Please try again.")},
	{service.ErrOTPExpired, credsdk.NewAPIError(http.StatusBadRequest, credsdk.ErrorCodeOTPExpired,
		"OTP has expired. Please request a new one.")},
	{service.ErrAlreadyVerified, credsdk.NewAPIError(http.StatusConflict, credsdk.ErrorCodeAlreadyVerified,
		"Email already verified. Please log in.")},
	{service.ErrInvalidCredentials, credsdk.NewAPIError(http.StatusUnauthorized, credsdk.ErrorCodeInvalidCredentials,
		"Invalid email or password.")},
	{service.ErrEmailNotVerified, credsdk.NewAPIError(http.StatusForbidden, credsdk.ErrorCodeEmailNotVerified,
		"Please verify your email first.")},
	{service.ErrCompanyUnderReview, credsdk.NewAPIError(http.StatusForbidden, credsdk.ErrorCodeCompanyUnderReview,
		"Your company is being reviewed by our team.")},
	{service.ErrAccountSuspended, credsdk.NewAPIError(http.StatusForbidden, credsdk.ErrorCodeAccountSuspended,
		"Your account has been suspended.")},
	{service.ErrAccountRejected, credsdk.NewAPIError(http.StatusForbidden, credsdk.ErrorCodeAccountRejected,
		"Your account registration was not approved.")},
	{service.ErrMFARequired, credsdk.NewAPIError(http.StatusUnauthorized, credsdk.ErrorCodeMFARequired,
		"Enter the code from your authenticator app.")},
	{service.ErrInvalidTOTPCode, credsdk.NewAPIError(http.StatusBadRequest, credsdk.ErrorCodeInvalidTOTP,
		"Invalid authenticator code.")},
	{service.ErrMFAAlreadyEnabled, credsdk.NewAPIError(http.StatusConflict, credsdk.ErrorCodeMFAState,
		"MFA is already enabled for this account.")},
	{service.ErrMFANotEnabled, credsdk.NewAPIError(http.StatusConflict, credsdk.ErrorCodeMFAState,
		"MFA is not enabled for this account.")},
	{service.ErrMFANotEnrolled, credsdk.NewAPIError(http.StatusConflict, credsdk.ErrorCodeMFAState,
		"Start MFA enrolment first.")},
	{service.ErrMFAStaffOnly, credsdk.ErrForbidden.With("MFA is only available to staff accounts.")},
	{service.ErrUserNotFound, credsdk.NewAPIError(http.StatusNotFound, credsdk.ErrorCodeUserNotFound,
		"User not found.")},
	{service.ErrCompanyNotFound, credsdk.NewAPIError(http.StatusNotFound, credsdk.ErrorCodeCompanyNotFound,
		"Company not found.")},
	{service.ErrCompanyExists, credsdk.NewAPIError(http.StatusConflict, credsdk.ErrorCodeCompanyExists,
		"A company with this domain already exists.")},
	{domain.ErrInvalidTransition, credsdk.NewAPIError(http.StatusConflict, credsdk.ErrorCodeInvalidTransition,
		"That status change is not allowed.")},
	{service.ErrInvalidToken, credsdk.ErrInvalidToken},
}

// apiError maps err to a response. ok is false for unexpected errors.
func apiError(err error) (*credsdk.APIError, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		e := credsdk.NewAPIError(http.StatusBadRequest, credsdk.ErrorCodeValidation, verr.Message)
		e.Field = verr.Field
		return e, true
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return m.resp, true
		}
	}
	return credsdk.ErrServerError, false
}

// writeServiceError writes the response for err. message, when set,
// replaces the default description.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	resp, ok := apiError(err)
	if !ok {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		resp.WriteError(w)
		return
	}
	if message != "" {
		resp = resp.With(message)
	}
	resp.WriteError(w)
}

func writeFieldError(w http.ResponseWriter, field, message string) {
	e := credsdk.NewAPIError(http.StatusBadRequest, credsdk.ErrorCodeValidation, message)
	e.Field = field
	e.WriteError(w)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse form", slog.Any("error", err))
		credsdk.ErrInvalidFormBody.WriteError(w)
		return false
	}
	return true
}
