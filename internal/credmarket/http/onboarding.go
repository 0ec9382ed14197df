package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/aussiebroadwan/credmarket/pkg/httpx"
	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
)

// OnboardingHandler serves signup, verification, login and logout.
type OnboardingHandler struct {
	Signup *service.SignupService
	Cookie SessionCookie
}

// HandleSignup handles POST /v1/signup
//
//	@Summary		Sign up
//	@Description	Registers an account against the company for the email domain and emails a six digit code.
//	@Description	Unknown domains create a waitlisted company and a waitlisted user.
//	@Tags			Onboarding
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email			formData	string	true	"Work email"
//	@Param			password		formData	string	true	"Password"
//	@Param			city			formData	string	true	"City"
//	@Param			first_name		formData	string	false	"First name"
//	@Param			last_name		formData	string	false	"Last name"
//	@Param			phone			formData	string	false	"Phone"
//	@Param			area			formData	string	false	"Area"
//	@Param			display_name	formData	string	false	"Public display name"
//	@Param			show_real_name	formData	bool	false	"Show real name publicly"
//	@Param			latitude		formData	number	false	"Latitude"
//	@Param			longitude		formData	number	false	"Longitude"
//	@Success		201				{object}	credsdk.SignupResponse
//	@Failure		400				{object}	credsdk.APIError	"validation_error"
//	@Failure		409				{object}	credsdk.APIError	"duplicate_email"
//	@Failure		429				{object}	credsdk.APIError	"rate_limit_exceeded"
//	@Router			/v1/signup [post].
func (h *OnboardingHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	lat, err := httpx.FormFloat(r, "latitude")
	if err != nil {
		writeFieldError(w, "latitude", "Latitude must be a number.")
		return
	}
	long, err := httpx.FormFloat(r, "longitude")
	if err != nil {
		writeFieldError(w, "longitude", "Longitude must be a number.")
		return
	}

	res, err := h.Signup.Signup(r.Context(), service.SignupInput{
		Email:        httpx.FormString(r, "email"),
		Password:     r.PostFormValue("password"),
		FirstName:    httpx.FormString(r, "first_name"),
		LastName:     httpx.FormString(r, "last_name"),
		Phone:        httpx.FormString(r, "phone"),
		City:         httpx.FormString(r, "city"),
		Area:         httpx.FormString(r, "area"),
		DisplayName:  httpx.FormString(r, "display_name"),
		ShowRealName: httpx.FormBool(r, "show_real_name"),
		Latitude:     lat,
		Longitude:    long,
	})
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, credsdk.SignupResponse{
		Message:          res.Message,
		Next:             credsdk.NextVerify,
		UserID:           res.User.ID,
		CompanyStatus:    string(res.Company.Status),
		Waitlisted:       res.Waitlisted,
		PendingToken:     res.PendingToken.Token,
		PendingExpiresAt: res.PendingToken.ExpiresAt(),
	})
}

// HandleResend handles POST /v1/signup/resend
//
//	@Summary		Resend verification code
//	@Tags			Onboarding
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			pending_token	formData	string	true	"Token from signup"
//	@Success		200				{object}	credsdk.ResendResponse
//	@Failure		400				{object}	credsdk.APIError	"no_pending_verification"
//	@Failure		409				{object}	credsdk.APIError	"already_verified"
//	@Router			/v1/signup/resend [post].
func (h *OnboardingHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	expires, err := h.Signup.ResendOTP(r.Context(), httpx.FormString(r, "pending_token"))
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, credsdk.ResendResponse{
		Message:   "A new code has been sent.",
		ExpiresAt: expires,
	})
}

// HandleVerify handles POST /v1/verify
//
//	@Summary		Verify email
//	@Description	Checks the emailed code. Users of approved companies are logged in (next=home);
//	@Description	users of waitlisted companies get a waitlist token (next=waitlist).
//	@Tags			Onboarding
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			pending_token	formData	string	true	"Token from signup or login"
//	@Param			otp_code		formData	string	true	"Six digit code"
//	@Success		200				{object}	credsdk.VerifyResponse
//	@Failure		400				{object}	credsdk.APIError	"invalid_otp, otp_expired, no_pending_verification"
//	@Router			/v1/verify [post].
func (h *OnboardingHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	res, err := h.Signup.Verify(r.Context(),
		httpx.FormString(r, "pending_token"),
		httpx.FormString(r, "otp_code"),
	)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	resp := credsdk.VerifyResponse{
		Message: res.Message,
		User:    toUserInfo(res.User),
	}
	switch res.Outcome {
	case service.VerifyWaitlisted:
		resp.Next = credsdk.NextWaitlist
		resp.WaitlistToken = res.WaitlistToken.Token
		resp.ExpiresAt = ptrTime(res.WaitlistToken.ExpiresAt())
	default:
		h.Cookie.set(w, res.Session)
		resp.Next = res.Landing
		resp.SessionToken = res.Session.Token
		resp.ExpiresAt = ptrTime(res.Session.ExpiresAt())
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleWaitlist handles GET /v1/waitlist
//
//	@Summary		Waitlist holding page
//	@Tags			Onboarding
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	credsdk.WaitlistResponse
//	@Failure		401	{object}	credsdk.APIError	"no_waitlist_registration"
//	@Router			/v1/waitlist [get].
func (h *OnboardingHandler) HandleWaitlist(w http.ResponseWriter, r *http.Request) {
	view, err := h.Signup.Waitlist(r.Context(), httpx.BearerToken(r))
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	resp := credsdk.WaitlistResponse{
		User:    toUserInfo(view.User),
		Message: "Your company is being reviewed. You'll receive an email once approved.",
	}
	if view.Company != nil {
		c := toCompanyInfo(*view.Company)
		resp.Company = &c
		resp.Message = fmt.Sprintf("Your company (%s) is being reviewed. You'll receive an email once approved.", c.Domain)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogin handles POST /v1/login
//
//	@Summary		Log in
//	@Description	Unverified users get a fresh code and a pending token (403 email_not_verified, next=verify).
//	@Tags			Onboarding
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string	true	"Email"
//	@Param			password	formData	string	true	"Password"
//	@Param			totp_code	formData	string	false	"Authenticator code (staff with MFA)"
//	@Success		200			{object}	credsdk.LoginResponse
//	@Failure		401			{object}	credsdk.APIError	"invalid_credentials, mfa_required"
//	@Failure		403			{object}	credsdk.APIError	"email_not_verified, company_under_review, account_suspended, account_rejected"
//	@Router			/v1/login [post].
func (h *OnboardingHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	res, err := h.Signup.Login(r.Context(), service.LoginInput{
		Email:    httpx.FormString(r, "email"),
		Password: r.PostFormValue("password"),
		TOTPCode: httpx.FormString(r, "totp_code"),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) && res.PendingToken.Token != "" {
			resp, _ := apiError(err)
			resp.With(res.Message).WithNext(credsdk.NextVerify, res.PendingToken.Token).WriteError(w)
			return
		}
		writeServiceError(w, r, err, res.Message)
		return
	}

	h.Cookie.set(w, res.Session)
	httpx.WriteJSON(w, http.StatusOK, credsdk.LoginResponse{
		Message:      res.Message,
		Next:         res.Landing,
		User:         toUserInfo(res.User),
		SessionToken: res.Session.Token,
		ExpiresAt:    res.Session.ExpiresAt(),
	})
}

// HandleLogout handles POST /v1/logout
//
//	@Summary		Log out
//	@Description	Revokes the session token for the rest of its lifetime.
//	@Tags			Onboarding
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	credsdk.APIError	"invalid_token"
//	@Router			/v1/logout [post].
func (h *OnboardingHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok {
		return
	}

	if err := h.Signup.Logout(r.Context(), claims); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	h.Cookie.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func ptrTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// claimsOrReject returns the session claims, writing a 401 when absent.
func claimsOrReject(w http.ResponseWriter, r *http.Request) (jwtx.Claims, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok || claims.Subject == "" {
		credsdk.ErrInvalidToken.WriteError(w)
		return jwtx.Claims{}, false
	}
	return claims, true
}
