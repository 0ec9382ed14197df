package credsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Signup registers an account and triggers the verification email.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var out SignupResponse
	if err := c.call(ctx, http.MethodPost, "/v1/signup", req.Values(), "", http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP asks for a fresh verification code.
func (c *Client) ResendOTP(ctx context.Context, pendingToken string) (*ResendResponse, error) {
	form := url.Values{"pending_token": {pendingToken}}

	var out ResendResponse
	if err := c.call(ctx, http.MethodPost, "/v1/signup/resend", form, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify submits the emailed code.
func (c *Client) Verify(ctx context.Context, pendingToken, code string) (*VerifyResponse, error) {
	form := url.Values{
		"pending_token": {pendingToken},
		"otp_code":      {code},
	}

	var out VerifyResponse
	if err := c.call(ctx, http.MethodPost, "/v1/verify", form, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password. totpCode is only needed for
// staff accounts with MFA enabled.
func (c *Client) Login(ctx context.Context, email, password, totpCode string) (*LoginResponse, error) {
	form := url.Values{
		"email":    {email},
		"password": {password},
	}
	if totpCode != "" {
		form.Set("totp_code", totpCode)
	}

	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, "/v1/login", form, "", http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginSession logs in and wraps the resulting token.
func (c *Client) LoginSession(ctx context.Context, email, password, totpCode string) (*Session, error) {
	resp, err := c.Login(ctx, email, password, totpCode)
	if err != nil {
		return nil, err
	}
	return c.NewSession(resp.SessionToken), nil
}

// Waitlist loads the holding page for a verified, waitlisted user.
func (c *Client) Waitlist(ctx context.Context, waitlistToken string) (*WaitlistResponse, error) {
	var out WaitlistResponse
	if err := c.call(ctx, http.MethodGet, "/v1/waitlist", nil, waitlistToken, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
