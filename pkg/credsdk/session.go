package credsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session makes requests with a session token. Tokens are not refreshed;
// log in again once ErrorCodeInvalidToken comes back.
type Session struct {
	client *Client
	token  string
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

func (s *Session) call(ctx context.Context, method, path string, form url.Values, expected int, target any) error {
	return s.client.call(ctx, method, path, form, s.token, expected, target)
}

// Me returns the caller's profile.
func (s *Session) Me(ctx context.Context) (*UserInfo, error) {
	var out UserInfo
	if err := s.call(ctx, http.MethodGet, "/v1/me", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the caller's profile fields.
func (s *Session) UpdateProfile(ctx context.Context, req ProfileRequest) (*UserInfo, error) {
	var out UserInfo
	if err := s.call(ctx, http.MethodPost, "/v1/me", req.Values(), http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the session token.
func (s *Session) Logout(ctx context.Context) error {
	return s.call(ctx, http.MethodPost, "/v1/logout", nil, http.StatusNoContent, nil)
}

// EnrollTOTP starts MFA enrolment for a staff account.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.call(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmTOTP enables MFA with a code from the authenticator.
func (s *Session) ConfirmTOTP(ctx context.Context, code string) error {
	form := url.Values{"code": {code}}
	return s.call(ctx, http.MethodPost, "/v1/mfa/totp/confirm", form, http.StatusOK, nil)
}

// RemoveTOTP disables MFA.
func (s *Session) RemoveTOTP(ctx context.Context, code string) error {
	form := url.Values{"code": {code}}
	return s.call(ctx, http.MethodDelete, "/v1/mfa/totp", form, http.StatusOK, nil)
}
