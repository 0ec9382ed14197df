package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/aussiebroadwan/credmarket/pkg/httpx"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// MFAHandler handles the staff TOTP endpoints.
type MFAHandler struct {
	MFA *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the calling staff account. MFA is enforced once confirmed.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	credsdk.TOTPEnrollResponse
//	@Failure		401	{object}	credsdk.APIError	"invalid_token"
//	@Failure		403	{object}	credsdk.APIError	"forbidden"
//	@Failure		409	{object}	credsdk.APIError	"mfa_state"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok {
		return
	}

	enr, err := h.MFA.Enroll(r.Context(), claims.Subject)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	slogx.FromContext(r.Context()).Info("mfa enrolment started", slog.String("user_id", claims.Subject))
	httpx.WriteJSON(w, http.StatusOK, credsdk.TOTPEnrollResponse{
		Secret:  enr.Secret,
		URL:     enr.URL,
		Issuer:  enr.Issuer,
		Account: enr.Account,
	})
}

// HandleConfirm handles POST /v1/mfa/totp/confirm
//
//	@Summary		Confirm TOTP MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			code	formData	string	true	"Current authenticator code"
//	@Success		200		{object}	credsdk.MessageResponse
//	@Failure		400		{object}	credsdk.APIError	"invalid_totp_code"
//	@Failure		409		{object}	credsdk.APIError	"mfa_state"
//	@Router			/v1/mfa/totp/confirm [post].
func (h *MFAHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok || !parseForm(w, r) {
		return
	}

	if err := h.MFA.Confirm(r.Context(), claims.Subject, httpx.FormString(r, "code")); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	slogx.FromContext(r.Context()).Info("mfa enabled", slog.String("user_id", claims.Subject))
	httpx.WriteJSON(w, http.StatusOK, credsdk.MessageResponse{Message: "MFA enabled."})
}

// HandleRemove handles DELETE /v1/mfa/totp
//
//	@Summary		Remove TOTP MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	query		string	true	"Current authenticator code"
//	@Success		200		{object}	credsdk.MessageResponse
//	@Failure		400		{object}	credsdk.APIError	"invalid_totp_code"
//	@Failure		409		{object}	credsdk.APIError	"mfa_state"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok || !parseForm(w, r) {
		return
	}

	if err := h.MFA.Remove(r.Context(), claims.Subject, httpx.FormString(r, "code")); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	slogx.FromContext(r.Context()).Info("mfa removed", slog.String("user_id", claims.Subject))
	httpx.WriteJSON(w, http.StatusOK, credsdk.MessageResponse{Message: "MFA removed."})
}
