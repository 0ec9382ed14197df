package http

import (
	"net/http"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/pkg/httpx"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	Users *service.UserService
}

// HandleGet handles GET /v1/me
//
//	@Summary		Current user
//	@Description	Profile of the logged-in user, including whether they may create listings.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	credsdk.UserInfo
//	@Failure		401	{object}	credsdk.APIError	"invalid_token"
//	@Router			/v1/me [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok {
		return
	}

	u, err := h.Users.Get(r.Context(), claims.Subject)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserInfo(u))
}

// HandleUpdate handles POST /v1/me
//
//	@Summary		Update profile
//	@Description	Replaces the profile fields. Unchecked checkboxes are false.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			city			formData	string	true	"City"
//	@Param			first_name		formData	string	false	"First name"
//	@Param			last_name		formData	string	false	"Last name"
//	@Param			phone			formData	string	false	"Phone"
//	@Param			area			formData	string	false	"Area"
//	@Param			display_name	formData	string	false	"Public display name"
//	@Param			show_real_name	formData	bool	false	"Show real name publicly"
//	@Param			notify_messages	formData	bool	false	"Email on new messages"
//	@Param			notify_listings	formData	bool	false	"Email on new listings"
//	@Param			latitude		formData	number	false	"Latitude"
//	@Param			longitude		formData	number	false	"Longitude"
//	@Success		200				{object}	credsdk.UserInfo
//	@Failure		400				{object}	credsdk.APIError	"validation_error"
//	@Router			/v1/me [post].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok {
		return
	}
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

	u, err := h.Users.UpdateProfile(r.Context(), claims.Subject, service.ProfileInput{
		FirstName:      httpx.FormString(r, "first_name"),
		LastName:       httpx.FormString(r, "last_name"),
		Phone:          httpx.FormString(r, "phone"),
		City:           httpx.FormString(r, "city"),
		Area:           httpx.FormString(r, "area"),
		DisplayName:    httpx.FormString(r, "display_name"),
		ShowRealName:   httpx.FormBool(r, "show_real_name"),
		NotifyMessages: httpx.FormBool(r, "notify_messages"),
		NotifyListings: httpx.FormBool(r, "notify_listings"),
		Latitude:       lat,
		Longitude:      long,
	})
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserInfo(u))
}
