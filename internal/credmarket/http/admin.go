package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/aussiebroadwan/credmarket/pkg/httpx"
	"github.com/aussiebroadwan/credmarket/pkg/idx"
)

// AdminHandler serves the operator console. Every route requires a staff
// session.
type AdminHandler struct {
	Companies *service.CompanyService
	Users     *service.UserService
}

// HandleDashboard handles GET /v1/admin/dashboard
//
//	@Summary		Operator dashboard
//	@Description	User and company counts, top cities and the most recent waitlisted companies.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	credsdk.DashboardResponse
//	@Failure		401	{object}	credsdk.APIError	"invalid_token"
//	@Failure		403	{object}	credsdk.APIError	"forbidden"
//	@Router			/v1/admin/dashboard [get].
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Companies.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	resp := credsdk.DashboardResponse{
		TotalUsers:        d.TotalUsers,
		ApprovedUsers:     d.ApprovedUsers,
		WaitlistUsers:     d.WaitlistUsers,
		PendingUsers:      d.PendingUsers,
		CompaniesByStatus: make(map[string]int, len(d.CompaniesByStatus)),
		TopCities:         make([]credsdk.CityCount, 0, len(d.TopCities)),
		RecentWaitlisted:  toCompanyInfos(d.RecentWaitlisted),
	}
	for s, n := range d.CompaniesByStatus {
		resp.CompaniesByStatus[string(s)] = n
	}
	for _, c := range d.TopCities {
		resp.TopCities = append(resp.TopCities, credsdk.CityCount{City: c.City, Count: c.Count})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleListCompanies handles GET /v1/admin/companies
//
//	@Summary		List companies
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"waitlist, approved or rejected"
//	@Success		200		{object}	credsdk.ListCompaniesResponse
//	@Failure		400		{object}	credsdk.APIError	"validation_error"
//	@Router			/v1/admin/companies [get].
func (h *AdminHandler) HandleListCompanies(w http.ResponseWriter, r *http.Request) {
	var status *domain.CompanyStatus
	if s := httpx.FormString(r, "status"); s != "" {
		st := domain.CompanyStatus(s)
		status = &st
	}

	cs, err := h.Companies.List(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, credsdk.ListCompaniesResponse{Companies: toCompanyInfos(cs)})
}

// HandleAddCompany handles POST /v1/admin/companies
//
//	@Summary		Add a company
//	@Description	Companies added by an operator are approved unless a status is given.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			name		formData	string	true	"Display name"
//	@Param			domain		formData	string	true	"Email domain"
//	@Param			status		formData	string	false	"Initial status"
//	@Param			description	formData	string	false	"Description"
//	@Param			website		formData	string	false	"Website URL"
//	@Success		201			{object}	credsdk.CompanyInfo
//	@Failure		400			{object}	credsdk.APIError	"validation_error"
//	@Failure		409			{object}	credsdk.APIError	"company_exists"
//	@Router			/v1/admin/companies [post].
func (h *AdminHandler) HandleAddCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok || !parseForm(w, r) {
		return
	}

	c, err := h.Companies.Add(r.Context(), service.AddCompanyInput{
		Name:        httpx.FormString(r, "name"),
		Domain:      httpx.FormString(r, "domain"),
		Status:      domain.CompanyStatus(httpx.FormString(r, "status")),
		Description: httpx.FormString(r, "description"),
		Website:     httpx.FormString(r, "website"),
	}, claims.Subject)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCompanyInfo(c))
}

// HandleGetCompany handles GET /v1/admin/companies/{id}
//
//	@Summary		Get a company
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Company ID (ULID)"
//	@Success		200	{object}	credsdk.CompanyInfo
//	@Failure		404	{object}	credsdk.APIError	"company_not_found"
//	@Router			/v1/admin/companies/{id} [get].
func (h *AdminHandler) HandleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	c, err := h.Companies.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCompanyInfo(c))
}

// HandleDeleteCompany handles DELETE /v1/admin/companies/{id}
//
//	@Summary		Delete a company
//	@Description	Users of the company are kept and lose their company link.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Company ID (ULID)"
//	@Success		204
//	@Failure		404	{object}	credsdk.APIError	"company_not_found"
//	@Router			/v1/admin/companies/{id} [delete].
func (h *AdminHandler) HandleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	if err := h.Companies.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleApproveCompany handles POST /v1/admin/companies/{id}/approve
//
//	@Summary		Approve a company
//	@Description	Approves the company and, in the same transaction, every verified user waiting on it.
//	@Description	Each of those users is sent an approval email. Approving an approved company is a no-op.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Company ID (ULID)"
//	@Success		200	{object}	credsdk.ApproveCompanyResponse
//	@Failure		404	{object}	credsdk.APIError	"company_not_found"
//	@Failure		409	{object}	credsdk.APIError	"invalid_transition"
//	@Router			/v1/admin/companies/{id}/approve [post].
func (h *AdminHandler) HandleApproveCompany(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrReject(w, r)
	if !ok {
		return
	}
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	res, err := h.Companies.Approve(r.Context(), id, claims.Subject)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	msg := fmt.Sprintf("Company %s is already approved.", res.Company.Name)
	if res.Transitioned {
		msg = fmt.Sprintf("Successfully approved company: %s. %d users approved.", res.Company.Name, len(res.Propagated))
	}
	httpx.WriteJSON(w, http.StatusOK, credsdk.ApproveCompanyResponse{
		Company:             toCompanyInfo(res.Company),
		Transitioned:        res.Transitioned,
		ApprovedUsers:       len(res.Propagated),
		NotificationsQueued: res.Notified,
		Message:             msg,
	})
}

// HandleRejectCompany handles POST /v1/admin/companies/{id}/reject
//
//	@Summary		Reject a company
//	@Description	Rejection is final. Users of the company keep their status.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Company ID (ULID)"
//	@Success		200	{object}	credsdk.CompanyInfo
//	@Failure		409	{object}	credsdk.APIError	"invalid_transition"
//	@Router			/v1/admin/companies/{id}/reject [post].
func (h *AdminHandler) HandleRejectCompany(w http.ResponseWriter, r *http.Request) {
	h.companyTransition(w, r, h.Companies.Reject)
}

// HandleWaitlistCompany handles POST /v1/admin/companies/{id}/waitlist
//
//	@Summary		Move a company back to the waitlist
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Company ID (ULID)"
//	@Success		200	{object}	credsdk.CompanyInfo
//	@Failure		409	{object}	credsdk.APIError	"invalid_transition"
//	@Router			/v1/admin/companies/{id}/waitlist [post].
func (h *AdminHandler) HandleWaitlistCompany(w http.ResponseWriter, r *http.Request) {
	h.companyTransition(w, r, h.Companies.MoveToWaitlist)
}

func (h *AdminHandler) companyTransition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id string) (domain.Company, error),
) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	c, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCompanyInfo(c))
}

// HandleListUsers handles GET /v1/admin/users
//
//	@Summary		List users
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status		query		string	false	"pending, waitlist, approved, rejected or suspended"
//	@Param			company_id	query		string	false	"Company ID"
//	@Param			verified	query		bool	false	"Email verified"
//	@Param			limit		query		int		false	"Maximum rows"
//	@Success		200			{object}	credsdk.ListUsersResponse
//	@Failure		400			{object}	credsdk.APIError	"validation_error"
//	@Router			/v1/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	f := domain.UserFilter{
		Status:    domain.UserStatus(httpx.FormString(r, "status")),
		CompanyID: httpx.FormString(r, "company_id"),
	}
	if v := httpx.FormString(r, "verified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeFieldError(w, "verified", "Verified must be true or false.")
			return
		}
		f.Verified = &b
	}
	if v := httpx.FormString(r, "limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeFieldError(w, "limit", "Limit must be a positive number.")
			return
		}
		f.Limit = n
	}

	us, err := h.Users.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, credsdk.ListUsersResponse{Users: toUserInfos(us)})
}

// HandleSetUserStatus handles POST /v1/admin/users/{id}/status
//
//	@Summary		Set a user's status
//	@Description	The admin approve, reject and suspend actions. Suspending also deactivates the account.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			id		path		string	true	"User ID (ULID)"
//	@Param			status	formData	string	true	"New status"
//	@Success		200		{object}	credsdk.UserInfo
//	@Failure		400		{object}	credsdk.APIError	"validation_error"
//	@Failure		404		{object}	credsdk.APIError	"user_not_found"
//	@Router			/v1/admin/users/{id}/status [post].
func (h *AdminHandler) HandleSetUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		credsdk.NewAPIError(http.StatusNotFound, credsdk.ErrorCodeUserNotFound, "User not found.").WriteError(w)
		return
	}
	if !parseForm(w, r) {
		return
	}

	u, err := h.Users.SetStatus(r.Context(), id.String(), domain.UserStatus(httpx.FormString(r, "status")))
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserInfo(u))
}

// companyID validates the {id} path value. Malformed ids are reported as
// not found.
func companyID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, service.ErrCompanyNotFound, "")
		return "", false
	}
	return id.String(), true
}
