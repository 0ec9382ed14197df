package credsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Dashboard returns the operator overview.
func (s *Session) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var out DashboardResponse
	if err := s.call(ctx, http.MethodGet, "/v1/admin/dashboard", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCompanies lists companies, optionally by status.
func (s *Session) ListCompanies(ctx context.Context, status string) ([]CompanyInfo, error) {
	var form url.Values
	if status != "" {
		form = url.Values{"status": {status}}
	}

	var out ListCompaniesResponse
	if err := s.call(ctx, http.MethodGet, "/v1/admin/companies", form, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Companies, nil
}

func (s *Session) AddCompany(ctx context.Context, req AddCompanyRequest) (*CompanyInfo, error) {
	var out CompanyInfo
	if err := s.call(ctx, http.MethodPost, "/v1/admin/companies", req.Values(), http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetCompany(ctx context.Context, id string) (*CompanyInfo, error) {
	var out CompanyInfo
	if err := s.call(ctx, http.MethodGet, "/v1/admin/companies/"+url.PathEscape(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteCompany(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, "/v1/admin/companies/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

// ApproveCompany approves a company and every verified, waitlisted user in it.
func (s *Session) ApproveCompany(ctx context.Context, id string) (*ApproveCompanyResponse, error) {
	var out ApproveCompanyResponse
	if err := s.call(ctx, http.MethodPost, "/v1/admin/companies/"+url.PathEscape(id)+"/approve", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RejectCompany(ctx context.Context, id string) (*CompanyInfo, error) {
	return s.companyAction(ctx, id, "reject")
}

func (s *Session) WaitlistCompany(ctx context.Context, id string) (*CompanyInfo, error) {
	return s.companyAction(ctx, id, "waitlist")
}

func (s *Session) companyAction(ctx context.Context, id, action string) (*CompanyInfo, error) {
	var out CompanyInfo
	if err := s.call(ctx, http.MethodPost, "/v1/admin/companies/"+url.PathEscape(id)+"/"+action, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListUsers(ctx context.Context, q UserQuery) ([]UserInfo, error) {
	var out ListUsersResponse
	if err := s.call(ctx, http.MethodGet, "/v1/admin/users", q.Values(), http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// SetUserStatus is the admin approve/reject/suspend action.
func (s *Session) SetUserStatus(ctx context.Context, id, status string) (*UserInfo, error) {
	form := url.Values{"status": {status}}

	var out UserInfo
	if err := s.call(ctx, http.MethodPost, "/v1/admin/users/"+url.PathEscape(id)+"/status", form, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
