package http

import (
	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
)

func toUserInfo(u domain.User) credsdk.UserInfo {
	info := credsdk.UserInfo{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		DisplayName:      u.DisplayName,
		PublicName:       u.PublicName(),
		Phone:            u.Phone,
		City:             u.City,
		Area:             u.Area,
		Latitude:         u.Latitude,
		Longitude:        u.Longitude,
		ShowRealName:     u.ShowRealName,
		NotifyMessages:   u.NotifyMessages,
		NotifyListings:   u.NotifyListings,
		Status:           string(u.Status),
		EmailVerified:    u.EmailVerified,
		Active:           u.Active,
		Staff:            u.Staff,
		MFAEnabled:       u.MFAEnabled(),
		CanCreateListing: u.CanCreateListing(),
		CreatedAt:        u.CreatedAt,
	}
	if u.CompanyID != nil {
		info.CompanyID = *u.CompanyID
	}
	return info
}

func toUserInfos(us []domain.User) []credsdk.UserInfo {
	out := make([]credsdk.UserInfo, 0, len(us))
	for _, u := range us {
		out = append(out, toUserInfo(u))
	}
	return out
}

func toCompanyInfo(c domain.Company) credsdk.CompanyInfo {
	return credsdk.CompanyInfo{
		ID:          c.ID,
		Name:        c.Name,
		Domain:      c.Domain,
		Status:      string(c.Status),
		Description: c.Description,
		Website:     c.Website,
		ApprovedAt:  c.ApprovedAt,
		CreatedAt:   c.CreatedAt,
	}
}

func toCompanyInfos(cs []domain.Company) []credsdk.CompanyInfo {
	out := make([]credsdk.CompanyInfo, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCompanyInfo(c))
	}
	return out
}
