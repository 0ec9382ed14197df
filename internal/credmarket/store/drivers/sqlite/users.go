package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:             u.ID,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		City:           u.City,
		Area:           u.Area,
		Latitude:       mapOptionalFloat(u.Latitude),
		Longitude:      mapOptionalFloat(u.Longitude),
		DisplayName:    u.DisplayName,
		ShowRealName:   u.ShowRealName,
		NotifyMessages: u.NotifyMessages,
		NotifyListings: u.NotifyListings,
		CompanyID:      mapOptionalString(u.CompanyID),
		Status:         string(u.Status),
		EmailVerified:  u.EmailVerified,
		Active:         u.Active,
		Staff:          u.Staff,
		CreatedAt:      utc(u.CreatedAt),
		UpdatedAt:      utc(u.UpdatedAt),
	})
	return mapUnique(err)
}

func (r *usersRepo) MarkVerifiedAndAdvance(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.q.MarkUserVerifiedAndAdvance(ctx, utc(now), id))
}

// ApproveVerifiedWaitlisted reads the matching rows then flips them with the
// same predicate. Callers run this inside a transaction, and sqlite's single
// writer keeps the two statements consistent.
func (r *usersRepo) ApproveVerifiedWaitlisted(
	ctx context.Context,
	companyID string,
	now time.Time,
) ([]domain.User, error) {
	cid := mapStringNull(companyID)

	rows, err := r.q.ListVerifiedWaitlistedUsers(ctx, cid)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if _, err := r.q.ApproveVerifiedWaitlistedUsers(ctx, gen.ApproveVerifiedWaitlistedUsersParams{
		UpdatedAt: utc(now),
		CompanyID: cid,
	}); err != nil {
		return nil, err
	}

	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		u := mapUser(row)
		u.Status = domain.UserApproved
		u.UpdatedAt = utc(now)
		out = append(out, u)
	}
	return out, nil
}

func (r *usersRepo) SetUserStatus(
	ctx context.Context,
	id string,
	status domain.UserStatus,
	active bool,
	now time.Time,
) error {
	return expectRow(r.q.SetUserStatus(ctx, gen.SetUserStatusParams{
		Status:    string(status),
		Active:    active,
		UpdatedAt: utc(now),
		ID:        id,
	}))
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	return expectRow(r.q.UpdateUserProfile(ctx, gen.UpdateUserProfileParams{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		City:           u.City,
		Area:           u.Area,
		Latitude:       mapOptionalFloat(u.Latitude),
		Longitude:      mapOptionalFloat(u.Longitude),
		DisplayName:    u.DisplayName,
		ShowRealName:   u.ShowRealName,
		NotifyMessages: u.NotifyMessages,
		NotifyListings: u.NotifyListings,
		UpdatedAt:      utc(u.UpdatedAt),
		ID:             u.ID,
	}))
}

func (r *usersRepo) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	var verified sql.NullBool
	if f.Verified != nil {
		verified = sql.NullBool{Bool: *f.Verified, Valid: true}
	}
	rows, err := r.q.ListUsers(ctx, gen.ListUsersParams{
		Status:    mapStringNull(string(f.Status)),
		CompanyID: mapStringNull(f.CompanyID),
		Verified:  verified,
		Lim:       clampLimit(f.Limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, nil
}

func (r *usersRepo) CountUsersByStatus(ctx context.Context) (map[domain.UserStatus]int, error) {
	rows, err := r.q.CountUsersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.UserStatus]int, len(rows))
	for _, row := range rows {
		out[domain.UserStatus(row.Status)] = int(row.N)
	}
	return out, nil
}

func (r *usersRepo) TopCities(ctx context.Context, limit int) ([]domain.CityCount, error) {
	rows, err := r.q.TopCities(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]domain.CityCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CityCount{City: row.City, Count: int(row.N)})
	}
	return out, nil
}

func (r *usersRepo) CountUnverifiedBefore(ctx context.Context, t time.Time) (int, error) {
	n, err := r.q.CountUnverifiedBefore(ctx, utc(t))
	return int(n), err
}

func (r *usersRepo) SetMFASecret(ctx context.Context, id string, secret string, now time.Time) error {
	return expectRow(r.q.SetUserMFASecret(ctx, gen.SetUserMFASecretParams{
		MfaSecret: mapStringNull(secret),
		UpdatedAt: utc(now),
		ID:        id,
	}))
}

func (r *usersRepo) EnableMFA(ctx context.Context, id string, at time.Time) error {
	return expectRow(r.q.EnableUserMFA(ctx, gen.EnableUserMFAParams{
		MfaEnabledAt: sql.NullTime{Time: utc(at), Valid: true},
		UpdatedAt:    utc(at),
		ID:           id,
	}))
}

func (r *usersRepo) DisableMFA(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.q.DisableUserMFA(ctx, utc(now), id))
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:             row.ID,
		Email:          row.Email,
		PasswordHash:   row.PasswordHash,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Phone:          row.Phone,
		City:           row.City,
		Area:           row.Area,
		Latitude:       mapNullFloatPtr(row.Latitude),
		Longitude:      mapNullFloatPtr(row.Longitude),
		DisplayName:    row.DisplayName,
		ShowRealName:   row.ShowRealName,
		NotifyMessages: row.NotifyMessages,
		NotifyListings: row.NotifyListings,
		CompanyID:      mapNullStringPtr(row.CompanyID),
		Status:         domain.UserStatus(row.Status),
		EmailVerified:  row.EmailVerified,
		Active:         row.Active,
		Staff:          row.Staff,
		MFASecret:      mapNullStringPtr(row.MfaSecret),
		MFAEnabledAt:   mapNullTimePtr(row.MfaEnabledAt),
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}
