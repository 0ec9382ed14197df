package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, city, area,
	latitude, longitude, display_name, show_real_name, notify_messages, notify_listings,
	company_id, status, email_verified, active, staff, mfa_secret, mfa_enabled_at,
	created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	var status string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.City, &u.Area,
		&u.Latitude, &u.Longitude, &u.DisplayName, &u.ShowRealName, &u.NotifyMessages, &u.NotifyListings,
		&u.CompanyID, &status, &u.EmailVerified, &u.Active, &u.Staff, &u.MFASecret, &u.MFAEnabledAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Status = domain.UserStatus(status)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func collectUsers(rows pgx.Rows, err error) ([]domain.User, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, phone, city, area,
			latitude, longitude, display_name, show_real_name, notify_messages,
			notify_listings, company_id, status, email_verified, active, staff,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.City, u.Area,
		u.Latitude, u.Longitude, u.DisplayName, u.ShowRealName, u.NotifyMessages,
		u.NotifyListings, u.CompanyID, string(u.Status), u.EmailVerified, u.Active, u.Staff,
		u.CreatedAt, u.UpdatedAt,
	)
	return mapUnique(err)
}

func (r *usersRepo) MarkVerifiedAndAdvance(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.db.Exec(ctx, `
		UPDATE users
		SET email_verified = TRUE,
		    status = CASE WHEN status = 'pending' THEN 'approved' ELSE status END,
		    updated_at = $1
		WHERE id = $2`, now, id))
}

func (r *usersRepo) ApproveVerifiedWaitlisted(
	ctx context.Context,
	companyID string,
	now time.Time,
) ([]domain.User, error) {
	return collectUsers(r.db.Query(ctx, `
		UPDATE users
		SET status = 'approved', updated_at = $1
		WHERE company_id = $2 AND status = 'waitlist' AND email_verified
		RETURNING `+userColumns, now, companyID))
}

func (r *usersRepo) SetUserStatus(
	ctx context.Context,
	id string,
	status domain.UserStatus,
	active bool,
	now time.Time,
) error {
	return expectRow(r.db.Exec(ctx,
		`UPDATE users SET status = $1, active = $2, updated_at = $3 WHERE id = $4`,
		string(status), active, now, id))
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	return expectRow(r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, city = $4, area = $5,
		    latitude = $6, longitude = $7, display_name = $8, show_real_name = $9,
		    notify_messages = $10, notify_listings = $11, updated_at = $12
		WHERE id = $13`,
		u.FirstName, u.LastName, u.Phone, u.City, u.Area,
		u.Latitude, u.Longitude, u.DisplayName, u.ShowRealName,
		u.NotifyMessages, u.NotifyListings, u.UpdatedAt, u.ID))
}

func (r *usersRepo) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	return collectUsers(r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR company_id = $2)
		  AND ($3::boolean IS NULL OR email_verified = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`,
		nullIfEmpty(string(f.Status)), nullIfEmpty(f.CompanyID), f.Verified, limitArg(f.Limit)))
}

func (r *usersRepo) CountUsersByStatus(ctx context.Context) (map[domain.UserStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM users GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.UserStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[domain.UserStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *usersRepo) TopCities(ctx context.Context, limit int) ([]domain.CityCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT city, COUNT(*) AS n FROM users
		WHERE city <> ''
		GROUP BY city
		ORDER BY n DESC, city
		LIMIT $1`, limitArg(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CityCount
	for rows.Next() {
		var cc domain.CityCount
		if err := rows.Scan(&cc.City, &cc.Count); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func (r *usersRepo) CountUnverifiedBefore(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE NOT email_verified AND created_at < $1`, t).Scan(&n)
	return n, err
}

func (r *usersRepo) SetMFASecret(ctx context.Context, id string, secret string, now time.Time) error {
	return expectRow(r.db.Exec(ctx,
		`UPDATE users SET mfa_secret = $1, mfa_enabled_at = NULL, updated_at = $2 WHERE id = $3`,
		secret, now, id))
}

func (r *usersRepo) EnableMFA(ctx context.Context, id string, at time.Time) error {
	return expectRow(r.db.Exec(ctx,
		`UPDATE users SET mfa_enabled_at = $1, updated_at = $1 WHERE id = $2 AND mfa_secret IS NOT NULL`,
		at, id))
}

func (r *usersRepo) DisableMFA(ctx context.Context, id string, now time.Time) error {
	return expectRow(r.db.Exec(ctx,
		`UPDATE users SET mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = $1 WHERE id = $2`,
		now, id))
}
