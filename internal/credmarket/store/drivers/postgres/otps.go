package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/jackc/pgx/v5"
)

const otpColumns = `id, user_id, code, created_at, expires_at, used`

type otpsRepo struct {
	db dbtx
}

func scanOTP(row pgx.Row) (domain.OTP, error) {
	var o domain.OTP
	if err := row.Scan(&o.ID, &o.UserID, &o.Code, &o.CreatedAt, &o.ExpiresAt, &o.Used); err != nil {
		return domain.OTP{}, mapNotFound(err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.ExpiresAt = o.ExpiresAt.UTC()
	return o, nil
}

func (r *otpsRepo) CreateOTP(ctx context.Context, o domain.OTP) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO otp_verifications (id, user_id, code, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5, FALSE)`,
		o.ID, o.UserID, o.Code, o.CreatedAt, o.ExpiresAt)
	return mapUnique(err)
}

func (r *otpsRepo) GetLatestUnusedOTP(ctx context.Context, userID, code string) (domain.OTP, error) {
	return scanOTP(r.db.QueryRow(ctx, `
		SELECT `+otpColumns+` FROM otp_verifications
		WHERE user_id = $1 AND code = $2 AND NOT used
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID, code))
}

func (r *otpsRepo) MarkOTPUsed(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE otp_verifications SET used = TRUE WHERE id = $1 AND NOT used`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *otpsRepo) ListOTPsForUser(ctx context.Context, userID string) ([]domain.OTP, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+otpColumns+` FROM otp_verifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OTP
	for rows.Next() {
		o, err := scanOTP(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *otpsRepo) CountExpiredUnused(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM otp_verifications WHERE NOT used AND expires_at <= $1`, now).Scan(&n)
	return n, err
}
