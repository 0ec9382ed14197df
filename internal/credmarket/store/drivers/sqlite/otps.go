package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store/drivers/sqlite/gen"
)

type otpsRepo struct {
	q *gen.Queries
}

func (r *otpsRepo) CreateOTP(ctx context.Context, o domain.OTP) error {
	err := r.q.CreateOTP(ctx, gen.CreateOTPParams{
		ID:        o.ID,
		UserID:    o.UserID,
		Code:      o.Code,
		CreatedAt: utc(o.CreatedAt),
		ExpiresAt: utc(o.ExpiresAt),
	})
	return mapUnique(err)
}

func (r *otpsRepo) GetLatestUnusedOTP(ctx context.Context, userID, code string) (domain.OTP, error) {
	row, err := r.q.GetLatestUnusedOTP(ctx, gen.GetLatestUnusedOTPParams{UserID: userID, Code: code})
	if err != nil {
		return domain.OTP{}, mapNotFound(err)
	}
	return mapOTP(row), nil
}

func (r *otpsRepo) MarkOTPUsed(ctx context.Context, id string) (bool, error) {
	n, err := r.q.MarkOTPUsed(ctx, id)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *otpsRepo) ListOTPsForUser(ctx context.Context, userID string) ([]domain.OTP, error) {
	rows, err := r.q.ListOTPsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OTP, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapOTP(row))
	}
	return out, nil
}

func (r *otpsRepo) CountExpiredUnused(ctx context.Context, now time.Time) (int, error) {
	n, err := r.q.CountExpiredUnusedOTPs(ctx, utc(now))
	return int(n), err
}

func mapOTP(row gen.OtpVerification) domain.OTP {
	return domain.OTP{
		ID:        row.ID,
		UserID:    row.UserID,
		Code:      row.Code,
		CreatedAt: row.CreatedAt.UTC(),
		ExpiresAt: row.ExpiresAt.UTC(),
		Used:      row.Used,
	}
}
