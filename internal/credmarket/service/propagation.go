package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/notify"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// propagateApproval approves every waitlisted member of a newly approved
// company who has verified their email. Unverified members are not touched:
// verifying later only advances pending users, so they stay waitlisted until
// an operator approves them individually. st must be the transaction that
// approved the company.
func propagateApproval(ctx context.Context, st store.Store, companyID string, now time.Time) ([]domain.User, error) {
	users, err := st.Users().ApproveVerifiedWaitlisted(ctx, companyID, now)
	if err != nil {
		return nil, fmt.Errorf("propagate approval: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// notifyApproved queues one approval email per propagated user and returns
// how many were accepted. Nothing here can fail the approval.
func (s *CompanyService) notifyApproved(ctx context.Context, c domain.Company, users []domain.User) int {
	n := notifierOrDiscard(s.Notifier)
	log := slogx.FromContext(ctx)

	accepted := 0
	for _, u := range users {
		msg := notify.ApprovalEmail(s.SiteURL, u.Email, u.FirstName, c.Name)
		if n.Submit(msg) {
			accepted++
			continue
		}
		log.Warn("approval email not queued", slog.String("user_id", u.ID))
	}
	return accepted
}
