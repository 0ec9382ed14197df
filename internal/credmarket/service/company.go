package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/events"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/metrics"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/idx"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// ResolutionKind tells a caller whether ResolveOrCreate found an existing
// company or made a new one.
type ResolutionKind int

const (
	ResolutionFound ResolutionKind = iota + 1
	ResolutionCreated
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolutionFound:
		return "found"
	case ResolutionCreated:
		return "created"
	default:
		return "unknown"
	}
}

type Resolution struct {
	Kind    ResolutionKind
	Company domain.Company
}

func (r Resolution) Created() bool { return r.Kind == ResolutionCreated }

// ApprovalResult describes what an approval changed. Transitioned is false and
// Propagated nil when the company was already approved.
type ApprovalResult struct {
	Company      domain.Company
	Transitioned bool
	Propagated   []domain.User
	// Notified counts approval emails accepted by the queue.
	Notified int
}

type AddCompanyInput struct {
	Name        string               `form:"name" validate:"required,max=200"`
	Domain      string               `form:"domain" validate:"required,max=255,contains=."`
	Status      domain.CompanyStatus `form:"status" validate:"omitempty,oneof=waitlist approved rejected"`
	Description string               `form:"description" validate:"max=2000"`
	Website     string               `form:"website" validate:"omitempty,url"`
}

type CompanyService struct {
	Store    store.Store
	Notifier Notifier
	Events   events.Publisher
	// SiteURL prefixes links in approval emails.
	SiteURL string
	Clock   Clock
}

// ResolveOrCreate finds the company for an email domain or creates a
// waitlisted one. Approved companies win over waitlisted ones; a company in
// any other status is still returned as found.
func (s *CompanyService) ResolveOrCreate(ctx context.Context, emailDomain string) (Resolution, error) {
	return s.resolveOrCreate(ctx, s.Store, emailDomain)
}

// resolveOrCreate runs against st so signup can call it inside its
// transaction. A unique violation on insert means another request created the
// company first; the row is re-read and reported as found.
func (s *CompanyService) resolveOrCreate(ctx context.Context, st store.Store, emailDomain string) (Resolution, error) {
	d := domain.NormalizeDomain(emailDomain)
	if d == "" {
		return Resolution{}, invalid("email", "Enter a valid email address.")
	}
	companies := st.Companies()

	for _, status := range []domain.CompanyStatus{domain.CompanyApproved, domain.CompanyWaitlist} {
		c, err := companies.GetCompanyByDomainAndStatus(ctx, d, status)
		if err == nil {
			return Resolution{Kind: ResolutionFound, Company: c}, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return Resolution{}, fmt.Errorf("lookup company %s: %w", d, err)
		}
	}

	if c, err := companies.GetCompanyByDomain(ctx, d); err == nil {
		return Resolution{Kind: ResolutionFound, Company: c}, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return Resolution{}, fmt.Errorf("lookup company %s: %w", d, err)
	}

	now := s.Clock.now()
	c := domain.Company{
		ID:        idx.NewAt(now).String(),
		Name:      domain.DisplayNameForDomain(d),
		Domain:    d,
		Status:    domain.CompanyWaitlist,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := companies.CreateCompany(ctx, c)
	switch {
	case err == nil:
		slogx.FromContext(ctx).Info("company created on waitlist", slog.String("domain", d), slog.String("company_id", c.ID))
		return Resolution{Kind: ResolutionCreated, Company: c}, nil
	case errors.Is(err, store.ErrAlreadyExists):
		existing, ferr := companies.GetCompanyByDomain(ctx, d)
		if ferr != nil {
			return Resolution{}, fmt.Errorf("refetch company %s after conflict: %w", d, ferr)
		}
		slogx.FromContext(ctx).Debug("company created concurrently, using existing row", slog.String("domain", d))
		return Resolution{Kind: ResolutionFound, Company: existing}, nil
	default:
		return Resolution{}, fmt.Errorf("create company %s: %w", d, err)
	}
}

// GetOrCreateForDomain is an exact-match get-or-create, reporting whether
// the company was created.
func (s *CompanyService) GetOrCreateForDomain(ctx context.Context, d string) (domain.Company, bool, error) {
	c, err := s.Store.Companies().GetCompanyByDomain(ctx, d)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Company{}, false, err
	}

	res, err := s.resolveOrCreate(ctx, s.Store, d)
	if err != nil {
		return domain.Company{}, false, err
	}
	return res.Company, res.Created(), nil
}

// FindByDomain looks a company up by domain, optionally requiring a status.
func (s *CompanyService) FindByDomain(ctx context.Context, d string, status *domain.CompanyStatus) (domain.Company, error) {
	d = domain.NormalizeDomain(d)

	var (
		c   domain.Company
		err error
	)
	if status != nil {
		c, err = s.Store.Companies().GetCompanyByDomainAndStatus(ctx, d, *status)
	} else {
		c, err = s.Store.Companies().GetCompanyByDomain(ctx, d)
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.Company{}, ErrCompanyNotFound
	}
	return c, err
}

func (s *CompanyService) Get(ctx context.Context, id string) (domain.Company, error) {
	c, err := s.Store.Companies().GetCompanyByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Company{}, ErrCompanyNotFound
	}
	return c, err
}

func (s *CompanyService) List(ctx context.Context, status *domain.CompanyStatus) ([]domain.Company, error) {
	if status != nil && !status.Valid() {
		return nil, invalid("status", "Unknown company status.")
	}
	return s.Store.Companies().ListCompanies(ctx, status, 0)
}

// Approve moves a waitlisted company to approved and, in the same
// transaction, approves every member who already verified their email.
// Approving an approved company changes nothing. Approval emails go to the
// notification queue after commit; delivery is best effort and a failed send
// never undoes the approval.
func (s *CompanyService) Approve(ctx context.Context, companyID, approverID string) (ApprovalResult, error) {
	log := slogx.FromContext(ctx)

	var res ApprovalResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Companies().GetCompanyByID(ctx, companyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCompanyNotFound
			}
			return fmt.Errorf("load company: %w", err)
		}

		noop, err := c.Status.CheckTransition(domain.CompanyApproved)
		if err != nil {
			return fmt.Errorf("approve %s from %s: %w", c.Domain, c.Status, err)
		}
		if noop {
			res.Company = c
			return nil
		}

		// 1. Flip the status, guarded on the status we just read.
		now := s.Clock.now()
		var approver *string
		if approverID != "" {
			approver = ptr(approverID)
		}
		flipped, err := tx.Companies().TransitionCompanyStatus(ctx, c.ID, c.Status, domain.CompanyApproved, approver, &now, now)
		if err != nil {
			return fmt.Errorf("transition company: %w", err)
		}
		if !flipped {
			// Someone else changed it between the read and the update.
			current, err := tx.Companies().GetCompanyByID(ctx, c.ID)
			if err != nil {
				return fmt.Errorf("reload company: %w", err)
			}
			res.Company = current
			if current.Status == domain.CompanyApproved {
				return nil
			}
			return fmt.Errorf("approve %s from %s: %w", current.Domain, current.Status, domain.ErrInvalidTransition)
		}

		c.Status = domain.CompanyApproved
		c.ApprovedBy = approver
		c.ApprovedAt = &now
		c.UpdatedAt = now
		res.Company = c
		res.Transitioned = true

		// 2. Propagate to verified waitlisted members.
		users, err := propagateApproval(ctx, tx, c.ID, now)
		if err != nil {
			return err
		}
		res.Propagated = users
		return nil
	})
	if err != nil {
		return ApprovalResult{}, err
	}

	if !res.Transitioned {
		log.Info("company already approved", slog.String("domain", res.Company.Domain))
		return res, nil
	}

	metrics.CompanyTransitionsTotal.WithLabelValues(string(domain.CompanyApproved)).Inc()
	metrics.PropagatedApprovalsTotal.Add(float64(len(res.Propagated)))
	log.Info("company approved",
		slog.String("company_id", res.Company.ID),
		slog.String("domain", res.Company.Domain),
		slog.Int("propagated", len(res.Propagated)),
	)

	// 3. Best effort from here on.
	res.Notified = s.notifyApproved(ctx, res.Company, res.Propagated)

	evs := []events.Event{
		events.New(events.CompanyApproved, res.Company.ID, res.Company.UpdatedAt, map[string]any{
			"domain":     res.Company.Domain,
			"propagated": len(res.Propagated),
		}),
	}
	for _, u := range res.Propagated {
		evs = append(evs, events.New(events.UserApproved, u.ID, res.Company.UpdatedAt, map[string]any{
			"company_id": res.Company.ID,
			"reason":     "company_approved",
		}))
	}
	publish(ctx, s.Events, evs...)

	return res, nil
}

// ApproveByDomain resolves the domain and approves it.
func (s *CompanyService) ApproveByDomain(ctx context.Context, d, approverID string) (ApprovalResult, error) {
	c, err := s.FindByDomain(ctx, d, nil)
	if err != nil {
		return ApprovalResult{}, err
	}
	return s.Approve(ctx, c.ID, approverID)
}

// Reject closes a waitlisted company. Its users are left as they are.
func (s *CompanyService) Reject(ctx context.Context, companyID string) (domain.Company, error) {
	c, err := s.transition(ctx, companyID, domain.CompanyRejected)
	if err != nil {
		return domain.Company{}, err
	}
	publish(ctx, s.Events, events.New(events.CompanyRejected, c.ID, c.UpdatedAt, map[string]any{"domain": c.Domain}))
	return c, nil
}

// MoveToWaitlist puts an approved company back under review. Users keep
// their status.
func (s *CompanyService) MoveToWaitlist(ctx context.Context, companyID string) (domain.Company, error) {
	c, err := s.transition(ctx, companyID, domain.CompanyWaitlist)
	if err != nil {
		return domain.Company{}, err
	}
	publish(ctx, s.Events, events.New(events.CompanyWaitlisted, c.ID, c.UpdatedAt, map[string]any{"domain": c.Domain}))
	return c, nil
}

// transition applies a non-approving status change. Approval has its own
// path because it propagates.
func (s *CompanyService) transition(ctx context.Context, companyID string, to domain.CompanyStatus) (domain.Company, error) {
	var out domain.Company
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Companies().GetCompanyByID(ctx, companyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCompanyNotFound
			}
			return fmt.Errorf("load company: %w", err)
		}

		noop, err := c.Status.CheckTransition(to)
		if err != nil {
			return fmt.Errorf("move %s from %s to %s: %w", c.Domain, c.Status, to, err)
		}
		if noop {
			out = c
			return nil
		}

		now := s.Clock.now()
		ok, err := tx.Companies().TransitionCompanyStatus(ctx, c.ID, c.Status, to, nil, nil, now)
		if err != nil {
			return fmt.Errorf("transition company: %w", err)
		}
		if !ok {
			return fmt.Errorf("move %s to %s: %w", c.Domain, to, domain.ErrInvalidTransition)
		}

		c.Status = to
		c.ApprovedBy = nil
		c.ApprovedAt = nil
		c.UpdatedAt = now
		out = c
		return nil
	})
	if err != nil {
		return domain.Company{}, err
	}

	metrics.CompanyTransitionsTotal.WithLabelValues(string(to)).Inc()
	slogx.FromContext(ctx).Info("company status changed",
		slog.String("company_id", out.ID),
		slog.String("domain", out.Domain),
		slog.String("status", string(out.Status)),
	)
	return out, nil
}

// Add creates a company from the admin console. Companies added by an
// operator are approved unless a status is given.
func (s *CompanyService) Add(ctx context.Context, in AddCompanyInput, addedBy string) (domain.Company, error) {
	in.Domain = domain.NormalizeDomain(in.Domain)
	if err := validateStruct(in); err != nil {
		return domain.Company{}, err
	}
	if in.Status == "" {
		in.Status = domain.CompanyApproved
	}

	now := s.Clock.now()
	c := domain.Company{
		ID:          idx.NewAt(now).String(),
		Name:        in.Name,
		Domain:      in.Domain,
		Status:      in.Status,
		Description: in.Description,
		Website:     in.Website,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if addedBy != "" {
		c.AddedBy = ptr(addedBy)
	}
	if c.Status == domain.CompanyApproved {
		c.ApprovedBy = c.AddedBy
		c.ApprovedAt = &now
	}

	if err := s.Store.Companies().CreateCompany(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Company{}, ErrCompanyExists
		}
		return domain.Company{}, fmt.Errorf("create company: %w", err)
	}

	publish(ctx, s.Events, events.New(events.CompanyCreated, c.ID, now, map[string]any{
		"domain": c.Domain,
		"status": string(c.Status),
		"source": "admin",
	}))
	return c, nil
}

// Delete removes a company. Its users stay, without a company.
func (s *CompanyService) Delete(ctx context.Context, companyID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Companies().GetCompanyByID(ctx, companyID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}
		return tx.Companies().DeleteCompany(ctx, companyID)
	})
}

// Dashboard gathers the operator overview.
func (s *CompanyService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	users, err := s.Store.Users().CountUsersByStatus(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count users: %w", err)
	}
	companies, err := s.Store.Companies().CountCompaniesByStatus(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count companies: %w", err)
	}
	cities, err := s.Store.Users().TopCities(ctx, 10)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("top cities: %w", err)
	}
	waitlist := domain.CompanyWaitlist
	recent, err := s.Store.Companies().ListCompanies(ctx, &waitlist, 10)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("recent waitlist: %w", err)
	}

	total := 0
	for _, n := range users {
		total += n
	}

	return domain.Dashboard{
		TotalUsers:        total,
		ApprovedUsers:     users[domain.UserApproved],
		WaitlistUsers:     users[domain.UserWaitlist],
		PendingUsers:      users[domain.UserPending],
		CompaniesByStatus: companies,
		TopCities:         cities,
		RecentWaitlisted:  recent,
	}, nil
}
