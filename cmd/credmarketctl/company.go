package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/spf13/cobra"
)

func newApproveCompanyCmd(e *env) *cobra.Command {
	var approver string

	cmd := &cobra.Command{
		Use:   "approve-company <domain>",
		Short: "Approve a waitlisted company and notify its verified users",
		Example: "  credmarketctl approve-company tcs.com\n" +
			"  credmarketctl approve-company tcs.com --approver ops@credmarket.com",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if err := e.open(ctx); err != nil {
				return err
			}
			defer e.close()

			approverID, err := e.lookupApprover(ctx, approver)
			if err != nil {
				return err
			}

			d := domain.NormalizeDomain(args[0])
			res, err := e.services.Companies.ApproveByDomain(ctx, d, approverID)
			if errors.Is(err, service.ErrCompanyNotFound) {
				return fmt.Errorf("company with domain %q not found", d)
			}
			if err != nil {
				return err
			}

			if !res.Transitioned {
				fmt.Fprintf(out, "Company %q is already approved\n", res.Company.Name)
				return nil
			}

			total := len(res.Propagated)
			fmt.Fprintf(out, "Approved company: %s (%s)\n", res.Company.Name, res.Company.Domain)
			fmt.Fprintf(out, "Found %d waitlisted users\n", total)
			if total == 0 {
				fmt.Fprintln(out, "No waitlisted users to notify")
			}

			// Wait for the queued approval emails before reporting.
			e.deps.Dispatcher.Stop()
			sent := e.deps.Dispatcher.Stats().Sent

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Company approved!")
			fmt.Fprintf(out, "Updated %d users to approved status\n", total)
			fmt.Fprintf(out, "Sent %d/%d approval emails\n", sent, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&approver, "approver", "", "email of the staff account recorded as approver")
	return cmd
}

func newRejectCompanyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "reject-company <domain>",
		Short: "Reject a waitlisted company",
		Long:  "Reject a waitlisted company. Rejection is final and leaves the company's users untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.transitionCompany(cmd, args[0], domain.CompanyRejected)
		},
	}
}

func newWaitlistCompanyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "waitlist-company <domain>",
		Short: "Move an approved company back to the waitlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.transitionCompany(cmd, args[0], domain.CompanyWaitlist)
		},
	}
}

// transitionCompany rejects or re-waitlists the company for rawDomain.
func (e *env) transitionCompany(cmd *cobra.Command, rawDomain string, to domain.CompanyStatus) error {
	ctx := cmd.Context()
	if err := e.open(ctx); err != nil {
		return err
	}
	defer e.close()

	d := domain.NormalizeDomain(rawDomain)
	c, err := e.services.Companies.FindByDomain(ctx, d, nil)
	if errors.Is(err, service.ErrCompanyNotFound) {
		return fmt.Errorf("company with domain %q not found", d)
	}
	if err != nil {
		return err
	}

	var updated domain.Company
	switch to {
	case domain.CompanyRejected:
		updated, err = e.services.Companies.Reject(ctx, c.ID)
	default:
		updated, err = e.services.Companies.MoveToWaitlist(ctx, c.ID)
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return fmt.Errorf("company %q cannot move from %s to %s", c.Name, c.Status, to)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Company %s (%s): %s -> %s\n", updated.Name, updated.Domain, c.Status, updated.Status)
	return nil
}

// lookupApprover resolves --approver to a staff user id. Empty means no
// approver is recorded.
func (e *env) lookupApprover(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", nil
	}
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", fmt.Errorf("approver: %w", err)
	}
	u, err := e.deps.Store.Users().GetUserByEmail(ctx, normalized)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("approver %q not found", email)
	}
	if err != nil {
		return "", err
	}
	if !u.Staff {
		return "", fmt.Errorf("approver %q is not a staff account", email)
	}
	return u.ID, nil
}
