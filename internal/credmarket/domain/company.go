package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type CompanyStatus string

const (
	CompanyWaitlist CompanyStatus = "waitlist"
	CompanyApproved CompanyStatus = "approved"
	CompanyRejected CompanyStatus = "rejected"
)

// ErrInvalidTransition is returned for a company status change outside the
// permitted set.
var ErrInvalidTransition = errors.New("domain: invalid status transition")

// Valid reports whether s is a known company status.
func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyWaitlist, CompanyApproved, CompanyRejected:
		return true
	}
	return false
}

// companyTransitions lists every permitted (from, to) pair. Rejected has no
// way out; deletion is the only admin remedy.
var companyTransitions = map[CompanyStatus][]CompanyStatus{
	CompanyWaitlist: {CompanyApproved, CompanyRejected},
	CompanyApproved: {CompanyWaitlist},
}

// CheckTransition validates a status change. Same-status is reported as a
// no-op rather than an error.
func (s CompanyStatus) CheckTransition(to CompanyStatus) (noop bool, err error) {
	if s == to {
		return true, nil
	}
	for _, allowed := range companyTransitions[s] {
		if allowed == to {
			return false, nil
		}
	}
	return false, ErrInvalidTransition
}

type Company struct {
	ID          string
	Name        string
	Domain      string // unique, lower-case
	Status      CompanyStatus
	Description string
	Website     string
	AddedBy     *string // user id of the operator who created it, if any
	ApprovedBy  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ApprovedAt  *time.Time
}

// IsApproved reports whether users from this company may be fully approved.
func (c Company) IsApproved() bool { return c.Status == CompanyApproved }

// DisplayNameForDomain derives a company name from its domain by title-casing
// the first label: "newco.com" becomes "Newco".
func DisplayNameForDomain(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return domain
	}
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + strings.ToLower(label[size:])
}

// NormalizeDomain trims and lower-cases a domain.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
