package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store/drivers/sqlite/gen"
)

type companiesRepo struct {
	q *gen.Queries
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	row, err := r.q.GetCompanyByID(ctx, id)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return mapCompany(row), nil
}

func (r *companiesRepo) GetCompanyByDomain(ctx context.Context, d string) (domain.Company, error) {
	row, err := r.q.GetCompanyByDomain(ctx, d)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return mapCompany(row), nil
}

func (r *companiesRepo) GetCompanyByDomainAndStatus(
	ctx context.Context,
	d string,
	status domain.CompanyStatus,
) (domain.Company, error) {
	row, err := r.q.GetCompanyByDomainAndStatus(ctx, gen.GetCompanyByDomainAndStatusParams{
		Domain: d,
		Status: string(status),
	})
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return mapCompany(row), nil
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	err := r.q.CreateCompany(ctx, gen.CreateCompanyParams{
		ID:          c.ID,
		Name:        c.Name,
		Domain:      c.Domain,
		Status:      string(c.Status),
		Description: c.Description,
		Website:     c.Website,
		AddedBy:     mapOptionalString(c.AddedBy),
		ApprovedBy:  mapOptionalString(c.ApprovedBy),
		CreatedAt:   utc(c.CreatedAt),
		UpdatedAt:   utc(c.UpdatedAt),
		ApprovedAt:  mapOptionalTime(c.ApprovedAt),
	})
	return mapUnique(err)
}

func (r *companiesRepo) TransitionCompanyStatus(
	ctx context.Context,
	id string,
	from, to domain.CompanyStatus,
	approvedBy *string,
	approvedAt *time.Time,
	now time.Time,
) (bool, error) {
	n, err := r.q.TransitionCompanyStatus(ctx, gen.TransitionCompanyStatusParams{
		ToStatus:   string(to),
		ApprovedBy: mapOptionalString(approvedBy),
		ApprovedAt: mapOptionalTime(approvedAt),
		UpdatedAt:  utc(now),
		ID:         id,
		FromStatus: string(from),
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *companiesRepo) DeleteCompany(ctx context.Context, id string) error {
	return r.q.DeleteCompany(ctx, id)
}

func (r *companiesRepo) ListCompanies(
	ctx context.Context,
	status *domain.CompanyStatus,
	limit int,
) ([]domain.Company, error) {
	var st sql.NullString
	if status != nil {
		st = sql.NullString{String: string(*status), Valid: true}
	}
	rows, err := r.q.ListCompanies(ctx, gen.ListCompaniesParams{Status: st, Lim: clampLimit(limit)})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Company, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCompany(row))
	}
	return out, nil
}

func (r *companiesRepo) CountCompaniesByStatus(ctx context.Context) (map[domain.CompanyStatus]int, error) {
	rows, err := r.q.CountCompaniesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.CompanyStatus]int, len(rows))
	for _, row := range rows {
		out[domain.CompanyStatus(row.Status)] = int(row.N)
	}
	return out, nil
}

// clampLimit maps "no limit" (<= 0) to sqlite's -1.
func clampLimit(limit int) int64 {
	if limit <= 0 {
		return -1
	}
	return int64(limit)
}

func mapCompany(row gen.Company) domain.Company {
	return domain.Company{
		ID:          row.ID,
		Name:        row.Name,
		Domain:      row.Domain,
		Status:      domain.CompanyStatus(row.Status),
		Description: row.Description,
		Website:     row.Website,
		AddedBy:     mapNullStringPtr(row.AddedBy),
		ApprovedBy:  mapNullStringPtr(row.ApprovedBy),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		ApprovedAt:  mapNullTimePtr(row.ApprovedAt),
	}
}
