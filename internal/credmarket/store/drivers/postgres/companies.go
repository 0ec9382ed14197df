package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, domain, status, description, website, added_by, approved_by, created_at, updated_at, approved_at`

type companiesRepo struct {
	db dbtx
}

func scanCompany(row pgx.Row) (domain.Company, error) {
	var c domain.Company
	var status string
	err := row.Scan(
		&c.ID, &c.Name, &c.Domain, &status, &c.Description, &c.Website,
		&c.AddedBy, &c.ApprovedBy, &c.CreatedAt, &c.UpdatedAt, &c.ApprovedAt,
	)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	c.Status = domain.CompanyStatus(status)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	if c.ApprovedAt != nil {
		at := c.ApprovedAt.UTC()
		c.ApprovedAt = &at
	}
	return c, nil
}

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id string) (domain.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (r *companiesRepo) GetCompanyByDomain(ctx context.Context, d string) (domain.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE domain = $1`, d))
}

func (r *companiesRepo) GetCompanyByDomainAndStatus(
	ctx context.Context,
	d string,
	status domain.CompanyStatus,
) (domain.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE domain = $1 AND status = $2`, d, string(status)))
}

// CreateCompany uses ON CONFLICT DO NOTHING rather than letting the insert
// fail: a failed statement aborts the whole postgres transaction, and callers
// want to re-read the winning row in the same transaction.
func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO companies (
			id, name, domain, status, description, website,
			added_by, approved_by, created_at, updated_at, approved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (domain) DO NOTHING`,
		c.ID, c.Name, c.Domain, string(c.Status), c.Description, c.Website,
		c.AddedBy, c.ApprovedBy, c.CreatedAt, c.UpdatedAt, c.ApprovedAt,
	)
	if err != nil {
		return mapUnique(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *companiesRepo) TransitionCompanyStatus(
	ctx context.Context,
	id string,
	from, to domain.CompanyStatus,
	approvedBy *string,
	approvedAt *time.Time,
	now time.Time,
) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE companies
		SET status = $1, approved_by = $2, approved_at = $3, updated_at = $4
		WHERE id = $5 AND status = $6`,
		string(to), approvedBy, approvedAt, now, id, string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *companiesRepo) DeleteCompany(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return err
}

func (r *companiesRepo) ListCompanies(
	ctx context.Context,
	status *domain.CompanyStatus,
	limit int,
) ([]domain.Company, error) {
	var st *string
	if status != nil {
		s := string(*status)
		st = &s
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+companyColumns+` FROM companies
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, st, limitArg(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *companiesRepo) CountCompaniesByStatus(ctx context.Context) (map[domain.CompanyStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.CompanyStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[domain.CompanyStatus(status)] = n
	}
	return out, rows.Err()
}
