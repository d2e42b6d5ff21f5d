package company

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-cafe/jobly/internal/database"
	"github.com/golang-cafe/jobly/internal/errs"
	"github.com/golang-cafe/jobly/internal/job"
	"github.com/golang-cafe/jobly/internal/sqlutil"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

type Repository struct {
	db   database.Handler
	jobs *job.Repository
}

func NewRepository(db database.Handler) *Repository {
	return &Repository{db: db, jobs: job.NewRepository(db)}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(s scanner) (Company, error) {
	var c Company
	var numEmployees sql.NullInt64
	var logoURL sql.NullString
	if err := s.Scan(&c.Handle, &c.Name, &c.Description, &numEmployees, &logoURL); err != nil {
		return Company{}, err
	}
	if numEmployees.Valid {
		n := int(numEmployees.Int64)
		c.NumEmployees = &n
	}
	if logoURL.Valid {
		c.LogoURL = &logoURL.String
	}
	return c, nil
}

// Create inserts c. An existing handle (or name) is reported by the store's
// unique constraint and returned as a bad request.
func (r *Repository) Create(ctx context.Context, c Company) (Company, error) {
	row := r.db.QueryRowContext(
		ctx,
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		c.Handle,
		c.Name,
		c.Description,
		c.NumEmployees,
		c.LogoURL,
	)
	created, err := scanCompany(row)
	if err != nil {
		if database.WrapError(err) == database.ErrDuplicateKey {
			return Company{}, errs.BadRequest("Duplicate company: %s", c.Handle)
		}
		return Company{}, err
	}
	return created, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]Company, error) {
	return r.find(ctx, "")
}

// FindFiltered returns companies matching every set field of f, ordered by
// name like FindAll.
func (r *Repository) FindFiltered(ctx context.Context, f Filter) ([]Company, error) {
	where, args, err := filterRules.Where(f.Criteria(), 1)
	if err != nil {
		return []Company{}, err
	}
	return r.find(ctx, where, args...)
}

func (r *Repository) find(ctx context.Context, where string, args ...interface{}) ([]Company, error) {
	companies := []Company{}
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies `+where+` ORDER BY name`, args...)
	if err != nil {
		return companies, err
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return companies, err
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return companies, err
	}
	return companies, nil
}

// Get returns the company with its jobs in id order.
func (r *Repository) Get(ctx context.Context, handle string) (CompanyWithJobs, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle)
	c, err := scanCompany(row)
	if err != nil {
		if database.WrapError(err) == database.ErrRecordNotFound {
			return CompanyWithJobs{}, errs.NotFound("No company: %s", handle)
		}
		return CompanyWithJobs{}, err
	}
	jobs, err := r.jobs.FindByCompany(ctx, handle)
	if err != nil {
		return CompanyWithJobs{}, err
	}
	return CompanyWithJobs{Company: c, Jobs: jobs}, nil
}

// Update applies a partial update. Fields absent from data are left as they
// are; a nil value stores NULL. The handle is immutable.
func (r *Repository) Update(ctx context.Context, handle string, data sqlutil.Fields) (Company, error) {
	if data.Has("handle") {
		return Company{}, errs.BadRequest("handle cannot be changed")
	}
	setCols, values, err := sqlutil.PartialUpdate(data, updateAliases)
	if err != nil {
		return Company{}, err
	}
	stmt := fmt.Sprintf(
		`UPDATE companies SET %s WHERE handle = $%d RETURNING `+companyColumns,
		setCols,
		len(values)+1,
	)
	row := r.db.QueryRowContext(ctx, stmt, append(values, handle)...)
	c, err := scanCompany(row)
	if err != nil {
		if database.WrapError(err) == database.ErrRecordNotFound {
			return Company{}, errs.NotFound("No company: %s", handle)
		}
		return Company{}, err
	}
	return c, nil
}

func (r *Repository) Remove(ctx context.Context, handle string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("No company: %s", handle)
	}
	return nil
}
