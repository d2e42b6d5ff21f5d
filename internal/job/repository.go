package job

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-cafe/jobly/internal/database"
	"github.com/golang-cafe/jobly/internal/errs"
	"github.com/golang-cafe/jobly/internal/sqlutil"
)

const jobColumns = `id, title, salary, equity, company_handle`

type Repository struct {
	db database.Handler
}

func NewRepository(db database.Handler) *Repository {
	return &Repository{db}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(s scanner) (Job, error) {
	var j Job
	var salary sql.NullInt64
	if err := s.Scan(&j.ID, &j.Title, &salary, &j.Equity, &j.CompanyHandle); err != nil {
		return Job{}, err
	}
	if salary.Valid {
		v := int(salary.Int64)
		j.Salary = &v
	}
	return j, nil
}

func (r *Repository) query(ctx context.Context, stmt string, args ...interface{}) ([]Job, error) {
	jobs := []Job{}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return jobs, err
	}
	defer rows.Close()
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return jobs, err
	}
	return jobs, nil
}

// Create inserts j and returns the stored row, including its generated id.
// A missing company surfaces as the store's foreign key error.
func (r *Repository) Create(ctx context.Context, j Job) (Job, error) {
	row := r.db.QueryRowContext(
		ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		j.Title,
		j.Salary,
		j.Equity,
		j.CompanyHandle,
	)
	created, err := scanJob(row)
	if err != nil {
		if database.WrapError(err) == database.ErrDuplicateKey {
			return Job{}, errs.BadRequest("Duplicate job: %s", j.Title)
		}
		return Job{}, err
	}
	return created, nil
}

// FindAll returns jobs matching where, newest id first. where is a clause
// built by sqlutil (or empty) and args are its bound parameters.
func (r *Repository) FindAll(ctx context.Context, where string, args ...interface{}) ([]Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs `+where+` ORDER BY id DESC`, args...)
}

// FindFiltered accepts only the title, minSalary and hasEquity criteria.
// Any other key fails the call before a query is built.
func (r *Repository) FindFiltered(ctx context.Context, criteria sqlutil.Fields) ([]Job, error) {
	where, args, err := filterRules.Where(criteria, 1)
	if err != nil {
		return []Job{}, err
	}
	return r.FindAll(ctx, where, args...)
}

// FindByCompany returns the jobs owned by handle in id order.
func (r *Repository) FindByCompany(ctx context.Context, handle string) ([]Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_handle = $1 ORDER BY id`, handle)
}

func (r *Repository) Get(ctx context.Context, id int) (Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if database.WrapError(err) == database.ErrRecordNotFound {
			return Job{}, errs.NotFound("No job: %d", id)
		}
		return Job{}, err
	}
	return j, nil
}

// Update applies a partial update. Fields absent from data are left as they
// are; a nil value stores NULL. The id is immutable.
func (r *Repository) Update(ctx context.Context, id int, data sqlutil.Fields) (Job, error) {
	if data.Has("id") {
		return Job{}, errs.BadRequest("id cannot be changed")
	}
	setCols, values, err := sqlutil.PartialUpdate(data, updateAliases)
	if err != nil {
		return Job{}, err
	}
	stmt := fmt.Sprintf(
		`UPDATE jobs SET %s WHERE id = $%d RETURNING `+jobColumns,
		setCols,
		len(values)+1,
	)
	row := r.db.QueryRowContext(ctx, stmt, append(values, id)...)
	j, err := scanJob(row)
	if err != nil {
		if database.WrapError(err) == database.ErrRecordNotFound {
			return Job{}, errs.NotFound("No job: %d", id)
		}
		return Job{}, err
	}
	return j, nil
}

func (r *Repository) Remove(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("No job: %d", id)
	}
	return nil
}
