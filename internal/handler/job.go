package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-cafe/jobly/internal/errs"
	"github.com/golang-cafe/jobly/internal/job"
	"github.com/golang-cafe/jobly/internal/middleware"
	"github.com/golang-cafe/jobly/internal/server"
	"github.com/golang-cafe/jobly/internal/sqlutil"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type jobNewRq struct {
	Title         string              `json:"title" validate:"required"`
	Salary        *int                `json:"salary" validate:"omitempty,min=0"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle" validate:"required"`
}

type jobUpdateRq struct {
	ID            interface{}         `json:"id"`
	Title         *string             `json:"title"`
	Salary        *int                `json:"salary" validate:"omitempty,min=0"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle *string             `json:"companyHandle"`
}

var maxEquity = decimal.NewFromInt(1)

func checkEquity(equity decimal.NullDecimal) error {
	if equity.Valid && (equity.Decimal.IsNegative() || equity.Decimal.GreaterThan(maxEquity)) {
		return errs.BadRequest("equity must be between 0 and 1")
	}
	return nil
}

func jobID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NotFound("No job: %s", raw)
	}
	return id, nil
}

func CreateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			body, err := readBody(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			rq := &jobNewRq{}
			if err := decodeAndValidate(body, rq); err != nil {
				svr.Error(w, err)
				return
			}
			if err := checkEquity(rq.Equity); err != nil {
				svr.Error(w, err)
				return
			}
			j, err := jobRepo.Create(r.Context(), job.Job{
				Title:         rq.Title,
				Salary:        rq.Salary,
				Equity:        rq.Equity,
				CompanyHandle: rq.CompanyHandle,
			})
			if err != nil {
				svr.Error(w, err)
				return
			}
			svr.JSON(w, http.StatusCreated, map[string]interface{}{"job": j})
		},
	)
}

// ListJobsHandler passes query parameters straight to the repository, which
// rejects any key other than title, minSalary and hasEquity.
func ListJobsHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := jobRepo.FindFiltered(r.Context(), sqlutil.FieldsFromQuery(r.URL.Query()))
		if err != nil {
			svr.Error(w, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
	}
}

func GetJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := jobID(r)
		if err != nil {
			svr.Error(w, err)
			return
		}
		j, err := jobRepo.Get(r.Context(), id)
		if err != nil {
			svr.Error(w, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"job": j})
	}
}

func UpdateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			id, err := jobID(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			rq := &jobUpdateRq{}
			data, err := decodeUpdate(r, rq, "title", "companyHandle")
			if err != nil {
				svr.Error(w, err)
				return
			}
			if err := checkEquity(rq.Equity); err != nil {
				svr.Error(w, err)
				return
			}
			j, err := jobRepo.Update(r.Context(), id, data)
			if err != nil {
				svr.Error(w, err)
				return
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"job": j})
		},
	)
}

func DeleteJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			id, err := jobID(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			if err := jobRepo.Remove(r.Context(), id); err != nil {
				svr.Error(w, err)
				return
			}
			svr.JSON(w, http.StatusOK, map[string]string{"deleted": strconv.Itoa(id)})
		},
	)
}
