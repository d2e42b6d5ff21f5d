package handler

import (
	"net/http"

	"github.com/golang-cafe/jobly/internal/company"
	"github.com/golang-cafe/jobly/internal/errs"
	"github.com/golang-cafe/jobly/internal/middleware"
	"github.com/golang-cafe/jobly/internal/server"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
)

type companyNewRq struct {
	Handle       string  `json:"handle" validate:"omitempty,max=25"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// companyUpdateRq lists the keys PATCH accepts. handle is decoded only so the
// repository can reject it with a meaningful message.
type companyUpdateRq struct {
	Handle       interface{} `json:"handle"`
	Name         *string     `json:"name"`
	Description  *string     `json:"description"`
	NumEmployees *int        `json:"numEmployees" validate:"omitempty,min=0"`
	LogoURL      *string     `json:"logoUrl" validate:"omitempty,url"`
}

func CreateCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			body, err := readBody(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			rq := &companyNewRq{}
			if err := decodeAndValidate(body, rq); err != nil {
				svr.Error(w, err)
				return
			}
			handle := rq.Handle
			if handle == "" {
				handle = slug.Make(rq.Name)
			}
			if handle == "" {
				svr.Error(w, errs.BadRequest("handle cannot be derived from name %q", rq.Name))
				return
			}
			c, err := companyRepo.Create(r.Context(), company.Company{
				Handle:       handle,
				Name:         rq.Name,
				Description:  rq.Description,
				NumEmployees: rq.NumEmployees,
				LogoURL:      rq.LogoURL,
			})
			if err != nil {
				svr.Error(w, err)
				return
			}
			svr.JSON(w, http.StatusCreated, map[string]interface{}{"company": c})
		},
	)
}

func ListCompaniesHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := company.ParseFilterFromQuery(r.URL.Query())
		if err != nil {
			svr.Error(w, err)
			return
		}
		companies, err := companyRepo.FindFiltered(r.Context(), f)
		if err != nil {
			svr.Error(w, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
	}
}

func GetCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := companyRepo.Get(r.Context(), mux.Vars(r)["handle"])
		if err != nil {
			svr.Error(w, err)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"company": c})
	}
}

func UpdateCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			data, err := decodeUpdate(r, &companyUpdateRq{}, "name", "description")
			if err != nil {
				svr.Error(w, err)
				return
			}
			c, err := companyRepo.Update(r.Context(), mux.Vars(r)["handle"], data)
			if err != nil {
				svr.Error(w, err)
				return
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"company": c})
		},
	)
}

func DeleteCompanyHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			handle := mux.Vars(r)["handle"]
			if err := companyRepo.Remove(r.Context(), handle); err != nil {
				svr.Error(w, err)
				return
			}
			svr.JSON(w, http.StatusOK, map[string]string{"deleted": handle})
		},
	)
}
