package handler

import (
	"net/http"

	"github.com/golang-cafe/jobly/internal/company"
	"github.com/golang-cafe/jobly/internal/job"
	"github.com/golang-cafe/jobly/internal/server"
)

func RegisterRoutes(svr server.Server, companyRepo *company.Repository, jobRepo *job.Repository) {
	svr.RegisterRoute("/health", HealthHandler(svr), []string{http.MethodGet})

	svr.RegisterRoute("/companies", ListCompaniesHandler(svr, companyRepo), []string{http.MethodGet})
	svr.RegisterRoute("/companies/{handle}", GetCompanyHandler(svr, companyRepo), []string{http.MethodGet})

	svr.RegisterRoute("/jobs", ListJobsHandler(svr, jobRepo), []string{http.MethodGet})
	svr.RegisterRoute("/jobs/{id}", GetJobHandler(svr, jobRepo), []string{http.MethodGet})

	//
	// admin routes
	// protected by bearer jwt
	//

	svr.RegisterRoute("/companies", CreateCompanyHandler(svr, companyRepo), []string{http.MethodPost})
	svr.RegisterRoute("/companies/{handle}", UpdateCompanyHandler(svr, companyRepo), []string{http.MethodPatch})
	svr.RegisterRoute("/companies/{handle}", DeleteCompanyHandler(svr, companyRepo), []string{http.MethodDelete})

	svr.RegisterRoute("/jobs", CreateJobHandler(svr, jobRepo), []string{http.MethodPost})
	svr.RegisterRoute("/jobs/{id}", UpdateJobHandler(svr, jobRepo), []string{http.MethodPatch})
	svr.RegisterRoute("/jobs/{id}", DeleteJobHandler(svr, jobRepo), []string{http.MethodDelete})
}
