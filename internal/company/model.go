package company

import (
	"github.com/golang-cafe/jobly/internal/job"
)

type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// CompanyWithJobs is the detail view returned by Get. Jobs is never nil.
type CompanyWithJobs struct {
	Company
	Jobs []job.Job `json:"jobs"`
}

// Filter holds the optional criteria of FindFiltered. Nil fields impose no
// constraint; bounds are inclusive.
type Filter struct {
	Name         *string
	MinEmployees *int
	MaxEmployees *int
}
