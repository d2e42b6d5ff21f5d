package job

import (
	"github.com/shopspring/decimal"
)

// Job is a posting owned by a company. Equity is kept as an exact decimal and
// marshals to JSON as a string such as "0.05".
type Job struct {
	ID            int                 `json:"id"`
	Title         string              `json:"title"`
	Salary        *int                `json:"salary"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle"`
}
