package company

import (
	"net/url"
	"strings"

	"github.com/golang-cafe/jobly/internal/errs"
	"github.com/golang-cafe/jobly/internal/sqlutil"
)

var filterRules = sqlutil.Rules{
	"name":         {Expr: `name ILIKE '%%' || $%d || '%%'`, Value: sqlutil.Substring},
	"minEmployees": {Expr: `num_employees >= $%d`, Value: sqlutil.Int},
	"maxEmployees": {Expr: `num_employees <= $%d`, Value: sqlutil.Int},
}

var updateAliases = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// Criteria returns the set filters in a fixed order: name, minEmployees,
// maxEmployees.
func (f Filter) Criteria() sqlutil.Fields {
	criteria := sqlutil.Fields{}
	if f.Name != nil {
		criteria.Set("name", *f.Name)
	}
	if f.MinEmployees != nil {
		criteria.Set("minEmployees", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		criteria.Set("maxEmployees", *f.MaxEmployees)
	}
	return criteria
}

// ParseFilterFromQuery reads name, minEmployees and maxEmployees from query.
// Any other parameter, a non-integer bound, or minEmployees greater than
// maxEmployees is a bad request.
func ParseFilterFromQuery(query url.Values) (Filter, error) {
	var f Filter
	for key := range query {
		if _, ok := filterRules[key]; !ok {
			return Filter{}, errs.BadRequest(
				"%s is not a valid filter parameter. Filter parameters allowed: %s",
				key, strings.Join(filterRules.Keys(), ", "),
			)
		}
	}
	if name := query.Get("name"); name != "" {
		f.Name = &name
	}
	bounds := []struct {
		key string
		dst **int
	}{
		{"minEmployees", &f.MinEmployees},
		{"maxEmployees", &f.MaxEmployees},
	}
	for _, b := range bounds {
		raw := query.Get(b.key)
		if raw == "" {
			continue
		}
		v, _, err := sqlutil.Int(raw)
		if err != nil {
			return Filter{}, errs.BadRequest("%s %v", b.key, err)
		}
		n := int(v.(int64))
		*b.dst = &n
	}
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return Filter{}, errs.BadRequest("minEmployees cannot be greater than maxEmployees")
	}
	return f, nil
}
