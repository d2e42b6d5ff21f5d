package job

import (
	"github.com/golang-cafe/jobly/internal/sqlutil"
)

// filterRules are the only criteria FindFiltered accepts.
var filterRules = sqlutil.Rules{
	"title":     {Expr: `title ILIKE '%%' || $%d || '%%'`, Value: sqlutil.Substring},
	"minSalary": {Expr: `salary >= $%d`, Value: sqlutil.Int},
	"hasEquity": {Expr: `equity > 0`, Value: sqlutil.Flag, NoArg: true},
}

// updateAliases maps JSON field names to columns where they differ.
var updateAliases = map[string]string{
	"companyHandle": "company_handle",
}

// FilterKeys lists the criteria accepted by FindFiltered.
func FilterKeys() []string {
	return filterRules.Keys()
}
