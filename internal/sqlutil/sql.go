// Package sqlutil builds the dynamic parts of SQL statements: the SET list of a
// partial update and the WHERE clause of a filtered select. It never talks to
// the database.
package sqlutil

import (
	"fmt"
	"strings"

	"github.com/golang-cafe/jobly/internal/errs"

	"github.com/lib/pq"
)

// PartialUpdate renders data as a comma separated list of
// "column"=$n assignments for use after SET, together with the values to bind.
//
// aliases maps a field name to its column name where the two differ, e.g.
// {"numEmployees": "num_employees"}. Fields without an alias are used as-is.
//
// Placeholder $n always refers to data[n-1] and values[n-1]; a caller adding
// its own parameter (the row key for WHERE) must use $len(values)+1.
func PartialUpdate(data Fields, aliases map[string]string) (string, []interface{}, error) {
	if len(data) == 0 {
		return "", nil, errs.BadRequest("No data")
	}
	cols := make([]string, 0, len(data))
	values := make([]interface{}, 0, len(data))
	for i, field := range data {
		col, ok := aliases[field.Name]
		if !ok {
			col = field.Name
		}
		cols = append(cols, fmt.Sprintf("%s=$%d", pq.QuoteIdentifier(col), i+1))
		values = append(values, field.Value)
	}
	return strings.Join(cols, ", "), values, nil
}

// CombineWhere joins predicates into a WHERE clause. No predicates yields an
// empty string.
func CombineWhere(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(clauses, " AND ")
}
