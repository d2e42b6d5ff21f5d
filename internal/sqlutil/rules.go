package sqlutil

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-cafe/jobly/internal/errs"
)

// Rule turns one filter criterion into a predicate.
type Rule struct {
	// Expr is the predicate text. When Value yields an argument Expr must
	// contain exactly one %d verb, replaced by the placeholder ordinal.
	Expr string
	// Value converts the raw criterion into the argument to bind. ok=false
	// means the criterion imposes no constraint and Expr is skipped.
	Value func(v interface{}) (arg interface{}, ok bool, err error)
	// NoArg marks predicates that bind nothing, e.g. "equity > 0".
	NoArg bool
}

// Rules maps filter keys to their predicate rule.
type Rules map[string]Rule

func (r Rules) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Where checks that every key in criteria is known, then renders the
// predicates in criteria order. Placeholders start at $start. An unknown key
// fails the whole call before anything is rendered.
func (r Rules) Where(criteria Fields, start int) (string, []interface{}, error) {
	for _, c := range criteria {
		if _, ok := r[c.Name]; !ok {
			return "", nil, errs.BadRequest(
				"%s is not a valid filter parameter. Filter parameters allowed: %s",
				c.Name, strings.Join(r.Keys(), ", "),
			)
		}
	}

	var clauses []string
	var args []interface{}
	for _, c := range criteria {
		rule := r[c.Name]
		arg, ok, err := rule.Value(c.Value)
		if err != nil {
			return "", nil, errs.BadRequest("%s %v", c.Name, err)
		}
		if !ok {
			continue
		}
		if rule.NoArg {
			clauses = append(clauses, rule.Expr)
			continue
		}
		clauses = append(clauses, fmt.Sprintf(rule.Expr, start+len(args)))
		args = append(args, arg)
	}
	return CombineWhere(clauses), args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Substring accepts a string and escapes LIKE wildcards in it so it can be
// wrapped in '%' on the SQL side. Empty strings impose no constraint.
func Substring(v interface{}) (interface{}, bool, error) {
	s, ok := v.(string)
	if !ok {
		return nil, false, fmt.Errorf("must be a string")
	}
	if s == "" {
		return nil, false, nil
	}
	return likeEscaper.Replace(s), true, nil
}

// Int accepts integers, integral floats and numeric strings that fit the
// store's 32-bit INTEGER columns.
func Int(v interface{}) (interface{}, bool, error) {
	n, err := toInt64(v)
	if err != nil {
		return nil, false, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, false, fmt.Errorf("must be an integer between %d and %d", math.MinInt32, math.MaxInt32)
	}
	return n, true, nil
}

func toInt64(v interface{}) (int64, error) {
	errNotInt := fmt.Errorf("must be an integer")
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt64 {
			return 0, errNotInt
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errNotInt
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, errNotInt
		}
		return i, nil
	}
	return 0, errNotInt
}

// Flag accepts a bool or a boolean string. Only true imposes a constraint.
func Flag(v interface{}) (interface{}, bool, error) {
	switch b := v.(type) {
	case bool:
		return nil, b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return nil, false, fmt.Errorf("must be a boolean")
		}
		return nil, parsed, nil
	}
	return nil, false, fmt.Errorf("must be a boolean")
}
