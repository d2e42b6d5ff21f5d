package sqlutil

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/golang-cafe/jobly/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialUpdate(t *testing.T) {
	data := Fields{
		{Name: "firstName", Value: "Aliya"},
		{Name: "age", Value: 32},
	}
	setCols, values, err := PartialUpdate(data, map[string]string{"firstName": "first_name"})
	require.NoError(t, err)
	assert.Equal(t, `"first_name"=$1, "age"=$2`, setCols)
	assert.Equal(t, []interface{}{"Aliya", 32}, values)
}

func TestPartialUpdateKeepsInputOrder(t *testing.T) {
	data := Fields{
		{Name: "logoUrl", Value: "http://new.img"},
		{Name: "name", Value: "New"},
		{Name: "numEmployees", Value: 10},
	}
	aliases := map[string]string{"numEmployees": "num_employees", "logoUrl": "logo_url"}
	setCols, values, err := PartialUpdate(data, aliases)
	require.NoError(t, err)
	assert.Equal(t, `"logo_url"=$1, "name"=$2, "num_employees"=$3`, setCols)
	assert.Equal(t, []interface{}{"http://new.img", "New", 10}, values)
}

func TestPartialUpdateExplicitNull(t *testing.T) {
	data := Fields{{Name: "numEmployees", Value: nil}}
	setCols, values, err := PartialUpdate(data, map[string]string{"numEmployees": "num_employees"})
	require.NoError(t, err)
	assert.Equal(t, `"num_employees"=$1`, setCols)
	require.Len(t, values, 1)
	assert.Nil(t, values[0])
}

func TestPartialUpdateNoData(t *testing.T) {
	setCols, values, err := PartialUpdate(Fields{}, nil)
	assert.True(t, errs.IsBadRequest(err))
	assert.Empty(t, setCols)
	assert.Nil(t, values)

	_, _, err = PartialUpdate(nil, nil)
	assert.True(t, errs.IsBadRequest(err))
}

func TestPartialUpdateQuotesIdentifiers(t *testing.T) {
	setCols, _, err := PartialUpdate(Fields{{Name: `bad"col`, Value: 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, `"bad""col"=$1`, setCols)
}

func TestCombineWhere(t *testing.T) {
	assert.Equal(t, "", CombineWhere(nil))
	assert.Equal(t, "", CombineWhere([]string{}))
	assert.Equal(t, "WHERE salary >= 1", CombineWhere([]string{"salary >= 1"}))
	assert.Equal(t,
		"WHERE a = 1 AND b = 2 AND c = 3",
		CombineWhere([]string{"a = 1", "b = 2", "c = 3"}),
	)
}

func TestFieldsUnmarshalJSONKeepsOrderAndNulls(t *testing.T) {
	var f Fields
	err := json.Unmarshal([]byte(`{"name":"New","numEmployees":null,"logoUrl":"x","equity":0.05,"salary":100}`), &f)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "numEmployees", "logoUrl", "equity", "salary"}, f.Names())

	v, ok := f.Get("numEmployees")
	assert.True(t, ok)
	assert.Nil(t, v)

	v, _ = f.Get("equity")
	assert.Equal(t, "0.05", v)

	v, _ = f.Get("salary")
	assert.Equal(t, int64(100), v)

	assert.False(t, f.Has("description"))
}

func TestFieldsUnmarshalJSONRejectsNonObject(t *testing.T) {
	var f Fields
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &f))
}

func TestFieldsSetReplaces(t *testing.T) {
	f := Fields{{Name: "a", Value: 1}}
	f.Set("b", 2)
	f.Set("a", 3)
	assert.Equal(t, Fields{{Name: "a", Value: 3}, {Name: "b", Value: 2}}, f)
}

func TestFieldsFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("minSalary", "100")
	q.Set("hasEquity", "true")
	f := FieldsFromQuery(q)
	assert.Equal(t, Fields{
		{Name: "hasEquity", Value: "true"},
		{Name: "minSalary", Value: "100"},
	}, f)
}
