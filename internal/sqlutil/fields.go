package sqlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
)

// Field is a single named value. A nil Value is an explicit NULL.
type Field struct {
	Name  string
	Value interface{}
}

// Fields is an ordered set of named values. Order is significant: it decides
// placeholder ordinals in PartialUpdate and predicate order in Rules.Where.
// A name missing from Fields means "leave untouched".
type Fields []Field

func (f Fields) Get(name string) (interface{}, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

func (f Fields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// Set replaces the value of name in place, or appends it.
func (f *Fields) Set(name string, value interface{}) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for _, field := range f {
		names = append(names, field.Name)
	}
	return names
}

// UnmarshalJSON decodes a JSON object keeping its key order. Integers decode
// to int64 and other numbers to their literal text so decimals stay exact.
func (f *Fields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("expected a JSON object")
	}
	fields := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return err
		}
		fields.Set(name, jsonValue(v))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = fields
	return nil
}

func jsonValue(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	return n.String()
}

// FieldsFromQuery turns query string parameters into Fields, sorted by name.
// Only the first value of a repeated parameter is kept.
func FieldsFromQuery(q url.Values) Fields {
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make(Fields, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Value: q.Get(name)})
	}
	return fields
}
