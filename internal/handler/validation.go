package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/golang-cafe/jobly/internal/errs"
	"github.com/golang-cafe/jobly/internal/sqlutil"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.BadRequest("unable to read request body")
	}
	return body, nil
}

// decodeAndValidate strictly decodes body into rq and runs its validate tags.
func decodeAndValidate(body []byte, rq interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rq); err != nil {
		return errs.BadRequest("invalid request body: %v", err)
	}
	if err := validate.Struct(rq); err != nil {
		return validationError(err)
	}
	return nil
}

// decodeUpdate validates body against rq and returns the same body as
// ordered Fields, keeping explicit nulls. Keys must match a json tag of rq
// exactly, and keys listed in notNull may not be null.
func decodeUpdate(r *http.Request, rq interface{}, notNull ...string) (sqlutil.Fields, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	if err := decodeAndValidate(body, rq); err != nil {
		return nil, err
	}
	var data sqlutil.Fields
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errs.BadRequest("invalid request body: %v", err)
	}
	allowed := jsonNames(rq)
	for _, field := range data {
		if !allowed[field.Name] {
			return nil, errs.BadRequest("invalid request body: unknown field %q", field.Name)
		}
	}
	for _, name := range notNull {
		if v, ok := data.Get(name); ok && v == nil {
			return nil, errs.BadRequest("%s cannot be null", name)
		}
	}
	return data, nil
}

var jsonNamesCache sync.Map

// jsonNames returns the set of json tag names of the struct rq points to.
func jsonNames(rq interface{}) map[string]bool {
	t := reflect.TypeOf(rq)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if names, ok := jsonNamesCache.Load(t); ok {
		return names.(map[string]bool)
	}
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	jsonNamesCache.Store(t, names)
	return names
}

func validationError(err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.BadRequest("%v", err)
	}
	msgs := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid url", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errs.BadRequest("%s", strings.Join(msgs, "; "))
}
