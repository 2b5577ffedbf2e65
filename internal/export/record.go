package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ErrMissingField is returned when a required column is absent or null.
var ErrMissingField = errors.New("missing field")

// Record is one exported row keyed by column name.
type Record map[string]interface{}

// FieldError describes a column that could not be read.
type FieldError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q (%v): %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Int reads a required integer column.
func (r Record) Int(key string) (int, error) {
	n, ok, err := r.OptionalInt(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &FieldError{Field: key, Err: ErrMissingField}
	}
	return n, nil
}

// OptionalInt reads an integer column that may be absent. Missing keys,
// null and the empty string all report ok == false.
func (r Record) OptionalInt(key string) (n int, ok bool, err error) {
	v, present := r[key]
	if !present || v == nil {
		return 0, false, nil
	}
	var s string
	switch x := v.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return 0, false, &FieldError{Field: key, Value: v, Err: fmt.Errorf("unexpected %T", v)}
	}
	if s == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, &FieldError{Field: key, Value: v, Err: errors.New("not an integer")}
	}
	return n, true, nil
}

// String reads a required text column. Numbers are formatted back to text.
func (r Record) String(key string) (string, error) {
	v, present := r[key]
	if !present || v == nil {
		return "", &FieldError{Field: key, Err: ErrMissingField}
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	}
	return "", &FieldError{Field: key, Value: v, Err: fmt.Errorf("unexpected %T", v)}
}
