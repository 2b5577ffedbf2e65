// Package validate holds the shared struct validator used for configuration
// and export records.
package validate

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their yaml/json names so messages match what users write.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"yaml", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerCustomValidators()
}

func registerCustomValidators() {
	// relpath: a relative path that stays below its base once cleaned.
	validate.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		return IsRelativePath(fl.Field().String())
	})
}

// IsRelativePath reports whether p is relative and does not climb above its
// base directory. Export paths use forward slashes; both separators are
// accepted.
func IsRelativePath(p string) bool {
	if p == "" {
		return false
	}
	slashed := strings.ReplaceAll(p, "\\", "/")
	if path.IsAbs(slashed) || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return false
	}
	clean := path.Clean(slashed)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}

// Struct validates s and flattens validator errors into one readable error.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", fe.Field(), fe.Param(), fmt.Sprint(fe.Value()))
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s (got %v)", fe.Field(), map[string]string{"gt": ">", "gte": ">="}[fe.Tag()], fe.Param(), fe.Value())
	case "relpath":
		return fmt.Sprintf("%s must be a relative path inside the export (got %q)", fe.Field(), fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
}
