// Package validation checks request shapes before they reach the store. It
// never performs I/O.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"pharmstore/m/domain"
)

// DateLayout is the YYYYMMDD layout used for request dates.
const DateLayout = "20060102"

// Validator wraps a configured go-playground validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("yyyymmdd", isDate)
	return &Validator{v: v}
}

func isDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Struct validates s against its `validate` tags. It returns nil or a
// *domain.ValidationError listing every rejected field.
func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "yyyymmdd":
		return "must be a date in YYYYMMDD format"
	}
	return "failed " + fe.Tag() + " rule"
}

// Page checks offset/limit paging parameters. maxLimit <= 0 disables the
// upper bound.
func Page(skip, limit, maxLimit int) error {
	var out domain.ValidationError
	if skip < 0 {
		out.Fields = append(out.Fields, domain.FieldError{Field: "skip", Rule: "min", Message: "must be at least 0"})
	}
	if limit <= 0 {
		out.Fields = append(out.Fields, domain.FieldError{Field: "limit", Rule: "min", Message: "must be at least 1"})
	} else if maxLimit > 0 && limit > maxLimit {
		out.Fields = append(out.Fields, domain.FieldError{Field: "limit", Rule: "max", Message: fmt.Sprintf("must be at most %d", maxLimit)})
	}
	if len(out.Fields) > 0 {
		return &out
	}
	return nil
}
