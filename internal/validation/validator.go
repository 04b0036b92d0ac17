package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns nil or a non-empty domain.ValidationErrors.
func (v *Validator) Struct(s any) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "request", Code: domain.CodeValidation, Message: err.Error()}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, translate(fe))
	}
	return out
}

func translate(fe validator.FieldError) domain.ValidationError {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "oneof":
		return domain.NewInvalidFormatError(field, fe.Value(), "one of ["+fe.Param()+"]")
	case "min", "gte":
		return domain.NewOutOfRangeError(field, fe.Value(), "min "+fe.Param())
	case "max", "lte":
		return domain.NewOutOfRangeError(field, fe.Value(), "max "+fe.Param())
	default:
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeValidation,
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			Value:   fe.Value(),
		}
	}
}

// fieldPath drops the struct name from the namespace, keeping slice indexes:
// "GenerateCourseRequest.components[1]" becomes "components[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
