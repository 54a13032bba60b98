// Package validation implements the declarative input rules with go-playground/validator.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"muthurwa/internal/domain/entity"
	domainerrors "muthurwa/internal/domain/errors"
	"muthurwa/internal/domain/service"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
)

// TagLedgerDate accepts YYYY-MM-DD or RFC 3339 strings.
const TagLedgerDate = "ledger_date"

// Validator wraps a configured validator.Validate. It serves both the
// usecases and echo's Context.Validate.
type Validator struct {
	validate *validator.Validate
}

// New builds the validator with JSON field names and the ledger rules.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	// Unset numbers look empty and unparsable ones surface their raw text so
	// "numeric" fails. Parsed values are handed over as a pointer so that a
	// zero amount still satisfies "required".
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		n, ok := field.Interface().(entity.Number)
		if !ok || !n.Set {
			return nil
		}
		if !n.Valid {
			return n.Raw
		}
		value := n.Value

		return &value
	}, entity.Number{})

	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, TagLedgerDate, func(fl validator.FieldLevel) bool {
		_, err := entity.ParseDate(fl.Field().String())

		return err == nil
	})

	return &Validator{validate: v}
}

// NewService exposes the validator as the domain collaborator.
func NewService(v *Validator) service.Validator {
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Struct validates s and returns a *ValidationError listing every failing field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate input")
	}

	fields := make([]domainerrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.Struct(i)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be empty"
	case "numeric", "number":
		return "must be a number"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}

		return "must be at least " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid id"
	case TagLedgerDate:
		return "must be a date (YYYY-MM-DD)"
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}
