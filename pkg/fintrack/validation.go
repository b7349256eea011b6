package fintrack

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// secretFields are never echoed back in a ValidationError
var secretFields = map[string]bool{"password": true}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Compare amounts as numbers so gt/gte apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validateParams runs the struct tags of params and converts failures to *ValidationErrors
func validateParams(params interface{}) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate")
	}

	out := &ValidationErrors{Errors: make([]*ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ve := &ValidationError{Field: fe.Field(), Message: fieldMessage(fe)}
		if !secretFields[fe.Field()] {
			ve.Value = fe.Value()
		}
		out.Errors = append(out.Errors, ve)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "email is not valid"
	}
	return fmt.Sprintf("%s is not valid", fe.Field())
}

// Validate checks a new account
func (p *CreateAccountParams) Validate() error {
	return validateParams(p)
}

// Validate checks an account rename
func (p *UpdateAccountParams) Validate() error {
	return validateParams(p)
}

// Validate checks a category form
func (p *CategoryParams) Validate() error {
	return validateParams(p)
}

// Validate checks a transaction form
func (p *TransactionParams) Validate() error {
	return validateParams(p)
}

// Validate checks a budget form
func (p *BudgetParams) Validate() error {
	return validateParams(p)
}

// RegisterParams is the sign-up form
type RegisterParams struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Validate checks the sign-up form
func (p *RegisterParams) Validate() error {
	return validateParams(p)
}

// LoginParams is the login form
type LoginParams struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the login form
func (p *LoginParams) Validate() error {
	return validateParams(p)
}
