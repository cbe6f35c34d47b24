package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the conventional local@domain.tld shape accepted at signup.
var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("tldemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldError is one failing input field with a human readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failing field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the field messages in input order.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Message)
	}
	return out
}

// Has reports whether field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Message sets for the request types. Keys are json field names.
var (
	signupMessages = map[string]string{
		"email":    "Invalid Credentials, Please check email",
		"password": "Password should atleast contain more than six characters",
		"name":     "Name is required",
	}
	loginMessages = map[string]string{
		"email":    "Invalid Credentials, Please check email",
		"password": "Invalid Credentials, Please check password",
	}
	gymMessages = map[string]string{
		"name":        "Gym name is required",
		"description": "Gym description is required",
		"location":    "Gym location is required",
		"images":      "Gym images must not be empty",
	}
	profileMessages = map[string]string{
		"age":  "Age must not be negative",
		"rate": "Rate must not be negative",
	}
)

// validateRequest runs the struct tags of req and reports one message per
// failing field. Unknown fields fall back to the validator's own text.
func validateRequest(req any, messages map[string]string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i] // images[2] -> images
		}
		if verr.Has(field) {
			continue
		}
		msg, ok := messages[field]
		if !ok {
			msg = fe.Error()
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: msg})
	}
	return verr
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
