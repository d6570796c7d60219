// Package validate wraps go-playground/validator with the rules todos need.
package validate

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

var messages = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} must not be blank",
	"gte":      "{field} must be greater than or equal to {param}",
	"lt":       "{field} must be less than {param}",
	"oneof":    "{field} must be one of {param}",
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	err := validate.RegisterValidation("notblank", func(fl val.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(err)
	}
}

// Error is a rule violation with a readable message.
type Error struct {
	Field string
	Tag   string
	Msg   string
}

func (e *Error) Error() string { return e.Msg }

// Text trims s and checks that something is left.
func Text(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "notblank"); err != nil {
		return "", convert(err, "text")
	}
	return s, nil
}

// Priority checks that name is one of the four priority labels.
func Priority(name string) error {
	if err := validate.Var(name, "oneof=Low Medium High Urgent"); err != nil {
		return convert(err, "priority")
	}
	return nil
}

// Struct runs the `validate` tags of data.
func Struct(data any) error {
	if err := validate.Struct(data); err != nil {
		return convert(err, "")
	}
	return nil
}

func convert(err error, field string) error {
	var ve val.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	name := fe.Field()
	if name == "" {
		name = field
	}
	msg := messages[fe.Tag()]
	if msg == "" {
		return &Error{Field: name, Tag: fe.Tag(), Msg: fe.Error()}
	}
	msg = strings.ReplaceAll(msg, "{field}", name)
	msg = strings.ReplaceAll(msg, "{param}", fe.Param())
	return &Error{Field: name, Tag: fe.Tag(), Msg: msg}
}
