package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators exposes the field predicates as struct tags so request
// or config structs can reuse them:
//
//	site_email  local@domain.tld
//	site_phone  at least MinPhoneDigits digits
//	site_date   a YYYY-MM-DD date that is not before today
//
// Empty values pass; combine with `required` when needed.
func RegisterValidators(v *validator.Validate, clock func() time.Time) error {
	if clock == nil {
		clock = time.Now
	}
	if err := v.RegisterValidation("site_email", func(fl validator.FieldLevel) bool {
		val := trimValue(fl.Field().String())
		return val == "" || IsValidEmail(val)
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("site_phone", func(fl validator.FieldLevel) bool {
		val := trimValue(fl.Field().String())
		return val == "" || IsValidPhone(val)
	}); err != nil {
		return err
	}
	return v.RegisterValidation("site_date", func(fl validator.FieldLevel) bool {
		val := trimValue(fl.Field().String())
		return val == "" || IsOnOrAfterDay(val, clock())
	})
}

// NewValidator returns a validator/v10 instance with the site tags
// registered.
func NewValidator(clock func() time.Time) (*validator.Validate, error) {
	v := validator.New()
	if err := RegisterValidators(v, clock); err != nil {
		return nil, err
	}
	return v, nil
}
