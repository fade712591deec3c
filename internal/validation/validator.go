package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var (
	phoneStrip   = regexp.MustCompile(`[\s\-\(\)]`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

	unsafeChars   = regexp.MustCompile(`[<>"']`)
	jsScheme      = regexp.MustCompile(`(?i)javascript:`)
	inlineHandler = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Validator plugs go-playground/validator into echo (it satisfies echo.Validator).
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// ValidPhone accepts 10 to 15 digits, optionally prefixed with +, once
// spaces, dashes and parentheses are removed.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneStrip.ReplaceAllString(phone, ""))
}

// Sanitize strips markup and script vectors from free text.
func Sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	s = jsScheme.ReplaceAllString(s, "")
	s = inlineHandler.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Message turns the first validation failure into user-facing text.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "Missing required field: " + fe.Field()
	case "email":
		return "Invalid email format"
	case "phone":
		return "Invalid phone number format"
	case "ymd":
		return "Invalid date format. Use YYYY-MM-DD"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("invalid value for %s", fe.Field())
}
