package validator

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only accepted date format for request fields.
const DateLayout = "2006-01-02"

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their JSON name so errors map back to request keys.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("date", validateDate)
	v.RegisterValidation("integer", validateInteger)
	v.RegisterValidation("nonnegative", validateNonNegative)
	v.RegisterValidation("notblank", validateNotBlank)

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors turns validator errors into a field -> messages map.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string][]string {
	errors := make(map[string][]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			errors[field] = append(errors[field], message(e))
		}
	}

	return errors
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if e.Kind() == reflect.String {
			return "Ensure this field has at least " + e.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "max":
		if e.Kind() == reflect.String {
			return "Ensure this field has no more than " + e.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "gte":
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(e.Value()))
	case "date":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "notblank":
		return "This field may not be blank."
	case "integer":
		return "A valid integer is required."
	case "nonnegative":
		return "Ensure this value is greater than or equal to 0."
	default:
		return "This field is invalid."
	}
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// validateInteger accepts values that fit a 32-bit INTEGER column, either as
// a decimal string or as an integer field.
func validateInteger(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		_, err := parseInt32(field.String())
		return err == nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := field.Int()
		return n >= math.MinInt32 && n <= math.MaxInt32
	default:
		return false
	}
}

// validateNonNegative passes non-integers through; pair it with "integer".
func validateNonNegative(fl validator.FieldLevel) bool {
	n, err := parseInt32(fl.Field().String())
	return err != nil || n >= 0
}

func parseInt32(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 32)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
