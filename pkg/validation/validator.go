package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the validator behind Gin's ShouldBind*.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure reports fields by their JSON name and registers the KYC aliases.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("country", "iso3166_1_alpha2")
	v.RegisterAlias("docnumber", "min=3,max=64")
}

// ToDetails flattens a bind error into field -> message for the error envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("min length %s", param)
		}
		if isNumberKind(kind) {
			return fmt.Sprintf("must be >= %s", param)
		}
		return fmt.Sprintf("must contain at least %s items", param)
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("max length %s", param)
		}
		if isNumberKind(kind) {
			return fmt.Sprintf("must be <= %s", param)
		}
		return fmt.Sprintf("must contain at most %s items", param)
	case "len":
		return fmt.Sprintf("length must be %s", param)
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.Join(strings.Fields(param), ", "))
	case "datetime":
		if param == "2006-01-02" {
			return "must be a date as YYYY-MM-DD"
		}
		return fmt.Sprintf("must match datetime format %s", param)
	case "iso3166_1_alpha2", "country":
		return "must be a valid ISO 3166-1 alpha-2 country code"
	case "docnumber":
		return "must be between 3 and 64 characters"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
