package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Validatable is implemented by request payloads.
//
// A typical implementation calls Struct(req) for tag rules and returns
// CustomValidationErrors for anything tags cannot express.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single field message produced outside of
// validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so Validate can return it.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// usernameRegex mirrors the site's username policy: letters, digits and @/./+/-/_.
var usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// Validator returns the shared validator instance.
//
// It reports JSON names instead of Go field names, compares decimal.Decimal
// values numerically and knows the "username" tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// Struct runs tag validation on s with the shared validator.
func Struct(s interface{}) error {
	return Validator().Struct(s)
}

// Fields validates a set of named values against a rule table
// (field name -> validator tag). It is used by forms whose required set
// changes between variants while the field set stays the same.
//
// Fields are checked in name order so error output is stable.
func Fields(values map[string]interface{}, rules map[string]string) error {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var out CustomValidationErrors
	for _, name := range names {
		err := Validator().Var(values[name], rules[name])
		if err == nil {
			continue
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			out = append(out, CustomValidationError{Field: name, Message: message(fe)})
		}
	}

	if len(out) > 0 {
		return out
	}
	return nil
}

// BindAndValidate binds the request into payload and validates it.
//
// payload must be a pointer. Failures come back as a 400 *errs.HTTPError
// with field errors attached.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Некорректный формат запроса."
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if msg, ok := he.Message.(string); ok && msg != "" {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		code := errs.CodeValidation
		return errs.NewBadRequestError(msg, true, &code, fieldErrors, nil)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	var customErrors CustomValidationErrors

	switch {
	case errors.As(err, &validationErrors):
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fieldName(fe),
				Error: message(fe),
			})
		}
	case errors.As(err, &customErrors):
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
	default:
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "__all__", Error: err.Error()})
	}

	return "Validation failed", fieldErrors
}

// fieldName returns the JSON path of the failing field without the root
// struct name, e.g. "amount" or "items[0].price".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "Обязательное поле."

	case "min":
		if isString {
			return fmt.Sprintf("Убедитесь, что это значение содержит не менее %s символов.", fe.Param())
		}
		return fmt.Sprintf("Убедитесь, что это значение больше либо равно %s.", fe.Param())

	case "max":
		if isString {
			return fmt.Sprintf("Убедитесь, что это значение содержит не более %s символов.", fe.Param())
		}
		return fmt.Sprintf("Убедитесь, что это значение меньше либо равно %s.", fe.Param())

	case "gt":
		return fmt.Sprintf("Убедитесь, что это значение больше %s.", fe.Param())

	case "gte":
		return fmt.Sprintf("Убедитесь, что это значение больше либо равно %s.", fe.Param())

	case "oneof":
		return fmt.Sprintf("Выберите корректный вариант. Допустимые значения: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))

	case "email":
		return "Введите правильный адрес электронной почты."

	case "username":
		return "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."

	case "uuid":
		return "Введите правильный UUID."

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fieldName(fe), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fieldName(fe), fe.Tag())
	}
}

// uuidRegex matches the canonical 8-4-4-4-12 UUID text form.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks UUID format only, not version or variant bits.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
