// Package errs defines the error shapes returned to API clients.
//
// Every failure, whether it comes from tag validation, a business rule in a
// service or the database driver, ends up as an *HTTPError so the client
// can re-display the submitted form with field-attached messages.
package errs

import "errors"

// Codes used for business-rule failures raised by services. They let
// clients tell error kinds apart without parsing messages.
const (
	CodeRequired       = "FIELD_REQUIRED"
	CodeBusinessRule   = "BUSINESS_RULE_VIOLATION"
	CodeAlreadyExists  = "ALREADY_EXISTS"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeInvalidChoice  = "INVALID_CHOICE"
	CodeCaptchaFailed  = "CAPTCHA_FAILED"
	CodeValidation     = "VALIDATION_FAILED"
	CodeRateLimited    = "TOO_MANY_REQUESTS"
	CodeAccountMissing = "ACCOUNT_NOT_REGISTERED"
)

// FieldErrorsOf returns the field errors carried by err, if err is (or wraps)
// an *HTTPError. It returns nil otherwise.
func FieldErrorsOf(err error) []FieldError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Errors
	}
	return nil
}

// FieldMessage returns the first message attached to field in err, or ""
// when err carries no error for that field.
func FieldMessage(err error, field string) string {
	for _, fe := range FieldErrorsOf(err) {
		if fe.Field == field {
			return fe.Error
		}
	}
	return ""
}
