// Package validation binds request payloads and validates them.
//
// Tag rules are enforced with go-playground/validator and every failure is
// turned into errs.FieldError values keyed by the JSON field name, with the
// same Russian messages the site shows next to form inputs.
package validation
