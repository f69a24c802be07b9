// Package validator provides rule-based validation with field-level errors.
//
// Rules are plain values combining a Check closure with the ValidationError to
// report when the check fails. Apply runs every rule and collects failures:
//
//	err := validator.Apply(
//	    validator.Required("subject", t.Subject),
//	    validator.MaxLen("subject", t.Subject, 200),
//	    validator.ValidEmail("send_to", to),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs.Has("subject") {
//	    ...
//	}
package validator
