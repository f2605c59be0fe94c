package form

import "errors"

var (
	// ErrFieldNameRequired is returned when a binder or rule set is declared
	// without a field name.
	ErrFieldNameRequired = errors.New("form: field name is required")
	// ErrUnknownField is returned when writing to a field that was never
	// declared through a default or a binder.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrRulesDeclared is returned when a field's rule set is declared twice.
	ErrRulesDeclared = errors.New("form: rules already declared")
	// ErrInvalidMode is returned by ParseMode for unsupported values.
	ErrInvalidMode = errors.New("form: invalid validation mode")
)
