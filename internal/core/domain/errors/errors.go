package errors

import "fmt"

type InvalidStateError struct {
	msg string
}

func NewInvalidStateError(msg string) *InvalidStateError {
	return &InvalidStateError{msg: msg}
}

func (e *InvalidStateError) Error() string {
	return e.msg
}

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}

// ValidationError is returned by domain constructors for malformed user input.
type ValidationError struct {
	Field string
	msg   string
}

func NewValidationError(field string, msg string) *ValidationError {
	return &ValidationError{Field: field, msg: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.msg)
}

// NotConfiguredError is returned by integrations whose credentials are not
// set. It surfaces when the integration is used, not at startup.
type NotConfiguredError struct {
	Integration string
}

func NewNotConfiguredError(integration string) *NotConfiguredError {
	return &NotConfiguredError{Integration: integration}
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Integration)
}
